package matchlog

import "context"

//go:generate mockgen -source=interface.go -destination=mock/repository_mock.go -package=mock

// ProposalRepository persists aggregator match proposals and their outcomes.
type ProposalRepository interface {
	Store(ctx context.Context, proposal *Proposal) error
	UpdateStatus(ctx context.Context, matchID uint64, status Status) error
	GetByMatchID(ctx context.Context, matchID uint64) (*Proposal, error)
	ListByStatus(ctx context.Context, status Status) ([]*Proposal, error)
}

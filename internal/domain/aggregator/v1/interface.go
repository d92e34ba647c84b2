package aggregatorv1

import (
	"context"
	"time"
)

//go:generate mockgen -source interface.go -destination=mock/interface_mock.go -package=aggregatorv1_mock

// MatchProposedEvent is the payload published whenever the aggregator
// submits a new match to the ledger. Volume and price keep the ledger's
// integer-string representation.
type MatchProposedEvent struct {
	EventID    string    `json:"eventId"`
	MatchID    uint64    `json:"matchId"`
	Asset      string    `json:"asset"`
	Buyer      string    `json:"buyer"`
	Volume     string    `json:"volume"`
	Price      string    `json:"price"`
	ProposedAt time.Time `json:"proposedAt"`
}

// MatchPublisher emits match lifecycle events to downstream consumers.
type MatchPublisher interface {
	// PublishMatchProposed publishes a newly proposed match
	PublishMatchProposed(ctx context.Context, event *MatchProposedEvent) error
	// Close flushes and closes the underlying transport
	Close() error
}

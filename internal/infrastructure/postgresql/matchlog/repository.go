package matchlog

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/giongion19/energyweb-marketplace/pkg/errors"
	"github.com/giongion19/energyweb-marketplace/pkg/logger"
	"github.com/giongion19/energyweb-marketplace/pkg/postgresql"
)

type repository struct {
	pg     postgresql.PostgreSQLClient
	logger logger.Interface
}

// NewRepository creates a new proposal repository.
func NewRepository(pg postgresql.PostgreSQLClient, logger logger.Interface) ProposalRepository {
	return &repository{pg: pg, logger: logger}
}

const (
	insertProposalQuery = `INSERT INTO match_proposals (id, match_id, asset, buyer, volume, price, status, proposed_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	updateStatusQuery   = `UPDATE match_proposals SET status = $2, updated_at = now() WHERE match_id = $1`
	getByMatchIDQuery   = `SELECT id, match_id, asset, buyer, volume, price, status, proposed_at, updated_at FROM match_proposals WHERE match_id = $1`
	listByStatusQuery   = `SELECT id, match_id, asset, buyer, volume, price, status, proposed_at, updated_at FROM match_proposals WHERE status = $1 ORDER BY proposed_at`
)

// Store records a new proposal.
func (r *repository) Store(ctx context.Context, proposal *Proposal) error {
	_, err := r.pg.Exec(ctx, insertProposalQuery,
		proposal.ID,
		proposal.MatchID,
		proposal.Asset,
		proposal.Buyer,
		proposal.Volume,
		proposal.Price,
		proposal.Status,
		proposal.ProposedAt,
		proposal.UpdatedAt,
	)
	if err != nil {
		r.logger.Error(err, logger.Field{
			Key:   "matchID",
			Value: proposal.MatchID,
		})
		return errors.NewErrorDetailsWithObject(err.Error(), string(errors.GeneralRepositoryError), "store", proposal)
	}

	r.logger.InfoContext(ctx, "Stored match proposal", logger.Field{
		Key:   "matchID",
		Value: proposal.MatchID,
	})
	return nil
}

// UpdateStatus records the terminal outcome of a proposal.
func (r *repository) UpdateStatus(ctx context.Context, matchID uint64, status Status) error {
	tag, err := r.pg.Exec(ctx, updateStatusQuery, matchID, status)
	if err != nil {
		r.logger.Error(err, logger.Field{
			Key:   "matchID",
			Value: matchID,
		})
		return errors.NewErrorDetails(err.Error(), string(errors.GeneralRepositoryError), "updateStatus")
	}

	if tag.RowsAffected() == 0 {
		return errors.NewErrorDetails("match proposal not found", string(errors.GeneralNotFoundError), "matchID")
	}
	return nil
}

// GetByMatchID returns the recorded proposal for a ledger match id, or nil
// when none exists.
func (r *repository) GetByMatchID(ctx context.Context, matchID uint64) (*Proposal, error) {
	var proposal Proposal
	err := r.pg.QueryRow(ctx, getByMatchIDQuery, matchID).Scan(
		&proposal.ID,
		&proposal.MatchID,
		&proposal.Asset,
		&proposal.Buyer,
		&proposal.Volume,
		&proposal.Price,
		&proposal.Status,
		&proposal.ProposedAt,
		&proposal.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error(err, logger.Field{
			Key:   "matchID",
			Value: matchID,
		})
		return nil, errors.NewErrorDetails(err.Error(), string(errors.GeneralRepositoryError), "getByMatchID")
	}

	return &proposal, nil
}

// ListByStatus returns every proposal currently in the given status.
func (r *repository) ListByStatus(ctx context.Context, status Status) ([]*Proposal, error) {
	rows, err := r.pg.Query(ctx, listByStatusQuery, status)
	if err != nil {
		r.logger.Error(err, logger.Field{
			Key:   "status",
			Value: status,
		})
		return nil, errors.NewErrorDetails(err.Error(), string(errors.GeneralRepositoryError), "listByStatus")
	}
	defer rows.Close()

	var proposals []*Proposal
	for rows.Next() {
		var proposal Proposal
		if err := rows.Scan(
			&proposal.ID,
			&proposal.MatchID,
			&proposal.Asset,
			&proposal.Buyer,
			&proposal.Volume,
			&proposal.Price,
			&proposal.Status,
			&proposal.ProposedAt,
			&proposal.UpdatedAt,
		); err != nil {
			return nil, errors.NewErrorDetails(err.Error(), string(errors.GeneralRepositoryError), "listByStatus")
		}
		proposals = append(proposals, &proposal)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewErrorDetails(err.Error(), string(errors.GeneralRepositoryError), "listByStatus")
	}

	return proposals, nil
}

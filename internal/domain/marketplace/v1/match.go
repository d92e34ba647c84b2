package marketplacev1

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/giongion19/energyweb-marketplace/pkg/errors"
)

// Match is the local mirror of one proposed or accepted pairing of an Asset
// and a Demand, keyed by a match identifier.
//
// The match moves between three states. Empty: no detail, the ledger record
// does not exist. Proposed: populated, accepted false. Accepted: populated,
// accepted true. Rejection and deletion end either populated state; a
// proposed match can additionally be cancelled by the aggregator.
type Match struct {
	matchID uint64
	detail  *matchDetail
}

// matchDetail is the populated variant. The asset and demand references are
// held exclusively while populated and released together on reset, so they
// are always both present or both absent.
type matchDetail struct {
	asset    *Asset
	demand   *Demand
	volume   decimal.Decimal
	price    decimal.Decimal
	accepted bool
}

// NewMatch creates an empty mirror for the given match identifier.
func NewMatch(matchID uint64) *Match {
	return &Match{matchID: matchID}
}

// FetchMarketplaceMatch reads the ledger's match record and populates the
// mirror with fresh Asset and Demand instances built from the record's
// identifiers. With autoFetch the two instances are immediately refreshed so
// they carry live economic data; without it they stay bare keyed stubs with
// zero fields. On any failure the mirror stays at its pre-call state.
func (m *Match) FetchMarketplaceMatch(ctx context.Context, gateway Gateway, autoFetch bool) error {
	record, err := gateway.Matches(ctx, m.matchID)
	if err != nil {
		return err
	}

	volume, err := parseAmount(record.Volume, "volume")
	if err != nil {
		return err
	}
	price, err := parseAmount(record.Price, "price")
	if err != nil {
		return err
	}

	asset := NewAsset(record.Asset)
	demand := NewDemand(record.Buyer)
	if autoFetch {
		if err := asset.FetchMarketplaceOffer(ctx, gateway); err != nil {
			return err
		}
		if err := demand.FetchMarketplaceDemand(ctx, gateway); err != nil {
			return err
		}
	}

	m.detail = &matchDetail{
		asset:    asset,
		demand:   demand,
		volume:   volume,
		price:    price,
		accepted: record.IsAccepted,
	}
	return nil
}

// ProposeMatch submits a proposeMatch transaction signed by the aggregator,
// binding the given Asset and Demand into this match. On success the mirror
// stores the given references as proposed, never accepted, and adopts the
// ledger-assigned match id.
func (m *Match) ProposeMatch(ctx context.Context, gateway Gateway, aggregator string, asset *Asset, demand *Demand, volume, price decimal.Decimal) error {
	if asset == nil || demand == nil {
		return errors.NewErrorDetails(
			"proposed match requires an asset and a demand",
			string(errors.GeneralBadRequestError),
			"asset",
		)
	}

	matchID, err := gateway.ProposeMatch(ctx, aggregator, asset.ID(), demand.Buyer(), volume, price)
	if err != nil {
		return err
	}

	m.matchID = matchID
	m.detail = &matchDetail{
		asset:    asset,
		demand:   demand,
		volume:   volume,
		price:    price,
		accepted: false,
	}
	return nil
}

// CancelProposedMatch submits a cancelProposedMatch transaction signed by the
// aggregator and resets the mirror. A proposed-but-not-accepted match has no
// economic side effects on the referenced asset and demand, so nothing needs
// re-syncing before the references are dropped.
func (m *Match) CancelProposedMatch(ctx context.Context, gateway Gateway, aggregator string) error {
	if err := gateway.CancelProposedMatch(ctx, aggregator, m.matchID); err != nil {
		return err
	}

	m.detail = nil
	return nil
}

// AcceptMatch submits an acceptMatch transaction signed by the buyer and
// marks the mirror accepted. Accepting alters the referenced asset's
// remaining volume and match count and the demand's matched flag on the
// ledger; with autoFetch a full re-read observes that. A failure during the
// re-read surfaces as a ReconciliationError: the acceptance is final even
// though the mirror is stale.
func (m *Match) AcceptMatch(ctx context.Context, gateway Gateway, buyer string, autoFetch bool) error {
	if err := gateway.AcceptMatch(ctx, buyer, m.matchID); err != nil {
		return err
	}

	if m.detail != nil {
		m.detail.accepted = true
	}
	if autoFetch {
		if err := m.FetchMarketplaceMatch(ctx, gateway, true); err != nil {
			return &ReconciliationError{Op: "acceptMatch", Err: err}
		}
	}
	return nil
}

// RejectMatch submits a rejectMatch transaction signed by the buyer, then
// resets the mirror. See reconcileAndReset for the ordering contract.
func (m *Match) RejectMatch(ctx context.Context, gateway Gateway, buyer string, autoFetch bool) error {
	if err := gateway.RejectMatch(ctx, buyer, m.matchID); err != nil {
		return err
	}

	return m.reconcileAndReset(ctx, gateway, "rejectMatch", autoFetch)
}

// DeleteMatch submits a deleteMatch transaction signed by the buyer or the
// asset owner, then resets the mirror. See reconcileAndReset for the
// ordering contract.
func (m *Match) DeleteMatch(ctx context.Context, gateway Gateway, buyerOrOwner string, autoFetch bool) error {
	if err := gateway.DeleteMatch(ctx, buyerOrOwner, m.matchID); err != nil {
		return err
	}

	return m.reconcileAndReset(ctx, gateway, "deleteMatch", autoFetch)
}

// reconcileAndReset finishes a rejection or deletion after the write
// confirmed. The still-attached asset and demand are re-read in place before
// the match resets to empty: once reset, the caller's only path to the
// post-action state is through the references it already holds, and the
// ledger record itself is gone. A refresh failure surfaces as a
// ReconciliationError and leaves the mirror populated.
func (m *Match) reconcileAndReset(ctx context.Context, gateway Gateway, op string, autoFetch bool) error {
	if autoFetch && m.detail != nil {
		if err := m.detail.asset.FetchMarketplaceOffer(ctx, gateway); err != nil {
			return &ReconciliationError{Op: op, Err: err}
		}
		if err := m.detail.demand.FetchMarketplaceDemand(ctx, gateway); err != nil {
			return &ReconciliationError{Op: op, Err: err}
		}
	}

	m.detail = nil
	return nil
}

// MatchID returns the match identifier the mirror is keyed by.
func (m *Match) MatchID() uint64 {
	return m.matchID
}

// Asset returns the attached asset, or nil while the match is empty.
func (m *Match) Asset() *Asset {
	if m.detail == nil {
		return nil
	}
	return m.detail.asset
}

// Demand returns the attached demand, or nil while the match is empty.
func (m *Match) Demand() *Demand {
	if m.detail == nil {
		return nil
	}
	return m.detail.demand
}

// Volume returns the matched volume, zero while the match is empty.
func (m *Match) Volume() decimal.Decimal {
	if m.detail == nil {
		return decimal.Zero
	}
	return m.detail.volume
}

// Price returns the matched price, zero while the match is empty.
func (m *Match) Price() decimal.Decimal {
	if m.detail == nil {
		return decimal.Zero
	}
	return m.detail.price
}

// Accepted reports whether the buyer accepted the match.
func (m *Match) Accepted() bool {
	return m.detail != nil && m.detail.accepted
}

// Exists reports whether the match exists on the ledger mirror, using the
// same zero volume/price sentinel as the contract.
func (m *Match) Exists() bool {
	return m.Volume().Sign() > 0 && m.Price().Sign() > 0
}

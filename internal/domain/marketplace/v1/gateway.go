// Package marketplacev1 mirrors the on-chain energy marketplace state: supply
// offers (Asset), demands (Demand) and proposed pairings (Match), together
// with their lifecycle operations against a ledger gateway.
//
// Entities are value mirrors. Every fetch produces a fresh snapshot, fields
// are mutated only by the entity's own lifecycle methods, and no entity is
// shared across instances. Methods are not safe for concurrent invocation on
// the same instance; callers serialize writes per entity key.
package marketplacev1

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/giongion19/energyweb-marketplace/pkg/errors"
)

// ZeroAddress is the unset identifier on the identity registry.
const ZeroAddress = "0x0000000000000000000000000000000000000000"

// OfferRecord is the marketplace contract's offer storage for one asset.
// Numeric fields arrive as integer strings and are parsed into arbitrary
// precision decimals before being stored on an entity.
type OfferRecord struct {
	Volume          string
	Price           string
	RemainingVolume string
	Matches         string
}

// DemandRecord is the marketplace contract's demand storage for one buyer.
type DemandRecord struct {
	Volume    string
	Price     string
	IsMatched bool
}

// MatchRecord is the marketplace contract's match storage for one match id.
type MatchRecord struct {
	Asset      string
	Buyer      string
	Volume     string
	Price      string
	IsAccepted bool
}

// Gateway executes read-only calls and state-changing transactions against
// the identity registry and the marketplace contract. Writes are executed
// "from" the given signer and return nil only once the ledger confirmed the
// transaction; a revert surfaces as a ledger rejection, an unreachable or
// unconfirmed ledger as a network error. The gateway owns ABI encoding,
// signing and broadcasting.
//
//go:generate mockgen -source=gateway.go -destination=mock/gateway_mock.go -package=mock
type Gateway interface {
	IdentityOwner(ctx context.Context, asset string) (string, error)
	Offers(ctx context.Context, asset string) (OfferRecord, error)
	Demands(ctx context.Context, buyer string) (DemandRecord, error)
	Matches(ctx context.Context, matchID uint64) (MatchRecord, error)

	CreateOffer(ctx context.Context, signer, asset string, volume, price decimal.Decimal) error
	CancelOffer(ctx context.Context, signer, asset string) error
	CreateDemand(ctx context.Context, signer string, volume, price decimal.Decimal) error
	CancelDemand(ctx context.Context, signer string) error
	ProposeMatch(ctx context.Context, signer, asset, buyer string, volume, price decimal.Decimal) (uint64, error)
	CancelProposedMatch(ctx context.Context, signer string, matchID uint64) error
	AcceptMatch(ctx context.Context, signer string, matchID uint64) error
	RejectMatch(ctx context.Context, signer string, matchID uint64) error
	DeleteMatch(ctx context.Context, signer string, matchID uint64) error
}

// parseAmount parses an integer-string ledger value. Truncating into a fixed
// width native number risks silent precision loss for large volumes/prices.
func parseAmount(value, field string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Decimal{}, errors.NewErrorDetails(
			"ledger returned a non-numeric amount: "+value,
			string(errors.LedgerDecodeError),
			field,
		)
	}
	return amount, nil
}

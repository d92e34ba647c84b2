package marketplacev1

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/giongion19/energyweb-marketplace/pkg/errors"
)

// Asset is the local mirror of one supply offer, keyed by an asset identifier.
type Asset struct {
	asset           string
	owner           string
	volume          decimal.Decimal
	price           decimal.Decimal
	remainingVolume decimal.Decimal
	matches         decimal.Decimal
}

// NewAsset creates an unfetched mirror for the given asset identifier.
func NewAsset(asset string) *Asset {
	return &Asset{
		asset: asset,
		owner: ZeroAddress,
	}
}

// FetchOwner reads the identity-registry ownership for the asset and updates
// the owner field. No other field is touched.
func (a *Asset) FetchOwner(ctx context.Context, gateway Gateway) (string, error) {
	owner, err := gateway.IdentityOwner(ctx, a.asset)
	if err != nil {
		return "", err
	}

	a.owner = owner
	return a.owner, nil
}

// FetchMarketplaceOffer overwrites the economic fields with the ledger's
// current offer record, discarding local unsent changes. Safe to call
// repeatedly. On failure the fields stay at their pre-call values.
func (a *Asset) FetchMarketplaceOffer(ctx context.Context, gateway Gateway) error {
	offer, err := gateway.Offers(ctx, a.asset)
	if err != nil {
		return err
	}

	volume, err := parseAmount(offer.Volume, "volume")
	if err != nil {
		return err
	}
	price, err := parseAmount(offer.Price, "price")
	if err != nil {
		return err
	}
	remainingVolume, err := parseAmount(offer.RemainingVolume, "remainingVolume")
	if err != nil {
		return err
	}
	matches, err := parseAmount(offer.Matches, "matches")
	if err != nil {
		return err
	}

	a.volume = volume
	a.price = price
	a.remainingVolume = remainingVolume
	a.matches = matches
	return nil
}

// CreateOffer submits a createOffer transaction signed by owner. Requires a
// positive volume and price. On success the local fields are updated
// optimistically, not re-read from the ledger.
func (a *Asset) CreateOffer(ctx context.Context, gateway Gateway, owner string, volume, price decimal.Decimal) error {
	if volume.Sign() <= 0 || price.Sign() <= 0 {
		return errors.NewErrorDetails(
			"offer volume and price must be greater than zero",
			string(errors.MarketplaceInvalidOfferError),
			"volume",
		)
	}

	if err := gateway.CreateOffer(ctx, owner, a.asset, volume, price); err != nil {
		return err
	}

	a.volume = volume
	a.remainingVolume = volume
	a.price = price
	return nil
}

// CancelOffer submits a cancelOffer transaction signed by owner. On success
// the offer ceases to exist locally.
func (a *Asset) CancelOffer(ctx context.Context, gateway Gateway, owner string) error {
	if err := gateway.CancelOffer(ctx, owner, a.asset); err != nil {
		return err
	}

	a.volume = decimal.Zero
	a.remainingVolume = decimal.Zero
	a.price = decimal.Zero
	return nil
}

// ID returns the asset identifier the mirror is keyed by.
func (a *Asset) ID() string {
	return a.asset
}

// Owner returns the last fetched identity-registry owner.
func (a *Asset) Owner() string {
	return a.owner
}

// Volume returns the offered volume.
func (a *Asset) Volume() decimal.Decimal {
	return a.volume
}

// Price returns the offered price.
func (a *Asset) Price() decimal.Decimal {
	return a.price
}

// RemainingVolume returns the volume not yet bound into accepted matches.
func (a *Asset) RemainingVolume() decimal.Decimal {
	return a.remainingVolume
}

// Matches returns the number of matches the offer is bound into.
func (a *Asset) Matches() decimal.Decimal {
	return a.matches
}

// OfferExists reports whether the offer exists on the ledger mirror. The
// contract stores no existence flag; a zero volume or price is the sentinel.
func (a *Asset) OfferExists() bool {
	return a.volume.Sign() > 0 && a.price.Sign() > 0
}

// Matched reports whether the offer is bound into at least one match.
func (a *Asset) Matched() bool {
	return a.matches.Sign() > 0
}

package marketplacev1

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/giongion19/energyweb-marketplace/pkg/errors"
)

// Demand is the local mirror of one demand, keyed by the buyer identifier.
// The buyer is also the implicit signer of every demand transaction.
type Demand struct {
	buyer   string
	volume  decimal.Decimal
	price   decimal.Decimal
	matched bool
}

// NewDemand creates an unfetched mirror for the given buyer identifier.
func NewDemand(buyer string) *Demand {
	return &Demand{buyer: buyer}
}

// FetchMarketplaceDemand overwrites the economic fields and the matched flag
// with the ledger's current demand record. Safe to call repeatedly. On
// failure the fields stay at their pre-call values.
func (d *Demand) FetchMarketplaceDemand(ctx context.Context, gateway Gateway) error {
	demand, err := gateway.Demands(ctx, d.buyer)
	if err != nil {
		return err
	}

	volume, err := parseAmount(demand.Volume, "volume")
	if err != nil {
		return err
	}
	price, err := parseAmount(demand.Price, "price")
	if err != nil {
		return err
	}

	d.matched = demand.IsMatched
	d.volume = volume
	d.price = price
	return nil
}

// CreateDemand submits a createDemand transaction signed by the buyer.
// Requires a positive volume and price. On success the local fields are
// updated optimistically, not re-read from the ledger.
func (d *Demand) CreateDemand(ctx context.Context, gateway Gateway, volume, price decimal.Decimal) error {
	if volume.Sign() <= 0 || price.Sign() <= 0 {
		return errors.NewErrorDetails(
			"demand volume and price must be greater than zero",
			string(errors.MarketplaceInvalidDemandError),
			"volume",
		)
	}

	if err := gateway.CreateDemand(ctx, d.buyer, volume, price); err != nil {
		return err
	}

	d.matched = false
	d.volume = volume
	d.price = price
	return nil
}

// CancelDemand submits a cancelDemand transaction signed by the buyer. On
// success the demand ceases to exist locally.
func (d *Demand) CancelDemand(ctx context.Context, gateway Gateway) error {
	if err := gateway.CancelDemand(ctx, d.buyer); err != nil {
		return err
	}

	d.matched = false
	d.volume = decimal.Zero
	d.price = decimal.Zero
	return nil
}

// Buyer returns the buyer identifier the mirror is keyed by.
func (d *Demand) Buyer() string {
	return d.buyer
}

// Volume returns the demanded volume.
func (d *Demand) Volume() decimal.Decimal {
	return d.volume
}

// Price returns the demanded price.
func (d *Demand) Price() decimal.Decimal {
	return d.price
}

// Matched returns the ledger's matched flag for the demand.
func (d *Demand) Matched() bool {
	return d.matched
}

// DemandExists reports whether the demand exists on the ledger mirror.
func (d *Demand) DemandExists() bool {
	return d.volume.Sign() > 0 && d.price.Sign() > 0
}

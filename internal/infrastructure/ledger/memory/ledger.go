// Package memory implements the ledger gateway against an in-process
// marketplace, enforcing the same authorization and state-transition rules as
// the deployed contracts. It backs integration-style tests and offline runs
// of the aggregator.
package memory

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	marketplacev1 "github.com/giongion19/energyweb-marketplace/internal/domain/marketplace/v1"
	"github.com/giongion19/energyweb-marketplace/pkg/errors"
)

type offer struct {
	volume          decimal.Decimal
	price           decimal.Decimal
	remainingVolume decimal.Decimal
	matches         decimal.Decimal
}

type demand struct {
	volume    decimal.Decimal
	price     decimal.Decimal
	isMatched bool
}

type match struct {
	asset      string
	buyer      string
	volume     decimal.Decimal
	price      decimal.Decimal
	isAccepted bool
}

// Ledger is an in-memory identity registry plus marketplace contract. The
// zero value is not usable; construct with NewLedger.
type Ledger struct {
	mu          sync.Mutex
	aggregator  string
	owners      map[string]string
	offers      map[string]*offer
	demands     map[string]*demand
	matches     map[uint64]*match
	nextMatchID uint64
	failNext    map[string]error
}

var _ marketplacev1.Gateway = (*Ledger)(nil)

// NewLedger creates an empty ledger whose proposeMatch/cancelProposedMatch
// operations are restricted to the given aggregator identity.
func NewLedger(aggregator string) *Ledger {
	return &Ledger{
		aggregator:  aggregator,
		owners:      map[string]string{},
		offers:      map[string]*offer{},
		demands:     map[string]*demand{},
		matches:     map[uint64]*match{},
		nextMatchID: 1,
		failNext:    map[string]error{},
	}
}

// RegisterOwner records asset ownership on the identity registry.
func (l *Ledger) RegisterOwner(asset, owner string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.owners[asset] = owner
}

// FailNext makes the next invocation of the named gateway operation return
// the given error without touching ledger state. Used by tests to simulate
// network failures at precise points.
func (l *Ledger) FailNext(op string, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.failNext[op] = err
}

func (l *Ledger) injected(op string) error {
	if err, ok := l.failNext[op]; ok {
		delete(l.failNext, op)
		return err
	}
	return nil
}

func rejected(message, field string) error {
	return errors.NewErrorDetails(message, string(errors.LedgerRejectedError), field)
}

// IdentityOwner returns the registered owner of an asset, or the zero
// address when unregistered.
func (l *Ledger) IdentityOwner(_ context.Context, asset string) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.injected("IdentityOwner"); err != nil {
		return "", err
	}

	owner, ok := l.owners[asset]
	if !ok {
		return marketplacev1.ZeroAddress, nil
	}
	return owner, nil
}

// Offers returns the offer storage for an asset. Like the contract, an
// unknown key reads as a zeroed record.
func (l *Ledger) Offers(_ context.Context, asset string) (marketplacev1.OfferRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.injected("Offers"); err != nil {
		return marketplacev1.OfferRecord{}, err
	}

	o, ok := l.offers[asset]
	if !ok {
		o = &offer{}
	}
	return marketplacev1.OfferRecord{
		Volume:          o.volume.String(),
		Price:           o.price.String(),
		RemainingVolume: o.remainingVolume.String(),
		Matches:         o.matches.String(),
	}, nil
}

// Demands returns the demand storage for a buyer.
func (l *Ledger) Demands(_ context.Context, buyer string) (marketplacev1.DemandRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.injected("Demands"); err != nil {
		return marketplacev1.DemandRecord{}, err
	}

	d, ok := l.demands[buyer]
	if !ok {
		d = &demand{}
	}
	return marketplacev1.DemandRecord{
		Volume:    d.volume.String(),
		Price:     d.price.String(),
		IsMatched: d.isMatched,
	}, nil
}

// Matches returns the match storage for a match id.
func (l *Ledger) Matches(_ context.Context, matchID uint64) (marketplacev1.MatchRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.injected("Matches"); err != nil {
		return marketplacev1.MatchRecord{}, err
	}

	m, ok := l.matches[matchID]
	if !ok {
		return marketplacev1.MatchRecord{
			Asset:  marketplacev1.ZeroAddress,
			Buyer:  marketplacev1.ZeroAddress,
			Volume: "0",
			Price:  "0",
		}, nil
	}
	return marketplacev1.MatchRecord{
		Asset:      m.asset,
		Buyer:      m.buyer,
		Volume:     m.volume.String(),
		Price:      m.price.String(),
		IsAccepted: m.isAccepted,
	}, nil
}

// CreateOffer posts an offer for an asset the signer owns.
func (l *Ledger) CreateOffer(_ context.Context, signer, asset string, volume, price decimal.Decimal) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.injected("CreateOffer"); err != nil {
		return err
	}

	if l.owners[asset] != signer {
		return rejected("signer does not own asset", "createOffer")
	}
	if volume.Sign() <= 0 || price.Sign() <= 0 {
		return rejected("offer volume and price must be positive", "createOffer")
	}

	existing := l.offers[asset]
	o := &offer{volume: volume, price: price, remainingVolume: volume}
	if existing != nil {
		o.matches = existing.matches
	}
	l.offers[asset] = o
	return nil
}

// CancelOffer zeroes the signer's offer.
func (l *Ledger) CancelOffer(_ context.Context, signer, asset string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.injected("CancelOffer"); err != nil {
		return err
	}

	if l.owners[asset] != signer {
		return rejected("signer does not own asset", "cancelOffer")
	}
	o, ok := l.offers[asset]
	if !ok || o.volume.Sign() == 0 {
		return rejected("offer does not exist", "cancelOffer")
	}

	o.volume = decimal.Zero
	o.price = decimal.Zero
	o.remainingVolume = decimal.Zero
	return nil
}

// CreateDemand posts a demand keyed by the signer.
func (l *Ledger) CreateDemand(_ context.Context, signer string, volume, price decimal.Decimal) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.injected("CreateDemand"); err != nil {
		return err
	}

	if volume.Sign() <= 0 || price.Sign() <= 0 {
		return rejected("demand volume and price must be positive", "createDemand")
	}

	l.demands[signer] = &demand{volume: volume, price: price}
	return nil
}

// CancelDemand zeroes the signer's demand.
func (l *Ledger) CancelDemand(_ context.Context, signer string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.injected("CancelDemand"); err != nil {
		return err
	}

	d, ok := l.demands[signer]
	if !ok || d.volume.Sign() == 0 {
		return rejected("demand does not exist", "cancelDemand")
	}

	d.volume = decimal.Zero
	d.price = decimal.Zero
	d.isMatched = false
	return nil
}

// ProposeMatch binds an existing offer and demand into a new proposed match
// and returns its ledger-assigned id. Aggregator only.
func (l *Ledger) ProposeMatch(_ context.Context, signer, asset, buyer string, volume, price decimal.Decimal) (uint64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.injected("ProposeMatch"); err != nil {
		return 0, err
	}

	if signer != l.aggregator {
		return 0, rejected("signer is not the aggregator", "proposeMatch")
	}
	o, ok := l.offers[asset]
	if !ok || o.volume.Sign() == 0 || o.price.Sign() == 0 {
		return 0, rejected("offer does not exist", "proposeMatch")
	}
	d, ok := l.demands[buyer]
	if !ok || d.volume.Sign() == 0 || d.price.Sign() == 0 {
		return 0, rejected("demand does not exist", "proposeMatch")
	}
	if d.isMatched {
		return 0, rejected("demand is already matched", "proposeMatch")
	}
	if volume.Sign() <= 0 || price.Sign() <= 0 {
		return 0, rejected("match volume and price must be positive", "proposeMatch")
	}
	if volume.GreaterThan(o.remainingVolume) {
		return 0, rejected("match volume exceeds remaining offer volume", "proposeMatch")
	}

	matchID := l.nextMatchID
	l.nextMatchID++
	l.matches[matchID] = &match{asset: asset, buyer: buyer, volume: volume, price: price}
	return matchID, nil
}

// CancelProposedMatch removes a not-yet-accepted match. Aggregator only.
func (l *Ledger) CancelProposedMatch(_ context.Context, signer string, matchID uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.injected("CancelProposedMatch"); err != nil {
		return err
	}

	if signer != l.aggregator {
		return rejected("signer is not the aggregator", "cancelProposedMatch")
	}
	m, ok := l.matches[matchID]
	if !ok {
		return rejected("match does not exist", "cancelProposedMatch")
	}
	if m.isAccepted {
		return rejected("accepted match cannot be cancelled", "cancelProposedMatch")
	}

	delete(l.matches, matchID)
	return nil
}

// AcceptMatch marks a proposed match accepted and applies its economic side
// effects: the offer's remaining volume shrinks, its match counter grows and
// the demand is flagged matched. Buyer only.
func (l *Ledger) AcceptMatch(_ context.Context, signer string, matchID uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.injected("AcceptMatch"); err != nil {
		return err
	}

	m, ok := l.matches[matchID]
	if !ok {
		return rejected("match does not exist", "acceptMatch")
	}
	if signer != m.buyer {
		return rejected("signer is not the buyer", "acceptMatch")
	}
	if m.isAccepted {
		return rejected("match is already accepted", "acceptMatch")
	}
	o := l.offers[m.asset]
	if o == nil || m.volume.GreaterThan(o.remainingVolume) {
		return rejected("offer can no longer cover the match", "acceptMatch")
	}

	m.isAccepted = true
	o.remainingVolume = o.remainingVolume.Sub(m.volume)
	o.matches = o.matches.Add(decimal.NewFromInt(1))
	if d := l.demands[m.buyer]; d != nil {
		d.isMatched = true
	}
	return nil
}

// RejectMatch removes a match, undoing its side effects when it had been
// accepted. Buyer only.
func (l *Ledger) RejectMatch(_ context.Context, signer string, matchID uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.injected("RejectMatch"); err != nil {
		return err
	}

	m, ok := l.matches[matchID]
	if !ok {
		return rejected("match does not exist", "rejectMatch")
	}
	if signer != m.buyer {
		return rejected("signer is not the buyer", "rejectMatch")
	}

	l.removeMatch(matchID, m)
	return nil
}

// DeleteMatch removes a match on behalf of the buyer or the asset owner,
// undoing its side effects when it had been accepted.
func (l *Ledger) DeleteMatch(_ context.Context, signer string, matchID uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.injected("DeleteMatch"); err != nil {
		return err
	}

	m, ok := l.matches[matchID]
	if !ok {
		return rejected("match does not exist", "deleteMatch")
	}
	if signer != m.buyer && signer != l.owners[m.asset] {
		return rejected("signer is neither the buyer nor the asset owner", "deleteMatch")
	}

	l.removeMatch(matchID, m)
	return nil
}

func (l *Ledger) removeMatch(matchID uint64, m *match) {
	if m.isAccepted {
		if o := l.offers[m.asset]; o != nil {
			o.remainingVolume = o.remainingVolume.Add(m.volume)
			o.matches = o.matches.Sub(decimal.NewFromInt(1))
		}
		if d := l.demands[m.buyer]; d != nil {
			d.isMatched = false
		}
	}
	delete(l.matches, matchID)
}

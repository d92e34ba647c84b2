package aggregator

import (
	"context"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"

	aggregatorv1 "github.com/giongion19/energyweb-marketplace/internal/domain/aggregator/v1"
	marketplacev1 "github.com/giongion19/energyweb-marketplace/internal/domain/marketplace/v1"
	"github.com/giongion19/energyweb-marketplace/internal/infrastructure/postgresql/matchlog"
	"github.com/giongion19/energyweb-marketplace/pkg/config"
	"github.com/giongion19/energyweb-marketplace/pkg/logger"
)

// Aggregator pairs live offers with live unmatched demands and proposes the
// resulting matches on the ledger. The marketplace contract exposes no
// enumeration, so the aggregator scans a configured watchlist of asset and
// buyer addresses.
type Aggregator struct {
	config    config.AggregatorConfig
	gateway   marketplacev1.Gateway
	proposals matchlog.ProposalRepository
	publisher aggregatorv1.MatchPublisher
	logger    logger.Interface

	// inFlight maps a buyer address to the open proposal awaiting that
	// buyer's decision. Only touched from the polling goroutine.
	inFlight map[string]uint64

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewAggregator creates a new aggregator loop.
func NewAggregator(
	config config.AggregatorConfig,
	gateway marketplacev1.Gateway,
	proposals matchlog.ProposalRepository,
	publisher aggregatorv1.MatchPublisher,
	logger logger.Interface,
) *Aggregator {
	return &Aggregator{
		config:    config,
		gateway:   gateway,
		proposals: proposals,
		publisher: publisher,
		logger:    logger,
		inFlight:  make(map[string]uint64),
	}
}

// Start launches the polling loop.
func (a *Aggregator) Start(ctx context.Context) {
	ctx, a.cancel = context.WithCancel(ctx)

	a.logger.InfoContext(ctx, "starting aggregator",
		logger.Field{Key: "action", Value: "aggregator_start"},
		logger.Field{Key: "assets", Value: len(a.config.AssetList)},
		logger.Field{Key: "buyers", Value: len(a.config.BuyerList)},
	)

	a.wg.Add(1)
	go a.run(ctx)
}

// Stop cancels the loop and waits for the current cycle to finish.
func (a *Aggregator) Stop() {
	if a.cancel != nil {
		a.cancel()
	}
	a.wg.Wait()
}

func (a *Aggregator) run(ctx context.Context) {
	defer a.wg.Done()

	ticker := time.NewTicker(a.config.PollInterval)
	defer ticker.Stop()

	a.runCycle(ctx)
	for {
		select {
		case <-ctx.Done():
			a.logger.InfoContext(ctx, "aggregator stopped",
				logger.Field{Key: "action", Value: "aggregator_stop"},
			)
			return
		case <-ticker.C:
			a.runCycle(ctx)
		}
	}
}

// runCycle settles open proposals, then scans the watchlists and proposes new
// matches. Failures on individual addresses are logged and skipped so one bad
// entry cannot stall the whole cycle.
func (a *Aggregator) runCycle(ctx context.Context) {
	a.settleOpenProposals(ctx)

	demands := a.liveDemands(ctx)
	if len(demands) == 0 {
		return
	}

	for _, assetID := range a.config.AssetList {
		asset := marketplacev1.NewAsset(assetID)
		if err := asset.FetchMarketplaceOffer(ctx, a.gateway); err != nil {
			a.logger.WarnContext(ctx, "failed to fetch offer",
				logger.Field{Key: "asset", Value: assetID},
				logger.Field{Key: "error", Value: err.Error()},
			)
			continue
		}
		if !asset.OfferExists() {
			continue
		}

		demands = a.proposeForAsset(ctx, asset, demands)
		if len(demands) == 0 {
			return
		}
	}
}

// settleOpenProposals re-reads every in-flight proposal and records its
// outcome. A match that is gone from the ledger was rejected, cancelled or
// deleted; an accepted match stays on the ledger with the accepted flag set.
func (a *Aggregator) settleOpenProposals(ctx context.Context) {
	for buyer, matchID := range a.inFlight {
		match := marketplacev1.NewMatch(matchID)
		if err := match.FetchMarketplaceMatch(ctx, a.gateway, false); err != nil {
			a.logger.WarnContext(ctx, "failed to fetch open proposal",
				logger.Field{Key: "matchID", Value: matchID},
				logger.Field{Key: "error", Value: err.Error()},
			)
			continue
		}

		var status matchlog.Status
		switch {
		case match.Accepted():
			status = matchlog.StatusAccepted
		case !match.Exists():
			status = matchlog.StatusRejected
		default:
			continue
		}

		if err := a.proposals.UpdateStatus(ctx, matchID, status); err != nil {
			a.logger.WarnContext(ctx, "failed to record proposal outcome",
				logger.Field{Key: "matchID", Value: matchID},
				logger.Field{Key: "status", Value: status},
				logger.Field{Key: "error", Value: err.Error()},
			)
		}
		delete(a.inFlight, buyer)
	}
}

// liveDemands fetches every watched buyer's demand and keeps the ones that
// exist, are unmatched and have no proposal already awaiting a decision.
func (a *Aggregator) liveDemands(ctx context.Context) []*marketplacev1.Demand {
	var demands []*marketplacev1.Demand
	for _, buyer := range a.config.BuyerList {
		if _, open := a.inFlight[buyer]; open {
			continue
		}

		demand := marketplacev1.NewDemand(buyer)
		if err := demand.FetchMarketplaceDemand(ctx, a.gateway); err != nil {
			a.logger.WarnContext(ctx, "failed to fetch demand",
				logger.Field{Key: "buyer", Value: buyer},
				logger.Field{Key: "error", Value: err.Error()},
			)
			continue
		}
		if !demand.DemandExists() || demand.Matched() {
			continue
		}
		demands = append(demands, demand)
	}
	return demands
}

// proposeForAsset pairs the offer with every affordable demand until the
// offer's remaining volume runs out. Returns the demands left unpaired.
func (a *Aggregator) proposeForAsset(ctx context.Context, asset *marketplacev1.Asset, demands []*marketplacev1.Demand) []*marketplacev1.Demand {
	remaining := asset.RemainingVolume()

	var unpaired []*marketplacev1.Demand
	for i, demand := range demands {
		if !remaining.IsPositive() {
			unpaired = append(unpaired, demands[i:]...)
			break
		}
		if demand.Price().LessThan(asset.Price()) {
			unpaired = append(unpaired, demand)
			continue
		}

		volume := decimal.Min(remaining, demand.Volume())
		if err := a.propose(ctx, asset, demand, volume); err != nil {
			unpaired = append(unpaired, demand)
			continue
		}
		remaining = remaining.Sub(volume)
	}
	return unpaired
}

func (a *Aggregator) propose(ctx context.Context, asset *marketplacev1.Asset, demand *marketplacev1.Demand, volume decimal.Decimal) error {
	match := marketplacev1.NewMatch(0)
	if err := match.ProposeMatch(ctx, a.gateway, a.config.Address, asset, demand, volume, asset.Price()); err != nil {
		a.logger.WarnContext(ctx, "failed to propose match",
			logger.Field{Key: "asset", Value: asset.ID()},
			logger.Field{Key: "buyer", Value: demand.Buyer()},
			logger.Field{Key: "error", Value: err.Error()},
		)
		return err
	}

	a.inFlight[demand.Buyer()] = match.MatchID()
	a.logger.InfoContext(ctx, "proposed match",
		logger.Field{Key: "matchID", Value: match.MatchID()},
		logger.Field{Key: "asset", Value: asset.ID()},
		logger.Field{Key: "buyer", Value: demand.Buyer()},
		logger.Field{Key: "volume", Value: volume.String()},
	)

	now := time.Now().UTC()
	proposal := &matchlog.Proposal{
		ID:         ulid.Make().String(),
		MatchID:    match.MatchID(),
		Asset:      asset.ID(),
		Buyer:      demand.Buyer(),
		Volume:     volume.String(),
		Price:      asset.Price().String(),
		Status:     matchlog.StatusProposed,
		ProposedAt: now,
		UpdatedAt:  now,
	}
	if err := a.proposals.Store(ctx, proposal); err != nil {
		a.logger.WarnContext(ctx, "failed to record proposal",
			logger.Field{Key: "matchID", Value: match.MatchID()},
			logger.Field{Key: "error", Value: err.Error()},
		)
	}

	event := &aggregatorv1.MatchProposedEvent{
		EventID:    proposal.ID,
		MatchID:    match.MatchID(),
		Asset:      asset.ID(),
		Buyer:      demand.Buyer(),
		Volume:     volume.String(),
		Price:      asset.Price().String(),
		ProposedAt: now,
	}
	if err := a.publisher.PublishMatchProposed(ctx, event); err != nil {
		a.logger.WarnContext(ctx, "failed to publish match proposed event",
			logger.Field{Key: "matchID", Value: match.MatchID()},
			logger.Field{Key: "error", Value: err.Error()},
		)
	}
	return nil
}

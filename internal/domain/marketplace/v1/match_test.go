package marketplacev1_test

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	marketplacev1 "github.com/giongion19/energyweb-marketplace/internal/domain/marketplace/v1"
	"github.com/giongion19/energyweb-marketplace/internal/domain/marketplace/v1/mock"
	pkgerrors "github.com/giongion19/energyweb-marketplace/pkg/errors"
)

const aggregatorID = "0x0000000000000000000000000000000000000a66"

func networkErr(field string) error {
	return pkgerrors.NewErrorDetails("ledger unreachable", string(pkgerrors.LedgerNetworkError), field)
}

// populatedMatch fetches match 1 with autoFetch=false so it holds stub
// asset/demand references keyed A1/B1 with volume 50 and price 5.
func populatedMatch(t *testing.T, ctx context.Context, gateway *mock.MockGateway, accepted bool) *marketplacev1.Match {
	t.Helper()

	gateway.EXPECT().Matches(ctx, uint64(1)).Return(marketplacev1.MatchRecord{
		Asset:      assetID,
		Buyer:      buyerID,
		Volume:     "50",
		Price:      "5",
		IsAccepted: accepted,
	}, nil)

	match := marketplacev1.NewMatch(1)
	require.NoError(t, match.FetchMarketplaceMatch(ctx, gateway, false))
	require.True(t, match.Exists())
	return match
}

func TestNewMatch(t *testing.T) {
	match := marketplacev1.NewMatch(7)

	assert.Equal(t, uint64(7), match.MatchID())
	assert.False(t, match.Exists())
	assert.False(t, match.Accepted())
	assert.Nil(t, match.Asset())
	assert.Nil(t, match.Demand())
	assert.True(t, match.Volume().IsZero())
	assert.True(t, match.Price().IsZero())
}

func TestMatch_FetchMarketplaceMatch_NoAutoFetch(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	gateway := mock.NewMockGateway(ctrl)

	gateway.EXPECT().Matches(ctx, uint64(1)).Return(marketplacev1.MatchRecord{
		Asset:      "A1",
		Buyer:      "B1",
		Volume:     "50",
		Price:      "5",
		IsAccepted: false,
	}, nil)

	match := marketplacev1.NewMatch(1)
	err := match.FetchMarketplaceMatch(ctx, gateway, false)

	require.NoError(t, err)
	assert.False(t, match.Accepted())
	assert.Equal(t, "50", match.Volume().String())
	assert.Equal(t, "5", match.Price().String())
	assert.True(t, match.Exists())

	// without autoFetch the references are bare keyed stubs
	require.NotNil(t, match.Asset())
	require.NotNil(t, match.Demand())
	assert.Equal(t, "A1", match.Asset().ID())
	assert.True(t, match.Asset().Volume().IsZero())
	assert.True(t, match.Asset().Price().IsZero())
	assert.Equal(t, "B1", match.Demand().Buyer())
	assert.True(t, match.Demand().Volume().IsZero())
	assert.True(t, match.Demand().Price().IsZero())
}

func TestMatch_FetchMarketplaceMatch_AutoFetch(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	gateway := mock.NewMockGateway(ctrl)

	gateway.EXPECT().Matches(ctx, uint64(1)).Return(marketplacev1.MatchRecord{
		Asset:      assetID,
		Buyer:      buyerID,
		Volume:     "50",
		Price:      "5",
		IsAccepted: true,
	}, nil)
	gateway.EXPECT().Offers(ctx, assetID).Return(marketplacev1.OfferRecord{
		Volume:          "100",
		Price:           "5",
		RemainingVolume: "50",
		Matches:         "1",
	}, nil)
	gateway.EXPECT().Demands(ctx, buyerID).Return(marketplacev1.DemandRecord{
		Volume:    "50",
		Price:     "6",
		IsMatched: true,
	}, nil)

	match := marketplacev1.NewMatch(1)
	err := match.FetchMarketplaceMatch(ctx, gateway, true)

	require.NoError(t, err)
	assert.True(t, match.Accepted())
	assert.True(t, match.Asset().OfferExists())
	assert.Equal(t, "50", match.Asset().RemainingVolume().String())
	assert.True(t, match.Demand().Matched())
}

func TestMatch_FetchMarketplaceMatch_AutoFetchFailureLeavesMatchUnchanged(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	gateway := mock.NewMockGateway(ctrl)

	gateway.EXPECT().Matches(ctx, uint64(1)).Return(marketplacev1.MatchRecord{
		Asset:      assetID,
		Buyer:      buyerID,
		Volume:     "50",
		Price:      "5",
		IsAccepted: false,
	}, nil)
	gateway.EXPECT().Offers(ctx, assetID).Return(marketplacev1.OfferRecord{}, networkErr("offers"))

	match := marketplacev1.NewMatch(1)
	err := match.FetchMarketplaceMatch(ctx, gateway, true)

	require.Error(t, err)
	assert.False(t, match.Exists())
	assert.Nil(t, match.Asset())
	assert.Nil(t, match.Demand())
}

func TestMatch_ProposeMatch(t *testing.T) {
	ctx := context.Background()
	volume := decimal.NewFromInt(50)
	price := decimal.NewFromInt(5)

	t.Run("stores references and adopts the ledger-assigned id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		gateway := mock.NewMockGateway(ctrl)
		gateway.EXPECT().ProposeMatch(ctx, aggregatorID, assetID, buyerID, volume, price).
			Return(uint64(42), nil)

		asset := marketplacev1.NewAsset(assetID)
		demand := marketplacev1.NewDemand(buyerID)
		match := marketplacev1.NewMatch(0)
		err := match.ProposeMatch(ctx, gateway, aggregatorID, asset, demand, volume, price)

		require.NoError(t, err)
		assert.Equal(t, uint64(42), match.MatchID())
		assert.False(t, match.Accepted())
		assert.True(t, match.Exists())
		assert.Same(t, asset, match.Asset())
		assert.Same(t, demand, match.Demand())
	})

	t.Run("always yields accepted=false on a reused accepted instance", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		gateway := mock.NewMockGateway(ctrl)

		match := populatedMatch(t, ctx, gateway, true)
		require.True(t, match.Accepted())

		gateway.EXPECT().ProposeMatch(ctx, aggregatorID, assetID, buyerID, volume, price).
			Return(uint64(2), nil)

		asset := marketplacev1.NewAsset(assetID)
		demand := marketplacev1.NewDemand(buyerID)
		require.NoError(t, match.ProposeMatch(ctx, gateway, aggregatorID, asset, demand, volume, price))
		assert.False(t, match.Accepted())
	})

	t.Run("nil references rejected before any transaction", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		gateway := mock.NewMockGateway(ctrl)

		match := marketplacev1.NewMatch(0)
		err := match.ProposeMatch(ctx, gateway, aggregatorID, nil, nil, volume, price)

		require.Error(t, err)
		assert.False(t, match.Exists())
	})

	t.Run("ledger rejection leaves the match unchanged", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		gateway := mock.NewMockGateway(ctrl)
		gateway.EXPECT().ProposeMatch(ctx, aggregatorID, assetID, buyerID, volume, price).
			Return(uint64(0), pkgerrors.NewErrorDetails("signer is not the aggregator", string(pkgerrors.LedgerRejectedError), "proposeMatch"))

		match := marketplacev1.NewMatch(0)
		err := match.ProposeMatch(ctx, gateway, aggregatorID, marketplacev1.NewAsset(assetID), marketplacev1.NewDemand(buyerID), volume, price)

		require.Error(t, err)
		assert.False(t, match.Exists())
		assert.Nil(t, match.Asset())
	})
}

func TestMatch_CancelProposedMatch(t *testing.T) {
	ctx := context.Background()

	t.Run("resets without any reconciliation read", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		gateway := mock.NewMockGateway(ctrl)

		match := populatedMatch(t, ctx, gateway, false)

		gateway.EXPECT().CancelProposedMatch(ctx, aggregatorID, uint64(1)).Return(nil)
		err := match.CancelProposedMatch(ctx, gateway, aggregatorID)

		require.NoError(t, err)
		assert.False(t, match.Exists())
		assert.Nil(t, match.Asset())
		assert.Nil(t, match.Demand())
	})

	t.Run("failure leaves the match populated", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		gateway := mock.NewMockGateway(ctrl)

		match := populatedMatch(t, ctx, gateway, false)

		gateway.EXPECT().CancelProposedMatch(ctx, aggregatorID, uint64(1)).Return(networkErr("cancelProposedMatch"))
		err := match.CancelProposedMatch(ctx, gateway, aggregatorID)

		require.Error(t, err)
		assert.True(t, match.Exists())
	})
}

func TestMatch_AcceptMatch(t *testing.T) {
	ctx := context.Background()

	t.Run("without autoFetch only flips the accepted flag", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		gateway := mock.NewMockGateway(ctrl)

		match := populatedMatch(t, ctx, gateway, false)

		gateway.EXPECT().AcceptMatch(ctx, buyerID, uint64(1)).Return(nil)
		err := match.AcceptMatch(ctx, gateway, buyerID, false)

		require.NoError(t, err)
		assert.True(t, match.Accepted())
		// the stub references are not refreshed
		assert.True(t, match.Asset().Volume().IsZero())
	})

	t.Run("with autoFetch performs a full re-read", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		gateway := mock.NewMockGateway(ctrl)

		match := populatedMatch(t, ctx, gateway, false)

		gateway.EXPECT().AcceptMatch(ctx, buyerID, uint64(1)).Return(nil)
		gateway.EXPECT().Matches(ctx, uint64(1)).Return(marketplacev1.MatchRecord{
			Asset:      assetID,
			Buyer:      buyerID,
			Volume:     "50",
			Price:      "5",
			IsAccepted: true,
		}, nil)
		gateway.EXPECT().Offers(ctx, assetID).Return(marketplacev1.OfferRecord{
			Volume:          "100",
			Price:           "5",
			RemainingVolume: "50",
			Matches:         "1",
		}, nil)
		gateway.EXPECT().Demands(ctx, buyerID).Return(marketplacev1.DemandRecord{
			Volume:    "50",
			Price:     "5",
			IsMatched: true,
		}, nil)

		err := match.AcceptMatch(ctx, gateway, buyerID, true)

		require.NoError(t, err)
		assert.True(t, match.Accepted())
		assert.Equal(t, "50", match.Asset().RemainingVolume().String())
		assert.True(t, match.Demand().Matched())
	})

	t.Run("re-read failure surfaces as a reconciliation error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		gateway := mock.NewMockGateway(ctrl)

		match := populatedMatch(t, ctx, gateway, false)

		gateway.EXPECT().AcceptMatch(ctx, buyerID, uint64(1)).Return(nil)
		gateway.EXPECT().Matches(ctx, uint64(1)).Return(marketplacev1.MatchRecord{}, networkErr("matches"))

		err := match.AcceptMatch(ctx, gateway, buyerID, true)

		require.Error(t, err)
		var reconErr *marketplacev1.ReconciliationError
		require.True(t, stderrors.As(err, &reconErr))
		assert.Equal(t, "acceptMatch", reconErr.Op)
		// the acceptance is final; the local flag already flipped
		assert.True(t, match.Accepted())
	})

	t.Run("transaction failure leaves the match unchanged", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		gateway := mock.NewMockGateway(ctrl)

		match := populatedMatch(t, ctx, gateway, false)

		gateway.EXPECT().AcceptMatch(ctx, buyerID, uint64(1)).
			Return(pkgerrors.NewErrorDetails("signer is not the buyer", string(pkgerrors.LedgerRejectedError), "acceptMatch"))

		err := match.AcceptMatch(ctx, gateway, buyerID, true)

		require.Error(t, err)
		var reconErr *marketplacev1.ReconciliationError
		assert.False(t, stderrors.As(err, &reconErr))
		assert.False(t, match.Accepted())
		assert.True(t, match.Exists())
	})
}

func TestMatch_RejectMatch_ReconcilesBeforeReset(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	gateway := mock.NewMockGateway(ctrl)

	match := populatedMatch(t, ctx, gateway, false)
	attachedAsset := match.Asset()
	attachedDemand := match.Demand()

	var calls []string

	gateway.EXPECT().RejectMatch(ctx, buyerID, uint64(1)).
		DoAndReturn(func(context.Context, string, uint64) error {
			calls = append(calls, "rejectMatch")
			return nil
		})
	gateway.EXPECT().Offers(ctx, assetID).
		DoAndReturn(func(context.Context, string) (marketplacev1.OfferRecord, error) {
			calls = append(calls, "offers")
			// the match must still be populated while its entities reconcile
			assert.True(t, match.Exists())
			return marketplacev1.OfferRecord{Volume: "100", Price: "5", RemainingVolume: "100", Matches: "0"}, nil
		})
	gateway.EXPECT().Demands(ctx, buyerID).
		DoAndReturn(func(context.Context, string) (marketplacev1.DemandRecord, error) {
			calls = append(calls, "demands")
			assert.True(t, match.Exists())
			return marketplacev1.DemandRecord{Volume: "50", Price: "5", IsMatched: false}, nil
		})

	err := match.RejectMatch(ctx, gateway, buyerID, true)

	require.NoError(t, err)
	assert.Equal(t, []string{"rejectMatch", "offers", "demands"}, calls)

	// the match reset only after the attached entities were refreshed in place
	assert.False(t, match.Exists())
	assert.Nil(t, match.Asset())
	assert.Equal(t, "100", attachedAsset.RemainingVolume().String())
	assert.False(t, attachedDemand.Matched())
	assert.Equal(t, "50", attachedDemand.Volume().String())
}

func TestMatch_RejectMatch_NoAutoFetchSkipsReconciliation(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	gateway := mock.NewMockGateway(ctrl)

	match := populatedMatch(t, ctx, gateway, false)

	// no Offers/Demands expectations: a read would fail the test
	gateway.EXPECT().RejectMatch(ctx, buyerID, uint64(1)).Return(nil)

	err := match.RejectMatch(ctx, gateway, buyerID, false)

	require.NoError(t, err)
	assert.False(t, match.Exists())
	assert.Nil(t, match.Asset())
	assert.Nil(t, match.Demand())
}

func TestMatch_RejectMatch_ReconciliationFailureKeepsMatchPopulated(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	gateway := mock.NewMockGateway(ctrl)

	match := populatedMatch(t, ctx, gateway, false)

	gateway.EXPECT().RejectMatch(ctx, buyerID, uint64(1)).Return(nil)
	gateway.EXPECT().Offers(ctx, assetID).Return(marketplacev1.OfferRecord{}, networkErr("offers"))

	err := match.RejectMatch(ctx, gateway, buyerID, true)

	require.Error(t, err)
	var reconErr *marketplacev1.ReconciliationError
	require.True(t, stderrors.As(err, &reconErr))
	assert.Equal(t, "rejectMatch", reconErr.Op)

	// the write is final but the local reset did not happen
	assert.True(t, match.Exists())
	assert.NotNil(t, match.Asset())
	assert.NotNil(t, match.Demand())
}

func TestMatch_RejectMatch_TransactionFailureLeavesMatchUnchanged(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	gateway := mock.NewMockGateway(ctrl)

	match := populatedMatch(t, ctx, gateway, true)

	gateway.EXPECT().RejectMatch(ctx, buyerID, uint64(1)).
		Return(pkgerrors.NewErrorDetails("match does not exist", string(pkgerrors.LedgerRejectedError), "rejectMatch"))

	err := match.RejectMatch(ctx, gateway, buyerID, true)

	require.Error(t, err)
	assert.True(t, match.Exists())
	assert.True(t, match.Accepted())
}

func TestMatch_DeleteMatch(t *testing.T) {
	ctx := context.Background()

	t.Run("reconciles attached entities before reset", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		gateway := mock.NewMockGateway(ctrl)

		match := populatedMatch(t, ctx, gateway, true)
		attachedAsset := match.Asset()

		gomock.InOrder(
			gateway.EXPECT().DeleteMatch(ctx, ownerID, uint64(1)).Return(nil),
			gateway.EXPECT().Offers(ctx, assetID).Return(marketplacev1.OfferRecord{
				Volume: "100", Price: "5", RemainingVolume: "100", Matches: "0",
			}, nil),
			gateway.EXPECT().Demands(ctx, buyerID).Return(marketplacev1.DemandRecord{
				Volume: "50", Price: "5", IsMatched: false,
			}, nil),
		)

		err := match.DeleteMatch(ctx, gateway, ownerID, true)

		require.NoError(t, err)
		assert.False(t, match.Exists())
		assert.Equal(t, "100", attachedAsset.RemainingVolume().String())
	})

	t.Run("without autoFetch resets immediately", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		gateway := mock.NewMockGateway(ctrl)

		match := populatedMatch(t, ctx, gateway, true)

		gateway.EXPECT().DeleteMatch(ctx, buyerID, uint64(1)).Return(nil)

		err := match.DeleteMatch(ctx, gateway, buyerID, false)

		require.NoError(t, err)
		assert.False(t, match.Exists())
	})

	t.Run("reconciliation failure keeps the match populated", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		gateway := mock.NewMockGateway(ctrl)

		match := populatedMatch(t, ctx, gateway, true)

		gateway.EXPECT().DeleteMatch(ctx, buyerID, uint64(1)).Return(nil)
		gateway.EXPECT().Offers(ctx, assetID).Return(marketplacev1.OfferRecord{
			Volume: "100", Price: "5", RemainingVolume: "100", Matches: "0",
		}, nil)
		gateway.EXPECT().Demands(ctx, buyerID).Return(marketplacev1.DemandRecord{}, networkErr("demands"))

		err := match.DeleteMatch(ctx, gateway, buyerID, true)

		require.Error(t, err)
		var reconErr *marketplacev1.ReconciliationError
		require.True(t, stderrors.As(err, &reconErr))
		assert.Equal(t, "deleteMatch", reconErr.Op)
		assert.True(t, match.Exists())
	})
}

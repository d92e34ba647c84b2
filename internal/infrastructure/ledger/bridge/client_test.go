package bridge

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	pkgerrors "github.com/giongion19/energyweb-marketplace/pkg/errors"
	logger_mock "github.com/giongion19/energyweb-marketplace/pkg/logger/mock"
)

const (
	identityAddr    = "0x0000000000000000000000000000000000001111"
	marketplaceAddr = "0x0000000000000000000000000000000000002222"
	signerAddr      = "0x00000000000000000000000000000000000000ee"
)

type recordedRequest struct {
	Method string `json:"method"`
	Params []struct {
		To   string            `json:"to"`
		From string            `json:"from"`
		Args map[string]string `json:"args"`
	} `json:"params"`
}

func newBridge(t *testing.T, handler func(req recordedRequest) (any, *rpcError)) (*Client, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req recordedRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		result, rpcErr := handler(req)
		resp := map[string]any{"jsonrpc": "2.0", "id": 1}
		if rpcErr != nil {
			resp["error"] = rpcErr
		} else {
			resp["result"] = result
		}
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	t.Cleanup(server.Close)

	ctrl := gomock.NewController(t)
	log := logger_mock.NewMockInterface(ctrl)
	log.EXPECT().WarnContext(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()

	client := NewClient(Config{
		URL:                    server.URL,
		IdentityManagerAddress: identityAddr,
		MarketplaceAddress:     marketplaceAddr,
	}, log)
	return client, server
}

func TestClient_Offers(t *testing.T) {
	ctx := context.Background()
	client, _ := newBridge(t, func(req recordedRequest) (any, *rpcError) {
		assert.Equal(t, "marketplace_offers", req.Method)
		require.Len(t, req.Params, 1)
		assert.Equal(t, marketplaceAddr, req.Params[0].To)
		assert.Empty(t, req.Params[0].From)
		assert.Equal(t, "0xa1", req.Params[0].Args["asset"])

		return map[string]string{
			"volume":          "340282366920938463463374607431768211456",
			"price":           "25",
			"remainingVolume": "400",
			"matches":         "3",
		}, nil
	})

	record, err := client.Offers(ctx, "0xa1")

	require.NoError(t, err)
	assert.Equal(t, "340282366920938463463374607431768211456", record.Volume)
	assert.Equal(t, "25", record.Price)
	assert.Equal(t, "400", record.RemainingVolume)
	assert.Equal(t, "3", record.Matches)
}

func TestClient_IdentityOwnerUsesRegistryAddress(t *testing.T) {
	ctx := context.Background()
	client, _ := newBridge(t, func(req recordedRequest) (any, *rpcError) {
		assert.Equal(t, "identity_identityOwner", req.Method)
		assert.Equal(t, identityAddr, req.Params[0].To)
		return signerAddr, nil
	})

	owner, err := client.IdentityOwner(ctx, "0xa1")

	require.NoError(t, err)
	assert.Equal(t, signerAddr, owner)
}

func TestClient_CreateOfferSendsSignerAndAmounts(t *testing.T) {
	ctx := context.Background()
	client, _ := newBridge(t, func(req recordedRequest) (any, *rpcError) {
		assert.Equal(t, "marketplace_createOffer", req.Method)
		assert.Equal(t, signerAddr, req.Params[0].From)
		assert.Equal(t, "100", req.Params[0].Args["volume"])
		assert.Equal(t, "10", req.Params[0].Args["price"])
		return nil, nil
	})

	err := client.CreateOffer(ctx, signerAddr, "0xa1", decimal.NewFromInt(100), decimal.NewFromInt(10))
	require.NoError(t, err)
}

func TestClient_ProposeMatchReturnsAssignedID(t *testing.T) {
	ctx := context.Background()
	client, _ := newBridge(t, func(req recordedRequest) (any, *rpcError) {
		assert.Equal(t, "marketplace_proposeMatch", req.Method)
		assert.Equal(t, "0xb1", req.Params[0].Args["buyer"])
		return map[string]string{"matchId": "42"}, nil
	})

	matchID, err := client.ProposeMatch(ctx, signerAddr, "0xa1", "0xb1", decimal.NewFromInt(40), decimal.NewFromInt(10))

	require.NoError(t, err)
	assert.Equal(t, uint64(42), matchID)
}

func TestClient_RevertMapsToLedgerRejection(t *testing.T) {
	ctx := context.Background()
	client, _ := newBridge(t, func(req recordedRequest) (any, *rpcError) {
		return nil, &rpcError{Code: execStatusReverted, Message: "execution reverted: not the buyer"}
	})

	err := client.AcceptMatch(ctx, signerAddr, 7)

	require.Error(t, err)
	assert.True(t, pkgerrors.ErrorCodeEquals(err, string(pkgerrors.LedgerRejectedError)))
}

func TestClient_BridgeErrorMapsToNetworkError(t *testing.T) {
	ctx := context.Background()
	client, _ := newBridge(t, func(req recordedRequest) (any, *rpcError) {
		return nil, &rpcError{Code: -32603, Message: "node timed out"}
	})

	err := client.CancelOffer(ctx, signerAddr, "0xa1")

	require.Error(t, err)
	assert.True(t, pkgerrors.ErrorCodeEquals(err, string(pkgerrors.LedgerNetworkError)))
}

func TestClient_TransportFailureMapsToNetworkError(t *testing.T) {
	ctx := context.Background()
	client, server := newBridge(t, func(req recordedRequest) (any, *rpcError) {
		return nil, nil
	})
	server.Close()

	_, err := client.Offers(ctx, "0xa1")

	require.Error(t, err)
	assert.True(t, pkgerrors.ErrorCodeEquals(err, string(pkgerrors.LedgerNetworkError)))
}

func TestClient_MalformedResultMapsToDecodeError(t *testing.T) {
	ctx := context.Background()
	client, _ := newBridge(t, func(req recordedRequest) (any, *rpcError) {
		return map[string]string{"matchId": "not-a-number"}, nil
	})

	_, err := client.ProposeMatch(ctx, signerAddr, "0xa1", "0xb1", decimal.NewFromInt(40), decimal.NewFromInt(10))

	require.Error(t, err)
	assert.True(t, pkgerrors.ErrorCodeEquals(err, string(pkgerrors.LedgerDecodeError)))
}

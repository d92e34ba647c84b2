// Package bridge implements the ledger gateway over a JSON-RPC signing
// bridge. The bridge owns ABI encoding, key custody and transaction
// broadcasting; this client names contract methods, passes the signer and the
// deployed contract addresses, and decodes string-encoded results.
package bridge

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"

	marketplacev1 "github.com/giongion19/energyweb-marketplace/internal/domain/marketplace/v1"
	"github.com/giongion19/energyweb-marketplace/pkg/errors"
	"github.com/giongion19/energyweb-marketplace/pkg/logger"
)

// Config holds the bridge endpoint and the contract addresses, resolved once
// at startup and passed in explicitly.
type Config struct {
	URL                    string
	IdentityManagerAddress string
	MarketplaceAddress     string
	RequestTimeout         time.Duration
}

// Client is a marketplace gateway speaking JSON-RPC 2.0 to the bridge.
type Client struct {
	httpClient      *http.Client
	url             string
	identityManager string
	marketplace     string
	logger          logger.Interface
	requestID       atomic.Uint64
}

var _ marketplacev1.Gateway = (*Client)(nil)

// NewClient creates a gateway client for the given bridge.
func NewClient(cfg Config, log logger.Interface) *Client {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		httpClient:      &http.Client{Timeout: timeout},
		url:             cfg.URL,
		identityManager: cfg.IdentityManagerAddress,
		marketplace:     cfg.MarketplaceAddress,
		logger:          log,
	}
}

type rpcRequest struct {
	JSONRPC string       `json:"jsonrpc"`
	ID      uint64       `json:"id"`
	Method  string       `json:"method"`
	Params  []callParams `json:"params"`
}

// callParams carries one contract invocation. From is empty on read-only
// calls; the bridge signs and broadcasts when it is set.
type callParams struct {
	To   string            `json:"to"`
	From string            `json:"from,omitempty"`
	Args map[string]string `json:"args,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *rpcError       `json:"error"`
}

// execStatusReverted is the bridge's error code for a transaction reverted by
// contract logic; everything else from the bridge is treated as transport.
const execStatusReverted = 3

func (c *Client) call(ctx context.Context, method string, params callParams, result any) error {
	payload, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		ID:      c.requestID.Add(1),
		Method:  method,
		Params:  []callParams{params},
	})
	if err != nil {
		return errors.TracerFromError(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return errors.TracerFromError(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.NewErrorDetails(err.Error(), string(errors.LedgerNetworkError), method)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.NewErrorDetails(
			"bridge returned status "+resp.Status,
			string(errors.LedgerNetworkError),
			method,
		)
	}

	var rpcResp rpcResponse
	if err := json.NewDecoder(resp.Body).Decode(&rpcResp); err != nil {
		return errors.NewErrorDetails(err.Error(), string(errors.LedgerDecodeError), method)
	}

	if rpcResp.Error != nil {
		code := errors.LedgerNetworkError
		if rpcResp.Error.Code == execStatusReverted {
			code = errors.LedgerRejectedError
		}
		c.logger.WarnContext(ctx, "bridge call failed",
			logger.Field{Key: "method", Value: method},
			logger.Field{Key: "code", Value: rpcResp.Error.Code},
			logger.Field{Key: "message", Value: rpcResp.Error.Message},
		)
		return errors.NewErrorDetails(rpcResp.Error.Message, string(code), method)
	}

	if result != nil {
		if err := json.Unmarshal(rpcResp.Result, result); err != nil {
			return errors.NewErrorDetails(err.Error(), string(errors.LedgerDecodeError), method)
		}
	}
	return nil
}

// IdentityOwner reads identity-registry ownership for an asset.
func (c *Client) IdentityOwner(ctx context.Context, asset string) (string, error) {
	var owner string
	err := c.call(ctx, "identity_identityOwner", callParams{
		To:   c.identityManager,
		Args: map[string]string{"asset": asset},
	}, &owner)
	if err != nil {
		return "", err
	}
	return owner, nil
}

type offerResult struct {
	Volume          string `json:"volume"`
	Price           string `json:"price"`
	RemainingVolume string `json:"remainingVolume"`
	Matches         string `json:"matches"`
}

// Offers reads the marketplace offer record for an asset.
func (c *Client) Offers(ctx context.Context, asset string) (marketplacev1.OfferRecord, error) {
	var result offerResult
	err := c.call(ctx, "marketplace_offers", callParams{
		To:   c.marketplace,
		Args: map[string]string{"asset": asset},
	}, &result)
	if err != nil {
		return marketplacev1.OfferRecord{}, err
	}
	return marketplacev1.OfferRecord{
		Volume:          result.Volume,
		Price:           result.Price,
		RemainingVolume: result.RemainingVolume,
		Matches:         result.Matches,
	}, nil
}

type demandResult struct {
	Volume    string `json:"volume"`
	Price     string `json:"price"`
	IsMatched bool   `json:"isMatched"`
}

// Demands reads the marketplace demand record for a buyer.
func (c *Client) Demands(ctx context.Context, buyer string) (marketplacev1.DemandRecord, error) {
	var result demandResult
	err := c.call(ctx, "marketplace_demands", callParams{
		To:   c.marketplace,
		Args: map[string]string{"buyer": buyer},
	}, &result)
	if err != nil {
		return marketplacev1.DemandRecord{}, err
	}
	return marketplacev1.DemandRecord{
		Volume:    result.Volume,
		Price:     result.Price,
		IsMatched: result.IsMatched,
	}, nil
}

type matchResult struct {
	Asset      string `json:"asset"`
	Buyer      string `json:"buyer"`
	Volume     string `json:"volume"`
	Price      string `json:"price"`
	IsAccepted bool   `json:"isAccepted"`
}

// Matches reads the marketplace match record for a match id.
func (c *Client) Matches(ctx context.Context, matchID uint64) (marketplacev1.MatchRecord, error) {
	var result matchResult
	err := c.call(ctx, "marketplace_matches", callParams{
		To:   c.marketplace,
		Args: map[string]string{"matchId": formatMatchID(matchID)},
	}, &result)
	if err != nil {
		return marketplacev1.MatchRecord{}, err
	}
	return marketplacev1.MatchRecord{
		Asset:      result.Asset,
		Buyer:      result.Buyer,
		Volume:     result.Volume,
		Price:      result.Price,
		IsAccepted: result.IsAccepted,
	}, nil
}

// CreateOffer submits a createOffer transaction from the signer.
func (c *Client) CreateOffer(ctx context.Context, signer, asset string, volume, price decimal.Decimal) error {
	return c.call(ctx, "marketplace_createOffer", callParams{
		To:   c.marketplace,
		From: signer,
		Args: map[string]string{
			"asset":  asset,
			"volume": volume.String(),
			"price":  price.String(),
		},
	}, nil)
}

// CancelOffer submits a cancelOffer transaction from the signer.
func (c *Client) CancelOffer(ctx context.Context, signer, asset string) error {
	return c.call(ctx, "marketplace_cancelOffer", callParams{
		To:   c.marketplace,
		From: signer,
		Args: map[string]string{"asset": asset},
	}, nil)
}

// CreateDemand submits a createDemand transaction from the signer.
func (c *Client) CreateDemand(ctx context.Context, signer string, volume, price decimal.Decimal) error {
	return c.call(ctx, "marketplace_createDemand", callParams{
		To:   c.marketplace,
		From: signer,
		Args: map[string]string{
			"volume": volume.String(),
			"price":  price.String(),
		},
	}, nil)
}

// CancelDemand submits a cancelDemand transaction from the signer.
func (c *Client) CancelDemand(ctx context.Context, signer string) error {
	return c.call(ctx, "marketplace_cancelDemand", callParams{
		To:   c.marketplace,
		From: signer,
	}, nil)
}

type proposeResult struct {
	MatchID string `json:"matchId"`
}

// ProposeMatch submits a proposeMatch transaction from the signer and
// returns the ledger-assigned match id.
func (c *Client) ProposeMatch(ctx context.Context, signer, asset, buyer string, volume, price decimal.Decimal) (uint64, error) {
	var result proposeResult
	err := c.call(ctx, "marketplace_proposeMatch", callParams{
		To:   c.marketplace,
		From: signer,
		Args: map[string]string{
			"asset":  asset,
			"buyer":  buyer,
			"volume": volume.String(),
			"price":  price.String(),
		},
	}, &result)
	if err != nil {
		return 0, err
	}

	matchID, err := parseMatchID(result.MatchID)
	if err != nil {
		return 0, errors.NewErrorDetails(
			"bridge returned a non-numeric match id: "+result.MatchID,
			string(errors.LedgerDecodeError),
			"proposeMatch",
		)
	}
	return matchID, nil
}

// CancelProposedMatch submits a cancelProposedMatch transaction from the signer.
func (c *Client) CancelProposedMatch(ctx context.Context, signer string, matchID uint64) error {
	return c.call(ctx, "marketplace_cancelProposedMatch", callParams{
		To:   c.marketplace,
		From: signer,
		Args: map[string]string{"matchId": formatMatchID(matchID)},
	}, nil)
}

// AcceptMatch submits an acceptMatch transaction from the signer.
func (c *Client) AcceptMatch(ctx context.Context, signer string, matchID uint64) error {
	return c.call(ctx, "marketplace_acceptMatch", callParams{
		To:   c.marketplace,
		From: signer,
		Args: map[string]string{"matchId": formatMatchID(matchID)},
	}, nil)
}

// RejectMatch submits a rejectMatch transaction from the signer.
func (c *Client) RejectMatch(ctx context.Context, signer string, matchID uint64) error {
	return c.call(ctx, "marketplace_rejectMatch", callParams{
		To:   c.marketplace,
		From: signer,
		Args: map[string]string{"matchId": formatMatchID(matchID)},
	}, nil)
}

// DeleteMatch submits a deleteMatch transaction from the signer.
func (c *Client) DeleteMatch(ctx context.Context, signer string, matchID uint64) error {
	return c.call(ctx, "marketplace_deleteMatch", callParams{
		To:   c.marketplace,
		From: signer,
		Args: map[string]string{"matchId": formatMatchID(matchID)},
	}, nil)
}

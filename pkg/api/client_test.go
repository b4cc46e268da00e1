// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/luxfi/launchpad/pkg/chainid"
	"github.com/luxfi/launchpad/pkg/models"
	"github.com/luxfi/launchpad/pkg/tx"
	luxlog "github.com/luxfi/log"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", 5*time.Second, luxlog.NewNoOpLogger())
}

func TestGetChainsNormalizesIDs(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/chains", r.URL.Path)
		require.Equal(t, "virtual_active", r.URL.Query().Get("status"))
		require.Equal(t, "2", r.URL.Query().Get("page"))
		_, _ = io.WriteString(w, `{"data":[
			{"id":"12","chain_id":null,"chain_name":"Twelve"},
			{"id":"b5f0","chain_id":"virt-chain-10011","chain_name":"Virtual"},
			{"id":"c6a1","chain_id":77,"chain_name":"Numeric"}
		]}`)
	})

	chains, err := c.GetChains(context.Background(), ChainFilterOptions{Status: models.StatusVirtualActive, Page: 2})
	require.NoError(t, err)
	require.Len(t, chains, 3)
	require.Equal(t, chainid.ID(12), chains[0].ChainID)
	require.Equal(t, chainid.ID(10011), chains[1].ChainID)
	require.Equal(t, chainid.ID(77), chains[2].ChainID)
}

func TestErrorCarriesServerMessage(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"string error", `{"error":"insufficient balance"}`, "insufficient balance"},
		{"nested error", `{"error":{"message":"nonce too low"}}`, "nonce too low"},
		{"message", `{"message":"bad request"}`, "bad request"},
		{"plain text", `upstream down`, "upstream down"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				_, _ = io.WriteString(w, tt.body)
			})
			_, err := c.EstimateFee(context.Background(), FeeRequest{TxType: tx.MessageSend})
			var apiErr *Error
			require.ErrorAs(t, err, &apiErr)
			require.Equal(t, http.StatusBadRequest, apiErr.Status)
			require.Equal(t, tt.want, apiErr.Error())
		})
	}
}

func TestEstimateFeeAcceptsStringOrNumber(t *testing.T) {
	for _, body := range []string{`{"data":{"estimated_fee":"10000"}}`, `{"data":{"estimated_fee":10000}}`} {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPost, r.Method)
			var req FeeRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			require.Equal(t, tx.MessageStake, req.TxType)
			require.Equal(t, chainid.ID(3), req.ChainID)
			_, _ = io.WriteString(w, body)
		})
		fee, err := c.EstimateFee(context.Background(), FeeRequest{TxType: tx.MessageStake, ChainID: 3, Amount: 1})
		require.NoError(t, err)
		require.Equal(t, "10000", fee)
	}
}

func TestGetChainHeight(t *testing.T) {
	for body, want := range map[string]uint64{
		`{"data":{"height":120}}`:    120,
		`{"data":{"height":"121"}}`:  121,
		`{"data":{"height":"0x7a"}}`: 122,
	} {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/api/v1/chains/5/height", r.URL.Path)
			_, _ = io.WriteString(w, body)
		})
		h, err := c.GetChainHeight(context.Background(), 5)
		require.NoError(t, err)
		require.Equal(t, want, h)
	}
}

func TestSendRawTransaction(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "send", body["type"])
		require.Equal(t, " ", body["memo"])
		require.Contains(t, body, "signature")
		_, _ = io.WriteString(w, `{"data":{"transaction_hash":"0xabc"}}`)
	})
	fee := uint64(1)
	unsigned, err := tx.Build(tx.Draft{Msg: tx.NewSendMessage("a", "b", 1), Fee: &fee, Height: 1, ChainID: 1})
	require.NoError(t, err)
	signed := &tx.SignedTransaction{Transaction: *unsigned}
	signed.Signature = &tx.Signature{PublicKey: "00", Signature: "00"}

	res, err := c.SendRawTransaction(context.Background(), signed)
	require.NoError(t, err)
	require.Equal(t, "0xabc", res.TransactionHash)
}

func TestGetVolatileAndNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/v1/chains/9/volatile" {
			_, _ = io.WriteString(w, `{"data":{"virtual_pool":{"cnpy_reserve":500}}}`)
			return
		}
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"error":"chain not found"}`)
	})
	v, err := c.GetVolatile(context.Background(), 9)
	require.NoError(t, err)
	require.Equal(t, float64(500), v.VirtualPool.CNPYReserve)

	_, err = c.GetChain(context.Background(), 10)
	require.True(t, IsNotFound(err))
}

func TestStakingEndpoints(t *testing.T) {
	var claimed, cancelled string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/wallet/staking/positions":
			require.Equal(t, "addr", r.URL.Query().Get("address"))
			_, _ = io.WriteString(w, `{"data":[{"id":"p1","chain_id":1,"amount":5000000,"committees":[1,2],"status":"staked"}]}`)
		case "/api/v1/wallet/staking/unstaking/u1/claim":
			claimed = "u1"
			w.WriteHeader(http.StatusNoContent)
		case "/api/v1/wallet/staking/unstaking/u2/cancel":
			cancelled = "u2"
			_, _ = io.WriteString(w, `{"data":{}}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	ctx := context.Background()
	positions, err := c.GetStakingPositions(ctx, "addr")
	require.NoError(t, err)
	require.Len(t, positions, 1)
	require.Equal(t, []chainid.ID{1, 2}, positions[0].Committees)

	require.NoError(t, c.ClaimUnstaked(ctx, "u1"))
	require.NoError(t, c.CancelUnstake(ctx, "u2"))
	require.Equal(t, "u1", claimed)
	require.Equal(t, "u2", cancelled)
}

package verification

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/QubeSwap/sgn-v2-contracts/internal/domain"
	"github.com/QubeSwap/sgn-v2-contracts/internal/domain/config"
	"github.com/QubeSwap/sgn-v2-contracts/internal/domain/models"
	"github.com/QubeSwap/sgn-v2-contracts/internal/usecase"
)

var testAddress = common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3")

// fakeExplorer emulates the Etherscan contract API
type fakeExplorer struct {
	mu sync.Mutex

	verified      bool
	submitStatus  string
	submitResult  string
	statuses      []string
	submittedForm map[string]string
	checks        int
	requests      []explorerRequest
}

// explorerRequest is where one call landed and which chain it named
type explorerRequest struct {
	method  string
	path    string
	chainID string
}

func (f *fakeExplorer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.requests = append(f.requests, explorerRequest{
		method:  r.Method,
		path:    r.URL.Path,
		chainID: r.URL.Query().Get("chainid"),
	})

	_ = r.ParseForm()
	reply := func(status string, result any) {
		_ = json.NewEncoder(w).Encode(map[string]any{"status": status, "message": "OK", "result": result})
	}

	switch r.Form.Get("action") {
	case "getsourcecode":
		source := ""
		if f.verified {
			source = "pragma solidity 0.8.17;"
		}
		reply("1", []map[string]string{{"SourceCode": source, "ContractName": "QubeBridge"}})
	case "verifysourcecode":
		f.submittedForm = map[string]string{}
		for k := range r.PostForm {
			f.submittedForm[k] = r.PostForm.Get(k)
		}
		reply(f.submitStatus, f.submitResult)
	case "checkverifystatus":
		status := f.statuses[min(f.checks, len(f.statuses)-1)]
		f.checks++
		reply("1", status)
	default:
		http.Error(w, "unknown action", http.StatusBadRequest)
	}
}

func newTestVerifier(t *testing.T, explorer *fakeExplorer, apiKey string) *Verifier {
	return newTestVerifierAt(t, explorer, apiKey, "/api")
}

func newTestVerifierAt(t *testing.T, explorer *fakeExplorer, apiKey, apiPath string) *Verifier {
	srv := httptest.NewServer(explorer)
	t.Cleanup(srv.Close)

	cfg := &config.RuntimeConfig{
		Explorer: config.ExplorerConfig{
			APIKeys: map[string]string{"bsc": apiKey},
			Builtin: []config.CustomChain{{
				Network:    "bsc",
				ChainID:    56,
				APIURL:     srv.URL + apiPath,
				BrowserURL: "https://bscscan.com",
			}},
		},
		Solidity: config.SolidityConfig{Version: "0.8.17"},
	}
	v := NewVerifier(cfg, slog.New(slog.DiscardHandler))
	v.httpClient = srv.Client()
	v.requestRate = rate.Inf
	v.pollInterval = time.Millisecond
	return v
}

func verifyRequest() usecase.VerifyRequest {
	return usecase.VerifyRequest{
		ChainID: 56,
		Address: testAddress,
		Artifact: &models.Artifact{
			ContractName: "QubeBridge",
			SourceName:   "contracts/QubeBridge.sol",
		},
		BuildInfo: &models.BuildInfo{
			SolcVersion:     "0.8.17",
			SolcLongVersion: "0.8.17+commit.8df45f5f",
			Input:           json.RawMessage(`{"language":"Solidity"}`),
		},
		ConstructorArgs: common.FromHex("0x0000000000000000000000000000000000000000000000000000000000000001"),
	}
}

func TestVerify(t *testing.T) {
	ctx := context.Background()

	t.Run("submits and polls until verified", func(t *testing.T) {
		explorer := &fakeExplorer{
			submitStatus: "1",
			submitResult: "guid-123",
			statuses:     []string{"Pending in queue", "Pending in queue", "Pass - Verified"},
		}
		v := newTestVerifier(t, explorer, "KEY")

		info, err := v.Verify(ctx, verifyRequest())
		require.NoError(t, err)
		assert.Equal(t, models.VerificationStatusVerified, info.Status)
		assert.Equal(t, "guid-123", info.GUID)
		assert.Equal(t, "bsc", info.Explorer)
		assert.Equal(t, "https://bscscan.com/address/"+testAddress.Hex()+"#code", info.ExplorerURL)
		assert.NotNil(t, info.VerifiedAt)
		assert.Equal(t, 3, explorer.checks)

		form := explorer.submittedForm
		assert.Equal(t, "KEY", form["apikey"])
		assert.Equal(t, testAddress.Hex(), form["contractaddress"])
		assert.Equal(t, "solidity-standard-json-input", form["codeformat"])
		assert.Equal(t, "contracts/QubeBridge.sol:QubeBridge", form["contractname"])
		assert.Equal(t, "v0.8.17+commit.8df45f5f", form["compilerversion"])
		assert.Equal(t, `{"language":"Solidity"}`, form["sourceCode"])
		assert.Equal(t, "0000000000000000000000000000000000000000000000000000000000000001", form["constructorArguements"])
	})

	t.Run("already verified skips submission", func(t *testing.T) {
		explorer := &fakeExplorer{verified: true}
		v := newTestVerifier(t, explorer, "KEY")

		info, err := v.Verify(ctx, verifyRequest())
		require.NoError(t, err)
		assert.Equal(t, models.VerificationStatusVerified, info.Status)
		assert.Nil(t, explorer.submittedForm)
	})

	t.Run("submission reported as already verified", func(t *testing.T) {
		explorer := &fakeExplorer{submitStatus: "0", submitResult: "Contract source code already verified"}
		v := newTestVerifier(t, explorer, "KEY")

		info, err := v.Verify(ctx, verifyRequest())
		require.NoError(t, err)
		assert.Equal(t, models.VerificationStatusVerified, info.Status)
		assert.Equal(t, 0, explorer.checks)
	})

	t.Run("explorer rejects the source", func(t *testing.T) {
		explorer := &fakeExplorer{
			submitStatus: "1",
			submitResult: "guid-456",
			statuses:     []string{"Pending in queue", "Fail - Unable to verify"},
		}
		v := newTestVerifier(t, explorer, "KEY")

		info, err := v.Verify(ctx, verifyRequest())
		require.ErrorIs(t, err, domain.ErrVerificationFailed)
		assert.Equal(t, models.VerificationStatusFailed, info.Status)
		assert.Equal(t, "Unable to verify", info.Reason)

		var verr *domain.VerificationErr
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "bsc", verr.Explorer)
	})

	t.Run("submission rejected", func(t *testing.T) {
		explorer := &fakeExplorer{submitStatus: "0", submitResult: "Invalid API Key"}
		v := newTestVerifier(t, explorer, "KEY")

		info, err := v.Verify(ctx, verifyRequest())
		require.ErrorIs(t, err, domain.ErrVerificationFailed)
		assert.Contains(t, info.Reason, "Invalid API Key")
	})

	t.Run("context deadline while pending", func(t *testing.T) {
		explorer := &fakeExplorer{submitStatus: "1", submitResult: "guid", statuses: []string{"Pending in queue"}}
		v := newTestVerifier(t, explorer, "KEY")
		v.pollInterval = 20 * time.Millisecond

		ctx, cancel := context.WithTimeout(ctx, 100*time.Millisecond)
		defer cancel()

		info, err := v.Verify(ctx, verifyRequest())
		require.ErrorIs(t, err, domain.ErrVerificationFailed)
		assert.Equal(t, models.VerificationStatusFailed, info.Status)
	})

	t.Run("missing api key", func(t *testing.T) {
		v := newTestVerifier(t, &fakeExplorer{}, "")

		info, err := v.Verify(ctx, verifyRequest())
		require.ErrorIs(t, err, domain.ErrVerificationFailed)
		assert.Contains(t, info.Reason, "no API key")
	})

	t.Run("unknown chain", func(t *testing.T) {
		v := newTestVerifier(t, &fakeExplorer{}, "KEY")
		req := verifyRequest()
		req.ChainID = 9030

		info, err := v.Verify(ctx, req)
		require.ErrorIs(t, err, domain.ErrNoExplorer)
		assert.Equal(t, models.VerificationStatusSkipped, info.Status)
	})

	t.Run("missing build info", func(t *testing.T) {
		v := newTestVerifier(t, &fakeExplorer{}, "KEY")
		req := verifyRequest()
		req.BuildInfo = nil

		_, err := v.Verify(ctx, req)
		require.ErrorIs(t, err, domain.ErrVerificationFailed)
	})
}

func TestVerifyUsesMultichainEndpoint(t *testing.T) {
	explorer := &fakeExplorer{
		submitStatus: "1",
		submitResult: "guid-56",
		statuses:     []string{"Pass - Verified"},
	}
	v := newTestVerifierAt(t, explorer, "KEY", "/v2/api")

	_, err := v.Verify(context.Background(), verifyRequest())
	require.NoError(t, err)

	require.Len(t, explorer.requests, 3)
	for _, req := range explorer.requests {
		assert.Equal(t, "/v2/api", req.path, req.method)
		assert.Equal(t, "56", req.chainID, req.method)
	}
	assert.Equal(t, http.MethodPost, explorer.requests[1].method)
}

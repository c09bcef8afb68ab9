package verification

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/time/rate"

	"github.com/QubeSwap/sgn-v2-contracts/internal/domain"
	"github.com/QubeSwap/sgn-v2-contracts/internal/domain/config"
	"github.com/QubeSwap/sgn-v2-contracts/internal/domain/models"
	"github.com/QubeSwap/sgn-v2-contracts/internal/usecase"
)

const (
	// Etherscan's free tier allows 5 calls per second
	defaultRequestRate  = 4
	defaultPollInterval = 5 * time.Second
	defaultHTTPTimeout  = 30 * time.Second
)

// Verifier submits standard-json-input verification to the
// Etherscan-compatible explorer of the deployment's chain.
type Verifier struct {
	explorers config.ExplorerConfig
	solidity  config.SolidityConfig
	log       *slog.Logger

	httpClient   *http.Client
	requestRate  rate.Limit
	pollInterval time.Duration
}

// NewVerifier creates a verifier from the runtime explorer settings
func NewVerifier(cfg *config.RuntimeConfig, log *slog.Logger) *Verifier {
	return &Verifier{
		explorers:    cfg.Explorer,
		solidity:     cfg.Solidity,
		log:          log,
		httpClient:   &http.Client{Timeout: defaultHTTPTimeout},
		requestRate:  defaultRequestRate,
		pollInterval: defaultPollInterval,
	}
}

// Verify verifies the contract at req.Address. The returned info is never
// nil; on error it carries the FAILED status and the explorer's reason.
func (v *Verifier) Verify(ctx context.Context, req usecase.VerifyRequest) (*models.VerificationInfo, error) {
	address := req.Address.Hex()
	info := &models.VerificationInfo{Status: models.VerificationStatusUnverified}

	explorer, ok := v.explorers.ForChain(req.ChainID)
	if !ok {
		info.Status = models.VerificationStatusSkipped
		info.Reason = fmt.Sprintf("no explorer for chain %d", req.ChainID)
		return info, fmt.Errorf("%w: chain %d", domain.ErrNoExplorer, req.ChainID)
	}
	info.Explorer = explorer.Network
	info.ExplorerURL = explorerURL(explorer, req.Address)

	fail := func(reason string) (*models.VerificationInfo, error) {
		info.Status = models.VerificationStatusFailed
		info.Reason = reason
		return info, &domain.VerificationErr{Address: address, Explorer: explorer.Network, Reason: reason}
	}

	if explorer.APIKey == "" {
		return fail(fmt.Sprintf("no API key configured for %s", explorer.Network))
	}

	client := &etherscanClient{
		apiURL:  explorer.APIURL,
		apiKey:  explorer.APIKey,
		chainID: explorer.ChainID,
		http:    v.httpClient,
		limiter: rate.NewLimiter(v.requestRate, 1),
	}

	verified, err := client.isVerified(ctx, address)
	if err != nil {
		v.log.Debug("source code lookup failed", slog.String("address", address), slog.Any("error", err))
	}
	if verified {
		v.log.Info("contract already verified", slog.String("address", address), slog.String("explorer", explorer.Network))
		return v.verified(info), nil
	}

	if req.Artifact == nil || req.BuildInfo == nil {
		return fail("no build info for the contract, recompile with hardhat")
	}

	if v.solidity.Version != "" && req.BuildInfo.SolcVersion != "" && req.BuildInfo.SolcVersion != v.solidity.Version {
		v.log.Warn("artifact compiled with a different solc than configured",
			slog.String("artifact", req.BuildInfo.SolcVersion),
			slog.String("configured", v.solidity.Version),
		)
	}

	guid, already, err := client.submit(ctx, submission{
		Address:         address,
		SourceCode:      string(req.BuildInfo.Input),
		ContractName:    req.Artifact.FullyQualifiedName(),
		CompilerVersion: req.BuildInfo.CompilerVersion(),
		ConstructorArgs: common.Bytes2Hex(req.ConstructorArgs),
	})
	if err != nil {
		return fail(err.Error())
	}
	if already {
		return v.verified(info), nil
	}
	info.GUID = guid

	v.log.Debug("verification submitted", slog.String("guid", guid), slog.String("explorer", explorer.Network))

	return v.poll(ctx, client, info, fail)
}

// poll checks the submission status until the explorer decides.
// Pending answers are part of the protocol, not failures.
func (v *Verifier) poll(ctx context.Context, client *etherscanClient, info *models.VerificationInfo,
	fail func(string) (*models.VerificationInfo, error)) (*models.VerificationInfo, error) {
	pace := rate.NewLimiter(rate.Every(v.pollInterval), 1)
	// the explorer never has an answer right after submission
	pace.Reserve()

	for {
		if err := pace.Wait(ctx); err != nil {
			return fail(fmt.Sprintf("gave up waiting for the explorer: %v", err))
		}

		status, err := client.checkStatus(ctx, info.GUID)
		if err != nil {
			return fail(err.Error())
		}

		switch {
		case status == statusPass, status == statusAlreadyVerified:
			return v.verified(info), nil
		case isPending(status):
			v.log.Debug("verification pending", slog.String("guid", info.GUID), slog.String("status", status))
		case strings.HasPrefix(status, statusFailPrefix):
			return fail(strings.TrimPrefix(status, statusFailPrefix))
		default:
			return fail(status)
		}
	}
}

func (v *Verifier) verified(info *models.VerificationInfo) *models.VerificationInfo {
	now := time.Now()
	info.Status = models.VerificationStatusVerified
	info.VerifiedAt = &now
	info.Reason = ""
	return info
}

func isPending(status string) bool {
	return status == statusPending ||
		strings.Contains(status, "Pending") ||
		strings.Contains(status, "Unable to locate ContractCode")
}

func explorerURL(explorer config.Explorer, address common.Address) string {
	if explorer.BrowserURL == "" {
		return ""
	}
	return strings.TrimSuffix(explorer.BrowserURL, "/") + "/address/" + address.Hex() + "#code"
}

var _ usecase.ContractVerifier = (*Verifier)(nil)

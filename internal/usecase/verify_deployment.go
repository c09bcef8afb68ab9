package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/QubeSwap/sgn-v2-contracts/internal/domain"
	"github.com/QubeSwap/sgn-v2-contracts/internal/domain/models"
)

// VerifyDeploymentParams identifies the contract instance to verify
type VerifyDeploymentParams struct {
	Network string
	Address string
	// ContractName overrides the name stored in the deployment record
	ContractName string
	// ConstructorArgs is the ABI-encoded constructor input, 0x-prefixed hex
	ConstructorArgs string
}

// VerifyDeploymentResult describes the verification outcome
type VerifyDeploymentResult struct {
	Network      string                  `json:"network"`
	ChainID      uint64                  `json:"chainId"`
	Address      string                  `json:"address"`
	ContractName string                  `json:"contractName"`
	Verification models.VerificationInfo `json:"verification"`
	// Warning is set when the explorer rejected the source
	Warning error `json:"-"`
	// RecordUpdated is true when a stored deployment record was updated
	RecordUpdated bool `json:"recordUpdated"`
}

// MarshalJSON adds the warning text to the encoded result
func (r VerifyDeploymentResult) MarshalJSON() ([]byte, error) {
	type plain VerifyDeploymentResult
	out := struct {
		plain
		Warning string `json:"warning,omitempty"`
	}{plain: plain(r)}
	if r.Warning != nil {
		out.Warning = r.Warning.Error()
	}
	return json.Marshal(out)
}

// VerifyDeployment submits an already deployed contract for verification
type VerifyDeployment struct {
	resolver  NetworkResolver
	connector ChainConnector
	artifacts ArtifactRepository
	repo      DeploymentRepository
	verifier  ContractVerifier
	sink      ProgressSink
	log       *slog.Logger
}

// NewVerifyDeployment creates a new VerifyDeployment use case
func NewVerifyDeployment(
	resolver NetworkResolver,
	connector ChainConnector,
	artifacts ArtifactRepository,
	repo DeploymentRepository,
	verifier ContractVerifier,
	sink ProgressSink,
	log *slog.Logger,
) *VerifyDeployment {
	return &VerifyDeployment{
		resolver:  resolver,
		connector: connector,
		artifacts: artifacts,
		repo:      repo,
		verifier:  verifier,
		sink:      sink,
		log:       log,
	}
}

// Run verifies the contract at params.Address. Only configuration problems
// are returned as errors; an explorer rejection is reported in the result.
func (uc *VerifyDeployment) Run(ctx context.Context, params VerifyDeploymentParams) (*VerifyDeploymentResult, error) {
	if !common.IsHexAddress(params.Address) {
		return nil, fmt.Errorf("invalid address %q", params.Address)
	}
	address := common.HexToAddress(params.Address)

	var constructorArgs []byte
	if params.ConstructorArgs != "" {
		args, err := hexutil.Decode("0x" + strings.TrimPrefix(params.ConstructorArgs, "0x"))
		if err != nil {
			return nil, fmt.Errorf("invalid constructor args: %w", err)
		}
		constructorArgs = args
	}

	network, err := uc.resolver.ResolveNetwork(ctx, params.Network)
	if err != nil {
		return nil, err
	}

	record, err := uc.repo.GetDeploymentByAddress(ctx, network.Name, address.Hex())
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	contractName := params.ContractName
	if contractName == "" && record != nil {
		contractName = record.ContractName
	}
	if contractName == "" {
		return nil, fmt.Errorf("no deployment recorded at %s on %s, pass the contract name", address.Hex(), network.Name)
	}

	chainID := network.ChainID
	if record != nil && record.ChainID != 0 {
		chainID = record.ChainID
	}
	if chainID == 0 {
		client, err := uc.connector.Connect(ctx, network)
		if err != nil {
			return nil, err
		}
		id, err := client.ChainID(ctx)
		client.Close()
		if err != nil {
			return nil, &domain.ConnectivityErr{Network: network.Name, URL: network.URL, Err: err}
		}
		chainID = id.Uint64()
	}

	artifact, err := uc.artifacts.GetArtifact(ctx, contractName)
	if err != nil {
		return nil, err
	}
	buildInfo, err := uc.artifacts.GetBuildInfo(ctx, artifact)
	if err != nil {
		return nil, fmt.Errorf("cannot verify %s: %w", contractName, err)
	}

	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   StageVerifying,
		Message: fmt.Sprintf("Verifying %s at %s on %s", contractName, address.Hex(), network.Name),
		Spinner: true,
	})

	target := record
	if target == nil {
		target = &models.Deployment{
			ContractName: artifact.ContractName,
			Network:      network.Name,
			ChainID:      chainID,
			Address:      address.Hex(),
		}
	}

	verr := verifyInto(ctx, uc.verifier, target, artifact, buildInfo, constructorArgs)

	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   StageCompleted,
		Message: fmt.Sprintf("Verification %s", strings.ToLower(string(target.Verification.Status))),
	})

	if errors.Is(verr, domain.ErrNoExplorer) {
		return nil, verr
	}

	result := &VerifyDeploymentResult{
		Network:      network.Name,
		ChainID:      chainID,
		Address:      address.Hex(),
		ContractName: contractName,
		Verification: target.Verification,
		Warning:      verr,
	}

	if record != nil {
		if err := uc.repo.SaveDeployment(ctx, record); err != nil {
			uc.log.Warn("failed to record verification result", slog.String("deployment", record.ID()), slog.Any("error", err))
		} else {
			result.RecordUpdated = true
		}
	}

	return result, nil
}

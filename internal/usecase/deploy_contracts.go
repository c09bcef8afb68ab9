package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/QubeSwap/sgn-v2-contracts/internal/domain"
	"github.com/QubeSwap/sgn-v2-contracts/internal/domain/config"
	"github.com/QubeSwap/sgn-v2-contracts/internal/domain/models"
)

// DeployContractsParams selects what to deploy and where
type DeployContractsParams struct {
	// Networks to deploy to, in order. Empty means the default network.
	Networks   []string
	Tags       []string
	SkipVerify bool
}

// NetworkDeployment is the outcome of the deploy run on one network
type NetworkDeployment struct {
	Network     string               `json:"network"`
	ChainID     uint64               `json:"chainId"`
	Deployer    string               `json:"deployer"`
	Deployments []*models.Deployment `json:"deployments"`
	// Warnings are verification problems; the deployments still succeeded
	Warnings []string `json:"warnings,omitempty"`
}

// DeployContractsResult contains the per-network outcomes
type DeployContractsResult struct {
	Networks []*NetworkDeployment `json:"networks"`
}

// DeployContracts runs the selected deploy tasks on each network in turn.
// Any failure up to and including the creation transaction aborts the run.
type DeployContracts struct {
	config    *config.RuntimeConfig
	resolver  NetworkResolver
	connector ChainConnector
	signers   SignerFactory
	deployer  ContractDeployer
	artifacts ArtifactRepository
	repo      DeploymentRepository
	verifier  ContractVerifier
	confirmer DeploymentConfirmer
	tasks     *TaskRegistry
	sink      ProgressSink
	log       *slog.Logger
}

// NewDeployContracts creates a new DeployContracts use case
func NewDeployContracts(
	cfg *config.RuntimeConfig,
	resolver NetworkResolver,
	connector ChainConnector,
	signers SignerFactory,
	deployer ContractDeployer,
	artifacts ArtifactRepository,
	repo DeploymentRepository,
	verifier ContractVerifier,
	confirmer DeploymentConfirmer,
	tasks *TaskRegistry,
	sink ProgressSink,
	log *slog.Logger,
) *DeployContracts {
	return &DeployContracts{
		config:    cfg,
		resolver:  resolver,
		connector: connector,
		signers:   signers,
		deployer:  deployer,
		artifacts: artifacts,
		repo:      repo,
		verifier:  verifier,
		confirmer: confirmer,
		tasks:     tasks,
		sink:      sink,
		log:       log,
	}
}

// Run executes the deploy use case. The result holds every network that
// completed, also when a later network fails.
func (uc *DeployContracts) Run(ctx context.Context, params DeployContractsParams) (*DeployContractsResult, error) {
	tasks, err := uc.tasks.Select(params.Tags)
	if err != nil {
		return nil, err
	}
	if len(tasks) == 0 {
		return nil, fmt.Errorf("no deploy tasks selected")
	}

	networks := params.Networks
	if len(networks) == 0 {
		networks = []string{uc.config.DefaultNetwork}
	}

	result := &DeployContractsResult{}
	for i, name := range networks {
		nd, err := uc.deployNetwork(ctx, name, tasks, params, i+1, len(networks))
		if nd != nil {
			result.Networks = append(result.Networks, nd)
		}
		if err != nil {
			return result, err
		}
	}
	return result, nil
}

func (uc *DeployContracts) deployNetwork(ctx context.Context, name string, tasks []DeployTask, params DeployContractsParams, current, total int) (*NetworkDeployment, error) {
	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   StageResolving,
		Current: current,
		Total:   total,
		Message: fmt.Sprintf("Resolving network %s", name),
	})

	network, err := uc.resolver.ResolveNetwork(ctx, name)
	if err != nil {
		return nil, err
	}

	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   StageConnecting,
		Current: current,
		Total:   total,
		Message: fmt.Sprintf("Connecting to %s", network.Name),
		Spinner: true,
	})

	client, err := uc.connector.Connect(ctx, network)
	if err != nil {
		return nil, err
	}
	defer client.Close()

	chainID, err := client.ChainID(ctx)
	if err != nil {
		return nil, &domain.ConnectivityErr{Network: network.Name, URL: network.URL, Err: err}
	}
	if network.ChainID != 0 && chainID.Uint64() != network.ChainID {
		uc.log.Warn("endpoint serves a different chain than expected",
			slog.String("network", network.Name),
			slog.Uint64("expected", network.ChainID),
			slog.String("actual", chainID.String()),
		)
	}

	signer, err := uc.signers.NewSigner(ctx, network, chainID)
	if err != nil {
		return nil, err
	}

	nd := &NetworkDeployment{
		Network:  network.Name,
		ChainID:  chainID.Uint64(),
		Deployer: signer.Address().Hex(),
	}

	for _, task := range tasks {
		deployment, warning, err := uc.runTask(ctx, task, network, chainID, client, signer, params)
		if deployment != nil {
			nd.Deployments = append(nd.Deployments, deployment)
		}
		if warning != "" {
			nd.Warnings = append(nd.Warnings, warning)
		}
		if err != nil {
			return nd, err
		}
	}

	return nd, nil
}

// runTask deploys one contract and records it. The returned warning is a
// non-fatal verification failure.
func (uc *DeployContracts) runTask(ctx context.Context, task DeployTask, network *config.NetworkDescriptor,
	chainID *big.Int, client ChainClient, signer TransactionSigner, params DeployContractsParams) (*models.Deployment, string, error) {
	artifact, err := uc.artifacts.GetArtifact(ctx, task.Contract)
	if err != nil {
		return nil, "", err
	}

	if uc.confirmer != nil {
		ok, err := uc.confirmer.ConfirmDeployment(ctx, DeploymentPlan{
			Network:  network,
			ChainID:  chainID.Uint64(),
			Deployer: signer.Address(),
			Contract: task.Contract,
		})
		if err != nil {
			return nil, "", err
		}
		if !ok {
			return nil, "", fmt.Errorf("%w: %s on %s", domain.ErrDeploymentCancelled, task.Contract, network.Name)
		}
	}

	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   StageDeploying,
		Message: fmt.Sprintf("Deploying %s to %s", task.Contract, network.Name),
		Spinner: true,
	})

	outcome, err := uc.deployer.DeployContract(ctx, DeployRequest{
		Client:   client,
		Signer:   signer,
		Network:  network,
		Artifact: artifact,
	})
	if err != nil {
		return nil, "", fmt.Errorf("deploy %s to %s: %w", task.Contract, network.Name, err)
	}

	buildInfo, err := uc.artifacts.GetBuildInfo(ctx, artifact)
	if err != nil {
		uc.log.Debug("build info unavailable", slog.String("contract", artifact.ContractName), slog.Any("error", err))
		buildInfo = nil
	}

	deployment := newDeploymentRecord(network.Name, chainID.Uint64(), signer.Address(), artifact, buildInfo, outcome, task.Tags)

	if err := uc.repo.SaveDeployment(ctx, deployment); err != nil {
		return deployment, "", fmt.Errorf("%s deployed at %s but the record could not be saved: %w",
			task.Contract, deployment.Address, err)
	}

	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   StageCompleted,
		Message: fmt.Sprintf("Deployed %s at %s", task.Contract, deployment.Address),
	})

	skipReason := ""
	switch {
	case params.SkipVerify || uc.config.SkipVerify:
		skipReason = "verification disabled"
	case network.Class == config.NetworkClassLocal:
		skipReason = "local network"
	}
	if skipReason != "" {
		deployment.Verification.Status = models.VerificationStatusSkipped
		deployment.Verification.Reason = skipReason
		uc.saveVerification(ctx, deployment)
		return deployment, "", nil
	}

	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   StageVerifying,
		Message: fmt.Sprintf("Verifying %s", task.Contract),
		Spinner: true,
	})

	verr := verifyInto(ctx, uc.verifier, deployment, artifact, buildInfo, nil)
	uc.saveVerification(ctx, deployment)

	if verr != nil {
		uc.log.Warn("verification failed", slog.String("deployment", deployment.ID()), slog.Any("error", verr))
		uc.sink.Error(fmt.Sprintf("Verification of %s failed: %v", task.Contract, verr))
		return deployment, verr.Error(), nil
	}

	uc.sink.Info(fmt.Sprintf("Verified %s on %s", task.Contract, deployment.Verification.Explorer))
	return deployment, "", nil
}

// newDeploymentRecord builds the persisted record for a mined creation
func newDeploymentRecord(network string, chainID uint64, deployer common.Address, artifact *models.Artifact,
	buildInfo *models.BuildInfo, outcome *DeployOutcome, tags []string) *models.Deployment {
	now := time.Now()
	d := &models.Deployment{
		ContractName:     artifact.ContractName,
		Network:          network,
		ChainID:          chainID,
		Address:          outcome.Address.Hex(),
		Deployer:         deployer.Hex(),
		TransactionHash:  outcome.TxHash.Hex(),
		Args:             []string{},
		ABI:              artifact.ABI,
		Bytecode:         artifact.Bytecode,
		DeployedBytecode: artifact.DeployedBytecode,
		Artifact: models.ArtifactInfo{
			Path:         artifact.FullyQualifiedName(),
			BytecodeHash: crypto.Keccak256Hash(common.FromHex(artifact.DeployedBytecode)).Hex(),
		},
		Verification: models.VerificationInfo{Status: models.VerificationStatusUnverified},
		Tags:         tags,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if buildInfo != nil {
		d.Artifact.CompilerVersion = buildInfo.SolcLongVersion
	}
	if outcome.Receipt != nil {
		d.Receipt = summarizeReceipt(outcome.Receipt, deployer)
	}
	return d
}

func summarizeReceipt(r *types.Receipt, from common.Address) *models.ReceiptSummary {
	s := &models.ReceiptSummary{
		From:             from.Hex(),
		ContractAddress:  r.ContractAddress.Hex(),
		TransactionIndex: r.TransactionIndex,
		GasUsed:          r.GasUsed,
		BlockHash:        r.BlockHash.Hex(),
		Status:           r.Status,
	}
	if r.BlockNumber != nil {
		s.BlockNumber = r.BlockNumber.Uint64()
	}
	if r.EffectiveGasPrice != nil {
		s.EffectiveGasPrice = r.EffectiveGasPrice.String()
	}
	return s
}

// verifyInto runs the verifier for a recorded deployment and stores the
// outcome on the record. A missing explorer marks the record skipped.
func verifyInto(ctx context.Context, verifier ContractVerifier, deployment *models.Deployment,
	artifact *models.Artifact, buildInfo *models.BuildInfo, constructorArgs []byte) error {
	info, err := verifier.Verify(ctx, VerifyRequest{
		ChainID:         deployment.ChainID,
		Address:         common.HexToAddress(deployment.Address),
		Artifact:        artifact,
		BuildInfo:       buildInfo,
		ConstructorArgs: constructorArgs,
	})
	if info != nil {
		deployment.Verification = *info
	}
	if err != nil && errors.Is(err, domain.ErrNoExplorer) {
		deployment.Verification.Status = models.VerificationStatusSkipped
		deployment.Verification.Reason = err.Error()
	}
	return err
}

// saveVerification re-saves a record that is already on disk. A failure only
// loses the verification status, so it is logged and not returned.
func (uc *DeployContracts) saveVerification(ctx context.Context, deployment *models.Deployment) {
	if err := uc.repo.SaveDeployment(ctx, deployment); err != nil {
		uc.log.Warn("failed to record verification result", slog.String("deployment", deployment.ID()), slog.Any("error", err))
	}
}

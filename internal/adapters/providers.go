package adapters

import (
	"github.com/google/wire"

	"github.com/QubeSwap/sgn-v2-contracts/internal/adapters/artifacts"
	"github.com/QubeSwap/sgn-v2-contracts/internal/adapters/blockchain"
	internalconfig "github.com/QubeSwap/sgn-v2-contracts/internal/adapters/config"
	"github.com/QubeSwap/sgn-v2-contracts/internal/adapters/interactive"
	"github.com/QubeSwap/sgn-v2-contracts/internal/adapters/repository/deployments"
	"github.com/QubeSwap/sgn-v2-contracts/internal/adapters/signer"
	"github.com/QubeSwap/sgn-v2-contracts/internal/adapters/verification"
	"github.com/QubeSwap/sgn-v2-contracts/internal/usecase"
)

// FSSet provides filesystem-based implementations
var FSSet = wire.NewSet(
	artifacts.NewRepository,
	wire.Bind(new(usecase.ArtifactRepository), new(*artifacts.Repository)),

	deployments.NewFileRepository,
	wire.Bind(new(usecase.DeploymentRepository), new(*deployments.FileRepository)),
)

// BlockchainSet provides RPC and signing implementations
var BlockchainSet = wire.NewSet(
	blockchain.NewConnector,
	wire.Bind(new(usecase.ChainConnector), new(*blockchain.Connector)),

	blockchain.NewDeployer,
	wire.Bind(new(usecase.ContractDeployer), new(*blockchain.Deployer)),

	signer.NewFactory,
	wire.Bind(new(usecase.SignerFactory), new(*signer.Factory)),
)

// VerificationSet provides the block explorer client
var VerificationSet = wire.NewSet(
	verification.NewVerifier,
	wire.Bind(new(usecase.ContractVerifier), new(*verification.Verifier)),
)

// InteractiveSet provides interactive implementations
var InteractiveSet = wire.NewSet(
	interactive.NewSelectorAdapter,
	wire.Bind(new(usecase.DeploymentConfirmer), new(*interactive.SelectorAdapter)),
	wire.Bind(new(usecase.NetworkSelector), new(*interactive.SelectorAdapter)),
)

// ConfigSet provides configuration-based implementations
var ConfigSet = wire.NewSet(
	internalconfig.NewNetworkResolver,
	wire.Bind(new(usecase.NetworkResolver), new(*internalconfig.NetworkResolver)),
)

// AllAdapters includes all adapter sets
var AllAdapters = wire.NewSet(
	FSSet,
	BlockchainSet,
	VerificationSet,
	InteractiveSet,
	ConfigSet,
)

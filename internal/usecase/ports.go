package usecase

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/QubeSwap/sgn-v2-contracts/internal/domain/config"
	"github.com/QubeSwap/sgn-v2-contracts/internal/domain/models"
)

// NetworkResolver looks up network descriptors by name
type NetworkResolver interface {
	ResolveNetwork(ctx context.Context, name string) (*config.NetworkDescriptor, error)
	GetNetworks(ctx context.Context) []string
}

// ChainClient is the subset of an Ethereum JSON-RPC client the deploy flow needs
type ChainClient interface {
	ChainID(ctx context.Context) (*big.Int, error)
	HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	SuggestGasTipCap(ctx context.Context) (*big.Int, error)
	EstimateGas(ctx context.Context, call ethereum.CallMsg) (uint64, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
	CodeAt(ctx context.Context, account common.Address, blockNumber *big.Int) ([]byte, error)
	Close()
}

// ChainConnector opens a client for a network
type ChainConnector interface {
	Connect(ctx context.Context, network *config.NetworkDescriptor) (ChainClient, error)
}

// TransactionSigner signs transactions for a single account on a single chain
type TransactionSigner interface {
	Address() common.Address
	ChainID() *big.Int
	SignTransaction(ctx context.Context, tx *types.Transaction) (*types.Transaction, error)
}

// NodeSender is implemented by signers whose node signs and broadcasts an
// unsigned transaction itself. It returns the hash the node assigned.
type NodeSender interface {
	SendFromNode(ctx context.Context, tx *types.Transaction) (common.Hash, error)
}

// SignerFactory builds the signer described by a network's signing configuration
type SignerFactory interface {
	NewSigner(ctx context.Context, network *config.NetworkDescriptor, chainID *big.Int) (TransactionSigner, error)
}

// DeployRequest describes one contract creation
type DeployRequest struct {
	Client          ChainClient
	Signer          TransactionSigner
	Network         *config.NetworkDescriptor
	Artifact        *models.Artifact
	ConstructorArgs []byte
}

// DeployOutcome is the mined result of a contract creation
type DeployOutcome struct {
	Address common.Address
	TxHash  common.Hash
	Receipt *types.Receipt
}

// ContractDeployer submits a contract creation transaction and waits for it
type ContractDeployer interface {
	DeployContract(ctx context.Context, req DeployRequest) (*DeployOutcome, error)
}

// ArtifactRepository reads compiled contract artifacts
type ArtifactRepository interface {
	GetArtifact(ctx context.Context, name string) (*models.Artifact, error)
	ListArtifacts(ctx context.Context) ([]*models.Artifact, error)
	GetBuildInfo(ctx context.Context, artifact *models.Artifact) (*models.BuildInfo, error)
}

// DeploymentRepository persists deployment records
type DeploymentRepository interface {
	SaveDeployment(ctx context.Context, deployment *models.Deployment) error
	GetDeployment(ctx context.Context, network, contractName string) (*models.Deployment, error)
	GetDeploymentByAddress(ctx context.Context, network, address string) (*models.Deployment, error)
	ListDeployments(ctx context.Context, network string) ([]*models.Deployment, error)
}

// VerifyRequest is everything an explorer needs to verify deployed source
type VerifyRequest struct {
	ChainID         uint64
	Address         common.Address
	Artifact        *models.Artifact
	BuildInfo       *models.BuildInfo
	ConstructorArgs []byte
}

// ContractVerifier submits source verification to a block explorer. A
// returned error means the source was not verified; the info still carries
// whatever the explorer reported.
type ContractVerifier interface {
	Verify(ctx context.Context, req VerifyRequest) (*models.VerificationInfo, error)
}

// DeploymentConfirmer asks the operator before a transaction is broadcast
type DeploymentConfirmer interface {
	ConfirmDeployment(ctx context.Context, plan DeploymentPlan) (bool, error)
}

// NetworkSelector lets the operator pick a network when none was given
type NetworkSelector interface {
	SelectNetwork(ctx context.Context, networks []string, label string) (string, error)
}

// DeploymentPlan summarises what is about to be deployed
type DeploymentPlan struct {
	Network  *config.NetworkDescriptor
	ChainID  uint64
	Deployer common.Address
	Contract string
}

// Progress tracking interfaces

// ProgressEvent represents a progress update
type ProgressEvent struct {
	Stage   string
	Current int
	Total   int
	Message string
	Spinner bool
}

// ProgressSink receives progress events
type ProgressSink interface {
	OnProgress(ctx context.Context, event ProgressEvent)
	Info(message string)
	Error(message string)
}

// NopProgress is a no-op implementation of ProgressSink
type NopProgress struct{}

func (NopProgress) OnProgress(context.Context, ProgressEvent) {}
func (NopProgress) Info(string)                               {}
func (NopProgress) Error(string)                              {}

// Progress stages reported by the deploy and verify flows
const (
	StageResolving  = "resolving"
	StageConnecting = "connecting"
	StageDeploying  = "deploying"
	StageVerifying  = "verifying"
	StageCompleted  = "completed"
)

package usecase_test

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/mock"

	"github.com/QubeSwap/sgn-v2-contracts/internal/domain"
	"github.com/QubeSwap/sgn-v2-contracts/internal/domain/config"
	"github.com/QubeSwap/sgn-v2-contracts/internal/domain/models"
	"github.com/QubeSwap/sgn-v2-contracts/internal/usecase"
)

// MockDeploymentRepository is a mock implementation of DeploymentRepository
type MockDeploymentRepository struct {
	mock.Mock
}

func (m *MockDeploymentRepository) SaveDeployment(ctx context.Context, deployment *models.Deployment) error {
	args := m.Called(ctx, deployment)
	return args.Error(0)
}

func (m *MockDeploymentRepository) GetDeployment(ctx context.Context, network, contractName string) (*models.Deployment, error) {
	args := m.Called(ctx, network, contractName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Deployment), args.Error(1)
}

func (m *MockDeploymentRepository) GetDeploymentByAddress(ctx context.Context, network, address string) (*models.Deployment, error) {
	args := m.Called(ctx, network, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Deployment), args.Error(1)
}

func (m *MockDeploymentRepository) ListDeployments(ctx context.Context, network string) ([]*models.Deployment, error) {
	args := m.Called(ctx, network)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Deployment), args.Error(1)
}

// MockArtifactRepository is a mock implementation of ArtifactRepository
type MockArtifactRepository struct {
	mock.Mock
}

func (m *MockArtifactRepository) GetArtifact(ctx context.Context, name string) (*models.Artifact, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Artifact), args.Error(1)
}

func (m *MockArtifactRepository) ListArtifacts(ctx context.Context) ([]*models.Artifact, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Artifact), args.Error(1)
}

func (m *MockArtifactRepository) GetBuildInfo(ctx context.Context, artifact *models.Artifact) (*models.BuildInfo, error) {
	args := m.Called(ctx, artifact)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BuildInfo), args.Error(1)
}

// MockVerifier is a mock implementation of ContractVerifier
type MockVerifier struct {
	mock.Mock
}

func (m *MockVerifier) Verify(ctx context.Context, req usecase.VerifyRequest) (*models.VerificationInfo, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.VerificationInfo), args.Error(1)
}

// MockConfirmer is a mock implementation of DeploymentConfirmer
type MockConfirmer struct {
	mock.Mock
}

func (m *MockConfirmer) ConfirmDeployment(ctx context.Context, plan usecase.DeploymentPlan) (bool, error) {
	args := m.Called(ctx, plan)
	return args.Bool(0), args.Error(1)
}

// staticResolver resolves from a fixed network table
type staticResolver struct {
	table *config.NetworkTable
}

func newStaticResolver(networks ...config.NetworkDescriptor) *staticResolver {
	table := config.NewNetworkTable()
	for _, n := range networks {
		table.Register(n)
	}
	return &staticResolver{table: table}
}

func (r *staticResolver) ResolveNetwork(ctx context.Context, name string) (*config.NetworkDescriptor, error) {
	d, ok := r.table.Get(name)
	if !ok {
		return nil, domain.UnknownNetworkErr{Name: name}
	}
	return &d, nil
}

func (r *staticResolver) GetNetworks(ctx context.Context) []string {
	return r.table.Names()
}

// fakeClient is a ChainClient that only answers eth_chainId
type fakeClient struct {
	chainID uint64
	closed  bool
}

func (c *fakeClient) ChainID(context.Context) (*big.Int, error) {
	return new(big.Int).SetUint64(c.chainID), nil
}
func (c *fakeClient) HeaderByNumber(context.Context, *big.Int) (*types.Header, error) {
	return &types.Header{}, nil
}
func (c *fakeClient) PendingNonceAt(context.Context, common.Address) (uint64, error) { return 0, nil }
func (c *fakeClient) SuggestGasPrice(context.Context) (*big.Int, error)              { return big.NewInt(1), nil }
func (c *fakeClient) SuggestGasTipCap(context.Context) (*big.Int, error)             { return big.NewInt(1), nil }
func (c *fakeClient) EstimateGas(context.Context, ethereum.CallMsg) (uint64, error)  { return 21000, nil }
func (c *fakeClient) SendTransaction(context.Context, *types.Transaction) error      { return nil }
func (c *fakeClient) TransactionReceipt(context.Context, common.Hash) (*types.Receipt, error) {
	return nil, ethereum.NotFound
}
func (c *fakeClient) CodeAt(context.Context, common.Address, *big.Int) ([]byte, error) {
	return nil, nil
}
func (c *fakeClient) Close() { c.closed = true }

// fakeConnector hands out fakeClients by network name
type fakeConnector struct {
	chainIDs map[string]uint64
	errs     map[string]error
	dialed   []string
}

func (c *fakeConnector) Connect(ctx context.Context, network *config.NetworkDescriptor) (usecase.ChainClient, error) {
	c.dialed = append(c.dialed, network.Name)
	if err := c.errs[network.Name]; err != nil {
		return nil, &domain.ConnectivityErr{Network: network.Name, URL: network.URL, Err: err}
	}
	return &fakeClient{chainID: c.chainIDs[network.Name]}, nil
}

// fakeSigner is a TransactionSigner with a fixed address
type fakeSigner struct {
	address common.Address
	chainID *big.Int
}

func (s *fakeSigner) Address() common.Address { return s.address }
func (s *fakeSigner) ChainID() *big.Int       { return s.chainID }
func (s *fakeSigner) SignTransaction(ctx context.Context, tx *types.Transaction) (*types.Transaction, error) {
	return tx, nil
}

// fakeSignerFactory records the signing method of every signer it builds
type fakeSignerFactory struct {
	address common.Address
	err     error
	methods []config.SigningMethod
}

func (f *fakeSignerFactory) NewSigner(ctx context.Context, network *config.NetworkDescriptor, chainID *big.Int) (usecase.TransactionSigner, error) {
	f.methods = append(f.methods, network.SigningMethod())
	if f.err != nil {
		return nil, &domain.SigningErr{Method: string(network.SigningMethod()), Err: f.err}
	}
	return &fakeSigner{address: f.address, chainID: chainID}, nil
}

// fakeDeployer returns sequential addresses without touching a chain
type fakeDeployer struct {
	err      error
	requests []usecase.DeployRequest
}

func (d *fakeDeployer) DeployContract(ctx context.Context, req usecase.DeployRequest) (*usecase.DeployOutcome, error) {
	d.requests = append(d.requests, req)
	if d.err != nil {
		return nil, d.err
	}
	n := len(d.requests)
	address := common.BigToAddress(big.NewInt(int64(0x1000 + n)))
	return &usecase.DeployOutcome{
		Address: address,
		TxHash:  common.BigToHash(big.NewInt(int64(n))),
		Receipt: &types.Receipt{
			Status:          types.ReceiptStatusSuccessful,
			ContractAddress: address,
			GasUsed:         1_500_000,
			BlockNumber:     big.NewInt(10),
		},
	}, nil
}

// recordingSink keeps every progress event
type recordingSink struct {
	events []usecase.ProgressEvent
	infos  []string
	errors []string
}

func (s *recordingSink) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	s.events = append(s.events, event)
}
func (s *recordingSink) Info(message string)  { s.infos = append(s.infos, message) }
func (s *recordingSink) Error(message string) { s.errors = append(s.errors, message) }

package signer

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"
	"net/http"
	"sync"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/kms"
	"github.com/ethereum/go-ethereum/rpc"

	"github.com/QubeSwap/sgn-v2-contracts/internal/domain"
	"github.com/QubeSwap/sgn-v2-contracts/internal/domain/config"
	"github.com/QubeSwap/sgn-v2-contracts/internal/usecase"
)

// Factory builds the signer selected by a network's signing configuration.
// The KMS client is created on first use with the default AWS credential chain.
type Factory struct {
	log       *slog.Logger
	newClient func(ctx context.Context) (KMSClient, error)

	once      sync.Once
	kmsClient KMSClient
	kmsErr    error
}

// NewFactory creates a signer factory
func NewFactory(log *slog.Logger) *Factory {
	return &Factory{
		log:       log,
		newClient: defaultKMSClient,
	}
}

// NewFactoryWithKMS creates a signer factory around an existing KMS client
func NewFactoryWithKMS(log *slog.Logger, client KMSClient) *Factory {
	return &Factory{
		log: log,
		newClient: func(context.Context) (KMSClient, error) {
			return client, nil
		},
	}
}

func defaultKMSClient(ctx context.Context) (KMSClient, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return kms.NewFromConfig(cfg), nil
}

// NewSigner returns a LocalSigner, KMSSigner or NodeAccountSigner for the network.
func (f *Factory) NewSigner(ctx context.Context, network *config.NetworkDescriptor, chainID *big.Int) (usecase.TransactionSigner, error) {
	switch s := network.Signing.(type) {
	case config.PrivateKeySigning:
		signer, err := NewLocalSigner(s.Key, chainID)
		if err != nil {
			return nil, &domain.SigningErr{Method: string(s.Method()), Err: err}
		}
		f.log.Debug("using local signer", "network", network.Name, "address", signer.Address().Hex())
		return signer, nil

	case config.KMSSigning:
		client, err := f.client(ctx)
		if err != nil {
			return nil, &domain.SigningErr{Method: string(s.Method()), Err: err}
		}
		signer, err := NewKMSSigner(ctx, client, s.KeyID, chainID)
		if err != nil {
			return nil, &domain.SigningErr{Method: string(s.Method()), Err: err}
		}
		f.log.Debug("using kms signer", "network", network.Name, "key", s.KeyID, "address", signer.Address().Hex())
		return signer, nil

	case config.NodeAccountSigning:
		client, err := dialNode(ctx, network)
		if err != nil {
			return nil, &domain.SigningErr{Method: string(s.Method()), Err: err}
		}
		signer, err := NewNodeAccountSigner(ctx, client, chainID)
		if err != nil {
			client.Close()
			return nil, &domain.SigningErr{Method: string(s.Method()), Err: err}
		}
		f.log.Debug("using node account", "network", network.Name, "address", signer.Address().Hex())
		return signer, nil

	default:
		return nil, &domain.SigningErr{Method: "unknown", Err: fmt.Errorf("network %s has no signing configuration", network.Name)}
	}
}

func dialNode(ctx context.Context, network *config.NetworkDescriptor) (*rpc.Client, error) {
	var opts []rpc.ClientOption
	if network.Timeout > 0 {
		opts = append(opts, rpc.WithHTTPClient(&http.Client{Timeout: network.Timeout}))
	}
	return rpc.DialOptions(ctx, network.URL, opts...)
}

func (f *Factory) client(ctx context.Context) (KMSClient, error) {
	f.once.Do(func() {
		f.kmsClient, f.kmsErr = f.newClient(ctx)
	})
	return f.kmsClient, f.kmsErr
}

var _ usecase.SignerFactory = (*Factory)(nil)

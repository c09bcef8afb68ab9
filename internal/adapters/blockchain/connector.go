package blockchain

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"

	"github.com/QubeSwap/sgn-v2-contracts/internal/domain"
	"github.com/QubeSwap/sgn-v2-contracts/internal/domain/config"
	"github.com/QubeSwap/sgn-v2-contracts/internal/usecase"
)

// Connector dials network endpoints with ethclient
type Connector struct {
	log *slog.Logger
}

// NewConnector creates a new connector
func NewConnector(log *slog.Logger) *Connector {
	return &Connector{log: log}
}

// Connect dials the network endpoint and checks it answers eth_chainId.
// HTTP requests are bounded by the network timeout.
func (c *Connector) Connect(ctx context.Context, network *config.NetworkDescriptor) (usecase.ChainClient, error) {
	opts := []rpc.ClientOption{}
	if network.Timeout > 0 {
		opts = append(opts, rpc.WithHTTPClient(&http.Client{Timeout: network.Timeout}))
	}

	rpcClient, err := rpc.DialOptions(ctx, network.URL, opts...)
	if err != nil {
		return nil, &domain.ConnectivityErr{Network: network.Name, URL: network.URL, Err: err}
	}
	client := ethclient.NewClient(rpcClient)

	chainID, err := client.ChainID(ctx)
	if err != nil {
		client.Close()
		return nil, &domain.ConnectivityErr{Network: network.Name, URL: network.URL, Err: err}
	}

	c.log.Debug("connected to network",
		slog.String("network", network.Name),
		slog.String("chain_id", chainID.String()),
	)

	return client, nil
}

var _ usecase.ChainConnector = (*Connector)(nil)

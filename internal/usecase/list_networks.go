package usecase

import (
	"context"
	"math/big"
	"net/url"
	"strings"

	"github.com/QubeSwap/sgn-v2-contracts/internal/domain/config"
)

// ListNetworksParams contains parameters for listing networks
type ListNetworksParams struct {
	// Check dials every network and reports the chain it serves
	Check bool
}

// ListNetworksResult contains the result of listing networks
type ListNetworksResult struct {
	Networks       []NetworkStatus
	DefaultNetwork string
	// Duplicates are names defined more than once; the last definition won
	Duplicates []string
}

// NetworkStatus represents one network table entry
type NetworkStatus struct {
	Name            string
	Endpoint        string
	Class           config.NetworkClass
	SigningMethod   config.SigningMethod
	GasPrice        *big.Int
	ExpectedChainID uint64
	// LiveChainID is only set when the network was checked
	LiveChainID uint64
	Error       error
}

// Mismatch reports whether a checked network serves an unexpected chain
func (s NetworkStatus) Mismatch() bool {
	return s.LiveChainID != 0 && s.ExpectedChainID != 0 && s.LiveChainID != s.ExpectedChainID
}

// ListNetworks is a use case for listing available networks
type ListNetworks struct {
	config    *config.RuntimeConfig
	resolver  NetworkResolver
	connector ChainConnector
}

// NewListNetworks creates a new ListNetworks use case
func NewListNetworks(cfg *config.RuntimeConfig, resolver NetworkResolver, connector ChainConnector) *ListNetworks {
	return &ListNetworks{
		config:    cfg,
		resolver:  resolver,
		connector: connector,
	}
}

// Run executes the use case. Connection errors are reported per network.
func (uc *ListNetworks) Run(ctx context.Context, params ListNetworksParams) (*ListNetworksResult, error) {
	names := uc.resolver.GetNetworks(ctx)

	networks := make([]NetworkStatus, 0, len(names))
	for _, name := range names {
		status := NetworkStatus{Name: name}

		info, err := uc.resolver.ResolveNetwork(ctx, name)
		if err != nil {
			status.Error = err
			networks = append(networks, status)
			continue
		}

		status.Endpoint = RedactURL(info.URL)
		status.Class = info.Class
		status.SigningMethod = info.SigningMethod()
		status.GasPrice = info.GasPrice
		status.ExpectedChainID = info.ChainID

		if params.Check {
			status.LiveChainID, status.Error = uc.check(ctx, info)
		}

		networks = append(networks, status)
	}

	result := &ListNetworksResult{
		Networks:       networks,
		DefaultNetwork: uc.config.DefaultNetwork,
	}
	if uc.config.NetworkTable != nil {
		result.Duplicates = uc.config.NetworkTable.Duplicates()
	}
	return result, nil
}

func (uc *ListNetworks) check(ctx context.Context, network *config.NetworkDescriptor) (uint64, error) {
	client, err := uc.connector.Connect(ctx, network)
	if err != nil {
		return 0, err
	}
	defer client.Close()

	id, err := client.ChainID(ctx)
	if err != nil {
		return 0, err
	}
	return id.Uint64(), nil
}

// RedactURL hides the parts of an endpoint URL that usually carry API keys:
// user info, path and query. Unparseable input is fully masked.
func RedactURL(raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "***"
	}

	redacted := u.Scheme + "://" + u.Host
	if strings.Trim(u.Path, "/") != "" || u.RawQuery != "" || u.User != nil {
		redacted += "/***"
	}
	return redacted
}

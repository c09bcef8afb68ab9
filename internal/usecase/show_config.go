package usecase

import (
	"context"
	"sort"
	"strings"

	"github.com/QubeSwap/sgn-v2-contracts/internal/domain/config"
)

const placeholderKey = "0xffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff"

// ShowConfigResult is the effective configuration with secrets masked
type ShowConfigResult struct {
	ProjectRoot    string                     `json:"projectRoot" yaml:"project_root"`
	ConfigSource   string                     `json:"configSource" yaml:"config_source"`
	DefaultNetwork string                     `json:"defaultNetwork" yaml:"default_network"`
	Networks       []NetworkView              `json:"networks" yaml:"networks"`
	Solidity       config.SolidityConfig      `json:"solidity" yaml:"solidity"`
	ContractSizer  config.ContractSizerConfig `json:"contractSizer" yaml:"contract_sizer"`
	Paths          config.PathsConfig         `json:"paths" yaml:"paths"`
	Explorer       ExplorerView               `json:"explorer" yaml:"explorer"`
}

// NetworkView is a network descriptor safe to print
type NetworkView struct {
	Name       string `json:"name" yaml:"name"`
	URL        string `json:"url" yaml:"url"`
	Class      string `json:"class" yaml:"class"`
	ChainID    uint64 `json:"chainId,omitempty" yaml:"chain_id,omitempty"`
	Signing    string `json:"signing" yaml:"signing"`
	KMSKeyID   string `json:"kmsKeyId,omitempty" yaml:"kms_key_id,omitempty"`
	PrivateKey string `json:"privateKey,omitempty" yaml:"private_key,omitempty"`
	GasPrice   string `json:"gasPrice,omitempty" yaml:"gas_price,omitempty"`
	Timeout    string `json:"timeout" yaml:"timeout"`
}

// ExplorerView lists explorer API keys (masked) and chain definitions
type ExplorerView struct {
	APIKeys      map[string]string    `json:"apiKeys" yaml:"api_keys"`
	CustomChains []config.CustomChain `json:"customChains,omitempty" yaml:"custom_chains,omitempty"`
}

// ShowConfig is a use case for showing configuration
type ShowConfig struct {
	config *config.RuntimeConfig
}

// NewShowConfig creates a new ShowConfig use case
func NewShowConfig(cfg *config.RuntimeConfig) *ShowConfig {
	return &ShowConfig{config: cfg}
}

// Run executes the show config use case
func (uc *ShowConfig) Run(ctx context.Context) (*ShowConfigResult, error) {
	cfg := uc.config
	result := &ShowConfigResult{
		ProjectRoot:    cfg.ProjectRoot,
		ConfigSource:   cfg.ConfigSource,
		DefaultNetwork: cfg.DefaultNetwork,
		Solidity:       cfg.Solidity,
		ContractSizer:  cfg.ContractSizer,
		Paths:          cfg.Paths,
		Explorer: ExplorerView{
			APIKeys:      make(map[string]string, len(cfg.Explorer.APIKeys)),
			CustomChains: cfg.Explorer.CustomChains,
		},
	}

	if cfg.NetworkTable != nil {
		for _, n := range cfg.NetworkTable.All() {
			result.Networks = append(result.Networks, networkView(n))
		}
	}

	names := make([]string, 0, len(cfg.Explorer.APIKeys))
	for name := range cfg.Explorer.APIKeys {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		result.Explorer.APIKeys[name] = MaskSecret(cfg.Explorer.APIKeys[name])
	}

	return result, nil
}

func networkView(n config.NetworkDescriptor) NetworkView {
	v := NetworkView{
		Name:    n.Name,
		URL:     RedactURL(n.URL),
		Class:   string(n.Class),
		ChainID: n.ChainID,
		Signing: string(n.SigningMethod()),
		Timeout: n.Timeout.String(),
	}
	if id, ok := n.KMSKeyID(); ok {
		v.KMSKeyID = id
	}
	if key, ok := n.PrivateKey(); ok {
		if key == placeholderKey {
			v.PrivateKey = "(placeholder)"
		} else {
			v.PrivateKey = "(set)"
		}
	}
	if n.HasGasPrice() {
		v.GasPrice = n.GasPrice.String()
	}
	return v
}

// MaskSecret keeps the first four characters of a secret
func MaskSecret(s string) string {
	switch {
	case s == "":
		return ""
	case len(s) <= 8:
		return strings.Repeat("*", len(s))
	default:
		return s[:4] + strings.Repeat("*", len(s)-4)
	}
}

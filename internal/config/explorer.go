package config

import (
	"github.com/QubeSwap/sgn-v2-contracts/internal/domain/config"
)

// explorerKeyVars maps explorer network names to the variable holding their API key
var explorerKeyVars = []struct {
	network string
	envVar  string
}{
	// Testnets
	{"sepolia", "ETHERSCAN_API_KEY"},
	{"avalancheFujiTestnet", "SNOWTRACE_API_KEY"},
	{"bscTestnet", "BSCSCAN_API_KEY"},
	{"ftmTestnet", "FTMSCAN_API_KEY"},
	{"polygonMumbai", "POLYGONSCAN_API_KEY"},
	// Mainnets
	{"mainnet", "ETHERSCAN_API_KEY"},
	{"avalanche", "SNOWTRACE_API_KEY"},
	{"bsc", "BSCSCAN_API_KEY"},
	{"polygon", "POLYGONSCAN_API_KEY"},
	{"base", "BASE_API_KEY"},
}

// customChainVars declares explorers whose URLs come from the environment
var customChainVars = []struct {
	network    string
	chainID    uint64
	apiVar     string
	browserVar string
}{
	{"arbitrumNova", 42170, "ARBITRUM_NOVA_ENDPOINT", "ARBITRUM_NOVA_EXPLORER"},
	{"linea", 59144, "LINEA_API_ENDPOINT", "LINEA_EXPLORER"},
	{"base", 8453, "BASE_API_ENDPOINT", "BASE_EXPLORER"},
}

// EtherscanV2APIURL is the multichain Etherscan endpoint; the chainid
// query parameter selects the chain.
const EtherscanV2APIURL = "https://api.etherscan.io/v2/api"

// BuiltinExplorers are the Etherscan-compatible explorers known without configuration
var BuiltinExplorers = []config.CustomChain{
	{Network: "mainnet", ChainID: 1, APIURL: EtherscanV2APIURL, BrowserURL: "https://etherscan.io"},
	{Network: "sepolia", ChainID: 11155111, APIURL: EtherscanV2APIURL, BrowserURL: "https://sepolia.etherscan.io"},
	{Network: "bsc", ChainID: 56, APIURL: EtherscanV2APIURL, BrowserURL: "https://bscscan.com"},
	{Network: "bscTestnet", ChainID: 97, APIURL: EtherscanV2APIURL, BrowserURL: "https://testnet.bscscan.com"},
	{Network: "polygon", ChainID: 137, APIURL: EtherscanV2APIURL, BrowserURL: "https://polygonscan.com"},
	{Network: "polygonMumbai", ChainID: 80001, APIURL: EtherscanV2APIURL, BrowserURL: "https://mumbai.polygonscan.com"},
	{Network: "polygonAmoy", ChainID: 80002, APIURL: EtherscanV2APIURL, BrowserURL: "https://amoy.polygonscan.com"},
	{Network: "avalanche", ChainID: 43114, APIURL: "https://api.routescan.io/v2/network/mainnet/evm/43114/etherscan", BrowserURL: "https://snowtrace.io"},
	{Network: "avalancheFujiTestnet", ChainID: 43113, APIURL: "https://api.routescan.io/v2/network/testnet/evm/43113/etherscan", BrowserURL: "https://testnet.snowtrace.io"},
	{Network: "optimisticEthereum", ChainID: 10, APIURL: EtherscanV2APIURL, BrowserURL: "https://optimistic.etherscan.io"},
	{Network: "optimismSepolia", ChainID: 11155420, APIURL: EtherscanV2APIURL, BrowserURL: "https://sepolia-optimism.etherscan.io"},
	{Network: "base", ChainID: 8453, APIURL: EtherscanV2APIURL, BrowserURL: "https://basescan.org"},
	{Network: "baseSepolia", ChainID: 84532, APIURL: EtherscanV2APIURL, BrowserURL: "https://sepolia.basescan.org"},
	{Network: "ftmTestnet", ChainID: 4002, APIURL: EtherscanV2APIURL, BrowserURL: "https://testnet.ftmscan.com"},
	{Network: "arbitrumNova", ChainID: 42170, APIURL: EtherscanV2APIURL, BrowserURL: "https://nova.arbiscan.io"},
	{Network: "linea", ChainID: 59144, APIURL: EtherscanV2APIURL, BrowserURL: "https://lineascan.build"},
}

// LoadExplorerConfig reads explorer API keys and custom chains from the
// environment snapshot. Project-file settings are layered on top: its API
// keys override environment ones and its custom chains come first.
// Custom chains without an API URL are skipped so the built-in entry applies.
func LoadExplorerConfig(env Environment, project ProjectExplorer) config.ExplorerConfig {
	keys := make(map[string]string)
	for _, k := range explorerKeyVars {
		if v := env.Get(k.envVar); v != "" {
			keys[k.network] = v
		}
	}
	for network, key := range project.APIKeys {
		if key = env.Expand(key); key != "" {
			keys[network] = key
		}
	}

	var custom []config.CustomChain
	for _, c := range project.CustomChains {
		c.APIURL = env.Expand(c.APIURL)
		c.BrowserURL = env.Expand(c.BrowserURL)
		if c.APIURL != "" {
			custom = append(custom, c)
		}
	}
	for _, c := range customChainVars {
		apiURL := env.Get(c.apiVar)
		if apiURL == "" {
			continue
		}
		custom = append(custom, config.CustomChain{
			Network:    c.network,
			ChainID:    c.chainID,
			APIURL:     apiURL,
			BrowserURL: env.Get(c.browserVar),
		})
	}

	return config.ExplorerConfig{
		APIKeys:      keys,
		CustomChains: custom,
		Builtin:      BuiltinExplorers,
	}
}

package config

// Explorer is an Etherscan-compatible block explorer for one chain
type Explorer struct {
	Network    string `json:"network" yaml:"network"`
	ChainID    uint64 `json:"chainId" yaml:"chain_id"`
	APIURL     string `json:"apiUrl" yaml:"api_url"`
	BrowserURL string `json:"browserUrl" yaml:"browser_url"`
	APIKey     string `json:"-" yaml:"-"`
}

// CustomChain declares an explorer for a chain the built-in list doesn't know
type CustomChain struct {
	Network    string `toml:"network" json:"network" yaml:"network"`
	ChainID    uint64 `toml:"chain_id" json:"chainId" yaml:"chain_id"`
	APIURL     string `toml:"api_url" json:"apiUrl" yaml:"api_url"`
	BrowserURL string `toml:"browser_url" json:"browserUrl" yaml:"browser_url"`
}

// ExplorerConfig holds API keys by explorer network name plus chain definitions.
type ExplorerConfig struct {
	APIKeys      map[string]string
	CustomChains []CustomChain
	Builtin      []CustomChain
}

// ForChain finds the explorer serving chainID. Custom chains take precedence
// over built-in ones. The API key is looked up by the explorer network name.
func (c ExplorerConfig) ForChain(chainID uint64) (Explorer, bool) {
	for _, list := range [][]CustomChain{c.CustomChains, c.Builtin} {
		for _, chain := range list {
			if chain.ChainID != chainID {
				continue
			}
			return Explorer{
				Network:    chain.Network,
				ChainID:    chain.ChainID,
				APIURL:     chain.APIURL,
				BrowserURL: chain.BrowserURL,
				APIKey:     c.APIKeys[chain.Network],
			}, true
		}
	}
	return Explorer{}, false
}

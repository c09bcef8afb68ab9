package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/QubeSwap/sgn-v2-contracts/internal/domain/config"
)

// ProjectFileName is the optional per-project configuration file
const ProjectFileName = "deploy.toml"

// ProjectFile represents the raw deploy.toml structure
type ProjectFile struct {
	DefaultNetwork string                     `toml:"default_network"`
	Solidity       config.SolidityConfig      `toml:"solidity"`
	ContractSizer  config.ContractSizerConfig `toml:"contract_sizer"`
	Paths          config.PathsConfig         `toml:"paths"`
	Explorer       ProjectExplorer            `toml:"explorer"`
	Networks       map[string]ProjectNetwork  `toml:"networks"`

	// NetworkOrder lists [networks.*] tables in file order
	NetworkOrder []string `toml:"-"`
	// Undecoded lists keys that did not match any known setting
	Undecoded []string `toml:"-"`
	// Found is false when no deploy.toml exists and defaults were used
	Found bool `toml:"-"`
}

// ProjectExplorer is the [explorer] section
type ProjectExplorer struct {
	APIKeys      map[string]string    `toml:"api_keys"`
	CustomChains []config.CustomChain `toml:"custom_chains"`
}

// ProjectNetwork is one [networks.<name>] table. String values may reference
// environment variables as ${VAR}.
type ProjectNetwork struct {
	URL        string `toml:"url"`
	PrivateKey string `toml:"private_key"`
	Class      string `toml:"class"`
	ChainID    uint64 `toml:"chain_id"`
	GasPrice   uint64 `toml:"gas_price"`
	Timeout    string `toml:"timeout"`
}

// DefaultProjectFile returns the settings used when deploy.toml is absent
func DefaultProjectFile() ProjectFile {
	return ProjectFile{
		DefaultNetwork: "localhost",
		Solidity: config.SolidityConfig{
			Version:          "0.8.17",
			OptimizerEnabled: true,
			OptimizerRuns:    800,
		},
		ContractSizer: config.ContractSizerConfig{
			AlphaSort:         true,
			RunOnCompile:      false,
			DisambiguatePaths: false,
		},
		Paths: config.PathsConfig{
			Artifacts:   "artifacts",
			Deployments: "deployments",
		},
	}
}

// LoadProjectFile decodes deploy.toml from projectRoot over the defaults.
// A missing file is not an error.
func LoadProjectFile(projectRoot string) (ProjectFile, error) {
	pf := DefaultProjectFile()
	path := filepath.Join(projectRoot, ProjectFileName)

	md, err := toml.DecodeFile(path, &pf)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return DefaultProjectFile(), nil
		}
		return ProjectFile{}, fmt.Errorf("failed to parse %s: %w", ProjectFileName, err)
	}
	pf.Found = true

	for _, key := range md.Keys() {
		if len(key) == 2 && key[0] == "networks" {
			pf.NetworkOrder = append(pf.NetworkOrder, key[1])
		}
	}
	for _, key := range md.Undecoded() {
		pf.Undecoded = append(pf.Undecoded, key.String())
	}

	return pf, nil
}

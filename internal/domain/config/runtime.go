package config

import (
	"time"
)

// RuntimeConfig represents the complete runtime configuration.
// It is built once at startup and injected into adapters and use cases.
type RuntimeConfig struct {
	// Core settings
	ProjectRoot string

	// Context settings
	Networks       []string // networks selected with --network, empty if not specified
	DefaultNetwork string   // used when no network is selected and prompting is not possible
	Tags           []string // deploy task tags selected with --tags

	// Execution settings
	Debug          bool
	NonInteractive bool
	JSON           bool
	Timeout        time.Duration
	SkipVerify     bool
	AssumeYes      bool

	// Config source tracking
	ConfigSource string // "deploy.toml" or "defaults"

	// Resolved configurations
	NetworkTable  *NetworkTable
	Explorer      ExplorerConfig
	Solidity      SolidityConfig
	ContractSizer ContractSizerConfig
	Paths         PathsConfig
}

// SolidityConfig mirrors the compiler settings the artifacts are built with
type SolidityConfig struct {
	Version          string `toml:"version" json:"version" yaml:"version"`
	OptimizerEnabled bool   `toml:"optimizer" json:"optimizer" yaml:"optimizer"`
	OptimizerRuns    int    `toml:"runs" json:"runs" yaml:"runs"`
}

// ContractSizerConfig controls the contract size report
type ContractSizerConfig struct {
	AlphaSort         bool `toml:"alpha_sort" json:"alphaSort" yaml:"alpha_sort"`
	RunOnCompile      bool `toml:"run_on_compile" json:"runOnCompile" yaml:"run_on_compile"`
	DisambiguatePaths bool `toml:"disambiguate_paths" json:"disambiguatePaths" yaml:"disambiguate_paths"`
}

// PathsConfig holds project-relative directories
type PathsConfig struct {
	Artifacts   string `toml:"artifacts" json:"artifacts" yaml:"artifacts"`
	Deployments string `toml:"deployments" json:"deployments" yaml:"deployments"`
}

package usecase

import (
	"context"
	"sort"

	"github.com/samber/lo"

	"github.com/QubeSwap/sgn-v2-contracts/internal/domain/config"
	"github.com/QubeSwap/sgn-v2-contracts/internal/domain/models"
)

const (
	// MaxDeployedSize is the EIP-170 runtime code limit
	MaxDeployedSize = 24576
	// MaxInitcodeSize is the EIP-3860 creation code limit
	MaxInitcodeSize = 2 * MaxDeployedSize
)

// ContractSize is the code size of one compiled contract
type ContractSize struct {
	Name         string `json:"name"`
	DeployedSize int    `json:"deployedSize"`
	InitcodeSize int    `json:"initcodeSize"`
}

// OverLimit reports whether the contract can't be deployed on mainnet chains
func (c ContractSize) OverLimit() bool {
	return c.DeployedSize > MaxDeployedSize || c.InitcodeSize > MaxInitcodeSize
}

// SizeContractsResult lists contract sizes
type SizeContractsResult struct {
	Contracts []ContractSize `json:"contracts"`
	OverLimit int            `json:"overLimit"`
}

// SizeContracts reports bytecode sizes of the compiled contracts
type SizeContracts struct {
	config    *config.RuntimeConfig
	artifacts ArtifactRepository
}

// NewSizeContracts creates a new SizeContracts use case
func NewSizeContracts(cfg *config.RuntimeConfig, artifacts ArtifactRepository) *SizeContracts {
	return &SizeContracts{config: cfg, artifacts: artifacts}
}

// Run lists deployable contracts, sorted by name when alpha sort is on and
// by deployed size (largest first) otherwise.
func (uc *SizeContracts) Run(ctx context.Context) (*SizeContractsResult, error) {
	artifacts, err := uc.artifacts.ListArtifacts(ctx)
	if err != nil {
		return nil, err
	}

	sizer := uc.config.ContractSizer
	deployable := lo.Filter(artifacts, func(a *models.Artifact, _ int) bool { return a.HasBytecode() })

	// short names collide when two sources define the same contract
	counts := lo.CountValuesBy(deployable, func(a *models.Artifact) string { return a.ContractName })

	contracts := lo.Map(deployable, func(a *models.Artifact, _ int) ContractSize {
		name := a.ContractName
		if sizer.DisambiguatePaths || counts[name] > 1 {
			name = a.FullyQualifiedName()
		}
		return ContractSize{
			Name:         name,
			DeployedSize: a.DeployedSize(),
			InitcodeSize: a.InitcodeSize(),
		}
	})

	if sizer.AlphaSort {
		sort.SliceStable(contracts, func(i, j int) bool { return contracts[i].Name < contracts[j].Name })
	} else {
		sort.SliceStable(contracts, func(i, j int) bool { return contracts[i].DeployedSize > contracts[j].DeployedSize })
	}

	return &SizeContractsResult{
		Contracts: contracts,
		OverLimit: lo.CountBy(contracts, func(c ContractSize) bool { return c.OverLimit() }),
	}, nil
}

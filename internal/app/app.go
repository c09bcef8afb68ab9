package app

import (
	"github.com/QubeSwap/sgn-v2-contracts/internal/domain/config"
	"github.com/QubeSwap/sgn-v2-contracts/internal/usecase"
)

// App is the main application container that holds all use cases
type App struct {
	// Configuration
	Config *config.RuntimeConfig

	// Shared dependencies
	Selector usecase.NetworkSelector
	Tasks    *usecase.TaskRegistry

	// Use cases
	DeployContracts  *usecase.DeployContracts
	VerifyDeployment *usecase.VerifyDeployment
	ListNetworks     *usecase.ListNetworks
	ListDeployments  *usecase.ListDeployments
	ShowConfig       *usecase.ShowConfig
	SizeContracts    *usecase.SizeContracts
}

// NewApp creates a new application instance with all use cases
func NewApp(
	cfg *config.RuntimeConfig,
	selector usecase.NetworkSelector,
	tasks *usecase.TaskRegistry,
	deployContracts *usecase.DeployContracts,
	verifyDeployment *usecase.VerifyDeployment,
	listNetworks *usecase.ListNetworks,
	listDeployments *usecase.ListDeployments,
	showConfig *usecase.ShowConfig,
	sizeContracts *usecase.SizeContracts,
) (*App, error) {
	return &App{
		Config:           cfg,
		Selector:         selector,
		Tasks:            tasks,
		DeployContracts:  deployContracts,
		VerifyDeployment: verifyDeployment,
		ListNetworks:     listNetworks,
		ListDeployments:  listDeployments,
		ShowConfig:       showConfig,
		SizeContracts:    sizeContracts,
	}, nil
}

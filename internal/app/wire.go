//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"github.com/spf13/viper"

	"github.com/QubeSwap/sgn-v2-contracts/internal/adapters"
	"github.com/QubeSwap/sgn-v2-contracts/internal/config"
	"github.com/QubeSwap/sgn-v2-contracts/internal/logging"
	"github.com/QubeSwap/sgn-v2-contracts/internal/usecase"
)

// InitApp creates a fully wired App instance
func InitApp(v *viper.Viper, sink usecase.ProgressSink) (*App, error) {
	wire.Build(
		// Ambient
		logging.LoggingSet,
		config.Provider,

		// Adapters
		adapters.AllAdapters,

		// Use cases
		usecase.NewTaskRegistry,
		usecase.NewDeployContracts,
		usecase.NewVerifyDeployment,
		usecase.NewListNetworks,
		usecase.NewListDeployments,
		usecase.NewShowConfig,
		usecase.NewSizeContracts,

		// App
		NewApp,
	)
	return nil, nil
}

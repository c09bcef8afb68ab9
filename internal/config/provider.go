package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/QubeSwap/sgn-v2-contracts/internal/domain/config"
)

// flagKeys maps command flags to viper keys
var flagKeys = map[string]string{
	"network":         "network",
	"debug":           "debug",
	"non-interactive": "non_interactive",
	"json":            "json",
	"timeout":         "timeout",
	"tags":            "tags",
	"skip-verify":     "skip_verify",
	"yes":             "yes",
	"project-root":    "project_root",
}

// Provider creates RuntimeConfig for Wire dependency injection
func Provider(v *viper.Viper, log *slog.Logger) (*config.RuntimeConfig, error) {
	projectRoot := v.GetString("project_root")
	if projectRoot == "" {
		var err error
		projectRoot, err = FindProjectRoot()
		if err != nil {
			return nil, fmt.Errorf("failed to find project root: %w", err)
		}
	}

	pf, err := LoadProjectFile(projectRoot)
	if err != nil {
		return nil, err
	}
	for _, key := range pf.Undecoded {
		log.Warn("unknown setting in "+ProjectFileName, "key", key)
	}

	env := EnvironmentFromOS()

	cfg := &config.RuntimeConfig{
		ProjectRoot:    projectRoot,
		Networks:       splitList(v.GetStringSlice("network")),
		DefaultNetwork: pf.DefaultNetwork,
		Tags:           splitList(v.GetStringSlice("tags")),
		Debug:          v.GetBool("debug"),
		NonInteractive: v.GetBool("non_interactive"),
		JSON:           v.GetBool("json"),
		Timeout:        v.GetDuration("timeout"),
		SkipVerify:     v.GetBool("skip_verify"),
		AssumeYes:      v.GetBool("yes"),
		ConfigSource:   "defaults",
		NetworkTable:   NewNetworkBuilder(env, log).Build(pf.Networks, pf.NetworkOrder),
		Explorer:       LoadExplorerConfig(env, pf.Explorer),
		Solidity:       pf.Solidity,
		ContractSizer:  pf.ContractSizer,
		Paths:          pf.Paths,
	}
	if pf.Found {
		cfg.ConfigSource = ProjectFileName
	}

	return cfg, nil
}

// FindProjectRoot walks up from the current directory looking for deploy.toml
// or hardhat.config.ts. When neither exists the current directory is used.
func FindProjectRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for _, marker := range []string{ProjectFileName, "hardhat.config.ts"} {
		dir := cwd
		for {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				return dir, nil
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}

	return cwd, nil
}

// SetupViper creates and configures a viper instance. The project .env files
// are loaded first so QUBE_* settings may live there too.
func SetupViper(projectRoot string, flags *pflag.FlagSet) *viper.Viper {
	LoadDotEnv(projectRoot)

	v := viper.New()

	// Set up environment variables
	v.SetEnvPrefix("QUBE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	// Set defaults
	v.SetDefault("timeout", "30m")
	v.SetDefault("debug", false)
	v.SetDefault("non_interactive", false)
	v.SetDefault("log_level", "info")
	v.SetDefault("project_root", projectRoot)

	if flags != nil {
		flags.VisitAll(func(f *pflag.Flag) {
			key, ok := flagKeys[f.Name]
			if !ok {
				return
			}
			if err := v.BindPFlag(key, f); err != nil {
				panic(err)
			}
		})
	}

	return v
}

// splitList flattens comma separated entries and drops empty ones
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

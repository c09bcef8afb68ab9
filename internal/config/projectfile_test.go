package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/QubeSwap/sgn-v2-contracts/internal/domain/config"
)

func TestLoadProjectFileMissing(t *testing.T) {
	pf, err := LoadProjectFile(t.TempDir())
	require.NoError(t, err)

	assert.False(t, pf.Found)
	assert.Equal(t, DefaultProjectFile(), pf)
	assert.Equal(t, "0.8.17", pf.Solidity.Version)
	assert.True(t, pf.Solidity.OptimizerEnabled)
	assert.Equal(t, 800, pf.Solidity.OptimizerRuns)
	assert.True(t, pf.ContractSizer.AlphaSort)
	assert.False(t, pf.ContractSizer.DisambiguatePaths)
	assert.Equal(t, "artifacts", pf.Paths.Artifacts)
	assert.Equal(t, "deployments", pf.Paths.Deployments)
}

func TestLoadProjectFile(t *testing.T) {
	dir := t.TempDir()
	content := `
default_network = "bscTest"

[solidity]
runs = 200

[contract_sizer]
disambiguate_paths = true

[paths]
deployments = "out/deployments"

[explorer.api_keys]
qubetics = "${QUBETICS_SCAN_KEY}"

[[explorer.custom_chains]]
network = "qubetics"
chain_id = 9030
api_url = "https://ticsscan.com/api"
browser_url = "https://ticsscan.com"

[networks.zeta]
url = "${ZETA_RPC}"
chain_id = 7000

[networks.linea]
url = "https://linea.example"
class = "mainnet"
gas_price = 1000000000
timeout = "1m"

[unknown]
value = 1
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ProjectFileName), []byte(content), 0644))

	pf, err := LoadProjectFile(dir)
	require.NoError(t, err)

	assert.True(t, pf.Found)
	assert.Equal(t, "bscTest", pf.DefaultNetwork)
	// unspecified fields keep their defaults
	assert.Equal(t, "0.8.17", pf.Solidity.Version)
	assert.Equal(t, 200, pf.Solidity.OptimizerRuns)
	assert.True(t, pf.ContractSizer.AlphaSort)
	assert.True(t, pf.ContractSizer.DisambiguatePaths)
	assert.Equal(t, "artifacts", pf.Paths.Artifacts)
	assert.Equal(t, "out/deployments", pf.Paths.Deployments)

	assert.Equal(t, map[string]string{"qubetics": "${QUBETICS_SCAN_KEY}"}, pf.Explorer.APIKeys)
	assert.Equal(t, []config.CustomChain{
		{Network: "qubetics", ChainID: 9030, APIURL: "https://ticsscan.com/api", BrowserURL: "https://ticsscan.com"},
	}, pf.Explorer.CustomChains)

	assert.Equal(t, []string{"zeta", "linea"}, pf.NetworkOrder)
	assert.Equal(t, ProjectNetwork{URL: "${ZETA_RPC}", ChainID: 7000}, pf.Networks["zeta"])
	assert.Equal(t, ProjectNetwork{
		URL: "https://linea.example", Class: "mainnet", GasPrice: 1_000_000_000, Timeout: "1m",
	}, pf.Networks["linea"])

	assert.Contains(t, pf.Undecoded, "unknown.value")
}

func TestLoadProjectFileInvalid(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ProjectFileName), []byte("[solidity\n"), 0644))

	_, err := LoadProjectFile(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse deploy.toml")
}

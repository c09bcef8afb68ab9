package render

import (
	"bytes"
	"encoding/json"
	"errors"
	"math/big"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/QubeSwap/sgn-v2-contracts/internal/domain/config"
	"github.com/QubeSwap/sgn-v2-contracts/internal/domain/models"
	"github.com/QubeSwap/sgn-v2-contracts/internal/usecase"
)

func init() {
	color.NoColor = true
}

func TestDeployRenderer(t *testing.T) {
	t.Run("empty result", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewDeployRenderer(&buf).RenderDeployResult(&usecase.DeployContractsResult{}))
		assert.Contains(t, buf.String(), "Nothing was deployed")
	})

	t.Run("network block", func(t *testing.T) {
		var buf bytes.Buffer
		result := &usecase.DeployContractsResult{Networks: []*usecase.NetworkDeployment{{
			Network:  "bscTest",
			ChainID:  97,
			Deployer: "0x70997970C51812dc3A010C7d01b50e0d17dc79C8",
			Deployments: []*models.Deployment{{
				ContractName:    "QubeBridge",
				Address:         "0x5FbDB2315678afecb367f032d93F642f64180aa3",
				TransactionHash: "0xabc",
				Verification: models.VerificationInfo{
					Status:      models.VerificationStatusVerified,
					ExplorerURL: "https://testnet.bscscan.com/address/0x5FbDB2315678afecb367f032d93F642f64180aa3#code",
				},
			}},
			Warnings: []string{"explorer busy"},
		}}}
		require.NoError(t, NewDeployRenderer(&buf).RenderDeployResult(result))

		out := buf.String()
		assert.Contains(t, out, "bscTest")
		assert.Contains(t, out, "chain 97")
		assert.Contains(t, out, "0x5FbDB2315678afecb367f032d93F642f64180aa3")
		assert.Contains(t, out, "✓ Verified")
		assert.Contains(t, out, "#code")
		assert.Contains(t, out, "explorer busy")
		assert.Contains(t, out, "Deployed 1 contract(s) to 1 network(s)")
	})
}

func TestVerifyRenderer(t *testing.T) {
	tests := []struct {
		name   string
		result *usecase.VerifyDeploymentResult
		want   []string
	}{
		{
			name: "verified",
			result: &usecase.VerifyDeploymentResult{
				Network: "bsc", ChainID: 56, ContractName: "QubeBridge", Address: "0x01",
				Verification:  models.VerificationInfo{Status: models.VerificationStatusVerified, GUID: "guid-1"},
				RecordUpdated: true,
			},
			want: []string{"Contract source verified", "guid-1", "Deployment record updated"},
		},
		{
			name: "rejected",
			result: &usecase.VerifyDeploymentResult{
				Network: "bsc", ChainID: 56, ContractName: "QubeBridge", Address: "0x01",
				Verification: models.VerificationInfo{Status: models.VerificationStatusFailed},
				Warning:      errors.New("bytecode mismatch"),
			},
			want: []string{"Verification failed: bytecode mismatch"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, NewVerifyRenderer(&buf).RenderVerifyResult(tt.result))
			for _, want := range tt.want {
				assert.Contains(t, buf.String(), want)
			}
		})
	}
}

func TestNetworksRenderer(t *testing.T) {
	result := &usecase.ListNetworksResult{
		DefaultNetwork: "localhost",
		Duplicates:     []string{"qubetics"},
		Networks: []usecase.NetworkStatus{
			{Name: "localhost", Endpoint: "http://localhost:8545", Class: config.NetworkClassLocal,
				SigningMethod: config.SigningMethodPrivateKey, ExpectedChainID: 31337, LiveChainID: 31337},
			{Name: "bsc", Endpoint: "https://bsc.example/***", Class: config.NetworkClassMainnet,
				SigningMethod: config.SigningMethodKMS, ExpectedChainID: 56, GasPrice: big.NewInt(5_500_000_000),
				Error: errors.New("dial failed")},
		},
	}

	t.Run("table", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewNetworksRenderer(&buf).RenderNetworksList(result, true))
		out := buf.String()
		assert.Contains(t, out, "5.5 gwei")
		assert.Contains(t, out, "✓ chain 31337")
		assert.Contains(t, out, "dial failed")
		assert.Contains(t, out, "network qubetics is defined more than once")
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewNetworksRenderer(&buf).RenderJSON(result))

		var decoded []map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
		require.Len(t, decoded, 2)
		assert.Equal(t, true, decoded[0]["default"])
		assert.Equal(t, "5500000000", decoded[1]["gasPrice"])
		assert.Equal(t, "dial failed", decoded[1]["error"])
	})

	t.Run("empty", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewNetworksRenderer(&buf).RenderNetworksList(&usecase.ListNetworksResult{}, false))
		assert.Contains(t, buf.String(), "No networks configured")
	})
}

func TestDeploymentsRenderer(t *testing.T) {
	var buf bytes.Buffer
	result := &usecase.DeploymentListResult{
		Deployments: []*models.Deployment{
			{ContractName: "QubeBridge", Network: "polygon", ChainID: 137, Address: "0x03", CreatedAt: time.Now().Add(-2 * time.Hour)},
			{ContractName: "QubeBridge", Network: "bsc", ChainID: 56, Address: "0x01",
				Verification: models.VerificationInfo{Status: models.VerificationStatusVerified}},
		},
		Summary: usecase.DeploymentSummary{Total: 2, Verified: 1, ByNetwork: map[string]int{"bsc": 1, "polygon": 1}},
	}
	require.NoError(t, NewDeploymentsRenderer(&buf).RenderDeploymentList(result))

	out := buf.String()
	assert.Less(t, strings.Index(out, "bsc"), strings.Index(out, "polygon"))
	assert.Contains(t, out, "2 hours ago")
	assert.Contains(t, out, "2 deployment(s) on 2 network(s), 1 verified")
}

func TestSizeRenderer(t *testing.T) {
	var buf bytes.Buffer
	result := &usecase.SizeContractsResult{
		Contracts: []usecase.ContractSize{
			{Name: "Huge", DeployedSize: 25600, InitcodeSize: 26000},
			{Name: "QubeBridge", DeployedSize: 18432, InitcodeSize: 20480},
		},
		OverLimit: 1,
	}
	require.NoError(t, NewSizeRenderer(&buf).RenderSizes(result))

	out := buf.String()
	assert.Contains(t, out, "25.000")
	assert.Contains(t, out, "18.000")
	assert.Contains(t, out, "1 contract(s) exceed the size limit of 24 KiB deployed / 48 KiB initcode")
}

func TestConfigRenderer(t *testing.T) {
	var buf bytes.Buffer
	result := &usecase.ShowConfigResult{
		ProjectRoot:    "/work/bridge",
		ConfigSource:   "deploy.toml",
		DefaultNetwork: "localhost",
		Networks:       []usecase.NetworkView{{Name: "localhost", Signing: "private_key", PrivateKey: "(placeholder)"}},
		Solidity:       config.SolidityConfig{Version: "0.8.17", OptimizerEnabled: true, OptimizerRuns: 800},
	}
	require.NoError(t, NewConfigRenderer(&buf).RenderConfig(result))

	out := buf.String()
	assert.Contains(t, out, "Source:  deploy.toml")
	assert.Contains(t, out, "default_network: localhost")
	assert.Contains(t, out, "private_key: (placeholder)")
	assert.Contains(t, out, "runs: 800")
}

func TestFormatError(t *testing.T) {
	assert.Equal(t, "❌ Connectivity failure", FormatError("connectivity failure"))
	assert.Equal(t, "❌ ", FormatError(""))
}

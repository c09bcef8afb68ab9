package deployments_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/QubeSwap/sgn-v2-contracts/internal/adapters/repository/deployments"
	"github.com/QubeSwap/sgn-v2-contracts/internal/domain"
	"github.com/QubeSwap/sgn-v2-contracts/internal/domain/config"
	"github.com/QubeSwap/sgn-v2-contracts/internal/domain/models"
)

func newRepo(t *testing.T) (*deployments.FileRepository, string) {
	root := t.TempDir()
	repo := deployments.NewFileRepository(&config.RuntimeConfig{
		ProjectRoot: root,
		Paths:       config.PathsConfig{Deployments: "deployments"},
	})
	return repo, filepath.Join(root, "deployments")
}

func bridge(network string, chainID uint64, address string) *models.Deployment {
	return &models.Deployment{
		ContractName: "QubeBridge",
		Network:      network,
		ChainID:      chainID,
		Address:      address,
		Deployer:     "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266",
		Verification: models.VerificationInfo{Status: models.VerificationStatusUnverified},
	}
}

func TestFileRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("save and get", func(t *testing.T) {
		repo, dir := newRepo(t)

		require.NoError(t, repo.SaveDeployment(ctx, bridge("bsc", 56, "0x1234567890123456789012345678901234567890")))

		assert.FileExists(t, filepath.Join(dir, "bsc", "QubeBridge.json"))
		chainID, err := os.ReadFile(filepath.Join(dir, "bsc", ".chainId"))
		require.NoError(t, err)
		assert.Equal(t, "56", string(chainID))

		got, err := repo.GetDeployment(ctx, "bsc", "QubeBridge")
		require.NoError(t, err)
		assert.Equal(t, "0x1234567890123456789012345678901234567890", got.Address)
		assert.Equal(t, models.DeploymentStateDeployed, got.State())
		assert.False(t, got.CreatedAt.IsZero())
	})

	t.Run("save keeps created time on update", func(t *testing.T) {
		repo, _ := newRepo(t)

		d := bridge("bsc", 56, "0x1234567890123456789012345678901234567890")
		require.NoError(t, repo.SaveDeployment(ctx, d))
		created := d.CreatedAt

		d.Verification.Status = models.VerificationStatusVerified
		require.NoError(t, repo.SaveDeployment(ctx, d))

		got, err := repo.GetDeployment(ctx, "bsc", "QubeBridge")
		require.NoError(t, err)
		assert.True(t, got.IsVerified())
		assert.True(t, created.Equal(got.CreatedAt))
	})

	t.Run("missing deployment", func(t *testing.T) {
		repo, _ := newRepo(t)
		_, err := repo.GetDeployment(ctx, "bsc", "QubeBridge")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("chain id mismatch is rejected", func(t *testing.T) {
		repo, _ := newRepo(t)
		require.NoError(t, repo.SaveDeployment(ctx, bridge("bsc", 56, "0x1234567890123456789012345678901234567890")))

		err := repo.SaveDeployment(ctx, bridge("bsc", 97, "0x1234567890123456789012345678901234567890"))
		assert.ErrorIs(t, err, domain.ErrNetworkMismatch)
	})

	t.Run("get by address ignores case", func(t *testing.T) {
		repo, _ := newRepo(t)
		require.NoError(t, repo.SaveDeployment(ctx, bridge("polygon", 137, "0xABCDEF0123456789012345678901234567890123")))

		got, err := repo.GetDeploymentByAddress(ctx, "polygon", "0xabcdef0123456789012345678901234567890123")
		require.NoError(t, err)
		assert.Equal(t, "QubeBridge", got.ContractName)

		_, err = repo.GetDeploymentByAddress(ctx, "polygon", "0x0000000000000000000000000000000000000000")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("list across networks is sorted", func(t *testing.T) {
		repo, _ := newRepo(t)
		require.NoError(t, repo.SaveDeployment(ctx, bridge("polygon", 137, "0x01")))
		require.NoError(t, repo.SaveDeployment(ctx, bridge("bsc", 56, "0x02")))
		other := bridge("bsc", 56, "0x03")
		other.ContractName = "PeggedTokenBridge"
		require.NoError(t, repo.SaveDeployment(ctx, other))

		all, err := repo.ListDeployments(ctx, "")
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, "bsc/PeggedTokenBridge", all[0].ID())
		assert.Equal(t, "bsc/QubeBridge", all[1].ID())
		assert.Equal(t, "polygon/QubeBridge", all[2].ID())

		bsc, err := repo.ListDeployments(ctx, "bsc")
		require.NoError(t, err)
		assert.Len(t, bsc, 2)

		none, err := repo.ListDeployments(ctx, "base")
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("list with no deployments dir", func(t *testing.T) {
		repo, _ := newRepo(t)
		all, err := repo.ListDeployments(ctx, "")
		require.NoError(t, err)
		assert.Empty(t, all)
	})

	t.Run("concurrent saves on one network", func(t *testing.T) {
		repo, _ := newRepo(t)

		var wg sync.WaitGroup
		errs := make([]error, 8)
		for i := range errs {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				errs[i] = repo.SaveDeployment(ctx, bridge("bsc", 56, "0x1234567890123456789012345678901234567890"))
			}(i)
		}
		wg.Wait()

		for _, err := range errs {
			assert.NoError(t, err)
		}
		got, err := repo.GetDeployment(ctx, "bsc", "QubeBridge")
		require.NoError(t, err)
		assert.Equal(t, uint64(56), got.ChainID)
	})
}

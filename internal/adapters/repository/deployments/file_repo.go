package deployments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gofrs/flock"

	"github.com/QubeSwap/sgn-v2-contracts/internal/domain"
	"github.com/QubeSwap/sgn-v2-contracts/internal/domain/config"
	"github.com/QubeSwap/sgn-v2-contracts/internal/domain/models"
	"github.com/QubeSwap/sgn-v2-contracts/internal/usecase"
)

const (
	ChainIDFile = ".chainId"
	LockFile    = ".lock"

	lockRetryDelay = 100 * time.Millisecond
)

// FileRepository stores deployments in the hardhat-deploy layout:
// deployments/<network>/<Contract>.json plus a .chainId file per network.
// Writes take an advisory lock on deployments/<network>/.lock.
type FileRepository struct {
	dir string
}

// NewFileRepository creates a repository rooted at the configured deployments path
func NewFileRepository(cfg *config.RuntimeConfig) *FileRepository {
	dir := cfg.Paths.Deployments
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(cfg.ProjectRoot, dir)
	}
	return &FileRepository{dir: dir}
}

// SaveDeployment writes the record atomically, replacing any previous one
// for the same contract on the same network.
func (r *FileRepository) SaveDeployment(ctx context.Context, deployment *models.Deployment) error {
	if deployment.Network == "" || deployment.ContractName == "" {
		return fmt.Errorf("deployment needs a network and a contract name")
	}

	networkDir := filepath.Join(r.dir, deployment.Network)
	if err := os.MkdirAll(networkDir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", networkDir, err)
	}

	lock := flock.New(filepath.Join(networkDir, LockFile))
	locked, err := lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return fmt.Errorf("failed to lock %s: %w", networkDir, err)
	}
	if !locked {
		return fmt.Errorf("could not lock %s", networkDir)
	}
	defer lock.Unlock()

	if err := r.checkChainID(networkDir, deployment); err != nil {
		return err
	}

	if deployment.CreatedAt.IsZero() {
		deployment.CreatedAt = time.Now()
	}
	deployment.UpdatedAt = time.Now()

	data, err := json.MarshalIndent(deployment, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode deployment: %w", err)
	}

	return writeAtomic(filepath.Join(networkDir, deployment.ContractName+".json"), data)
}

// GetDeployment reads the record for a contract on a network
func (r *FileRepository) GetDeployment(ctx context.Context, network, contractName string) (*models.Deployment, error) {
	path := filepath.Join(r.dir, network, contractName+".json")
	deployment, err := readDeployment(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s on %s", domain.ErrNotFound, contractName, network)
		}
		return nil, err
	}
	if deployment.Network == "" {
		deployment.Network = network
	}
	return deployment, nil
}

// GetDeploymentByAddress finds a record by address, ignoring case
func (r *FileRepository) GetDeploymentByAddress(ctx context.Context, network, address string) (*models.Deployment, error) {
	all, err := r.ListDeployments(ctx, network)
	if err != nil {
		return nil, err
	}
	for _, d := range all {
		if strings.EqualFold(d.Address, address) {
			return d, nil
		}
	}
	return nil, fmt.Errorf("%w: no deployment at %s on %s", domain.ErrNotFound, address, network)
}

// ListDeployments returns the records of one network, or of all networks
// when network is empty. Results are sorted by network then contract.
func (r *FileRepository) ListDeployments(ctx context.Context, network string) ([]*models.Deployment, error) {
	var networks []string
	if network != "" {
		networks = []string{network}
	} else {
		entries, err := os.ReadDir(r.dir)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, nil
			}
			return nil, fmt.Errorf("failed to read %s: %w", r.dir, err)
		}
		for _, e := range entries {
			if e.IsDir() {
				networks = append(networks, e.Name())
			}
		}
	}

	var result []*models.Deployment
	for _, n := range networks {
		entries, err := os.ReadDir(filepath.Join(r.dir, n))
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("failed to read deployments for %s: %w", n, err)
		}
		for _, e := range entries {
			if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
				continue
			}
			d, err := readDeployment(filepath.Join(r.dir, n, e.Name()))
			if err != nil {
				return nil, err
			}
			if d.Network == "" {
				d.Network = n
			}
			result = append(result, d)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Network != result[j].Network {
			return result[i].Network < result[j].Network
		}
		return result[i].ContractName < result[j].ContractName
	})

	return result, nil
}

// checkChainID writes the .chainId file on first use and refuses to mix
// chains in one network directory afterwards.
func (r *FileRepository) checkChainID(networkDir string, deployment *models.Deployment) error {
	path := filepath.Join(networkDir, ChainIDFile)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return writeAtomic(path, []byte(strconv.FormatUint(deployment.ChainID, 10)))
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	existing, err := strconv.ParseUint(strings.TrimSpace(string(data)), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid chain id in %s: %w", path, err)
	}
	if existing != deployment.ChainID {
		return fmt.Errorf("%w: %s holds chain %d, deployment is on chain %d",
			domain.ErrNetworkMismatch, deployment.Network, existing, deployment.ChainID)
	}
	return nil
}

func readDeployment(path string) (*models.Deployment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var deployment models.Deployment
	if err := json.Unmarshal(data, &deployment); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &deployment, nil
}

func writeAtomic(path string, data []byte) error {
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmpPath, path)
}

var _ usecase.DeploymentRepository = (*FileRepository)(nil)

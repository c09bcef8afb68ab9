package artifacts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/QubeSwap/sgn-v2-contracts/internal/domain"
	"github.com/QubeSwap/sgn-v2-contracts/internal/domain/config"
	"github.com/QubeSwap/sgn-v2-contracts/internal/domain/models"
	"github.com/QubeSwap/sgn-v2-contracts/internal/usecase"
)

const buildInfoDir = "build-info"

// debugFile is the <Name>.dbg.json file written next to each artifact
type debugFile struct {
	Format    string `json:"_format"`
	BuildInfo string `json:"buildInfo"`
}

// Repository reads Hardhat artifacts from the project's artifacts directory.
// The directory is indexed on first use.
type Repository struct {
	projectRoot string
	dir         string

	mu      sync.Mutex
	indexed bool
	byName  map[string][]*models.Artifact
	all     []*models.Artifact
}

// NewRepository creates an artifact repository for the configured artifacts path
func NewRepository(cfg *config.RuntimeConfig) *Repository {
	dir := cfg.Paths.Artifacts
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(cfg.ProjectRoot, dir)
	}
	return &Repository{projectRoot: cfg.ProjectRoot, dir: dir}
}

// GetArtifact finds an artifact by contract name or by "path/File.sol:Name".
func (r *Repository) GetArtifact(ctx context.Context, name string) (*models.Artifact, error) {
	if err := r.index(); err != nil {
		return nil, err
	}

	source, contract, qualified := strings.Cut(name, ":")
	if !qualified {
		contract = name
	}

	var matches []*models.Artifact
	for _, a := range r.byName[contract] {
		if !qualified || a.SourceName == source {
			matches = append(matches, a)
		}
	}

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%w: no artifact for %s in %s (compile the contracts first)", domain.ErrContractNotFound, name, r.dir)
	case 1:
		return matches[0], nil
	default:
		names := make([]string, len(matches))
		for i, m := range matches {
			names[i] = m.FullyQualifiedName()
		}
		return nil, domain.AmbiguousArtifactErr{Name: name, Matches: names}
	}
}

// ListArtifacts returns every artifact sorted by fully qualified name
func (r *Repository) ListArtifacts(ctx context.Context) ([]*models.Artifact, error) {
	if err := r.index(); err != nil {
		return nil, err
	}
	out := make([]*models.Artifact, len(r.all))
	copy(out, r.all)
	return out, nil
}

// GetBuildInfo loads the compiler input the artifact was built from
func (r *Repository) GetBuildInfo(ctx context.Context, artifact *models.Artifact) (*models.BuildInfo, error) {
	if artifact.BuildInfoFile == "" {
		return nil, fmt.Errorf("%w: no build info for %s", domain.ErrNotFound, artifact.FullyQualifiedName())
	}

	data, err := os.ReadFile(filepath.Join(r.projectRoot, artifact.BuildInfoFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: build info %s", domain.ErrNotFound, artifact.BuildInfoFile)
		}
		return nil, fmt.Errorf("failed to read build info: %w", err)
	}

	var info models.BuildInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, fmt.Errorf("failed to parse build info %s: %w", artifact.BuildInfoFile, err)
	}
	return &info, nil
}

func (r *Repository) index() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexed {
		return nil
	}

	byName := make(map[string][]*models.Artifact)
	var all []*models.Artifact

	err := filepath.WalkDir(r.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == buildInfoDir {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".json") || strings.HasSuffix(path, ".dbg.json") {
			return nil
		}

		artifact, err := r.readArtifact(path)
		if err != nil {
			return err
		}
		if artifact == nil {
			return nil
		}
		byName[artifact.ContractName] = append(byName[artifact.ContractName], artifact)
		all = append(all, artifact)
		return nil
	})
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to scan artifacts: %w", err)
	}

	sort.Slice(all, func(i, j int) bool {
		return all[i].FullyQualifiedName() < all[j].FullyQualifiedName()
	})

	r.byName = byName
	r.all = all
	r.indexed = true
	return nil
}

// readArtifact parses one artifact file. Files that aren't artifacts return nil.
func (r *Repository) readArtifact(path string) (*models.Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var artifact models.Artifact
	if err := json.Unmarshal(data, &artifact); err != nil || artifact.ContractName == "" {
		return nil, nil
	}

	artifact.File = r.rel(path)

	dbgPath := strings.TrimSuffix(path, ".json") + ".dbg.json"
	if dbgData, err := os.ReadFile(dbgPath); err == nil {
		var dbg debugFile
		if err := json.Unmarshal(dbgData, &dbg); err == nil && dbg.BuildInfo != "" {
			artifact.BuildInfoFile = r.rel(filepath.Join(filepath.Dir(path), dbg.BuildInfo))
		}
	}

	return &artifact, nil
}

func (r *Repository) rel(path string) string {
	if rel, err := filepath.Rel(r.projectRoot, path); err == nil {
		return rel
	}
	return path
}

var _ usecase.ArtifactRepository = (*Repository)(nil)

package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"github.com/bnema/agentctl/internal/domain"
	"github.com/bnema/agentctl/internal/ports"
)

const (
	InstancePathKey    = "instance.path"
	instanceFileMode   = 0o600
	instanceDirMode    = 0o700
	instanceConfigDir  = ".agentctl"
	instanceConfigFile = "instance.toml"
	tempFilePattern    = ".instance-*.toml.tmp"
)

// Repository keeps the single agent instance in a TOML file.
type Repository struct {
	instancePath string
	mu           *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.InstanceRepository = (*Repository)(nil)

func NewRepository(cfg *viper.Viper) (*Repository, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	instancePath := cfg.GetString(InstancePathKey)
	if instancePath == "" {
		defaultPath, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		instancePath = defaultPath
	}

	instancePath, err := normalizeInstancePath(instancePath)
	if err != nil {
		return nil, err
	}

	return &Repository{instancePath: instancePath, mu: lockForPath(instancePath)}, nil
}

func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}

	return filepath.Join(homeDir, instanceConfigDir, instanceConfigFile), nil
}

func (r *Repository) Path() string {
	return r.instancePath
}

func (r *Repository) Get(ctx context.Context) (domain.AgentInstance, error) {
	if err := ctx.Err(); err != nil {
		return domain.AgentInstance{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return domain.AgentInstance{}, err
	}
	if file.Instance == nil {
		return domain.AgentInstance{}, domain.ErrInstanceNotFound
	}

	return fromSchema(*file.Instance), nil
}

func (r *Repository) Save(ctx context.Context, instance domain.AgentInstance) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := instance.Validate(); err != nil {
		return fmt.Errorf("validate agent instance: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}

	encoded := toSchema(instance)
	file.Instance = &encoded

	if err := ctx.Err(); err != nil {
		return err
	}

	return r.writeSchema(file)
}

func (r *Repository) readSchema() (fileSchema, error) {
	data, err := os.ReadFile(r.instancePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fileSchema{}, nil
		}
		return fileSchema{}, fmt.Errorf("read instance file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return fileSchema{}, fmt.Errorf("decode instance file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return fileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func (r *Repository) writeSchema(file fileSchema) error {
	file.applyDefaults()

	if err := os.MkdirAll(filepath.Dir(r.instancePath), instanceDirMode); err != nil {
		return fmt.Errorf("create instance directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode instance file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(r.instancePath), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp instance file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp instance file: %w", err)
	}
	if err := tempFile.Chmod(instanceFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp instance file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp instance file: %w", err)
	}

	if err := os.Rename(tempName, r.instancePath); err != nil {
		return fmt.Errorf("replace instance file: %w", err)
	}
	cleanup = false

	return nil
}

func normalizeInstancePath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve instance path: %w", err)
	}

	return filepath.Clean(absPath), nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}

func toSchema(instance domain.AgentInstance) instanceSchema {
	return instanceSchema{
		ConfigID:       string(instance.ConfigID),
		AgentType:      string(instance.AgentType),
		HomeNetwork:    string(instance.HomeNetwork),
		StakingProgram: string(instance.StakingProgram),
		UpdatedAt:      formatTime(instance.UpdatedAt),
	}
}

func fromSchema(instance instanceSchema) domain.AgentInstance {
	return domain.AgentInstance{
		ConfigID:       domain.ConfigID(instance.ConfigID),
		AgentType:      domain.AgentType(instance.AgentType),
		HomeNetwork:    domain.Network(instance.HomeNetwork),
		StakingProgram: domain.ProgramID(instance.StakingProgram),
		UpdatedAt:      parseTime(instance.UpdatedAt),
	}
}

func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}

	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}
	}

	return parsed
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}

	return value.UTC().Format(time.RFC3339)
}

package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// Environment is an immutable snapshot of environment variables taken once
// at startup. Nothing downstream reads the process environment directly.
type Environment struct {
	values map[string]string
}

// NewEnvironment builds a snapshot from explicit values
func NewEnvironment(values map[string]string) Environment {
	copied := make(map[string]string, len(values))
	for k, v := range values {
		copied[k] = v
	}
	return Environment{values: copied}
}

// EnvironmentFromOS snapshots the current process environment
func EnvironmentFromOS() Environment {
	values := make(map[string]string)
	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if ok {
			values[k] = v
		}
	}
	return Environment{values: values}
}

// LoadDotEnv loads .env and .env.local from the project root into the process
// environment. Variables already set in the process are not overridden.
func LoadDotEnv(projectRoot string) {
	for _, name := range []string{".env", ".env.local"} {
		path := filepath.Join(projectRoot, name)
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
		}
	}
}

// Lookup returns the value and whether the variable is set
func (e Environment) Lookup(key string) (string, bool) {
	v, ok := e.values[key]
	return v, ok
}

// Get returns the value of key, or "" when unset
func (e Environment) Get(key string) string {
	return e.values[key]
}

// GetOr returns the value of key, or fallback when it is unset or empty
func (e Environment) GetOr(key, fallback string) string {
	if v := e.values[key]; v != "" {
		return v
	}
	return fallback
}

// Expand replaces ${VAR} and $VAR references using the snapshot
func (e Environment) Expand(s string) string {
	return os.Expand(s, e.Get)
}

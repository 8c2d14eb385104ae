package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/limaJavier/vertexcover/pkg/sat"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

const (
	DefaultTimeoutSeconds = 120
	DefaultSolver         = sat.Gophersat
)

var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	// Budget of the exact strategy, the approximations are never timed out
	TimeoutSeconds int `mapstructure:"timeoutSeconds"`
	// SAT solver backing the exact strategy, see sat.Names()
	Solver string `mapstructure:"solver"`
	// Executable paths of external SAT solvers keyed by solver name
	SolverPaths map[string]string `mapstructure:"solverPaths"`
	// Seed the exact search with a matching-based lower bound
	MatchingBound bool `mapstructure:"matchingBound"`
	// Seed of the random-edge approximation, zero picks a random one
	Seed uint64 `mapstructure:"seed"`
	Verbosity      int    `mapstructure:"verbosity"`
	MetricsAddress string `mapstructure:"metricsAddress"`
}

func Default() Config {
	return Config{
		TimeoutSeconds: DefaultTimeoutSeconds,
		Solver:         DefaultSolver,
		SolverPaths:    map[string]string{},
		MatchingBound:  true,
	}
}

// Load reads a JSON or YAML file (chosen by extension) on top of the defaults. Unknown keys are rejected
func Load(path string) (Config, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("cannot read config file: %w", err)
	}

	var raw map[string]any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(bytes, &raw)
	default:
		err = json.Unmarshal(bytes, &raw)
	}
	if err != nil {
		return Config{}, fmt.Errorf("cannot parse config file %v: %w", path, err)
	}

	return Decode(raw)
}

// Decode overlays raw on the defaults and validates the result
func Decode(raw map[string]any) (Config, error) {
	config := Default()

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &config,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return Config{}, err
	}
	if err := decoder.Decode(raw); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	return config, config.Validate()
}

func (config Config) Validate() error {
	if config.TimeoutSeconds < 0 {
		return fmt.Errorf("%w: timeout must not be negative: %v", ErrInvalidConfig, config.TimeoutSeconds)
	}
	if _, err := sat.NewSolver(config.Solver, config.SolverPaths); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

func (config Config) Timeout() time.Duration {
	return time.Duration(config.TimeoutSeconds) * time.Second
}

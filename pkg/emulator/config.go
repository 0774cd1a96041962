package emulator

import (
	"errors"
	"fmt"
	"net"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/thelolagemann/sm83/internal/types"
)

const (
	// DefaultRate is the number of instructions executed per second
	// when no rate is configured, roughly that of the original
	// hardware at 4 cycles per instruction.
	DefaultRate = 1 << 20

	// MaxRate is the highest supported throttled rate. A rate of 0
	// runs unthrottled.
	MaxRate = 1 << 30
)

// Config holds the configuration of a Machine and the runner built
// around it. It is loaded from YAML and may be overridden by flags.
type Config struct {
	ROM  string `yaml:"rom"`
	Boot string `yaml:"boot"`

	// Rate is the number of instructions per second, 0 is unthrottled.
	Rate uint64 `yaml:"rate"`
	// Steps stops the machine after that many instructions, 0 is unbounded.
	Steps uint64 `yaml:"steps"`

	// Entry and SP are the initial PC and SP when no boot ROM is used.
	Entry uint16 `yaml:"entry"`
	SP    uint16 `yaml:"sp"`

	// ExitOnHalt stops the run loop when the CPU halts, rather than
	// waiting for a reset.
	ExitOnHalt bool `yaml:"exit_on_halt"`

	Inspect  string `yaml:"inspect"`
	State    string `yaml:"state"`
	Watch    bool   `yaml:"watch"`
	Trace    bool   `yaml:"trace"`
	LogLevel string `yaml:"log_level"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		Rate:       DefaultRate,
		Entry:      types.EntryPoint,
		SP:         types.StackTop,
		ExitOnHalt: true,
		LogLevel:   "info",
	}
}

// LoadConfig reads the YAML file at path over the default
// configuration. Keys missing from the file keep their defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("emulator: reading config: %w", err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("emulator: parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration, returning every problem found.
func (c Config) Validate() error {
	var result *multierror.Error

	if c.ROM == "" {
		result = multierror.Append(result, errors.New("rom: a ROM file is required"))
	} else if _, err := os.Stat(c.ROM); err != nil {
		result = multierror.Append(result, fmt.Errorf("rom: %w", err))
	}
	if c.Boot != "" {
		if _, err := os.Stat(c.Boot); err != nil {
			result = multierror.Append(result, fmt.Errorf("boot: %w", err))
		}
	}
	if c.Rate > MaxRate {
		result = multierror.Append(result, fmt.Errorf("rate: %d exceeds the maximum of %d", c.Rate, uint64(MaxRate)))
	}
	if c.Inspect != "" {
		if _, _, err := net.SplitHostPort(c.Inspect); err != nil {
			result = multierror.Append(result, fmt.Errorf("inspect: %w", err))
		}
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		result = multierror.Append(result, fmt.Errorf("log_level: %w", err))
	}

	return result.ErrorOrNil()
}

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalidParameter is wrapped by every validation failure.
var ErrInvalidParameter = errors.New("invalid parameter")

// Config represents the complete run configuration file
type Config struct {
	Simulation SimulationConfig `json:"simulation" yaml:"simulation"`
	Seed       int64            `json:"seed" yaml:"seed"`
	StartDate  string           `json:"start_date,omitempty" yaml:"start_date,omitempty"` // YYYY-MM-DD
	Journal    JournalConfig    `json:"journal" yaml:"journal"`
	Logging    LoggingConfig    `json:"logging" yaml:"logging"`
}

// SimulationConfig holds the hedging engine parameters. The engine copies it
// by value, so a validated SimulationConfig is fixed for the whole run.
type SimulationConfig struct {
	InitialPrice float64 `json:"initial_price" yaml:"initial_price"`
	PutStrike    float64 `json:"put_strike" yaml:"put_strike"`
	RollStrike   float64 `json:"roll_strike" yaml:"roll_strike"`
	TriggerPrice float64 `json:"trigger_price" yaml:"trigger_price"`

	HorizonDays     int `json:"horizon_days" yaml:"horizon_days"`
	StepsPerYear    int `json:"steps_per_year" yaml:"steps_per_year"`
	SimulationSteps int `json:"simulation_steps" yaml:"simulation_steps"`

	ExpectedReturn float64 `json:"expected_return" yaml:"expected_return"`
	Volatility     float64 `json:"volatility" yaml:"volatility"`
	RiskFreeRate   float64 `json:"risk_free_rate" yaml:"risk_free_rate"`

	NumShares          int `json:"num_shares" yaml:"num_shares"`
	NumPutContracts    int `json:"num_put_contracts" yaml:"num_put_contracts"`
	ContractMultiplier int `json:"contract_multiplier" yaml:"contract_multiplier"`

	MarginRequirement float64 `json:"margin_requirement" yaml:"margin_requirement"`
	MarginRate        float64 `json:"margin_rate" yaml:"margin_rate"`
}

// JournalConfig contains journaling parameters
type JournalConfig struct {
	Type     string `json:"type" yaml:"type"` // "csv", "sqlite" or "none"
	RunsFile string `json:"runs_file,omitempty" yaml:"runs_file,omitempty"`
	DaysFile string `json:"days_file,omitempty" yaml:"days_file,omitempty"`
	DBPath   string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// LoggingConfig selects the zap level: debug, info, warn or error.
type LoggingConfig struct {
	Level string `json:"level" yaml:"level"`
}

// LoadFromFile loads configuration from a file (JSON or YAML based on extension)
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}

	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if err := c.Simulation.Validate(); err != nil {
		return err
	}
	if _, err := c.Start(); err != nil {
		return fmt.Errorf("%w: start_date: %v", ErrInvalidParameter, err)
	}
	switch c.Journal.Type {
	case "", "none":
	case "csv":
		if c.Journal.RunsFile == "" || c.Journal.DaysFile == "" {
			return invalid("journal runs_file and days_file required for CSV type")
		}
	case "sqlite":
		if c.Journal.DBPath == "" {
			return invalid("journal db_path required for SQLite type")
		}
	default:
		return invalid("journal.type must be 'csv', 'sqlite' or 'none'")
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return invalid("logging.level must be one of debug, info, warn, error")
	}
	return nil
}

// Start returns the date the business-day calendar is counted from.
// An empty StartDate means 2023-01-01.
func (c *Config) Start() (time.Time, error) {
	if c.StartDate == "" {
		return time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), nil
	}
	return time.Parse("2006-01-02", c.StartDate)
}

// Validate checks the engine parameters. All failures wrap ErrInvalidParameter.
func (s SimulationConfig) Validate() error {
	floats := []struct {
		name string
		v    float64
	}{
		{"initial_price", s.InitialPrice},
		{"put_strike", s.PutStrike},
		{"roll_strike", s.RollStrike},
		{"trigger_price", s.TriggerPrice},
		{"expected_return", s.ExpectedReturn},
		{"volatility", s.Volatility},
		{"risk_free_rate", s.RiskFreeRate},
		{"margin_requirement", s.MarginRequirement},
		{"margin_rate", s.MarginRate},
	}
	for _, f := range floats {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return invalid("simulation.%s must be finite", f.name)
		}
	}

	switch {
	case s.InitialPrice <= 0:
		return invalid("simulation.initial_price must be positive")
	case s.PutStrike <= 0:
		return invalid("simulation.put_strike must be positive")
	case s.RollStrike <= 0:
		return invalid("simulation.roll_strike must be positive")
	case s.RollStrike < s.PutStrike:
		return invalid("simulation.roll_strike must not be below put_strike")
	case s.HorizonDays <= 0:
		return invalid("simulation.horizon_days must be positive")
	case s.StepsPerYear <= 0:
		return invalid("simulation.steps_per_year must be positive")
	case s.SimulationSteps <= 0:
		return invalid("simulation.simulation_steps must be positive")
	case s.Volatility < 0:
		return invalid("simulation.volatility must not be negative")
	case s.RiskFreeRate < 0:
		return invalid("simulation.risk_free_rate must not be negative")
	case s.NumShares < 0:
		return invalid("simulation.num_shares must not be negative")
	case s.NumPutContracts < 0:
		return invalid("simulation.num_put_contracts must not be negative")
	case s.ContractMultiplier <= 0:
		return invalid("simulation.contract_multiplier must be positive")
	case s.MarginRequirement < 0 || s.MarginRequirement > 1:
		return invalid("simulation.margin_requirement must be between 0 and 1")
	case s.MarginRate < 0:
		return invalid("simulation.margin_rate must not be negative")
	}
	return nil
}

// NewSimulation validates s and returns it unchanged on success.
func NewSimulation(s SimulationConfig) (SimulationConfig, error) {
	if err := s.Validate(); err != nil {
		return SimulationConfig{}, err
	}
	return s, nil
}

// StepYears is the annualised length of one simulated day.
func (s SimulationConfig) StepYears() float64 {
	return 1 / float64(s.StepsPerYear)
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidParameter, fmt.Sprintf(format, args...))
}

// DefaultSimulation returns the reference scenario: 1000 shares at $40 protected
// by 10 puts struck at $35, rolled to $40 once the stock trades at $42.50.
func DefaultSimulation() SimulationConfig {
	return SimulationConfig{
		InitialPrice:       40.0,
		PutStrike:          35.0,
		RollStrike:         40.0,
		TriggerPrice:       42.5,
		HorizonDays:        90,
		StepsPerYear:       252,
		SimulationSteps:    90,
		ExpectedReturn:     0.05,
		Volatility:         0.3,
		RiskFreeRate:       0.01,
		NumShares:          1000,
		NumPutContracts:    10,
		ContractMultiplier: 100,
		MarginRequirement:  0.5,
		MarginRate:         0.05,
	}
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Simulation: DefaultSimulation(),
		Seed:       42,
		StartDate:  "2023-01-01",
		Journal: JournalConfig{
			Type:     "csv",
			RunsFile: "./runs.csv",
			DaysFile: "./days.csv",
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

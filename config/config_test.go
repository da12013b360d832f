package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.NotNil(t, cfg)
	assert.Equal(t, 40.0, cfg.Simulation.InitialPrice)
	assert.Equal(t, 252, cfg.Simulation.StepsPerYear)
	assert.Equal(t, 100, cfg.Simulation.ContractMultiplier)
	assert.Equal(t, int64(42), cfg.Seed)
	assert.NoError(t, cfg.Validate())
}

func TestSimulationValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*SimulationConfig)
		errMsg string
	}{
		{"valid config", func(*SimulationConfig) {}, ""},
		{"zero initial price", func(s *SimulationConfig) { s.InitialPrice = 0 }, "simulation.initial_price must be positive"},
		{"negative put strike", func(s *SimulationConfig) { s.PutStrike = -1 }, "simulation.put_strike must be positive"},
		{"zero roll strike", func(s *SimulationConfig) { s.RollStrike = 0 }, "simulation.roll_strike must be positive"},
		{"roll strike below put strike", func(s *SimulationConfig) { s.RollStrike = 30 }, "simulation.roll_strike must not be below put_strike"},
		{"roll strike equal to put strike", func(s *SimulationConfig) { s.RollStrike = s.PutStrike }, ""},
		{"zero horizon", func(s *SimulationConfig) { s.HorizonDays = 0 }, "simulation.horizon_days must be positive"},
		{"zero steps per year", func(s *SimulationConfig) { s.StepsPerYear = 0 }, "simulation.steps_per_year must be positive"},
		{"zero simulation steps", func(s *SimulationConfig) { s.SimulationSteps = 0 }, "simulation.simulation_steps must be positive"},
		{"negative volatility", func(s *SimulationConfig) { s.Volatility = -0.1 }, "simulation.volatility must not be negative"},
		{"negative risk free rate", func(s *SimulationConfig) { s.RiskFreeRate = -0.01 }, "simulation.risk_free_rate must not be negative"},
		{"negative shares", func(s *SimulationConfig) { s.NumShares = -1 }, "simulation.num_shares must not be negative"},
		{"negative contracts", func(s *SimulationConfig) { s.NumPutContracts = -1 }, "simulation.num_put_contracts must not be negative"},
		{"zero multiplier", func(s *SimulationConfig) { s.ContractMultiplier = 0 }, "simulation.contract_multiplier must be positive"},
		{"margin requirement above one", func(s *SimulationConfig) { s.MarginRequirement = 1.5 }, "simulation.margin_requirement must be between 0 and 1"},
		{"margin requirement below zero", func(s *SimulationConfig) { s.MarginRequirement = -0.1 }, "simulation.margin_requirement must be between 0 and 1"},
		{"negative margin rate", func(s *SimulationConfig) { s.MarginRate = -0.05 }, "simulation.margin_rate must not be negative"},
		{"nan volatility", func(s *SimulationConfig) { s.Volatility = math.NaN() }, "simulation.volatility must be finite"},
		{"infinite trigger", func(s *SimulationConfig) { s.TriggerPrice = math.Inf(1) }, "simulation.trigger_price must be finite"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSimulation()
			tt.mutate(&s)
			err := s.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidParameter)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestNewSimulation(t *testing.T) {
	s, err := NewSimulation(DefaultSimulation())
	require.NoError(t, err)
	assert.Equal(t, DefaultSimulation(), s)

	bad := DefaultSimulation()
	bad.InitialPrice = -40
	_, err = NewSimulation(bad)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"valid config", func(*Config) {}, ""},
		{"no journal", func(c *Config) { c.Journal = JournalConfig{Type: "none"} }, ""},
		{"csv missing days file", func(c *Config) { c.Journal.DaysFile = "" }, "journal runs_file and days_file required for CSV type"},
		{"sqlite missing path", func(c *Config) { c.Journal = JournalConfig{Type: "sqlite"} }, "journal db_path required for SQLite type"},
		{"unknown journal", func(c *Config) { c.Journal.Type = "excel" }, "journal.type must be 'csv', 'sqlite' or 'none'"},
		{"unknown log level", func(c *Config) { c.Logging.Level = "verbose" }, "logging.level must be one of"},
		{"bad start date", func(c *Config) { c.StartDate = "01/02/2023" }, "start_date"},
		{"bad simulation", func(c *Config) { c.Simulation.SimulationSteps = -5 }, "simulation.simulation_steps must be positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
			assert.ErrorIs(t, err, ErrInvalidParameter)
		})
	}
}

func TestStart(t *testing.T) {
	cfg := Default()
	cfg.StartDate = ""
	start, err := cfg.Start()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), start)

	cfg.StartDate = "2024-03-15"
	start, err = cfg.Start()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), start)
}

func TestStepYears(t *testing.T) {
	s := DefaultSimulation()
	assert.InDelta(t, 1.0/252.0, s.StepYears(), 1e-15)
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name string
		ext  string
	}{
		{"json format", ".json"},
		{"yaml format", ".yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			path := filepath.Join(tmpDir, "test"+tt.ext)

			err := cfg.SaveToFile(path)
			require.NoError(t, err)

			_, err = os.Stat(path)
			require.NoError(t, err)

			loaded, err := LoadFromFile(path)
			require.NoError(t, err)

			assert.Equal(t, cfg.Simulation, loaded.Simulation)
			assert.Equal(t, cfg.Seed, loaded.Seed)
			assert.Equal(t, cfg.Journal, loaded.Journal)
			assert.Equal(t, cfg.Logging, loaded.Logging)
		})
	}
}

func TestLoadRejectsInvalidSimulation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	body := `
simulation:
  initial_price: -1
  put_strike: 35
  roll_strike: 40
  horizon_days: 90
  steps_per_year: 252
  simulation_steps: 90
  contract_multiplier: 100
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))

	_, err := LoadFromFile(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := LoadFromFile("/nonexistent/path.yaml")
	assert.Error(t, err)
}

func TestLoadExampleConfig(t *testing.T) {
	cfg, err := LoadFromFile("../examples/configs/hedge.yaml")
	require.NoError(t, err)
	assert.Equal(t, DefaultSimulation(), cfg.Simulation)
	assert.Equal(t, "sqlite", cfg.Journal.Type)

	start, err := cfg.Start()
	require.NoError(t, err)
	assert.Equal(t, time.Monday, start.Weekday())
}

package config

import (
	"fmt"

	"niriscale/internal/scaler"
)

// Validate ensures the configuration is usable. An empty scales list is
// allowed here; the CLI requires scales only for the cycle operation and
// reports its own usage error when both flags and config are empty.
func (c *Config) Validate() error {
	if err := c.validateScales(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateScales() error {
	for i, s := range c.Scales.Values {
		if err := scaler.Validate([]float64{s}); err != nil {
			return fmt.Errorf("scales.values[%d]: must be a positive number, got %v", i, s)
		}
	}
	if _, err := scaler.ParseDirection(c.Scales.Direction); err != nil {
		return fmt.Errorf("scales.direction: %w", err)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be \"console\" or \"json\", got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error; got %q", c.Logging.Level)
	}
	return nil
}

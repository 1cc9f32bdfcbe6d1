package config

import (
	"errors"
	"fmt"

	"vorbify/internal/format"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateConversion(); err != nil {
		return err
	}
	if err := c.validateDecoders(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateConversion() error {
	if c.Conversion.Quality < -1 || c.Conversion.Quality > 10 {
		return errors.New("conversion.quality must be between -1 and 10")
	}
	if c.Conversion.SmartCorrection < -11 || c.Conversion.SmartCorrection > 11 {
		return errors.New("conversion.smart_correction must be between -11 and 11")
	}
	if c.Conversion.KeepWav && !c.Conversion.NoPipe {
		// Keeping the wav implies the decoder must write one.
		c.Conversion.NoPipe = true
	}
	return nil
}

func (c *Config) validateDecoders() error {
	for key, value := range c.Decoders {
		def, ok := format.Parse(key)
		if !ok {
			return fmt.Errorf("decoders.%s: unknown format", key)
		}
		allowed := false
		for _, tool := range def.Decoders {
			if tool == value {
				allowed = true
				break
			}
		}
		if !allowed {
			return fmt.Errorf("decoders.%s: %q is not a known %s decoder", key, value, def.ID)
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}

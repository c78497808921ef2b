package config

import (
	"errors"
	"fmt"
	"net/url"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateApp(); err != nil {
		return err
	}
	if err := c.validateAPI(); err != nil {
		return err
	}
	if err := c.validateProbes(); err != nil {
		return err
	}
	if err := c.validateReconcile(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateApp() error {
	if c.Paths.DataDir == "" {
		return errors.New("paths.data_dir must be set")
	}
	if c.App.ProcessName == "" {
		return errors.New("app.process_name must be set")
	}
	if c.App.BundleID == "" {
		return errors.New("app.bundle_id must be set")
	}
	return nil
}

func (c *Config) validateAPI() error {
	if c.API.BaseURL == "" {
		return errors.New("api.base_url must be set")
	}
	parsed, err := url.Parse(c.API.BaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("api.base_url is not a valid URL: %q", c.API.BaseURL)
	}
	if c.API.TimeoutSeconds <= 0 {
		return errors.New("api.timeout_seconds must be positive")
	}
	return nil
}

func (c *Config) validateProbes() error {
	if c.Probes.CommandTimeoutSeconds <= 0 {
		return errors.New("probes.command_timeout_seconds must be positive")
	}
	if c.Probes.MediaSessionCommand == "" {
		return errors.New("probes.media_session_command must be set")
	}
	return nil
}

func (c *Config) validateReconcile() error {
	if c.Reconcile.RefreshCycles <= 0 {
		return errors.New("reconcile.refresh_cycles must be positive")
	}
	if c.Reconcile.PollIntervalSeconds <= 0 {
		return errors.New("reconcile.poll_interval_seconds must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}

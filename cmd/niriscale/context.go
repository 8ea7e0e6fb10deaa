package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"syscall"
	"time"

	"log/slog"

	"niriscale/internal/config"
	"niriscale/internal/logging"
	"niriscale/internal/niri"
)

type commandContext struct {
	socketFlag   *string
	configFlag   *string
	logLevelFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
}

func newCommandContext(socketFlag, configFlag, logLevelFlag *string) *commandContext {
	return &commandContext{
		socketFlag:   socketFlag,
		configFlag:   configFlag,
		logLevelFlag: logLevelFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) configValue() *config.Config {
	cfg, _ := c.ensureConfig()
	return cfg
}

// socketPath resolves the compositor socket: flag, then config file, then
// the NIRI_SOCKET environment variable.
func (c *commandContext) socketPath() (string, error) {
	if c.socketFlag != nil && strings.TrimSpace(*c.socketFlag) != "" {
		return strings.TrimSpace(*c.socketFlag), nil
	}
	if cfg := c.configValue(); cfg != nil && cfg.Niri.Socket != "" {
		return cfg.Niri.Socket, nil
	}
	return niri.DefaultSocketPath()
}

func (c *commandContext) client() (*niri.Client, error) {
	socket, err := c.socketPath()
	if err != nil {
		return nil, err
	}
	opts := niri.Options{Logger: c.loggerValue()}
	if cfg := c.configValue(); cfg != nil {
		opts.DialTimeout = time.Duration(cfg.Niri.DialTimeoutSeconds) * time.Second
		opts.RequestTimeout = time.Duration(cfg.Niri.RequestTimeoutSeconds) * time.Second
	}
	return niri.New(socket, opts), nil
}

func (c *commandContext) loggerValue() *slog.Logger {
	c.loggerOnce.Do(func() {
		opts := logging.Options{Level: "warn", Format: "console"}
		if cfg := c.configValue(); cfg != nil {
			opts.Level = cfg.Logging.Level
			opts.Format = cfg.Logging.Format
		}
		if c.logLevelFlag != nil && strings.TrimSpace(*c.logLevelFlag) != "" {
			opts.Level = strings.TrimSpace(*c.logLevelFlag)
		}
		logger, err := logging.New(opts)
		if err != nil {
			logger = logging.NewNop()
		}
		c.logger = logger
	})
	return c.logger
}

// wrapDialError rewrites socket-level failures with a hint naming the
// socket. Errors that already carry protocol context pass through.
func wrapDialError(err error, socket string) error {
	switch {
	case errors.Is(err, syscall.ENOENT) || os.IsNotExist(err):
		return fmt.Errorf("connect to niri: socket %s not found; is the compositor running?", socket)
	case errors.Is(err, syscall.ECONNREFUSED):
		return fmt.Errorf("connect to niri: socket %s refused the connection; the compositor may have restarted", socket)
	default:
		return err
	}
}

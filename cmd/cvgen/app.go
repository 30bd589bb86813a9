package main

import (
	"context"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-cvgen/internal/config"
	"github.com/goliatone/go-cvgen/internal/logging"
	"github.com/goliatone/go-cvgen/pkg/schema"
	"github.com/goliatone/go-cvgen/pkg/session"
)

// app carries the state shared by every command of one invocation.
type app struct {
	out io.Writer

	configPath string
	dataDir    string
	storage    string
	locale     string
	logLevel   string

	cfg     config.Config
	logger  *zap.Logger
	session *session.Session
}

// setup loads the config file and lets explicitly set flags win over it.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("data-dir") {
		cfg.DataDir = a.dataDir
	}
	if flags.Changed("storage") {
		cfg.Storage = a.storage
	}
	if flags.Changed("locale") {
		cfg.Locale = a.locale
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	a.logger = logger
	return nil
}

// open returns the session, opening the configured storage on first use.
func (a *app) open(ctx context.Context) (*session.Session, error) {
	if a.session != nil {
		return a.session, nil
	}
	slot, err := session.OpenSlot(a.cfg.Storage, a.cfg.DataDir, logging.Component(a.logger, "storage"))
	if err != nil {
		return nil, err
	}
	s, err := session.Open(ctx, slot,
		session.WithLogger(a.logger),
		session.WithLocale(a.cfg.Locale),
		session.WithOwnedSlot(),
		session.WithLoaderOptions(schema.LoaderOptions{AllowHTTP: true}),
		session.WithTemplatesDir(a.cfg.TemplatesDir),
	)
	if err != nil {
		if closer, ok := slot.(io.Closer); ok {
			_ = closer.Close()
		}
		return nil, err
	}
	a.session = s
	return s, nil
}

func (a *app) teardown() error {
	var err error
	if a.session != nil {
		err = a.session.Close()
		a.session = nil
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
	return err
}

package main

import (
	"context"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/phravins/gptflow/internal/ai/providers"
	"github.com/phravins/gptflow/internal/config"
	"github.com/phravins/gptflow/internal/history"
	"github.com/phravins/gptflow/internal/logging"
	"github.com/phravins/gptflow/internal/render"
	"github.com/phravins/gptflow/internal/session"
)

// app is everything a command needs, built once from the config.
type app struct {
	cfg     *config.Config
	log     *logrus.Logger
	store   history.Store
	session *session.Session
	closers []io.Closer
}

// newApp wires the stack. toFile sends logs to cfg.LogFile instead of
// stderr, for front ends that own the terminal.
func newApp(toFile bool) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if ephemeral {
		cfg.HistoryBackend = "memory"
	}
	if offline {
		cfg.GeneratorBackend = "offline"
	}

	a := &app{cfg: cfg}

	if toFile {
		logger, closer, err := logging.NewFile(cfg.LogFile, cfg.LogLevel)
		if err != nil {
			return nil, err
		}
		a.log = logger
		a.closers = append(a.closers, closer)
	} else {
		a.log = logging.New(os.Stderr, cfg.LogLevel)
	}

	store, err := history.Open(cfg)
	if err != nil {
		// History is optional; fall back to memory rather than refusing to start.
		a.log.WithError(err).Warn("history store unavailable, using memory")
		store = history.NewMemoryStore()
	}
	a.store = store
	a.closers = append(a.closers, store)

	gen, err := providers.GetGenerator(cfg)
	if err != nil {
		a.Close()
		return nil, err
	}

	a.session = session.New(store, gen, a.log)
	a.session.Load(context.Background())
	return a, nil
}

func (a *app) renderOptions(width int) render.Options {
	return render.Options{
		Width:       width,
		Theme:       a.cfg.SyntaxTheme,
		DocsBaseURL: a.cfg.DocsBaseURL,
	}
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i].Close()
	}
}

// loadConfig honours --config for both reading and any later config.Write.
func loadConfig() (*config.Config, error) {
	return config.LoadConfigFile(configPath)
}

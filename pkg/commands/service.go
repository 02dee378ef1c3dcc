package commands

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"tableflip.dev/mytodo/pkg/app"
	"tableflip.dev/mytodo/pkg/logger"
	"tableflip.dev/mytodo/pkg/store"
)

// session is what a command needs to talk to the task store.
type session struct {
	cfg         store.Config
	log         *logrus.Logger
	persistence store.Persistence
	svc         *app.Service
}

// open loads config, opens the configured backend and reads the tasks.
func open(cmd *cobra.Command) (*session, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}
	log := logger.New(logger.Options{
		Level:  cfg.LogLevel(),
		Format: cfg.LogFormat(),
		Output: cmd.ErrOrStderr(),
	})
	p, err := store.Load(cfg)
	if err != nil {
		return nil, err
	}
	svc := app.New(p, app.WithLogger(log), app.WithLocale(cfg.Locale()))
	svc.Load(ctx(cmd))
	return &session{cfg: cfg, log: log, persistence: p, svc: svc}, nil
}

func (s *session) Close() {
	if err := s.persistence.Close(); err != nil {
		s.log.WithError(err).Warn("closing store")
	}
}

func ctx(cmd *cobra.Command) context.Context {
	if c := cmd.Context(); c != nil {
		return c
	}
	return context.Background()
}

package commands

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"tableflip.dev/mytodo/pkg/assetcache"
	"tableflip.dev/mytodo/pkg/commands/options"
	"tableflip.dev/mytodo/pkg/web"
)

func addServe(topLevel *cobra.Command) {
	so := &options.SortOptions{}
	sv := &options.ServeOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the task list in the browser",
		Long:  options.Wrap80("Serve starts a local web server with the task list. Static assets are kept in an offline cache so the page shell still loads when the server is restarted or unreachable. Changes made by other mytodo commands show up live."),
		Example: `
mytodo serve
mytodo serve --addr 127.0.0.1:9000
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			s, err := open(cmd)
			if err != nil {
				return err
			}
			defer s.Close()
			if s.log.GetLevel() < logrus.InfoLevel {
				s.log.SetLevel(logrus.InfoLevel)
			}

			mode, err := so.Mode(s.cfg.Sort())
			if err != nil {
				return err
			}

			c, stop := signal.NotifyContext(ctx(cmd), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			if err := s.svc.Follow(c); err != nil {
				s.log.WithError(err).Warn("not following external changes")
			}

			var assets http.Handler = web.Assets()
			if !sv.NoCache {
				dir := sv.CacheDir
				if dir == "" {
					dir = s.cfg.BasePath() + ".assets"
				}
				cache, err := assetcache.New(dir, assetcache.DefaultVersion, assets,
					assetcache.WithLogger(s.log), assetcache.WithPrecache(web.AssetPaths...))
				if err != nil {
					return err
				}
				if _, err := cache.Install(c); err != nil {
					return err
				}
				if _, err := cache.Activate(); err != nil {
					s.log.WithError(err).Warn("could not prune old asset caches")
				}
				assets = cache
			}

			h := web.NewHandler(web.Options{Service: s.svc, Log: s.log, Assets: assets, Sort: mode})
			defer h.Close()

			addr := sv.Addr
			if addr == "" {
				addr = s.cfg.ServeAddr()
			}
			ln, err := net.Listen("tcp", addr)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Serving tasks on http://%s/\n", ln.Addr())

			srv := &http.Server{
				Handler:           web.Logging(s.log, h),
				ReadHeaderTimeout: 10 * time.Second,
			}
			errCh := make(chan error, 1)
			go func() { errCh <- srv.Serve(ln) }()

			select {
			case <-c.Done():
				shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				return srv.Shutdown(shutdown)
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			}
		},
	}

	options.AddSortArgs(cmd, so)
	options.AddServeArgs(cmd, sv)
	topLevel.AddCommand(cmd)
}

package options

import (
	"github.com/spf13/cobra"
)

// ServeOptions
type ServeOptions struct {
	Addr     string
	CacheDir string
	NoCache  bool
}

func AddServeArgs(cmd *cobra.Command, o *ServeOptions) {
	cmd.Flags().StringVar(&o.Addr, "addr", "",
		"Address to listen on. Defaults to the configured serve.addr.")
	cmd.Flags().StringVar(&o.CacheDir, "cache-dir", "",
		"Directory for the offline asset cache. Defaults to <path>.assets.")
	cmd.Flags().BoolVar(&o.NoCache, "no-cache", false,
		"Serve assets directly without the offline cache.")
}

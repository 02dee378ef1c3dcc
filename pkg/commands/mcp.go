package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/mytodo/pkg/runner/mcp"
)

func addMCP(topLevel *cobra.Command) {
	var transport string
	r := mcp.Runner{Name: "mytodo"}

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start the Model Context Protocol server",
		Long: `Launch an MCP server that exposes the task list as resources and the task
operations (create, complete, mark, archive, restore, reorder) as tools.`,
		Example: `
mytodo mcp
mytodo mcp --transport http --addr 127.0.0.1:8081
`,
		Args: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			t, err := mcp.ParseTransport(transport)
			if err != nil {
				return err
			}
			r.Transport = t
			return cobra.NoArgs(cmd, args)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := open(cmd)
			if err != nil {
				return err
			}
			defer s.Close()
			if err := s.svc.Follow(ctx(cmd)); err != nil {
				s.log.WithError(err).Warn("not following external changes")
			}

			r.Service = s.svc
			r.Version = version
			r.Log = s.log
			r.Out = cmd.ErrOrStderr()
			return r.Do(ctx(cmd))
		},
	}

	cmd.Flags().StringVar(&transport, "transport", string(mcp.TransportStdio), "Transport to use: stdio or http.")
	cmd.Flags().StringVar(&r.Addr, "addr", mcp.DefaultAddr, "Listen address for the http transport, port 0 picks one.")
	cmd.Flags().StringVar(&r.Path, "path", mcp.DefaultPath, "Endpoint path for the http transport.")

	topLevel.AddCommand(cmd)
}

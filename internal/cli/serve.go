package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/panelayout/pkg/api"
	"github.com/matzehuels/panelayout/pkg/session"
)

// serveCommand creates the serve command that runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr       string
		noCache    bool
		gestureTTL = session.DefaultTTL
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the layout engine over HTTP",
		Long: `Serve the layout engine over HTTP.

Every endpoint takes snapshots in its request body and returns new ones, so
the server holds no layout state except for open gestures, which expire
after --gesture-ttl without an update.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.Server.Addr
			}
			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			gestures := session.NewManager(session.NewMemoryStore(), runner.Engine, gestureTTL, c.Logger)
			return api.New(runner, gestures, c.Logger).Serve(ctx, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default: config server.addr, :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().DurationVar(&gestureTTL, "gesture-ttl", gestureTTL, "idle lifetime of an open gesture")
	return cmd
}

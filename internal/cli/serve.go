package cli

import (
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/xui-kit/xui/internal/server"
	"github.com/xui-kit/xui/pkg/errors"
)

// serveCommand serves the compiled stylesheet over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr  string
		watch bool
	)

	cmd := &cobra.Command{
		Use:   "serve <manifest...>",
		Short: "Serve the compiled stylesheet over HTTP",
		Long: `Serve the compiled stylesheet and resolution endpoints over HTTP.

Endpoints:
  GET /styles.css        compiled stylesheet
  GET /classes           class name of every declaration
  GET /breakpoints       breakpoint table
  GET /resolve?width=N   breakpoint and resolved values at a width
  GET /healthz           liveness`,
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: completeManifests,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			b, err := c.loadBundle(ctx, args)
			if err != nil {
				return err
			}

			srv := server.New(b, server.WithLogger(c.Logger))
			printSuccess(cmd.OutOrStdout(), "Serving %s on %s", pluralize(b.Sheet.Len(), "rule"), StyleHighlight.Render("http://"+addr))

			g, ctx := errgroup.WithContext(ctx)
			g.Go(func() error { return srv.ListenAndServe(ctx, addr) })
			if watch {
				g.Go(func() error {
					return watchManifests(ctx, args, func() {
						next, err := c.loadBundle(ctx, args)
						if err != nil {
							c.Logger.Warn("reload failed, keeping previous stylesheet", "err", errors.UserMessage(err))
							return
						}
						srv.Reload(next)
					})
				})
			}
			return g.Wait()
		},
	}

	cmd.Flags().StringVar(&addr, "addr", defaultAddr, "listen address")
	cmd.Flags().BoolVar(&watch, "watch", false, "reload when a manifest changes")
	return cmd
}

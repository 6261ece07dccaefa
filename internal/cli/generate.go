package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/xui-kit/xui/pkg/errors"
)

// generateOpts holds the command-line flags for the generate command.
type generateOpts struct {
	output string // stylesheet path; stdout when empty
	watch  bool   // rebuild when a manifest changes
}

// generateCommand compiles manifests into a stylesheet.
func (c *CLI) generateCommand() *cobra.Command {
	var opts generateOpts

	cmd := &cobra.Command{
		Use:   "generate <manifest...>",
		Short: "Compile manifests into a stylesheet",
		Long: `Compile one or more manifests into a single stylesheet.

Rules are emitted in ascending breakpoint order per declaration, base rules
unconditional and larger breakpoints behind min-width media queries.
Identical declarations share one class and are emitted once.`,
		Example: `  xui generate styles.toml
  xui generate base.toml pages.yaml -o public/xui.css
  xui generate styles.toml -o public/xui.css --watch`,
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: completeManifests,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.watch && opts.output == "" {
				return errors.New(errors.ErrCodeInvalidInput, "--watch requires --output")
			}
			return c.runGenerate(cmd.Context(), cmd.OutOrStdout(), args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&opts.watch, "watch", false, "regenerate when a manifest changes")
	return cmd
}

func (c *CLI) runGenerate(ctx context.Context, out io.Writer, paths []string, opts generateOpts) error {
	if err := c.generateOnce(ctx, out, paths, opts.output); err != nil {
		return err
	}
	if !opts.watch {
		return nil
	}

	printInfo(out, "Watching for changes %s", StyleDim.Render("(Ctrl+C to stop)"))
	return watchManifests(ctx, paths, func() {
		if err := c.generateOnce(ctx, out, paths, opts.output); err != nil {
			// Keep the previous stylesheet and wait for the next fix.
			printWarning(out, "%s", errors.UserMessage(err))
		}
	})
}

func (c *CLI) generateOnce(ctx context.Context, out io.Writer, paths []string, output string) error {
	c.resetStats()
	b, err := c.loadBundle(ctx, paths)
	if err != nil {
		return err
	}

	if output == "" {
		_, err := b.Sheet.WriteTo(out)
		return err
	}
	if err := writeFileAtomic(output, []byte(b.CSS())); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", output)
	}
	printSuccess(out, "Generated %s", pluralize(b.Sheet.Len(), "rule"))
	printStats(out, c.stats)
	printFile(out, output)
	return nil
}

package cli

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/xui-kit/xui/pkg/errors"
)

// resolveCommand prints every declaration's value at a viewport width.
func (c *CLI) resolveCommand() *cobra.Command {
	var (
		width  int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "resolve <manifest...>",
		Short: "Resolve declarations at a viewport width",
		Long: `Resolve every declaration of the given manifests at a viewport width.

Values are resolved mobile-first: the entry of the active breakpoint is used
if present, otherwise the nearest smaller breakpoint that has one.`,
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: completeManifests,
		RunE: func(cmd *cobra.Command, args []string) error {
			if width < 0 {
				return errors.New(errors.ErrCodeInvalidInput, "--width must be non-negative, got %d", width)
			}
			b, err := c.loadBundle(cmd.Context(), args)
			if err != nil {
				return err
			}

			resolved := b.ResolveAt(width)
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(resolved)
			}

			printKeyValue(out, "width", strconv.Itoa(width)+"px")
			printKeyValue(out, "breakpoint", string(b.Table.Current(width)))

			rows := make([][]string, 0, len(resolved))
			for _, r := range resolved {
				value := StyleDim.Render("(unset)")
				if r.OK {
					value = r.Value
				}
				rows = append(rows, []string{r.Name, r.Property, value})
			}
			fmt.Fprintln(out, renderTable([]string{"Name", "Property", "Value"}, rows, -1))
			return nil
		},
	}

	cmd.Flags().IntVarP(&width, "width", "w", 0, "viewport width in pixels")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	_ = cmd.MarkFlagRequired("width")
	return cmd
}

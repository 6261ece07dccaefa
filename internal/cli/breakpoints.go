package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/xui-kit/xui/pkg/breakpoint"
	"github.com/xui-kit/xui/pkg/manifest"
)

// breakpointsCommand prints the breakpoint table of a manifest, or the
// default table.
func (c *CLI) breakpointsCommand() *cobra.Command {
	width := -1

	cmd := &cobra.Command{
		Use:   "breakpoints [manifest]",
		Short: "Print the breakpoint table",
		Long: `Print the breakpoint table declared by a manifest, or the default table
(sm=640, md=768, lg=1024, xl=1280, 2xl=1536) when no manifest is given.

With --width the breakpoint active at that viewport width is highlighted.`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completeManifests,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := tableFor(args)
			if err != nil {
				return err
			}

			highlight := -1
			if width >= 0 {
				highlight, _ = t.Index(t.Current(width))
			}

			rows := make([][]string, 0, t.Len())
			for _, p := range t.Points() {
				media := "(unconditional)"
				if p.Name != breakpoint.Base {
					media = fmt.Sprintf("@media (min-width: %dpx)", p.MinWidth)
				}
				rows = append(rows, []string{string(p.Name), strconv.Itoa(p.MinWidth), media})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable([]string{"Name", "Min width", "Rule"}, rows, highlight))
			if width >= 0 {
				printKeyValue(out, "width", strconv.Itoa(width)+"px")
				printKeyValue(out, "current", string(t.Current(width)))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&width, "width", "w", -1, "highlight the breakpoint active at this viewport width")
	return cmd
}

// tableFor returns the table of the manifest named in args, or the default.
func tableFor(args []string) (*breakpoint.Table, error) {
	if len(args) == 0 {
		return breakpoint.Default(), nil
	}
	m, err := manifest.Load(args[0])
	if err != nil {
		return nil, err
	}
	return m.Table()
}

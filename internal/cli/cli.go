// Package cli implements the xui command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/xui-kit/xui/pkg/buildinfo"
	"github.com/xui-kit/xui/pkg/manifest"
	"github.com/xui-kit/xui/pkg/observability"
	"github.com/xui-kit/xui/pkg/style"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for display.
	appName = "xui"

	// defaultAddr is the default listen address of the serve command.
	defaultAddr = "127.0.0.1:7340"

	// defaultColumnWidth is the number of viewport pixels per terminal column
	// in the preview command.
	defaultColumnWidth = 10
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	stats *hookStats
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "xui generates responsive CSS from breakpoint manifests",
		Long:         `xui resolves per-breakpoint values mobile-first and compiles them into content-addressed, media-gated CSS rules that are injected exactly once.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c.stats = installHooks()
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.breakpointsCommand())
	root.AddCommand(c.resolveCommand())
	root.AddCommand(c.generateCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Manifest Loading
// =============================================================================

// loadBundle loads and compiles manifests, logging the elapsed time.
func (c *CLI) loadBundle(ctx context.Context, paths []string) (*manifest.Bundle, error) {
	prog := newProgress(c.Logger)
	ms, err := manifest.LoadAll(ctx, paths...)
	if err != nil {
		return nil, err
	}
	b, err := manifest.Compile(ms, style.WithLogger(c.Logger))
	if err != nil {
		return nil, err
	}
	prog.done("Compiled " + pluralize(len(b.Applied), "declaration") + " into " + pluralize(b.Sheet.Len(), "rule"))
	return b, nil
}

// =============================================================================
// Observability
// =============================================================================

// hookStats counts registry and viewport events for the summary line
// printed after a command.
type hookStats struct {
	injected   atomic.Int64
	duplicates atomic.Int64
	deferred   atomic.Int64
	changes    atomic.Int64
}

// installHooks registers a fresh hookStats as the global hooks.
func installHooks() *hookStats {
	h := &hookStats{}
	observability.SetRegistryHooks(h)
	observability.SetViewportHooks(h)
	return h
}

// resetStats starts counting from zero for the next build.
func (c *CLI) resetStats() {
	c.stats = installHooks()
}

func (h *hookStats) OnInject(string, string, int)           { h.injected.Add(1) }
func (h *hookStats) OnDuplicate(string, string)             { h.duplicates.Add(1) }
func (h *hookStats) OnDeferred(string, string)              { h.deferred.Add(1) }
func (h *hookStats) OnBreakpointChange(string, string, int) { h.changes.Add(1) }

// =============================================================================
// Paths
// =============================================================================

// writeFileAtomic writes data to a temporary file next to path and renames
// it into place.
func writeFileAtomic(path string, data []byte) error {
	f, err := os.CreateTemp(filepath.Dir(path), ".xui-*.css")
	if err != nil {
		return err
	}
	tmp := f.Name()
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Chmod(tmp, 0o644); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}

// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about style injection and viewport changes.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Hooks are called synchronously on the caller's goroutine and must not
// block or call back into the registry or tracker that emitted the event.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetRegistryHooks(&myRegistryHooks{})
//	    observability.SetViewportHooks(&myViewportHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Registry().OnInject(class, property, len(rules))
package observability

import "sync"

// =============================================================================
// Registry Hooks
// =============================================================================

// RegistryHooks receives events from the responsive style registry.
type RegistryHooks interface {
	// OnInject records a rule set written to the style sheet.
	OnInject(class, property string, rules int)

	// OnDuplicate records a registration skipped because the rule set was
	// already injected.
	OnDuplicate(class, property string)

	// OnDeferred records a registration parked because no style sheet was
	// available (server-side rendering).
	OnDeferred(class, property string)
}

// =============================================================================
// Viewport Hooks
// =============================================================================

// ViewportHooks receives events from viewport trackers.
type ViewportHooks interface {
	// OnBreakpointChange records a subscriber observing a new breakpoint.
	OnBreakpointChange(from, to string, width int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopRegistryHooks is a no-op implementation of RegistryHooks.
type NoopRegistryHooks struct{}

func (NoopRegistryHooks) OnInject(string, string, int) {}
func (NoopRegistryHooks) OnDuplicate(string, string)   {}
func (NoopRegistryHooks) OnDeferred(string, string)    {}

// NoopViewportHooks is a no-op implementation of ViewportHooks.
type NoopViewportHooks struct{}

func (NoopViewportHooks) OnBreakpointChange(string, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	registryHooks RegistryHooks = NoopRegistryHooks{}
	viewportHooks ViewportHooks = NoopViewportHooks{}
	hooksMu       sync.RWMutex
)

// SetRegistryHooks registers custom style registry hooks.
// This should be called once at application startup before any registration.
func SetRegistryHooks(h RegistryHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		registryHooks = h
	}
}

// SetViewportHooks registers custom viewport hooks.
// This should be called once at application startup before any subscription.
func SetViewportHooks(h ViewportHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		viewportHooks = h
	}
}

// Registry returns the registered style registry hooks.
func Registry() RegistryHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return registryHooks
}

// Viewport returns the registered viewport hooks.
func Viewport() ViewportHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return viewportHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	registryHooks = NoopRegistryHooks{}
	viewportHooks = NoopViewportHooks{}
}

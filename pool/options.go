package pool

import (
	"log/slog"

	"github.com/execmem/poolkit/osmem"
)

// Option configures a Pool at construction.
type Option func(*config)

type config struct {
	logger *slog.Logger
	mem    osmem.Manager
	region []byte
}

// WithLogger routes the pool's diagnostics to l. The default logger
// discards everything; logging is side-channel only, so a silent pool
// behaves identically to a verbose one.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithManager substitutes the OS memory capability. Tests use this to
// record protection and discard calls and to inject failures without
// real syscalls.
func WithManager(m osmem.Manager) Option {
	return func(c *config) { c.mem = m }
}

// WithRegion hands the pool a caller-reserved backing region instead
// of reserving one itself. len(region) must be at least
// capacity+BlockSize; the slack guarantees a block-aligned base can
// be found inside it. The pool never unmaps a caller-supplied region;
// Close leaves it alone. Intended for consumers that reserved address
// space near their own code and want the pool to manage it.
func WithRegion(region []byte) Option {
	return func(c *config) { c.region = region }
}

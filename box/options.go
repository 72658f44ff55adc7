package box

import (
	"log/slog"

	"github.com/mp4atom/mp4atom/internal/options"
)

// DefaultMaxDepth bounds container nesting so a file with a cycle of
// zero-length boxes (or a deliberately hostile one) cannot recurse the
// decoder into a stack overflow.
const DefaultMaxDepth = 64

type config struct {
	strict   bool
	maxDepth int
	logger   *slog.Logger
}

func defaultConfig() *config {
	return &config{
		maxDepth: DefaultMaxDepth,
		logger:   slog.Default(),
	}
}

// Option configures a Parse or ParseReader call.
type Option = options.Option[*config]

// WithStrict makes an unrecognized type code, or a box whose decode
// fails, an error returned from the parse. Without it, unrecognized codes
// are kept as Unrecognized and a failing box stops the scan of its
// siblings, keeping the atoms decoded before it.
func WithStrict(strict bool) Option {
	return options.NoError(func(c *config) { c.strict = strict })
}

// WithMaxDepth overrides DefaultMaxDepth.
func WithMaxDepth(depth int) Option {
	return options.NoError(func(c *config) { c.maxDepth = depth })
}

// WithLogger supplies the *slog.Logger used for resilient-mode
// diagnostics (a skipped box, a truncated table). A nil logger disables
// logging.
func WithLogger(logger *slog.Logger) Option {
	return options.NoError(func(c *config) { c.logger = logger })
}

func (c *config) log() *slog.Logger {
	if c.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.logger
}

package scotch

import (
	"github.com/yourusername/scotch/internal/ctx"
	"github.com/yourusername/scotch/internal/logging"
)

// Context and its Option setters are implemented in internal/ctx so that
// every internal package (internal/coarsen, internal/refine,
// internal/leaf, internal/nesteddissect) can thread one through without
// importing this root package. These are re-exports of the same types.
type Context = ctx.Context

type Option = ctx.Option

var (
	NewContext       = ctx.New
	WithWorkers      = ctx.WithWorkers
	WithSeed         = ctx.WithSeed
	WithDeterministic = ctx.WithDeterministic
)

// WithLogger installs l as the Context's error-sink Logger.
func WithLogger(l logging.Logger) Option {
	return ctx.WithLogger(l)
}

// Logger, Level, and the default leveled logger are re-exported from
// internal/logging for callers who want to install a custom sink via
// WithLogger without importing the internal package directly.
type Logger = logging.Logger

type LogLevel = logging.Level

const (
	LogLevelDebug = logging.LevelDebug
	LogLevelInfo  = logging.LevelInfo
	LogLevelWarn  = logging.LevelWarn
	LogLevelError = logging.LevelError
)

var NewDefaultLogger = logging.NewDefault

package flowicon

import (
	"sync/atomic"

	"github.com/rs/zerolog"
)

var loggerPtr atomic.Pointer[zerolog.Logger]

func init() {
	SetLogger(zerolog.Nop())
}

// SetLogger configures the logger used by the pipeline.
// By default nothing is logged. Stage timings are reported at debug level,
// the switch to the static fallback at warn level.
func SetLogger(l zerolog.Logger) {
	loggerPtr.Store(&l)
}

// Logger returns the logger currently used by the pipeline.
func Logger() *zerolog.Logger {
	return loggerPtr.Load()
}

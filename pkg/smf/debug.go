package smf

import (
	"context"
	"fmt"
	"log/slog"
)

// logger is the package-wide debug sink. It defaults to a handler that
// discards everything: the codec never logs on its own behalf, but an
// embedding application can swap in a real logger via SetLogger to
// observe the decoder's best-effort tolerances (non-standard meta
// lengths, skipped chunks, and so on).
var logger = slog.New(slog.NewTextHandler(discardWriter{}, nil))

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }

// SetLogger installs l as the package's debug sink. Passing nil restores
// the default no-op sink.
func SetLogger(l *slog.Logger) {
	if l == nil {
		logger = slog.New(slog.NewTextHandler(discardWriter{}, nil))
		return
	}
	logger = l
}

// debugf is the single verb every tolerant code path in the header and
// track decoders calls through. It skips formatting the message when the
// installed logger's handler has debug-level logging disabled.
func debugf(format string, args ...any) {
	if !logger.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	logger.Debug(fmt.Sprintf(format, args...))
}

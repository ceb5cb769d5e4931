package layout

import (
	"log/slog"

	"github.com/ByLCY/glyphbox/internal/logger"
)

// SetLogger configures logging for layout and the packages it drives
// (markup, fonts). Nothing is logged by default; nil restores that.
//
// Debug records cover re-layouts, ignored directive keys, unterminated
// directives, missing glyphs and atlas growth.
func SetLogger(l *slog.Logger) { logger.Set(l) }

// Logger returns the active logger.
func Logger() *slog.Logger { return logger.Get() }

package diagram

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/rendis/flowviz/internal/logging"
)

// Warning codes emitted during a render pass.
const (
	WarnMissingNamespace = "missing_namespace"
	WarnMultipleNames    = "multiple_names"
	WarnMissingName      = "missing_name"
	WarnUnresolvedStart  = "unresolved_start"
)

// Warning is a recoverable problem encountered during a render pass. The
// render continues with a defined fallback.
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Diagnostics collects the warnings of one Visualize call so callers can
// inspect or suppress them deterministically instead of scraping a log
// stream. Each warning is also logged with the render correlation ID.
type Diagnostics struct {
	renderID string
	logger   *slog.Logger
	warnings []Warning
}

func newDiagnostics(logger *slog.Logger) *Diagnostics {
	id := uuid.NewString()
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Diagnostics{
		renderID: id,
		logger:   logging.WithRenderID(logger, id),
	}
}

// RenderID identifies this render pass in log output.
func (d *Diagnostics) RenderID() string {
	return d.renderID
}

// Warnings returns the collected warnings in emission order.
func (d *Diagnostics) Warnings() []Warning {
	return d.warnings
}

// HasCode reports whether any warning with the given code was emitted.
func (d *Diagnostics) HasCode(code string) bool {
	for _, w := range d.warnings {
		if w.Code == code {
			return true
		}
	}
	return false
}

func (d *Diagnostics) warnf(code, format string, args ...any) {
	w := Warning{Code: code, Message: fmt.Sprintf(format, args...)}
	d.warnings = append(d.warnings, w)
	d.logger.Warn(w.Message, slog.String("code", w.Code))
}

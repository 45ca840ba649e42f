package logging

import "github.com/rs/zerolog"

// Diagnostics reports internal inconsistencies of UI components to the log.
// It never panics and never returns errors to the caller.
type Diagnostics struct {
	logger zerolog.Logger
}

// NewDiagnostics creates a Diagnostics sink tagged with a component name.
func NewDiagnostics(component string) *Diagnostics {
	return &Diagnostics{logger: Component(component)}
}

// NewDiagnosticsWithLogger wraps an existing logger.
func NewDiagnosticsWithLogger(logger zerolog.Logger) *Diagnostics {
	return &Diagnostics{logger: logger}
}

func (d *Diagnostics) ReportError(message string) {
	d.logger.Error().Msg(message)
}

func (d *Diagnostics) ReportWarning(message string) {
	d.logger.Warn().Msg(message)
}

package telemetry

import (
	"io"

	"github.com/robinvdvleuten/traderfmt/output"
)

// noOpCollector is the collector used when telemetry is disabled. It costs
// nothing and records nothing.
type noOpCollector struct{}

func (noOpCollector) Start(name string) Timer { return noOpTimer{} }

func (noOpCollector) Report(w io.Writer, _ *output.Styles) {}

// noOpTimer is a timer that does nothing.
type noOpTimer struct{}

func (noOpTimer) End() {}

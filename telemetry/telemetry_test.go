package telemetry

import (
	"context"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestFromContextDefaultsToNoOp(t *testing.T) {
	collector := FromContext(context.Background())

	// Must be safe to use without a collector installed.
	timer := collector.Start("anything")
	timer.End()

	var buf strings.Builder
	collector.Report(&buf, nil)
	assert.Equal(t, "", buf.String())
}

func TestWithCollector(t *testing.T) {
	collector := NewTimingCollector()
	ctx := WithCollector(context.Background(), collector)

	assert.Equal[Collector](t, collector, FromContext(ctx))
}

func TestTimingCollectorBuildsTree(t *testing.T) {
	collector := NewTimingCollector()

	root := collector.Start("format config.txt")
	read := collector.Start("read")
	read.End()
	parse := collector.Start("parse")
	parse.End()
	root.End()

	var buf strings.Builder
	collector.Report(&buf, nil)
	report := buf.String()

	lines := strings.Split(strings.TrimRight(report, "\n"), "\n")
	assert.Equal(t, 3, len(lines))
	assert.True(t, strings.HasPrefix(lines[0], "format config.txt: "), "got %q", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "├─ read: "), "got %q", lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "└─ parse: "), "got %q", lines[2])
}

func TestTimingCollectorNestsChildren(t *testing.T) {
	collector := NewTimingCollector()

	root := collector.Start("root")
	outer := collector.Start("outer")
	inner := collector.Start("inner")
	inner.End()
	outer.End()
	root.End()

	var buf strings.Builder
	collector.Report(&buf, nil)
	report := buf.String()

	assert.True(t, strings.Contains(report, "└─ outer: "), "got %q", report)
	assert.True(t, strings.Contains(report, "   └─ inner: "), "got %q", report)
}

func TestTimingCollectorEmptyReport(t *testing.T) {
	var buf strings.Builder
	NewTimingCollector().Report(&buf, nil)
	assert.Equal(t, "", buf.String())
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "0ms", formatDuration(0))
	assert.Equal(t, "12ms", formatDuration(12_000_000))
	assert.Equal(t, "1.50s", formatDuration(1_500_000_000))
}

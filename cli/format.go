package cli

import (
	"context"
	"fmt"

	"github.com/alecthomas/kong"

	"github.com/robinvdvleuten/traderfmt/formatter"
	"github.com/robinvdvleuten/traderfmt/loader"
	"github.com/robinvdvleuten/traderfmt/output"
	"github.com/robinvdvleuten/traderfmt/telemetry"
)

type FormatCmd struct {
	File   FileOrStdin `help:"Trader config input filename (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
	Column int         `help:"Cell width for currency table columns (canonical 60 if 0)." default:"0"`
	Indent int         `help:"Indent width for nested entries (canonical 4 if 0)." default:"0"`
}

func (cmd *FormatCmd) Run(ctx *kong.Context, globals *Globals) error {
	if err := cmd.File.EnsureContents(); err != nil {
		return err
	}

	runCtx := context.Background()

	var collector telemetry.Collector
	if globals.Telemetry {
		collector = telemetry.NewTimingCollector()
		runCtx = telemetry.WithCollector(runCtx, collector)

		runTimer := collector.Start(fmt.Sprintf("format %s", cmd.File.Base()))
		defer func() {
			runTimer.End()
			_, _ = fmt.Fprintln(ctx.Stderr)
			collector.Report(ctx.Stderr, output.NewStyles(ctx.Stderr))
		}()
	}

	// Best effort; when the path itself is bad the loader reports it below.
	sourceContent, _ := cmd.File.GetSourceContent()

	ldr := loader.New()
	doc, err := cmd.File.LoadDocument(runCtx, ldr)
	if err != nil {
		renderer := NewErrorRenderer(sourceContent)
		_, _ = fmt.Fprintln(ctx.Stderr, renderer.Render(err))
		printError(ctx.Stderr, "format failed")
		return NewCommandError(1)
	}

	var opts []formatter.Option
	if cmd.Column > 0 {
		opts = append(opts, formatter.WithColumnWidth(cmd.Column))
	}
	if cmd.Indent > 0 {
		opts = append(opts, formatter.WithIndentation(cmd.Indent))
	}
	f := formatter.New(opts...)

	return f.Format(runCtx, doc, ctx.Stdout)
}

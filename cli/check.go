package cli

import (
	"context"
	"fmt"

	"github.com/alecthomas/kong"

	"github.com/robinvdvleuten/traderfmt/ast"
	"github.com/robinvdvleuten/traderfmt/loader"
	"github.com/robinvdvleuten/traderfmt/output"
	"github.com/robinvdvleuten/traderfmt/telemetry"
)

type CheckCmd struct {
	File FileOrStdin `help:"Trader config input filename (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
}

func (cmd *CheckCmd) Run(ctx *kong.Context, globals *Globals) error {
	if err := cmd.File.EnsureContents(); err != nil {
		return err
	}

	runCtx := context.Background()

	var collector telemetry.Collector
	if globals.Telemetry {
		collector = telemetry.NewTimingCollector()
		runCtx = telemetry.WithCollector(runCtx, collector)

		runTimer := collector.Start(fmt.Sprintf("check %s", cmd.File.Base()))
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
		printError(ctx.Stderr, "check failed")
		return NewCommandError(1)
	}

	traders, currencies := 0, 0
	for _, tok := range doc.Tokens {
		switch tok.(type) {
		case *ast.Trader:
			traders++
		case *ast.CurrencyName:
			currencies++
		}
	}

	printSuccess(ctx.Stdout, "Check passed")
	printInfof(ctx.Stdout, "%d trader(s), %d currency table(s), %d top-level token(s)",
		traders, currencies, len(doc.Tokens))

	return nil
}

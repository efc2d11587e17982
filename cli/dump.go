package cli

import (
	"context"
	"fmt"

	"github.com/alecthomas/kong"
	"github.com/alecthomas/repr"

	"github.com/robinvdvleuten/traderfmt/loader"
)

type DumpCmd struct {
	File FileOrStdin `help:"Trader config input filename (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
}

func (cmd *DumpCmd) Run(ctx *kong.Context, globals *Globals) error {
	if err := cmd.File.EnsureContents(); err != nil {
		return err
	}

	// Best effort; when the path itself is bad the loader reports it below.
	sourceContent, _ := cmd.File.GetSourceContent()

	ldr := loader.New()
	doc, err := cmd.File.LoadDocument(context.Background(), ldr)
	if err != nil {
		renderer := NewErrorRenderer(sourceContent)
		_, _ = fmt.Fprintln(ctx.Stderr, renderer.Render(err))
		printError(ctx.Stderr, "dump failed")
		return NewCommandError(1)
	}

	repr.New(ctx.Stdout, repr.Indent("  ")).Println(doc)
	return nil
}

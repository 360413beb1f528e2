package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/mdxtodax/unmdx"
	"github.com/mdxtodax/unmdx/config/daxflags"
	"github.com/mdxtodax/unmdx/config/linterflags"
	"github.com/mdxtodax/unmdx/config/parserflags"
	"github.com/mdxtodax/unmdx/pkg/charm"
	"github.com/mdxtodax/unmdx/pkg/signalctx"
)

var Convert = &charm.Spec{
	Name:  "convert",
	Usage: "convert [options] [file]",
	Short: "convert an MDX query to DAX",
	New:   NewConvert,
}

type ConvertCommand struct {
	charm.Command
	parent *Command
	parser *parserflags.Flags
	linter *linterflags.Flags
	dax    *daxflags.Flags
	output string
}

func NewConvert(parent charm.Command, fs *flag.FlagSet) (charm.Command, error) {
	root, ok := parent.(*Command)
	if !ok {
		return nil, fmt.Errorf("convert: unexpected parent command")
	}
	c := &ConvertCommand{parent: root}
	c.parser = parserflags.New(&root.config.Parser)
	c.linter = linterflags.New(&root.config.Linter)
	c.dax = daxflags.New(&root.config.Dax)
	c.parser.SetFlags(fs)
	c.linter.SetFlags(fs)
	c.dax.SetFlags(fs)
	fs.StringVar(&c.output, "output", "", "write DAX to this path instead of stdout")
	fs.StringVar(&c.output, "o", "", "shorthand for -output")
	return c, nil
}

func (c *ConvertCommand) Run(args []string) error {
	c.linter.Resolve()
	if len(args) > 1 {
		return wrapUsage(fmt.Errorf("convert: too many arguments"))
	}
	src, err := readInput(args)
	if err != nil {
		return wrapPipeline(err)
	}

	ctx, cancel := signalctx.New(os.Interrupt)
	defer cancel()

	done := make(chan unmdx.Result, 1)
	go func() { done <- unmdx.MDXToDAX(src, c.parent.config, c.parent.cache) }()

	var res unmdx.Result
	select {
	case res = <-done:
	case <-ctx.Done():
		return wrapPipeline(ctx.Err())
	}

	if c.parent.config.Global.Debug {
		fmt.Fprintln(os.Stderr, "request:", res.RequestID)
	}
	printDiagnostics(res.Diagnostics, c.parent.config.Global.Debug)
	if err := writeOutput(c.output, res.Dax); err != nil {
		return wrapPipeline(err)
	}
	if unmdx.HasErrors(res.Diagnostics) {
		return wrapPipeline(errors.New("conversion completed with errors"))
	}
	return nil
}

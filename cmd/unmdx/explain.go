package main

import (
	"errors"
	"flag"
	"fmt"

	"github.com/mdxtodax/unmdx"
	"github.com/mdxtodax/unmdx/config/daxflags"
	"github.com/mdxtodax/unmdx/config/explainflags"
	"github.com/mdxtodax/unmdx/config/linterflags"
	"github.com/mdxtodax/unmdx/config/parserflags"
	"github.com/mdxtodax/unmdx/pkg/charm"
)

var Explain = &charm.Spec{
	Name:  "explain",
	Usage: "explain [options] [file]",
	Short: "explain what an MDX query does, without emitting DAX",
	New:   NewExplain,
}

type ExplainCommand struct {
	charm.Command
	parent  *Command
	parser  *parserflags.Flags
	linter  *linterflags.Flags
	dax     *daxflags.Flags
	explain *explainflags.Flags
	output  string
}

func NewExplain(parent charm.Command, fs *flag.FlagSet) (charm.Command, error) {
	root, ok := parent.(*Command)
	if !ok {
		return nil, fmt.Errorf("explain: unexpected parent command")
	}
	c := &ExplainCommand{parent: root}
	c.parser = parserflags.New(&root.config.Parser)
	c.linter = linterflags.New(&root.config.Linter)
	c.dax = daxflags.New(&root.config.Dax)
	c.explain = explainflags.New(&root.config.Explanation)
	c.parser.SetFlags(fs)
	c.linter.SetFlags(fs)
	c.dax.SetFlags(fs)
	c.explain.SetFlags(fs)
	fs.StringVar(&c.output, "output", "", "write the explanation to this path instead of stdout")
	fs.StringVar(&c.output, "o", "", "shorthand for -output")
	return c, nil
}

func (c *ExplainCommand) Run(args []string) error {
	c.linter.Resolve()
	if len(args) > 1 {
		return wrapUsage(fmt.Errorf("explain: too many arguments"))
	}
	src, err := readInput(args)
	if err != nil {
		return wrapPipeline(err)
	}

	cfg := c.parent.config
	q, diags := unmdx.ParseMDX(src, cfg)
	if q == nil {
		printDiagnostics(diags, cfg.Global.Debug)
		return wrapPipeline(errors.New("parsing failed"))
	}

	optimized, optDiags := unmdx.OptimizeIR(*q, cfg)
	diags = append(diags, optDiags...)

	text, explainDiags := unmdx.ExplainIR(optimized, cfg)
	diags = append(diags, explainDiags...)

	printDiagnostics(diags, cfg.Global.Debug)
	if err := writeOutput(c.output, text); err != nil {
		return wrapPipeline(err)
	}
	if unmdx.HasErrors(diags) {
		return wrapPipeline(errors.New("explanation completed with errors"))
	}
	return nil
}

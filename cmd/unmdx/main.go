// Command unmdx is the thin CLI collaborator: it wires flags to
// config.Config and calls into the unmdx package's public API. All
// actual conversion logic lives in the core packages, per the
// packaging-concerns non-goal — this binary only parses arguments,
// reads/writes files, and reports diagnostics and exit codes.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/mdxtodax/unmdx/cache"
	"github.com/mdxtodax/unmdx/config"
	"github.com/mdxtodax/unmdx/config/globalflags"
	"github.com/mdxtodax/unmdx/pkg/charm"
)

var Cli = &charm.Spec{
	Name:  "unmdx",
	Usage: "unmdx command [options] [arguments...]",
	Short: "convert MDX queries to DAX",
	New:   New,
}

func init() {
	Cli.Add(Convert)
	Cli.Add(Explain)
	Cli.Add(Version)
	Cli.Add(charm.Help)
}

// Command is the root command every subcommand's constructor receives as
// its parent, carrying the config.Config every flags.Flags wrapper edits
// in place and the process-lifetime cache subcommands share.
type Command struct {
	charm.Command
	config config.Config
	global *globalflags.Flags
	cache  *cache.Cache
}

func New(_ charm.Command, fs *flag.FlagSet) (charm.Command, error) {
	cfg := config.Default()
	config.ApplyEnvOverrides(&cfg)
	c := &Command{config: cfg}
	c.global = globalflags.New(&c.config.Global)
	c.global.SetFlags(fs)
	return c, nil
}

func (c *Command) Run(args []string) error {
	if _, err := c.global.Open(); err != nil {
		return wrapPipeline(err)
	}
	if c.config.Global.EnableCaching {
		ch, err := cache.New(cache.DefaultSize)
		if err != nil {
			return wrapPipeline(err)
		}
		c.cache = ch
	}
	return Cli.Exec(c, []string{"help"})
}

func main() {
	err := Cli.ExecRoot(os.Args[1:])
	if err == nil {
		return
	}
	fmt.Fprintln(os.Stderr, "unmdx: "+err.Error())

	var pe *pipelineError
	if errors.As(err, &pe) {
		os.Exit(1)
	}
	os.Exit(2)
}

package main

import (
	"flag"
	"fmt"
	"runtime/debug"

	"github.com/mdxtodax/unmdx/pkg/charm"
)

var Version = &charm.Spec{
	Name:  "version",
	Usage: "version",
	Short: "print unmdx's version",
	New:   NewVersion,
}

type VersionCommand struct{}

func NewVersion(_ charm.Command, _ *flag.FlagSet) (charm.Command, error) {
	return &VersionCommand{}, nil
}

func (c *VersionCommand) Run(args []string) error {
	fmt.Println(version())
	return nil
}

// version reports the module version embedded by "go install
// module@version", falling back to "unknown" for a plain "go build".
func version() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "unknown"
}

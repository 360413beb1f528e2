// Package charm is minimilast CLI framework inspired by cobra and urfave/cli.
package charm

import (
	"errors"
	"flag"
)

var (
	NeedHelp = errors.New("help")
	ErrNoRun = errors.New("no run method")
)

type Constructor func(Command, *flag.FlagSet) (Command, error)

type Command interface {
	Run([]string) error
}

type Spec struct {
	Name  string
	Usage string
	Short string
	Long  string
	New   Constructor
	// Hidden hides this command from help.
	Hidden bool
	// Hidden flags (comma-separated) marks these flags as hidden.
	HiddenFlags string
	// Redacted flags (comma-separated) marks these flags as redacted,
	// where a flag is shown (if not hidden) but its default value is hidden,
	// e.g., as is useful for a password flag.
	RedactedFlags string
	// Empty is the sub-command run when this command is invoked with no
	// arguments and no sub-command name, e.g. a command group whose bare
	// invocation should behave like one particular child.
	Empty    *Spec
	children []*Spec
	parent   *Spec
}

func (c *Spec) Add(child *Spec) {
	c.children = append(c.children, child)
	child.parent = c
}

func (c *Spec) lookupSub(name string) *Spec {
	for _, child := range c.children {
		if name == child.Name {
			return child
		}
	}
	return nil
}

// Root walks up the parent chain and returns the top-level Spec.
func (s *Spec) Root() *Spec {
	for s.parent != nil {
		s = s.parent
	}
	return s
}

func (s *Spec) Exec(parent Command, args []string) error {
	inst, err := newInstance(parent, s)
	if err != nil {
		return err
	}
	return inst.run(args)
}

func (s *Spec) ExecRoot(args []string) error {
	err := s.Exec(nil, args)
	if err == NeedHelp {
		return Help.Exec(nil, args)
	}
	return err
}

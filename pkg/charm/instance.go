package charm

import (
	"flag"
	"fmt"
)

// instance is one node of the unmdx command tree at run time: a Spec
// (convert, explain, version, help, ...) bound to its flag set and the
// Command value spec.New built. lookupSub/Exec below recurse over
// instances to walk from the root down to whichever leaf command the
// argument list names.
type instance struct {
	spec    *Spec
	command Command
	flags   *flag.FlagSet
}

func newInstance(parent Command, spec *Spec) (*instance, error) {
	if spec.New == nil {
		return nil, fmt.Errorf("command %q has no New constructor", spec.Name)
	}
	flags := flag.NewFlagSet(spec.Name, flag.ContinueOnError)
	cmd, err := spec.New(parent, flags)
	if err != nil {
		return nil, err
	}
	return &instance{spec, cmd, flags}, nil
}

// run parses args against this instance's flags, then either runs the
// bound command directly (no leftover args, or a leftover word that
// doesn't name a sub-command) or recurses into the matching child, e.g.
// dispatching "unmdx convert --dax-format=sql" down to the convert leaf.
func (i *instance) run(args []string) error {
	rest, err := parseFlags(i.flags, args)
	if err != nil {
		return err
	}
	if len(rest) == 0 {
		if i.spec.Empty == nil {
			if err := i.command.Run(rest); err != nil {
				if err == ErrNoRun {
					return fmt.Errorf("%s: no sub-command supplied", i.spec.Name)
				}
				return err
			}
			return nil
		}
		// bare invocation of a command group defers to its Empty spec
		return i.spec.Empty.Exec(i.command, rest)
	}
	child := i.spec.lookupSub(rest[0])
	if child == nil {
		if err := i.command.Run(rest); err != nil {
			if err == ErrNoRun {
				return fmt.Errorf("%s: no such sub-command: %s", i.spec.Name, rest[0])
			}
			return err
		}
		return nil
	}
	return child.Exec(i.command, rest[1:])
}

// options formats this instance's flags for "unmdx <cmd> -h" output,
// e.g. convert's --dax-format or explain's --html. Flags in
// spec.HiddenFlags are omitted unless vflag ("unmdx -v ...") is set;
// flags in spec.RedactedFlags never show their default value.
func (i *instance) options(vflag bool) []string {
	hidden := flagMap(i.spec.HiddenFlags)
	redacted := flagMap(i.spec.RedactedFlags)
	var body []string
	i.flags.VisitAll(func(f *flag.Flag) {
		name := "-" + f.Name
		if hidden[f.Name] {
			if !vflag {
				return
			}
			name = "[" + name + "]"
		}
		line := name + " " + f.Usage
		if f.DefValue != "" && !redacted[f.Name] {
			line = fmt.Sprintf("%s (default \"%s\")", line, f.DefValue)
		}
		body = append(body, line)
	})
	return body
}

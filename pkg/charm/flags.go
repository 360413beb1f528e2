package charm

import (
	"errors"
	"flag"
	"io"
)

// parseFlags parses args against fs, treating -h/-help (flag's built-in
// help handling) as a request for NeedHelp instead of fs's own usage
// text, since command help is rendered by the help command.
func parseFlags(fs *flag.FlagSet, args []string) ([]string, error) {
	fs.SetOutput(io.Discard)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, NeedHelp
		}
		return nil, err
	}
	return fs.Args(), nil
}

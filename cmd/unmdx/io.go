package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mdxtodax/unmdx/diag"
)

// readInput reads the query text from args[0], or from stdin when no
// argument (or "-") is given.
func readInput(args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		b, err := io.ReadAll(os.Stdin)
		return string(b), err
	}
	b, err := os.ReadFile(args[0])
	return string(b), err
}

// writeOutput writes text to path, or stdout when path is empty or "-".
func writeOutput(path, text string) error {
	if path == "" || path == "-" {
		_, err := os.Stdout.WriteString(text)
		return err
	}
	return os.WriteFile(path, []byte(text), 0o644)
}

func printDiagnostics(diags []diag.Diagnostic, verbose bool) {
	for _, d := range diags {
		if d.Severity == diag.Info && !verbose {
			continue
		}
		fmt.Fprintln(os.Stderr, string(d.Severity)+": "+d.Message)
	}
}

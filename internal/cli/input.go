package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// inputText returns the text operand: args[n] when present and not "-",
// otherwise standard input. A terminal on standard input is rejected
// instead of waiting for it. One trailing newline is removed from piped
// input.
func inputText(cmd *cobra.Command, args []string, n int) (string, error) {
	if n < len(args) && args[n] != "-" {
		return args[n], nil
	}

	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		return "", fmt.Errorf("%w: no text argument and standard input is a terminal", ErrUsage)
	}

	data, err := io.ReadAll(in)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInput, err)
	}
	s := string(data)
	if strings.HasSuffix(s, "\n") {
		s = strings.TrimSuffix(s, "\n")
		s = strings.TrimSuffix(s, "\r")
	}
	return s, nil
}

// writeLine writes the fields separated by tabs.
func writeLine(cmd *cobra.Command, fields ...string) {
	fmt.Fprintln(cmd.OutOrStdout(), strings.Join(fields, "\t"))
}

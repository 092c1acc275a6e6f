package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/coregx/ustring"
	"github.com/coregx/ustring/internal/logging"
)

// compilePattern compiles p, literally when plain is set, and logs the
// chosen strategy.
func compilePattern(cmd *cobra.Command, p string, plain bool) (*ustring.Pattern, error) {
	compile := ustring.Compile
	if plain {
		compile = ustring.CompilePlain
	}
	pat, err := compile(p)
	if err != nil {
		return nil, err
	}
	logging.FromContext(cmd.Context()).Debug("pattern",
		logging.FieldPattern, p,
		logging.FieldPlain, plain,
		logging.FieldStrategy, pat.Strategy().String(),
		logging.FieldCaptures, pat.NumCaptures(),
	)
	return pat, nil
}

func newFindCommand() *cobra.Command {
	var initPos int
	var plain bool

	cmd := &cobra.Command{
		Use:   "find PATTERN [TEXT]",
		Short: "Print the span and captures of the first match",
		Long: `Print the 1-based start and inclusive end of the first match, followed
by its captures, separated by tabs. Exits with status 1 when nothing
matches.`,
		Example: `  ustr find '%d+' abc123       # 4	6
  ustr find -p . a.b           # 2	2`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := inputText(cmd, args, 1)
			if err != nil {
				return err
			}
			pat, err := compilePattern(cmd, args[0], plain)
			if err != nil {
				return err
			}
			m, err := pat.Find(s, initPos)
			if err != nil {
				return err
			}
			if m == nil {
				return ErrNoMatch
			}
			fields := []string{strconv.Itoa(m.Start), strconv.Itoa(m.End)}
			writeLine(cmd, append(fields, ustring.Values(m.Captures)...)...)
			return nil
		},
	}

	cmd.Flags().IntVar(&initPos, "init", 1, "code point to start searching at")
	cmd.Flags().BoolVarP(&plain, "plain", "p", false, "treat PATTERN as literal text")
	return cmd
}

func newMatchCommand() *cobra.Command {
	var initPos int

	cmd := &cobra.Command{
		Use:   "match PATTERN [TEXT]",
		Short: "Print the captures of the first match",
		Long: `Print the captures of the first match separated by tabs, or the whole
match when the pattern has no captures. Exits with status 1 when nothing
matches.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := inputText(cmd, args, 1)
			if err != nil {
				return err
			}
			pat, err := compilePattern(cmd, args[0], false)
			if err != nil {
				return err
			}
			caps, err := pat.Match(s, initPos)
			if err != nil {
				return err
			}
			if caps == nil {
				return ErrNoMatch
			}
			writeLine(cmd, ustring.Values(caps)...)
			return nil
		},
	}

	cmd.Flags().IntVar(&initPos, "init", 1, "code point to start searching at")
	return cmd
}

func newGMatchCommand() *cobra.Command {
	var count bool

	cmd := &cobra.Command{
		Use:   "gmatch PATTERN [TEXT]",
		Short: "Print every match, one per line",
		Long: `Print the captures of every successive match, one match per line with
captures separated by tabs. Exits with status 1 when nothing matches.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := inputText(cmd, args, 1)
			if err != nil {
				return err
			}
			pat, err := compilePattern(cmd, args[0], false)
			if err != nil {
				return err
			}
			n := 0
			it := pat.GMatch(s)
			for it.Next() {
				n++
				if !count {
					writeLine(cmd, ustring.Values(it.Captures())...)
				}
			}
			if err := it.Err(); err != nil {
				return err
			}
			if count {
				writeLine(cmd, strconv.Itoa(n))
			}
			if n == 0 {
				return ErrNoMatch
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&count, "count", "c", false, "print only the number of matches")
	return cmd
}

func newGSubCommand() *cobra.Command {
	var limit int
	var count bool
	var table map[string]string

	cmd := &cobra.Command{
		Use:   "gsub PATTERN REPL [TEXT]",
		Short: "Replace matches of PATTERN",
		Long: `Replace matches of PATTERN with REPL, where %0 is the whole match,
%1-%9 are captures and %% is a literal percent sign. With --map, REPL is
ignored and each match is replaced by the entry for its first capture.`,
		Example: `  ustr gsub o 0 'hello world'             # hell0 w0rld
  ustr gsub '(%w+)=(%w+)' '%2=%1' 'a=b'    # b=a
  ustr gsub '%$(%w+)' '' --map name=ana 'hi $name'`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := inputText(cmd, args, 2)
			if err != nil {
				return err
			}
			pat, err := compilePattern(cmd, args[0], false)
			if err != nil {
				return err
			}

			var out string
			var n int
			if len(table) > 0 {
				out, n, err = pat.GSubMap(s, table, limit)
			} else {
				out, n, err = pat.GSub(s, args[1], limit)
			}
			if err != nil {
				return fmt.Errorf("gsub: %w", err)
			}
			writeLine(cmd, out)
			if count {
				writeLine(cmd, strconv.Itoa(n))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", -1, "maximum number of replacements (negative for all)")
	cmd.Flags().BoolVarP(&count, "count", "c", false, "also print the number of replacements")
	cmd.Flags().StringToStringVar(&table, "map", nil, "replacement table entries key=value")
	return cmd
}

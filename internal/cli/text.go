package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/coregx/ustring"
	"github.com/coregx/ustring/internal/conv"
)

func newLenCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "len [TEXT]",
		Short: "Count the code points of text",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := inputText(cmd, args, 0)
			if err != nil {
				return err
			}
			n, err := ustring.Len(s)
			if err != nil {
				return err
			}
			writeLine(cmd, strconv.Itoa(n))
			return nil
		},
	}
}

func newSubCommand() *cobra.Command {
	var from, to int

	cmd := &cobra.Command{
		Use:   "sub [TEXT]",
		Short: "Print the code points --from through --to",
		Example: `  ustr sub -i 2 -j 3 héllo     # él
  ustr sub -i -3 héllo         # llo`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := inputText(cmd, args, 0)
			if err != nil {
				return err
			}
			out, err := ustring.Sub(s, from, to)
			if err != nil {
				return err
			}
			writeLine(cmd, out)
			return nil
		},
	}

	cmd.Flags().IntVarP(&from, "from", "i", 1, "first code point (1-based, negative from the end)")
	cmd.Flags().IntVarP(&to, "to", "j", -1, "last code point, inclusive")
	return cmd
}

func newReverseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reverse [TEXT]",
		Short: "Reverse text by code point",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := inputText(cmd, args, 0)
			if err != nil {
				return err
			}
			out, err := ustring.Reverse(s)
			if err != nil {
				return err
			}
			writeLine(cmd, out)
			return nil
		},
	}
}

// parseCodePoint accepts decimal, 0x-prefixed hex and U+XXXX.
func parseCodePoint(s string) (rune, error) {
	if rest, ok := strings.CutPrefix(strings.ToUpper(s), "U+"); ok {
		s = "0x" + rest
	}
	n, err := strconv.ParseInt(s, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: code point %q", ErrUsage, s)
	}
	v, ok := conv.ToInt(n)
	if !ok {
		return 0, fmt.Errorf("%w: code point %q out of range", ErrUsage, s)
	}
	r, ok := conv.IntToRune(v)
	if !ok {
		return 0, fmt.Errorf("%w: code point %q out of range", ErrUsage, s)
	}
	return r, nil
}

func newCharCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "char CODEPOINT...",
		Short:   "Encode code points as text",
		Example: `  ustr char 104 0xE9 U+006C    # hél`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cps := make([]rune, len(args))
			for i, a := range args {
				r, err := parseCodePoint(a)
				if err != nil {
					return err
				}
				cps[i] = r
			}
			out, err := ustring.Char(cps...)
			if err != nil {
				return err
			}
			writeLine(cmd, out)
			return nil
		},
	}
}

func newCodePointsCommand() *cobra.Command {
	var from, to int
	var hex bool

	cmd := &cobra.Command{
		Use:   "codepoints [TEXT]",
		Short: "Print the code points --from through --to",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := inputText(cmd, args, 0)
			if err != nil {
				return err
			}
			cps, err := ustring.CodePoints(s, from, to)
			if err != nil {
				return err
			}
			fields := make([]string, len(cps))
			for i, r := range cps {
				if hex {
					fields[i] = fmt.Sprintf("U+%04X", r)
				} else {
					fields[i] = strconv.Itoa(int(r))
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(fields, " "))
			return nil
		},
	}

	cmd.Flags().IntVarP(&from, "from", "i", 1, "first code point (1-based, negative from the end)")
	cmd.Flags().IntVarP(&to, "to", "j", -1, "last code point, inclusive")
	cmd.Flags().BoolVarP(&hex, "hex", "x", false, "print as U+XXXX")
	return cmd
}

func newCaseCommand(name, short string, fn func(string) (string, error)) *cobra.Command {
	return &cobra.Command{
		Use:   name + " [TEXT]",
		Short: short,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := inputText(cmd, args, 0)
			if err != nil {
				return err
			}
			out, err := fn(s)
			if err != nil {
				return err
			}
			writeLine(cmd, out)
			return nil
		},
	}
}

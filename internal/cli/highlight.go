package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/coregx/ustring"
)

// styles renders highlighted matches. Without color, matches are wrapped
// in brackets instead.
type styles struct {
	color bool
	match lipgloss.Style
	dim   lipgloss.Style
}

func newStyles(mode string, w io.Writer) *styles {
	if !isColorEnabled(mode, w) {
		return &styles{}
	}
	r := lipgloss.NewRenderer(w)
	if mode == "always" {
		r.SetColorProfile(termenv.ANSI256)
	}
	return &styles{
		color: true,
		match: r.NewStyle().Foreground(lipgloss.Color("11")).Bold(true).Underline(true),
		dim:   r.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

func (s *styles) renderMatch(text string) string {
	if !s.color {
		return "[" + text + "]"
	}
	return s.match.Render(text)
}

func (s *styles) renderDim(text string) string {
	if !s.color {
		return text
	}
	return s.dim.Render(text)
}

// isColorEnabled determines if color should be enabled based on mode and
// writer. In auto mode color needs a terminal and no NO_COLOR.
func isColorEnabled(mode string, w io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		if f, ok := w.(*os.File); ok {
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
		return false
	}
}

// highlight returns s with every nonempty match of p rendered by st.
func highlight(p *ustring.Pattern, s string, st *styles) (string, int, error) {
	var sb strings.Builder
	last, n := 0, 0
	it := p.GMatch(s)
	for it.Next() {
		m := it.Match()
		if m.ByteEnd == m.ByteStart {
			continue
		}
		sb.WriteString(s[last:m.ByteStart])
		sb.WriteString(st.renderMatch(m.Text))
		last = m.ByteEnd
		n++
	}
	if err := it.Err(); err != nil {
		return "", 0, err
	}
	sb.WriteString(s[last:])
	return sb.String(), n, nil
}

func newHighlightCommand() *cobra.Command {
	var color string
	var summary bool

	cmd := &cobra.Command{
		Use:   "highlight PATTERN [TEXT]",
		Short: "Print text with every match highlighted",
		Long: `Print text with every nonempty match of PATTERN highlighted. Without
color, matches are wrapped in brackets.`,
		Example: `  ustr highlight --color never 'l+' héllo    # hé[ll]o`,
		Args:    cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := inputText(cmd, args, 1)
			if err != nil {
				return err
			}
			pat, err := compilePattern(cmd, args[0], false)
			if err != nil {
				return err
			}
			st := newStyles(color, cmd.OutOrStdout())
			out, n, err := highlight(pat, s, st)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			if summary {
				fmt.Fprintln(cmd.OutOrStdout(), st.renderDim(fmt.Sprintf("%d matches", n)))
			}
			if n == 0 {
				return ErrNoMatch
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&color, "color", "auto", "colorize output: auto, always, never")
	cmd.Flags().BoolVar(&summary, "summary", false, "print the number of matches")
	return cmd
}

package cli

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/spf13/cobra"

	"github.com/coregx/ustring/exprlib"
)

func newEvalCommand() *cobra.Command {
	var vars map[string]string
	var stdinVar string

	cmd := &cobra.Command{
		Use:   "eval EXPRESSION",
		Short: "Evaluate an expression using the ustring functions",
		Long: `Evaluate an expr-lang expression with the ustring functions registered
(ulen, usub, ureverse, uchar, ucodepoints, ufind, umatch, ugmatch, ugsub,
ugsubcount, uupper, ulower). String variables are bound with --var, and
--stdin binds standard input to a variable.`,
		Example: `  ustr eval 'ulen("héllo")'                      # 5
  ustr eval --var s=héllo 'usub(s, 2, 3)'         # él
  echo 'a b c' | ustr eval --stdin s 'ugmatch(s, "%a")'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env := make(map[string]any, len(vars)+1)
			for k, v := range vars {
				env[k] = v
			}
			if stdinVar != "" {
				s, err := inputText(cmd, nil, 0)
				if err != nil {
					return err
				}
				env[stdinVar] = s
			}

			program, err := expr.Compile(args[0], exprlib.GetExprOptions(env)...)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrUsage, err)
			}
			out, err := expr.Run(program, env)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().StringToStringVar(&vars, "var", nil, "bind string variables name=value")
	cmd.Flags().StringVar(&stdinVar, "stdin", "", "bind standard input to this variable")
	return cmd
}

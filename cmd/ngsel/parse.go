package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"ngsel-go/packages/selector/src/css"
)

func newParseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "parse <selector>...",
		Short: "Print the canonical form and a matching element of each selector",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			failed := 0
			for _, source := range args {
				selectors, err := css.ParseCssSelector(source)
				if err != nil {
					failed++
					a.logger.Debug("Failed to parse selector", zap.String("selector", source), zap.Error(err))
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", source, err)
					continue
				}
				fmt.Fprintln(out, source)
				for _, selector := range selectors {
					fmt.Fprintf(out, "  %s\t%s\n", selector, selector.MatchingElementTemplate())
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d selectors failed to parse", failed, len(args))
			}
			return nil
		},
	}
}

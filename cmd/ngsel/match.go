package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"ngsel-go/packages/selector/src/config"
	"ngsel-go/packages/selector/src/css"
	"ngsel-go/packages/selector/src/directive"
)

type matchOptions struct {
	directivesPath string
	elementsPath   string
	configPath     string
	strict         bool
}

func newMatchCmd(a *app) *cobra.Command {
	opts := &matchOptions{}

	cmd := &cobra.Command{
		Use:   "match",
		Short: "Report which directives apply to each element",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMatch(cmd, a.logger, opts)
		},
	}
	cmd.Flags().StringVar(&opts.directivesPath, "directives", "", "YAML file with a directives list")
	cmd.Flags().StringVar(&opts.elementsPath, "elements", "", "YAML file with an elements list (defaults to the directives file)")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "Optional matcher config file")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "Fail on the first malformed selector instead of skipping it")
	_ = cmd.MarkFlagRequired("directives")
	return cmd
}

func runMatch(cmd *cobra.Command, logger *zap.Logger, opts *matchOptions) error {
	matcherConfig := config.NewMatcherConfig()
	if opts.configPath != "" {
		loaded, err := config.LoadConfig(opts.configPath)
		if err != nil {
			return err
		}
		matcherConfig = loaded
	}
	if opts.strict {
		matcherConfig.Strict = true
	}

	directives, err := directive.LoadDirectives(opts.directivesPath)
	if err != nil {
		return err
	}
	elementsPath := opts.elementsPath
	if elementsPath == "" {
		elementsPath = opts.directivesPath
	}
	elements, err := directive.LoadElements(elementsPath)
	if err != nil {
		return err
	}
	logger.Info("Loaded inputs",
		zap.Int("directives", len(directives)),
		zap.Int("elements", len(elements)),
	)

	registry, err := directive.NewRegistry(cmd.Context(), directives,
		directive.WithConfig(matcherConfig),
		directive.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	descriptors := make([]css.ElementDescriptor, len(elements))
	for i, element := range elements {
		descriptors[i] = element.Descriptor()
	}
	results, err := registry.MatchAll(cmd.Context(), descriptors)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for i, element := range elements {
		writeMatches(out, i, element, results[i])
	}
	for _, skipped := range registry.Skipped() {
		fmt.Fprintf(cmd.ErrOrStderr(), "skipped %s: %v\n", skipped.Directive.Name, skipped.Err)
	}
	return nil
}

func writeMatches(out io.Writer, index int, element directive.Element, matches []directive.Match) {
	fmt.Fprintf(out, "#%d %s\n", index, describeElement(element))
	if len(matches) == 0 {
		fmt.Fprintln(out, "  (no directives)")
		return
	}
	for _, m := range matches {
		fmt.Fprintf(out, "  %s [%s] via %s\n", m.Directive.Name, m.Directive.Kind, m.Selector)
	}
}

// describeElement renders the element as a start tag with attributes in sorted order
func describeElement(element directive.Element) string {
	var b strings.Builder
	b.WriteString("<" + element.Tag)
	if len(element.Classes) > 0 {
		fmt.Fprintf(&b, ` class="%s"`, strings.Join(element.Classes, " "))
	}
	names := make([]string, 0, len(element.Attrs))
	for name := range element.Attrs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		b.WriteString(" " + name)
		if value := element.Attrs[name]; value != "" {
			fmt.Fprintf(&b, `="%s"`, value)
		}
	}
	b.WriteString(">")
	return b.String()
}

package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func (c *cli) renderCmd() *cobra.Command {
	var (
		localsFile string
		sets       []string
	)
	cmd := &cobra.Command{
		Use:     "render NAME",
		Aliases: []string{"r"},
		Short:   "Compile a template and print the HTML",
		Long: `Compile the template NAME into the layout and print the result.

Locals are read from a YAML mapping with --locals and overridden by
--set key=value pairs. Values given with --set are parsed as YAML scalars,
so --set count=3 binds an integer.

Examples:
  hyraft render articles/show --locals article.yaml
  hyraft render index --set page_title=Home`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			locals, err := readLocals(localsFile, sets)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			s, err := c.newStack(ctx, "")
			if err != nil {
				return err
			}
			defer s.Close()

			html, err := s.compiler.Compile(ctx, args[0], locals)
			if err != nil {
				return err
			}
			_, err = io.WriteString(cmd.OutOrStdout(), html)
			return err
		},
	}

	f := cmd.Flags()
	f.StringVarP(&localsFile, "locals", "l", "", "YAML file with template locals")
	f.StringArrayVar(&sets, "set", nil, "set a local (key=value, repeatable)")
	return cmd
}

// readLocals merges the YAML file at path with key=value pairs.
func readLocals(path string, sets []string) (map[string]any, error) {
	locals := map[string]any{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("hyraft: read locals: %w", err)
		}
		if err := yaml.Unmarshal(data, &locals); err != nil {
			return nil, fmt.Errorf("hyraft: decode locals %s: %w", path, err)
		}
		if locals == nil {
			locals = map[string]any{}
		}
	}

	for _, kv := range sets {
		key, raw, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidSet, kv)
		}
		locals[key] = scalar(raw)
	}

	if len(locals) == 0 {
		return nil, nil
	}
	return locals, nil
}

// scalar decodes raw as a YAML boolean or number, keeping anything else as
// the string given.
func scalar(raw string) any {
	var v any
	if err := yaml.Unmarshal([]byte(raw), &v); err != nil {
		return raw
	}
	switch v.(type) {
	case bool, int, float64:
		return v
	default:
		return raw
	}
}

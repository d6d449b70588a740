package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/hyraft/pkg/display"
)

// templateInfo is one row of the templates listing.
type templateInfo struct {
	Name string `yaml:"name"`
	App  string `yaml:"app"`
	Path string `yaml:"path"`
}

func (c *cli) templatesCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:     "templates",
		Aliases: []string{"ls"},
		Short:   "List discovered templates",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			finder := display.NewFinder(os.DirFS(c.cfg.Root), display.WithRoot(c.cfg.Intake))
			entries, err := finder.List()
			if err != nil {
				return err
			}

			rows := make([]templateInfo, 0, len(entries))
			for _, e := range entries {
				rows = append(rows, templateInfo{Name: e.Key, App: e.App, Path: e.Path})
			}

			out := cmd.OutOrStdout()
			switch format {
			case "yaml":
				enc := yaml.NewEncoder(out)
				defer enc.Close()
				return enc.Encode(rows)
			case "table":
				w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "NAME\tAPP\tPATH")
				for _, r := range rows {
					fmt.Fprintf(w, "%s\t%s\t%s\n", r.Name, r.App, r.Path)
				}
				return w.Flush()
			default:
				return fmt.Errorf("%w: %s", ErrUnknownFormat, format)
			}
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "table", "output format (table, yaml)")
	return cmd
}

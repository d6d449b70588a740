package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/hyraft/pkg/jslib"
	"github.com/dmitrymomot/hyraft/pkg/obfuscator"
)

func (c *cli) libsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "libs [NAME]",
		Short: "List built-in libraries or print one",
		Long: `Without arguments, list the libraries a template can pull in with
<require file="NAME"/>. With NAME, print that library as pages receive it,
obfuscated with the configured method.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := jslib.Default()
			out := cmd.OutOrStdout()

			if len(args) == 0 {
				for _, name := range reg.Names() {
					fmt.Fprintln(out, name)
				}
				return nil
			}

			src, ok := reg.Get(args[0], obfuscator.New(), c.cfg.ObfuscationMethod())
			if !ok {
				return fmt.Errorf("%w: %s", ErrUnknownLibrary, args[0])
			}
			_, err := fmt.Fprintln(out, src)
			return err
		},
	}
}

package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/colorterm/internal/schema"
)

type rolesOptions struct {
	all bool
}

func newRolesCmd(app *AppContext) *cobra.Command {
	opts := &rolesOptions{}

	cmd := &cobra.Command{
		Use:   "roles",
		Short: "List the color roles of a target and their palette slots",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoles(cmd, app, opts)
		},
	}

	cmd.Flags().StringP("target", "t", "", "Target terminal (iterm, warp, hyper)")
	cmd.Flags().BoolVar(&opts.all, "all", false, "List every target")
	bindFlag(cmd, "target", "target")

	return cmd
}

func runRoles(cmd *cobra.Command, app *AppContext, opts *rolesOptions) error {
	targets := []schema.Target{app.Config.TargetSchema()}
	if opts.all {
		targets = schema.Targets()
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TARGET\tROLE\tINDEX\tEMPHASIS")
	for _, target := range targets {
		s, err := schema.Lookup(target)
		if err != nil {
			return newCommandError("roles", "looking up target", err, "Use one of: iterm, warp, hyper.")
		}
		for _, r := range s.Roles {
			emphasis := ""
			if r.Name == s.Emphasis {
				emphasis = "*"
			}
			fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", s.Target, r.Name, r.Index, emphasis)
		}
	}
	return tw.Flush()
}

package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dpetit12345/classical-fixes/internal/errmsg"
	"github.com/dpetit12345/classical-fixes/internal/fixes"
	"github.com/dpetit12345/classical-fixes/internal/library"
	"github.com/dpetit12345/classical-fixes/internal/lookup"
)

type addCommand struct {
	use   string
	short string
	op    errmsg.Op
	run   func(*fixes.Runner, []string) fixes.Results
}

func newAddCommands(ctx *commandContext) []*cobra.Command {
	adds := []addCommand{
		{"add-composer", "Add the composer of files to the lookup table", errmsg.OpAddComposer, (*fixes.Runner).AddComposerToLookup},
		{"add-conductor", "Add the conductor of files to the lookup table", errmsg.OpAddConductor, (*fixes.Runner).AddConductorToLookup},
		{"add-orchestra", "Add the orchestra of files to the lookup table", errmsg.OpAddOrchestra, (*fixes.Runner).AddOrchestraToLookup},
	}

	cmds := make([]*cobra.Command, 0, len(adds))
	for _, ac := range adds {
		cmds = append(cmds, &cobra.Command{
			Use:   ac.use + " PATH...",
			Short: ac.short,
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return ctx.withService(func(_ *fixes.Service, runner *fixes.Runner) error {
					rep := &report{op: ac.op}
					files := library.Discover(ctx.fs, args)
					if len(files) > 0 {
						rep.add(ac.run(runner, files))
					}
					return rep.write(cmd.OutOrStdout())
				})
			},
		})
	}
	return cmds
}

func newLookupCommand(ctx *commandContext) *cobra.Command {
	lookupCmd := &cobra.Command{
		Use:   "lookup",
		Short: "Inspect the lookup table",
	}

	var role string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List lookup entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(func(svc *fixes.Service, _ *fixes.Runner) error {
				headers, rows, err := lookupRows(svc.Store().Table(), role)
				if err != nil {
					return errors.New(errmsg.Format(errmsg.OpLookupList, err))
				}
				if len(rows) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No entries.")
					return nil
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(headers, rows, nil))
				return nil
			})
		},
	}
	listCmd.Flags().StringVarP(&role, "role", "r", "composer", "Table to list: composer, conductor, orchestra or misspelling")
	lookupCmd.AddCommand(listCmd)
	return lookupCmd
}

func lookupRows(t lookup.Table, role string) ([]string, [][]string, error) {
	var rows [][]string
	switch strings.ToLower(role) {
	case "composer":
		for _, c := range t.Composers {
			rows = append(rows, []string{c.Name, c.SortName, c.View, c.Epoque})
		}
		return []string{"Composer", "Sort", "View", "Epoque"}, rows, nil
	case "conductor":
		for _, c := range t.Conductors {
			rows = append(rows, []string{c.Name, c.SortName})
		}
		return []string{"Conductor", "Sort"}, rows, nil
	case "orchestra":
		for _, o := range t.Orchestras {
			rows = append(rows, []string{o.Name})
		}
		return []string{"Orchestra"}, rows, nil
	case "misspelling":
		for _, m := range t.Misspellings {
			rows = append(rows, []string{m.Canonical, strings.Join(m.Aliases, "; ")})
		}
		return []string{"Canonical", "Aliases"}, rows, nil
	}
	return nil, nil, fmt.Errorf("unknown role %q", role)
}

package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newListCmd(o *options) *cobra.Command {
	var details bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the profiles of the configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := o.loadConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if conf.Len() == 0 {
				fmt.Fprintf(out, "no profiles in %s\n", conf.Path)
				return nil
			}
			if !details {
				for _, name := range conf.Names() {
					fmt.Fprintln(out, name)
				}
				return nil
			}
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tSOURCE\tOUTPUT\tGENERATOR\tMODE\tSKIP")
			for _, name := range conf.Names() {
				p, _ := conf.Get(name)
				mode := p.Mode
				if mode == "" {
					mode = "(default)"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%t\n", name, p.Source(), p.Output, p.Generator, mode, p.Skip)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&details, "details", false, "Show the source, output and generator of each profile")
	return cmd
}

func newModesCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "modes [generator]",
		Short: "List generators, or the modes of one generator",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) == 0 {
				for _, g := range o.registry.Generators() {
					fmt.Fprintln(out, g)
				}
				return nil
			}
			modes, err := o.registry.Modes(args[0])
			if err != nil {
				msg := err.Error()
				if s := suggest(strings.ToLower(args[0]), o.registry.Generators()); len(s) > 0 {
					msg += "\n\nDid you mean this?\n\t" + strings.Join(s, "\n\t")
				}
				return newUsageError(msg)
			}
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "MODE\tLANGUAGE\tEXTENSION\tDESCRIPTION")
			for i, m := range modes {
				name := m.Name()
				if i == 0 {
					name += " " + faint("(default)")
				}
				fmt.Fprintf(tw, "%s\t%s\t.%s\t%s\n", name, m.Language(), m.Extension(), m.Description())
			}
			return tw.Flush()
		},
	}
}

func newRenameCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <old> <new>",
		Short: "Rename a profile",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := o.loadConfig()
			if err != nil {
				return err
			}
			oldName, newName := args[0], strings.TrimSpace(args[1])
			if _, ok := conf.Get(oldName); !ok {
				return unknownProfile(conf, oldName)
			}
			if newName == "" {
				return newUsageError("rename: the new name cannot be empty")
			}
			if err := conf.Rename(oldName, newName); err != nil {
				return usageErrorf("%w", err)
			}
			if err := conf.Save(); err != nil {
				return err
			}
			reporter{w: cmd.OutOrStdout()}.ok(newName, "renamed from %s", oldName)
			return nil
		},
	}
}

func newRemoveCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <name>",
		Aliases: []string{"rm"},
		Short:   "Remove a profile",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := o.loadConfig()
			if err != nil {
				return err
			}
			if _, ok := conf.Get(args[0]); !ok {
				return unknownProfile(conf, args[0])
			}
			if err := conf.Remove(args[0]); err != nil {
				return err
			}
			if err := conf.Save(); err != nil {
				return err
			}
			reporter{w: cmd.OutOrStdout()}.ok(args[0], "removed from %s", conf.Path)
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the swagen version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "swagen %s\n", Version)
		},
	}
}

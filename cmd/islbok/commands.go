package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/naveenspark/islendingabok/internal/browser"
	"github.com/naveenspark/islendingabok/internal/tui"
	"github.com/naveenspark/islendingabok/pkg/client"
)

const siteURL = "https://www.islendingabok.is/"

func newMeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show your own record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.connect(cmd.Context())
			if err != nil {
				return err
			}
			defer c.Close()

			me, err := c.Me(cmd.Context())
			if err != nil {
				return err
			}
			return printPerson(cmd.OutOrStdout(), a.opts.output, me)
		},
	}
}

func newPersonCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "person [id]",
		Short: "Show a person's record (defaults to your own)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.connect(cmd.Context())
			if err != nil {
				return err
			}
			defer c.Close()

			p, err := c.Person(cmd.Context(), optionalArg(args))
			if err != nil {
				return err
			}
			return printPerson(cmd.OutOrStdout(), a.opts.output, p)
		},
	}
}

func newFindCmd(a *app) *cobra.Command {
	var q client.FindQuery
	cmd := &cobra.Command{
		Use:   "find [name]",
		Short: "Search by name and/or date of birth",
		Long: `Search by name and/or date of birth.

With a name, any of --year, --month and --day narrow the search.
Without a name, --day, --month and --year are all required.`,
		Example: `  islbok find "Vigdís Finnbogadóttir"
  islbok find "Ólafur Indriði Stefánsson" --year 1973 --month 7
  islbok find --day 15 --month 7 --year 1973`,
		RunE: func(cmd *cobra.Command, args []string) error {
			q.Name = strings.Join(args, " ")
			c, err := a.connect(cmd.Context())
			if err != nil {
				return err
			}
			defer c.Close()

			people, err := c.Find(cmd.Context(), q)
			if err != nil {
				return err
			}
			return printPeople(cmd.OutOrStdout(), a.opts.output, people)
		},
	}
	cmd.Flags().IntVar(&q.BirthYear, "year", 0, "birth year")
	cmd.Flags().IntVar(&q.BirthMonth, "month", 0, "birth month (1-12)")
	cmd.Flags().IntVar(&q.BirthDay, "day", 0, "birth day (1-31)")
	return cmd
}

func newRelationCmd(a *app) *cobra.Command {
	names := make([]string, 0, len(client.Relations()))
	for _, rel := range client.Relations() {
		names = append(names, string(rel))
	}
	return &cobra.Command{
		Use:       "relation <name> [id]",
		Short:     "Call a relation endpoint: " + strings.Join(names, ", "),
		Args:      cobra.RangeArgs(1, 2),
		ValidArgs: names,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Resolve the name first so an unknown relation never logs in.
			rel, err := client.ParseRelation(args[0])
			if err != nil {
				return err
			}
			return runRelation(cmd, a, rel, optionalArg(args[1:]))
		},
	}
}

func newNamedRelationCmd(a *app, rel client.Relation) *cobra.Command {
	return &cobra.Command{
		Use:   string(rel) + " [id]",
		Short: "List " + string(rel) + " of a person (defaults to you)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRelation(cmd, a, rel, optionalArg(args))
		},
	}
}

func runRelation(cmd *cobra.Command, a *app, rel client.Relation, id string) error {
	c, err := a.connect(cmd.Context())
	if err != nil {
		return err
	}
	defer c.Close()

	people, err := c.Relation(cmd.Context(), rel, id)
	if err != nil {
		return err
	}
	return printPeople(cmd.OutOrStdout(), a.opts.output, people)
}

func newWhoisCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whois <session-id>",
		Short: "Reveal the name behind another user's session id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.connect(cmd.Context())
			if err != nil {
				return err
			}
			defer c.Close()

			text, err := c.Whois(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), text)
			return err
		},
	}
}

func newBrowseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse people and relations interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.connect(cmd.Context())
			if err != nil {
				return err
			}
			defer c.Close()

			p := tea.NewProgram(tui.NewApp(c), tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("tui error: %w", err)
			}
			return nil
		},
	}
}

func newDemoCmd(a *app) *cobra.Command {
	var q client.FindQuery
	cmd := &cobra.Command{
		Use:   "demo [name]",
		Short: "Print your name, search for someone and list the first match's siblings",
		RunE: func(cmd *cobra.Command, args []string) error {
			q.Name = strings.Join(args, " ")
			if q.Name == "" {
				q.Name = "Vigdís Finnbogadóttir"
			}
			c, err := a.connect(cmd.Context())
			if err != nil {
				return err
			}
			defer c.Close()

			out := cmd.OutOrStdout()
			me, err := c.Me(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(out, titleStyle.Render(me.Name())) //nolint:errcheck

			found, err := c.Find(cmd.Context(), q)
			if err != nil {
				return err
			}
			if err := printPeople(out, a.opts.output, found); err != nil {
				return err
			}
			if len(found) == 0 {
				return nil
			}

			siblings, err := c.Siblings(cmd.Context(), found[0].ID())
			if err != nil {
				return err
			}
			fmt.Fprintln(out, "\n"+sectionStyle.Render("siblings of "+found[0].Name())) //nolint:errcheck
			return printPeople(out, a.opts.output, siblings)
		},
	}
	cmd.Flags().IntVar(&q.BirthYear, "year", 0, "birth year")
	cmd.Flags().IntVar(&q.BirthMonth, "month", 0, "birth month")
	cmd.Flags().IntVar(&q.BirthDay, "day", 0, "birth day")
	return cmd
}

func newWebCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "web",
		Short: "Open Íslendingabók in your browser",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := browser.Open(siteURL); err != nil {
				fmt.Fprintln(cmd.OutOrStdout(), siteURL) //nolint:errcheck
			}
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "islbok "+version) //nolint:errcheck
		},
	}
}

func optionalArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

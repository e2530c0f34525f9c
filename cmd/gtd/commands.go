package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/nicolagi/gtd"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newAddCommand(open func() error) *cobra.Command {
	var createProject bool
	cmd := &cobra.Command{
		Use:   "add <text>...",
		Short: "Add a task from a quick-add line",
		Long: `Add a task from a quick-add line and print its id.

Besides the title, the line may contain @contexts, #tags, +Project (matched by
title), !Area (matched by name), a status such as /next or /waiting,
/due:<date> (e.g., /due:tomorrow 5pm, /due:friday, /due:2025-03-01 9:30am),
/note:<text> for the description, /project:<id> and /area:<name>.`,
		Example: `  gtd add Call mom @phone /next /due:tomorrow 5pm
  gtd add --create-project Draft outline +Book Launch`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.TrimSpace(strings.Join(args, " "))
			if text == "" {
				return errors.New("missing task text")
			}
			if err := open(); err != nil {
				return err
			}
			id, parsed := store.QueueQuickAdd(text)
			if parsed.ProjectTitle != "" {
				if createProject {
					pid := store.QueueProjectAdd(gtd.NewProjectPatch("").WithTitle(parsed.ProjectTitle))
					store.QueueTaskUpdate(gtd.NewTaskPatch(id).WithProjectID(pid))
				} else {
					log.WithField("project", parsed.ProjectTitle).Warning("No such project, use --create-project to create it")
				}
			}
			if err := save(); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}
	cmd.Flags().BoolVar(&createProject, "create-project", false, "create the +Project if it does not exist")
	return cmd
}

func newListCommand(open func() error) *cobra.Command {
	var (
		all    bool
		status string
		query  string
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks, soonest due first",
		Long: `List tasks that are not deleted, soonest due first. Done and archived tasks are
hidden unless --all is given.

A query is made of space-separated terms that must all match: @context, #tag,
+project (substring of the project title), /status, or text found in the title
or description. A leading minus negates a term, e.g., "@home -#errand".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := open(); err != nil {
				return err
			}
			scan := store.SearchTasks().WithIsDeleted(false)
			if !all {
				scan.WithOpen()
			}
			if status != "" {
				s, ok := gtd.ParseStatus(status)
				if !ok {
					return fmt.Errorf("unknown status %q", status)
				}
				scan.WithStatus(s)
			}
			addQuery(scan, query)
			tasks := scan.Results()
			sort.Stable(tasksByDue(tasks))
			printTasks(cmd.OutOrStdout(), tasks)
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "include done and archived tasks")
	cmd.Flags().StringVar(&status, "status", "", "only tasks with this `status`")
	cmd.Flags().StringVar(&query, "query", "", "only tasks matching the `query`")
	return cmd
}

func newSearchCommand(open func() error) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>...",
		Short: "Search projects and tasks",
		Long: `Search projects whose title contains the text terms of the query, and tasks
matching the whole query (see gtd list --help for the query syntax).`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.TrimSpace(strings.Join(args, " "))
			if query == "" {
				return errors.New("missing search query")
			}
			if err := open(); err != nil {
				return err
			}
			scan := store.SearchTasks().WithIsDeleted(false)
			text := addQuery(scan, query)
			tasks := scan.Results()

			var projects []*gtd.Project
			if len(text) > 0 {
				projectScan := store.SearchProjects().WithIsDeleted(false)
				for _, t := range text {
					projectScan.WithTitle(t)
				}
				projects = projectScan.Results()
				sort.Sort(projectsByTitle(projects))
			}

			w := cmd.OutOrStdout()
			if len(projects) > 0 {
				_, _ = fmt.Fprintln(w, "Projects:")
				printProjects(w, projects)
				_, _ = fmt.Fprintln(w)
			}
			if len(tasks) > 0 {
				_, _ = fmt.Fprintln(w, "Tasks:")
				printTasks(w, tasks)
			}
			return nil
		},
	}
}

func newCompleteCommand(open func() error) *cobra.Command {
	return &cobra.Command{
		Use:   "complete <id>",
		Short: "Mark a task done",
		Long:  "Mark a task done. If the task recurs, its next instance is created.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := open(); err != nil {
				return err
			}
			id := args[0]
			if _, ok := store.TaskByID(id); !ok {
				return fmt.Errorf("task %s: %w", id, gtd.ErrNotFound)
			}
			store.QueueTaskComplete(id)
			if err := save(); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		},
	}
}

func newShowCommand(open func() error) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := open(); err != nil {
				return err
			}
			task, ok := store.TaskByID(args[0])
			if !ok {
				return fmt.Errorf("task %s: %w", args[0], gtd.ErrNotFound)
			}
			printTask(cmd.OutOrStdout(), task)
			return nil
		},
	}
}

func newExportCommand(open func() error) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write all data to standard output",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := open(); err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			switch format {
			case "json":
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(store.Data())
			case "yaml":
				enc := yaml.NewEncoder(w)
				enc.SetIndent(2)
				if err := enc.Encode(store.Data()); err != nil {
					return err
				}
				return enc.Close()
			}
			return fmt.Errorf("unknown format %q, want json or yaml", format)
		},
	}
	cmd.Flags().StringVar(&format, "format", "json", "output `format`: json or yaml")
	return cmd
}

func newRRuleCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rrule",
		Short: "Convert recurrence rules to and from RRULE strings",
	}
	cmd.AddCommand(&cobra.Command{
		Use:     "build <rule> [weekday...]",
		Short:   "Print the RRULE string for a rule and weekdays",
		Example: "  gtd rrule build weekly MO WE",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rule := gtd.Rule(strings.ToLower(args[0]))
			if !rule.Valid() {
				return fmt.Errorf("unknown rule %q, want one of %v", args[0], gtd.Rules)
			}
			var days []gtd.Weekday
			for _, arg := range args[1:] {
				for _, d := range strings.Split(arg, ",") {
					days = append(days, gtd.Weekday(d))
				}
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), gtd.BuildRRule(rule, days...))
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:     "parse <rrule>",
		Short:   "Print the rule and weekdays of an RRULE string",
		Example: "  gtd rrule parse 'FREQ=WEEKLY;BYDAY=MO,WE'",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rule, days := gtd.ParseRRule(args[0])
			if rule == "" {
				return fmt.Errorf("no valid FREQ in %q", args[0])
			}
			var names []string
			for _, d := range days {
				names = append(names, string(d))
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "rule: %s\nbyDay: %s\n", rule, strings.Join(names, ","))
			return nil
		},
	})
	return cmd
}

package main

import (
	"errors"
	"os"

	"github.com/fatih/color"
	"github.com/nicolagi/gtd"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var store *gtd.Store

func main() {
	root := newRootCommand()
	if err := root.Execute(); err != nil {
		color.New(color.FgRed, color.Bold).Fprintf(root.ErrOrStderr(), "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var cfg *config
	root := &cobra.Command{
		Use:           "gtd",
		Short:         "Capture and organize tasks in a GTD data file",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if cfg, err = loadConfig(cmd); err != nil {
				return err
			}
			level, err := log.ParseLevel(cfg.LogLevel)
			if err != nil {
				log.WithFields(log.Fields{
					"level": cfg.LogLevel,
					"cause": err,
				}).Warning("Unknown log level, using info")
				level = log.InfoLevel
			}
			log.SetLevel(level)
			if cfg.NoColor {
				color.NoColor = true
			}
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if store == nil {
				return nil
			}
			err := store.Close()
			store = nil
			return err
		},
	}

	flags := root.PersistentFlags()
	flags.String("data", "", "data file `path` (default $XDG_DATA_HOME/gtd/data.json)")
	flags.String("log-level", "info", "log `level`: debug, info, warning or error")
	flags.Bool("no-color", false, "disable colored output")

	// Commands that read or write the data file open the store lazily, so that, e.g., rrule works without one.
	open := func() error {
		var err error
		store, err = openStore(cfg)
		return err
	}
	root.AddCommand(
		newAddCommand(open),
		newListCommand(open),
		newSearchCommand(open),
		newCompleteCommand(open),
		newShowCommand(open),
		newExportCommand(open),
		newRRuleCommand(),
	)
	return root
}

func openStore(cfg *config) (*gtd.Store, error) {
	opts := []gtd.StoreOption{gtd.WithDataPath(cfg.DataFilePath)}
	if cfg.JournalPath != "" {
		opts = append(opts, gtd.WithJournal(cfg.JournalPath))
	}
	s, err := gtd.NewStore(opts...)
	if err != nil {
		return nil, err
	}
	if err := s.Load(); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			_ = s.Close()
			return nil, err
		}
		log.WithField("path", s.Path()).Info("No data file yet, starting empty")
	}
	return s, nil
}

// save commits the queued commands and writes the data file. Commands that failed are reported, but the data file
// is written anyway with those that succeeded.
func save() error {
	commitErr := store.Commit()
	if commitErr != nil {
		log.WithField("cause", commitErr).Debug("Some commands failed")
	}
	if err := store.Dump(); err != nil {
		return err
	}
	return commitErr
}

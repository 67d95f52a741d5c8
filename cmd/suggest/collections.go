package main

import (
	stderrors "errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gcbaptista/go-suggest/config"
	"github.com/gcbaptista/go-suggest/internal/dataset"
	internalErrors "github.com/gcbaptista/go-suggest/internal/errors"
)

func (app *cli) collectionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "collections",
		Short: "List collections and their sizes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.loadConfig()
			if err != nil {
				return err
			}
			cat, backend := openCatalog(cfg)
			defer backend.Close()

			for _, name := range cat.ListCollections() {
				col, err := cat.GetCollection(name)
				if err != nil {
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\n", name, len(col.Candidates()))
			}
			return nil
		},
	}
}

func (app *cli) loadCmd() *cobra.Command {
	var (
		fields []string
		watch  bool
	)

	cmd := &cobra.Command{
		Use:   "load <collection> <dataset>",
		Short: "Replace a collection's candidates from a JSON or YAML file",
		Long: `Replace a collection's candidates from a JSON or YAML dataset, creating the
collection if needed. Every record needs an id and a name; --fields picks
extra string fields by gjson path (e.g. i18n.he). With --watch the dataset is
recorded in the collection settings so that serve keeps it in sync.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.loadConfig()
			if err != nil {
				return err
			}
			cat, backend := openCatalog(cfg)
			defer backend.Close()

			name, path := args[0], args[1]
			candidates, err := dataset.LoadFile(path, fields)
			if err != nil {
				return err
			}

			settings, err := cat.GetCollectionSettings(name)
			switch {
			case stderrors.Is(err, internalErrors.ErrCollectionNotFound):
				settings = config.NewCollectionSettings(name)
				if watch {
					settings.DatasetPath = path
					settings.DatasetFields = fields
				}
				if err := cat.CreateCollection(settings); err != nil {
					return err
				}
			case err != nil:
				return err
			case watch:
				settings.DatasetPath = path
				settings.DatasetFields = fields
				if err := cat.UpdateCollectionSettings(name, settings); err != nil {
					return err
				}
			}

			col, err := cat.GetCollection(name)
			if err != nil {
				return err
			}
			if err := col.ReplaceCandidates(candidates); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Loaded %d candidates into collection '%s'\n", len(col.Candidates()), name)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&fields, "fields", nil, "extra string fields to keep, as gjson paths")
	cmd.Flags().BoolVar(&watch, "watch", false, "store the dataset path in the collection settings")
	return cmd
}

package main

import (
	stderrors "errors"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gcbaptista/go-suggest/config"
	"github.com/gcbaptista/go-suggest/internal/catalog"
	"github.com/gcbaptista/go-suggest/internal/match"
	"github.com/gcbaptista/go-suggest/internal/recent"
)

// cli carries the state shared by all subcommands.
type cli struct {
	v       *viper.Viper
	cfgFile string
}

func newRootCmd() *cobra.Command {
	app := &cli{v: config.NewViper()}

	rootCmd := &cobra.Command{
		Use:   "suggest",
		Short: "Fuzzy autocomplete over named collections",
		Long: `suggest ranks short labels (breeds, cities, products) against partial input.

It serves an HTTP API with search, suggestions, recent selections and
Hebrew letter grouping, and offers the same queries from the command line.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.initConfig()
		},
	}

	rootCmd.PersistentFlags().StringVar(&app.cfgFile, "config", "", "config file (default is $HOME/.go-suggest.yaml)")
	rootCmd.PersistentFlags().String("data-dir", "./data", "directory holding collections")
	rootCmd.PersistentFlags().String("recent-backend", recent.BackendPebble, "recent selections storage: memory, pebble, sqlite or disabled")
	rootCmd.PersistentFlags().String("recent-path", "", "path of the recent selections store (default under data-dir)")
	_ = app.v.BindPFlag("data_dir", rootCmd.PersistentFlags().Lookup("data-dir"))
	_ = app.v.BindPFlag("recent.backend", rootCmd.PersistentFlags().Lookup("recent-backend"))
	_ = app.v.BindPFlag("recent.path", rootCmd.PersistentFlags().Lookup("recent-path"))

	rootCmd.AddCommand(
		app.serveCmd(),
		app.searchCmd(),
		app.lettersCmd(),
		app.loadCmd(),
		app.collectionsCmd(),
	)
	return rootCmd
}

// initConfig reads the config file if one is given or found in $HOME.
func (app *cli) initConfig() error {
	if app.cfgFile != "" {
		app.v.SetConfigFile(app.cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			app.v.AddConfigPath(home)
		}
		app.v.SetConfigType("yaml")
		app.v.SetConfigName(".go-suggest")
	}

	if err := app.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if app.cfgFile != "" || !stderrors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
		return nil
	}
	log.Printf("Info: Using config file: %s", app.v.ConfigFileUsed())
	return nil
}

func (app *cli) loadConfig() (*config.AppConfig, error) {
	return config.LoadAppConfig(app.v)
}

// openCatalog opens the recent store and the catalog described by cfg. When
// the configured recent store cannot be opened, recents are disabled and the
// catalog still opens.
func openCatalog(cfg *config.AppConfig) (*catalog.Catalog, recent.Backend) {
	backend, err := recent.Open(cfg.Recent.Backend, cfg.Recent.Path)
	if err != nil {
		log.Printf("Warning: Could not open recent store (%s at %s): %v. Recent selections are disabled.", cfg.Recent.Backend, cfg.Recent.Path, err)
		backend = recent.UnavailableStorage{}
	}

	cat := catalog.New(cfg.DataDir,
		catalog.WithRecentStorage(backend),
		catalog.WithRecentCapacity(cfg.Recent.Capacity),
		catalog.WithMarker(match.Marker{Open: cfg.Highlight.Open, Close: cfg.Highlight.Close}),
	)
	return cat, backend
}

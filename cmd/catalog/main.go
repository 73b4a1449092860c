package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/tendant/simple-catalog/pkg/catalog"
	"github.com/tendant/simple-catalog/pkg/catalog/config"
	"github.com/tendant/simple-catalog/pkg/catalog/store"
	fsstore "github.com/tendant/simple-catalog/pkg/catalog/store/fs"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	// Load .env file if it exists (silently ignore if not found)
	_ = godotenv.Load()

	rootCmd := NewRootCommand(afero.NewOsFs())
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app is the state shared by all commands: the collection is loaded once
// before a command runs and saved once after it if the command changed it.
type app struct {
	fs      afero.Fs
	cfg     *config.Config
	logger  *slog.Logger
	store   store.Store
	coll    *catalog.Collection
	builder *catalog.Builder
	dirty   bool

	// unreadable is set when the store file exists but could not be loaded;
	// it is moved aside before anything is saved over it
	unreadable bool
}

func NewRootCommand(fsys afero.Fs) *cobra.Command {
	var configFile string
	var storePath string
	var verbose bool

	a := &app{fs: fsys}

	rootCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Personal file catalog",
		Long: `Catalog imports files, classifies them by content, extracts
descriptive tags such as photo EXIF fields, and keeps them in a single
collection file that can be listed, searched and pruned.

` + config.Usage(),
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := ""
			if verbose {
				level = "debug"
			}
			cfg, err := config.Load(
				config.WithFile(configFile),
				config.WithEnv(),
				config.WithStorePath(storePath),
				config.WithLogLevel(level),
			)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			return a.open(cmd.Context(), cfg, cmd.ErrOrStderr())
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close(cmd.Context())
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (optional)")
	rootCmd.PersistentFlags().StringVarP(&storePath, "store", "s", "", "collection file (default: catalog.json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(NewImportCommand(a))
	rootCmd.AddCommand(NewListCommand(a))
	rootCmd.AddCommand(NewSearchCommand(a))
	rootCmd.AddCommand(NewShowCommand(a))
	rootCmd.AddCommand(NewDeleteCommand(a))
	rootCmd.AddCommand(NewClassifyCommand(a))

	return rootCmd
}

func (a *app) open(ctx context.Context, cfg *config.Config, logOut io.Writer) error {
	a.cfg = cfg
	a.logger = slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: cfg.Level()}))
	slog.SetDefault(a.logger)

	var rules []catalog.Rule
	if cfg.SniffRules {
		rules = catalog.SniffRules()
	}
	a.builder = catalog.NewBuilder(
		catalog.WithClassifier(catalog.NewClassifier(rules...)),
		catalog.WithLogger(a.logger),
	)

	st, err := fsstore.New(a.fs, cfg.StorePath, fsstore.WithLogger(a.logger))
	if err != nil {
		return err
	}
	a.store = st

	coll, err := st.Load(ctx)
	if err != nil {
		a.logger.Warn("Failed to load collection, starting empty", "path", cfg.StorePath, "err", err)
		coll = catalog.NewCollection()
		a.unreadable = true
	}
	coll.Insert(catalog.EmptyObject())
	a.coll = coll
	return nil
}

func (a *app) close(ctx context.Context) error {
	if !a.dirty {
		return nil
	}
	if a.unreadable {
		if err := a.setAside(); err != nil {
			return err
		}
	}
	if err := a.store.Save(ctx, a.coll); err != nil {
		return fmt.Errorf("failed to save collection: %w", err)
	}
	a.dirty = false
	return nil
}

// setAside renames the unreadable store file so saving does not destroy it.
func (a *app) setAside() error {
	aside := fmt.Sprintf("%s.corrupt-%s", a.cfg.StorePath, time.Now().UTC().Format("20060102T150405"))
	if err := a.fs.Rename(a.cfg.StorePath, aside); err != nil {
		return fmt.Errorf("refusing to overwrite unreadable collection %s: %w", a.cfg.StorePath, err)
	}
	a.logger.Warn("Moved unreadable collection aside", "path", a.cfg.StorePath, "moved_to", aside)
	a.unreadable = false
	return nil
}

package service

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"blogly/app/repositories"
	"blogly/app/repositories/postgres"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// Version is the release reported by the version command.
const Version = "1.0.0"

var errCancelled = errors.New("operation cancelled")

type cli struct {
	envFile string
	cfg     Config
	log     zerolog.Logger
}

// NewRootCommand builds the blogly command tree.
func NewRootCommand() *cobra.Command {
	c := &cli{}
	defaults := DefaultConfig()

	root := &cobra.Command{
		Use:           "blogly",
		Short:         "Blogly - users, posts and tags",
		Long:          "Blogly is a small blogging site: users own posts and posts carry tags.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.load(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&c.envFile, "env-file", ".env", "Environment file to load")
	flags.String("addr", defaults.Addr, "Address to listen on")
	flags.String("driver", defaults.Driver, "Store driver: badger or postgres")
	flags.String("badger-path", defaults.BadgerPath, "Badger database directory")
	flags.String("database-url", "", "PostgreSQL connection URL")
	flags.String("backup-dir", defaults.BackupDir, "Directory for backups")
	flags.String("log-level", defaults.LogLevel, "Log level")
	flags.String("log-format", defaults.LogFormat, "Log format: console or json")
	flags.Duration("shutdown-timeout", defaults.ShutdownTimeout, "Graceful shutdown timeout")

	root.AddCommand(
		c.serveCommand(),
		c.initCommand(),
		c.cleanCommand(),
		c.backupCommand(),
		c.restoreCommand(),
		versionCommand(),
	)
	return root
}

// load resolves the configuration: defaults, then the env file and
// environment, then any flag given on the command line.
func (c *cli) load(cmd *cobra.Command) error {
	cfg, err := LoadConfig(c.envFile)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	for name, field := range map[string]*string{
		"addr":         &cfg.Addr,
		"driver":       &cfg.Driver,
		"badger-path":  &cfg.BadgerPath,
		"database-url": &cfg.DatabaseURL,
		"backup-dir":   &cfg.BackupDir,
		"log-level":    &cfg.LogLevel,
		"log-format":   &cfg.LogFormat,
	} {
		if flags.Changed(name) {
			*field, _ = flags.GetString(name)
		}
	}
	if flags.Changed("shutdown-timeout") {
		cfg.ShutdownTimeout, _ = flags.GetDuration("shutdown-timeout")
	}

	if err := cfg.Validate(); err != nil {
		return err
	}
	log, err := NewLogger(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	c.cfg, c.log = cfg, log
	return nil
}

func (c *cli) serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the blog web server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return RunAppServer(ctx, c.cfg, c.log)
		},
	}
}

func (c *cli) initCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize a new empty database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return initDb(cmd.Context(), c.cfg, cmd.OutOrStdout())
		},
	}
}

func (c *cli) cleanCommand() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove the blog database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return clean(cmd.Context(), c.cfg, cmd.InOrStdin(), cmd.OutOrStdout(), yes)
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}

func (c *cli) backupCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "backup",
		Short: "Create a backup of the Badger database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := backup(c.cfg, cmd.OutOrStdout())
			return err
		},
	}
}

func (c *cli) restoreCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "restore <file>",
		Short: "Restore the Badger database from a backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return restore(c.cfg, args[0], cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

func versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		// The version command needs no configuration.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "blogly version %s\n", Version)
		},
	}
}

// confirm asks question on out and reports whether the answer read from in
// was yes.
func confirm(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N] ", question)
	response, _ := bufio.NewReader(in).ReadString('\n')
	response = strings.TrimSpace(response)
	return response == "y" || response == "Y"
}

// initDb creates an empty Badger database or applies the Postgres schema.
func initDb(ctx context.Context, cfg Config, out io.Writer) error {
	if cfg.Driver == "postgres" {
		store, err := postgres.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer store.Close()
		if err := store.Migrate(ctx); err != nil {
			return err
		}
		fmt.Fprintln(out, "Database schema applied successfully")
		return nil
	}

	if _, err := os.Stat(cfg.BadgerPath); err == nil {
		fmt.Fprintln(out, "Database already exists. Use 'clean' first if you want to reinitialize.")
		return nil
	}
	if err := os.MkdirAll(cfg.BadgerPath, 0755); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}
	store, err := repositories.OpenBadgerStore(cfg.BadgerPath, nil)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer store.Close()

	fmt.Fprintln(out, "Database initialized successfully")
	return nil
}

// clean removes the Badger database directory or drops the Postgres tables.
func clean(ctx context.Context, cfg Config, in io.Reader, out io.Writer, yes bool) error {
	if cfg.Driver != "postgres" {
		if _, err := os.Stat(cfg.BadgerPath); os.IsNotExist(err) {
			fmt.Fprintln(out, "Database is already clean (does not exist)")
			return nil
		}
	}

	if !yes && !confirm(in, out, "Are you sure you want to clean the database? This cannot be undone.") {
		fmt.Fprintln(out, "Operation cancelled")
		return nil
	}

	if cfg.Driver == "postgres" {
		store, err := postgres.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer store.Close()
		if err := store.Drop(ctx); err != nil {
			return fmt.Errorf("failed to clean database: %w", err)
		}
	} else if err := os.RemoveAll(cfg.BadgerPath); err != nil {
		return fmt.Errorf("failed to clean database: %w", err)
	}
	fmt.Fprintln(out, "Database cleaned successfully")
	return nil
}

// backup writes a full Badger backup into cfg.BackupDir and returns its path.
func backup(cfg Config, out io.Writer) (string, error) {
	if cfg.Driver != "badger" {
		return "", fmt.Errorf("backup is only supported for the badger driver")
	}
	if _, err := os.Stat(cfg.BadgerPath); os.IsNotExist(err) {
		fmt.Fprintln(out, "No database exists to backup")
		return "", nil
	}
	if err := os.MkdirAll(cfg.BackupDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	store, err := repositories.OpenBadgerStore(cfg.BadgerPath, nil)
	if err != nil {
		return "", fmt.Errorf("failed to open database: %w", err)
	}
	defer store.Close()

	backupFile := filepath.Join(cfg.BackupDir, fmt.Sprintf("backup_%d.db", time.Now().Unix()))
	f, err := os.Create(backupFile)
	if err != nil {
		return "", fmt.Errorf("failed to create backup file: %w", err)
	}
	defer f.Close()

	if _, err := store.Backup(f); err != nil {
		return "", fmt.Errorf("failed to backup database: %w", err)
	}

	fmt.Fprintf(out, "Database backed up successfully to %s\n", backupFile)
	return backupFile, nil
}

// restore replaces the Badger database with the contents of backupFile.
func restore(cfg Config, backupFile string, in io.Reader, out io.Writer) error {
	if cfg.Driver != "badger" {
		return fmt.Errorf("restore is only supported for the badger driver")
	}

	fi, err := os.Stat(backupFile)
	if os.IsNotExist(err) {
		return fmt.Errorf("backup file does not exist: %s", backupFile)
	} else if err != nil {
		return fmt.Errorf("failed to stat backup file: %w", err)
	}
	if fi.Size() == 0 {
		return fmt.Errorf("backup file is empty: %s", backupFile)
	}

	if _, err := os.Stat(cfg.BadgerPath); err == nil {
		if !confirm(in, out, "Existing database found. Do you want to replace it?") {
			fmt.Fprintln(out, "Operation cancelled")
			return errCancelled
		}
		if err := os.RemoveAll(cfg.BadgerPath); err != nil {
			return fmt.Errorf("failed to remove existing database: %w", err)
		}
	}
	if err := os.MkdirAll(cfg.BadgerPath, 0755); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}

	f, err := os.Open(backupFile)
	if err != nil {
		return fmt.Errorf("failed to open backup file: %w", err)
	}
	defer f.Close()

	store, err := repositories.OpenBadgerStore(cfg.BadgerPath, nil)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer store.Close()

	if err := store.Load(f); err != nil {
		return fmt.Errorf("failed to restore database: %w", err)
	}

	fmt.Fprintln(out, "Database restored successfully")
	return nil
}

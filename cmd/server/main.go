package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"navshell/internal/config"
	"navshell/internal/logging"
	"navshell/internal/routes"
	"navshell/internal/server"
	"navshell/internal/session"
)

const sweepInterval = 5 * time.Minute

var (
	envFile string
	cfg     *config.Config
	logger  *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:           "navshell",
	Short:         "Navigation shell: a nav bar and a route table with a not found fallback",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		found, err := config.LoadEnvFiles(envFile)
		if err != nil {
			return err
		}

		cfg, err = config.FromEnv()
		if err != nil {
			return err
		}

		logger, err = logging.New(cfg.LogLevel, cfg.Development())
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		if !found {
			logger.Debug("no env file found, using system environment", zap.String("file", envFile))
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

var resolveCmd = &cobra.Command{
	Use:   "resolve <path>...",
	Short: "Print the page each path resolves to",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return printResolved(cmd.OutOrStdout(), routes.DefaultTable(), args)
	},
}

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "Print the route table and navigation links",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printRoutes(cmd.OutOrStdout(), routes.DefaultTable(), routes.DefaultLinks())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Environment file to load")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(routesCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func openStore(ctx context.Context) (session.Store, error) {
	if cfg.RedisURL != "" {
		store, err := session.NewRedisStore(cfg.RedisURL, cfg.SessionTTL)
		if err != nil {
			return nil, err
		}
		logger.Info("Redis connection established")
		return store, nil
	}

	if cfg.DatabaseURL != "" {
		store, err := session.NewGormStore(cfg.DatabaseURL, cfg.SessionTTL)
		if err != nil {
			return nil, err
		}
		logger.Info("Database connection established")
		if cfg.SessionTTL > 0 {
			go session.RunSweeper(ctx, store, sweepInterval, func(removed int, err error) {
				if err != nil {
					logger.Warn("failed to remove expired sessions", zap.Error(err))
					return
				}
				if removed > 0 {
					logger.Debug("expired sessions removed", zap.Int("count", removed))
				}
			})
		}
		return store, nil
	}

	logger.Info("REDIS_URL and DATABASE_URL not set, keeping sessions in memory")
	return session.NewMemoryStore(cfg.MaxSessions, cfg.SessionTTL), nil
}

func serve(ctx context.Context) error {
	store, err := openStore(ctx)
	if err != nil {
		return fmt.Errorf("open session store: %w", err)
	}
	defer store.Close()

	e := server.New(server.Options{
		Table:         routes.DefaultTable(),
		Links:         routes.DefaultLinks(),
		Store:         store,
		Logger:        logger,
		SecureCookies: cfg.SecureCookies,
		SessionMaxAge: int(cfg.SessionTTL.Seconds()),
	})

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", zap.String("addr", cfg.Addr()))
		errCh <- e.Start(cfg.Addr())
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func printResolved(w io.Writer, table *routes.Table, paths []string) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, path := range paths {
		fmt.Fprintf(tw, "%s\t%s\n", path, table.Resolve(path))
	}
	return tw.Flush()
}

func printRoutes(w io.Writer, table *routes.Table, links []routes.NavLink) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PREFIX\tPAGE")
	for _, entry := range table.Entries() {
		fmt.Fprintf(tw, "%s\t%s\n", entry.PathPrefix, entry.Page)
	}
	fmt.Fprintf(tw, "*\t%s\n", table.Fallback())
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "LINK\tLABEL")
	for _, link := range links {
		fmt.Fprintf(tw, "%s\t%s\n", link.TargetPath, link.Label)
	}
	return tw.Flush()
}

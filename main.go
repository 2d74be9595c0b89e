package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ishant9805/portfolio/internal/config"
	"github.com/ishant9805/portfolio/internal/content"
	"github.com/ishant9805/portfolio/internal/portfolio"
	"github.com/ishant9805/portfolio/internal/server"
	"github.com/ishant9805/portfolio/internal/store"
)

// version is set at build time via ldflags.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Personal portfolio content server",
	Long: `portfolio serves the site's profile data. The profile is extracted from
the about-me document (uploaded through the admin API or read from disk); any
field the document does not provide falls back to its canonical value.

Run without a subcommand to start the server.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "portfolio", version)
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "YAML config file (environment variables take precedence)")
	rootCmd.AddCommand(serveCmd, versionCmd)
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	cfg.Level = lvl
	return cfg.Build()
}

// runServe reads the inherited --config flag from cmd so that it works for
// both the root command and serve.
func runServe(cmd *cobra.Command) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile, ".env")
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	gin.SetMode(cfg.GinMode)

	st, err := store.Open(cfg.DataDir)
	if err != nil {
		return err
	}
	defer st.Close()

	extractor := portfolio.NewExtractor(portfolio.WithLogger(logger.Named("extract")))
	loader := content.NewLoader(extractor, logger.Named("content"),
		content.StoreSource{Store: st},
		content.FileSource{Path: cfg.ContentPath},
	)

	srv, err := server.New(cfg, st, loader, extractor, logger.Named("http"))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return srv.Run(ctx)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

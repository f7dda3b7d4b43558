package main

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/eringen/headkit"
)

func init() {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the page server",
		Long: `Start the page server. Configuration comes from the environment:

  SITE_NAME, SITE_URL, ADDR, DATABASE_PATH, SEO_DEFAULTS,
  ADMIN_PASSWORD (required), SESSION_SECRET (required), COOKIE_SECURE,
  CRAWLERS_ENABLED, CRAWLERS_DATABASE_PATH, CRAWLERS_RETENTION_DAYS`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}
	cmd.Flags().String("addr", "", "Listen address (overrides $ADDR)")
	cmd.Flags().String("static", "public", "Directory for static assets and uploads")
	rootCmd.AddCommand(cmd)
}

func siteConfigFromEnv() headkit.SiteConfig {
	retention, _ := strconv.Atoi(os.Getenv("CRAWLERS_RETENTION_DAYS"))
	return headkit.SiteConfig{
		Name:                 headkit.EnvOr("SITE_NAME", ""),
		URL:                  strings.TrimSuffix(headkit.EnvOr("SITE_URL", ""), "/"),
		Addr:                 headkit.EnvOr("ADDR", ""),
		DatabasePath:         headkit.EnvOr("DATABASE_PATH", ""),
		DefaultsPath:         headkit.EnvOr("SEO_DEFAULTS", ""),
		CrawlersEnabled:      strings.EqualFold(os.Getenv("CRAWLERS_ENABLED"), "true"),
		CrawlersDatabasePath: headkit.EnvOr("CRAWLERS_DATABASE_PATH", ""),
		CrawlersRetention:    retention,
		AdminPassword:        headkit.MustEnv("ADMIN_PASSWORD"),
		SessionSecret:        headkit.MustEnv("SESSION_SECRET"),
		CookieSecure:         strings.EqualFold(os.Getenv("COOKIE_SECURE"), "true"),
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := siteConfigFromEnv()
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.Addr = addr
	}
	static, _ := cmd.Flags().GetString("static")

	app := headkit.New(cfg, headkit.WithStaticDir(static))
	defer app.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() { errc <- app.Start() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	app.Echo.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return app.Echo.Shutdown(shutdownCtx)
}

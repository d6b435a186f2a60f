package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"printfloor/cmd"
	apihttp "printfloor/internal/adapters/in/http"
	"printfloor/internal/adapters/out/postgres"
	"printfloor/internal/pkg/telemetry"

	"github.com/labstack/gommon/log"
	"github.com/spf13/cobra"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:   "printfloor",
	Short: "Print-on-demand production floor service",
	Long: `printfloor tracks print jobs from storefront order to pickup: job
creation, the kanban status workflow, printers, gang sheets and the
order intake pipeline.`,
	SilenceUsage: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and scheduled jobs",
	RunE:  runServe,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the schema and register storage slots",
	RunE:  runMigrate,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file to load before reading the environment")
	rootCmd.AddCommand(serveCmd, migrateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
}

func openDatabase(config cmd.Config) (*gorm.DB, error) {
	db, err := gorm.Open(gormpostgres.Open(config.DSN()), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	return db, nil
}

func migrate(ctx context.Context, db *gorm.DB, config cmd.Config, logger *slog.Logger) error {
	if err := postgres.Migrate(db); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	created, err := postgres.EnsureSlots(ctx, db, config.StorageSlots)
	if err != nil {
		return fmt.Errorf("register storage slots: %w", err)
	}
	logger.InfoContext(ctx, "schema ready", "slots_created", created)
	return nil
}

func runMigrate(c *cobra.Command, _ []string) error {
	config, err := cmd.LoadConfig(envFile)
	if err != nil {
		return err
	}
	db, err := openDatabase(config)
	if err != nil {
		return err
	}
	return migrate(c.Context(), db, config, newLogger())
}

func runServe(c *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(c.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	config, err := cmd.LoadConfig(envFile)
	if err != nil {
		return err
	}
	logger := newLogger()

	shutdownTracing, err := telemetry.Setup(ctx, config.OTelEndpoint, config.ServiceName)
	if err != nil {
		return fmt.Errorf("set up tracing: %w", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			logger.Error("flush traces", "error", err)
		}
	}()

	db, err := openDatabase(config)
	if err != nil {
		return err
	}
	if err = migrate(ctx, db, config, logger); err != nil {
		return err
	}

	app := cmd.NewCompositionRoot(config, db, logger)

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	return startWebServer(ctx, app, config.HTTPPort, logger)
}

func startWebServer(ctx context.Context, app *cmd.CompositionRoot, port string, logger *slog.Logger) error {
	doc, err := apihttp.LoadOpenAPI()
	if err != nil {
		return err
	}
	validator, err := apihttp.RequestValidator(doc)
	if err != nil {
		return err
	}

	server := apihttp.NewServer(app.CreateHTTPHandlers(), app.Hub(), logger)
	e := apihttp.NewRouter(server, validator, logger)
	e.Logger.SetLevel(log.INFO)

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.Logger.Fatal(err)
		}
	}()
	logger.InfoContext(ctx, "http server started", "port", port)

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

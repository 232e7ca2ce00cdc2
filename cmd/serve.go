package cmd

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

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/teemow/classwatch/internal/calendar"
	"github.com/teemow/classwatch/internal/config"
	"github.com/teemow/classwatch/internal/logging"
	"github.com/teemow/classwatch/internal/meet"
	"github.com/teemow/classwatch/internal/monitor"
	"github.com/teemow/classwatch/internal/roster"
	"github.com/teemow/classwatch/internal/server"
	"github.com/teemow/classwatch/internal/session"
)

// serveFlags holds the command line overrides for the serve command.
// Anything left empty falls back to the config file.
type serveFlags struct {
	configPath    string
	listen        string
	metricsListen string
	account       string
	studentsFile  string
	tutorsFile    string
	debug         bool
}

func newServeCmd() *cobra.Command {
	flags := &serveFlags{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the attendance monitoring service",
		Long: `Runs the classwatch service: a periodic calendar sync that builds the
day's session list, an attendance monitor that polls live Google Meet
state for sessions in the active timeframes, and an HTTP API serving
the combined result.

The service needs a stored Google token (see "classwatch auth") or a
GOOGLE_OAUTH_TOKEN environment variable.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), flags)
		},
	}

	cmd.Flags().StringVar(&flags.configPath, "config", "classwatch.yaml", "Path to the YAML config file (created with defaults if missing)")
	cmd.Flags().StringVar(&flags.listen, "listen", "", "HTTP listen address for the sessions API")
	cmd.Flags().StringVar(&flags.metricsListen, "metrics-listen", "", "Prometheus listen address (\"off\" disables)")
	cmd.Flags().StringVar(&flags.account, "account", "", "Google account name the stored token belongs to")
	cmd.Flags().StringVar(&flags.studentsFile, "students", "", "Path to the students CSV")
	cmd.Flags().StringVar(&flags.tutorsFile, "tutors", "", "Path to the tutors CSV")
	cmd.Flags().BoolVar(&flags.debug, "debug", false, "Enable debug logging")

	return cmd
}

// applyFlags overlays non-empty command line flags onto the loaded config.
func applyFlags(cfg *config.Config, flags *serveFlags) {
	if flags.listen != "" {
		cfg.Listen = flags.listen
	}
	if flags.metricsListen == "off" {
		cfg.MetricsListen = ""
	} else if flags.metricsListen != "" {
		cfg.MetricsListen = flags.metricsListen
	}
	if flags.account != "" {
		cfg.Account = flags.account
	}
	if flags.studentsFile != "" {
		cfg.Roster.StudentsFile = flags.studentsFile
	}
	if flags.tutorsFile != "" {
		cfg.Roster.TutorsFile = flags.tutorsFile
	}
}

func runServe(ctx context.Context, flags *serveFlags) error {
	// A .env file can carry the Google client credentials in development.
	_ = godotenv.Load()

	logger := logging.Setup(flags.debug)

	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	applyFlags(cfg, flags)

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	rosterSet := roster.Load(cfg.Roster.StudentsFile, cfg.Roster.TutorsFile)

	registry := prometheus.NewRegistry()
	metrics := monitor.NewMetrics(registry)
	metrics.RosterEntries.Set(float64(rosterSet.Len()))

	store := session.NewStore(cfg.Timeframes)
	health := server.NewHealthChecker()

	// The background loops need Google clients. If the credentials are
	// missing or invalid the API still serves, readiness just stays false.
	scheduler := monitor.NewScheduler(ctx, logger)
	loops, err := setupLoops(ctx, cfg, scheduler, store, health, rosterSet, logger, metrics)
	if err != nil {
		logger.Error("Google clients unavailable, serving API without background loops",
			logging.Err(err))
	} else {
		scheduler.Start()
		defer scheduler.Stop()
		// Prime the skeleton so the API has data before the first tick.
		go loops.runInitialSync(ctx)
	}

	var metricsServer *server.MetricsServer
	if cfg.MetricsListen != "" {
		metricsServer = server.NewMetricsServer(cfg.MetricsListen, registry, logger)
		go func() {
			if err := metricsServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server failed", logging.Err(err))
			}
		}()
	}

	api := server.NewAPI(store, health, logger)
	httpServer := &http.Server{
		Addr:              cfg.Listen,
		Handler:           api.Router(cfg.AllowedOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("starting sessions API",
			slog.String("addr", cfg.Listen),
			slog.Int("roster_entries", rosterSet.Len()))
		serveErr <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("sessions API failed: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), server.DefaultShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("sessions API shutdown failed", logging.Err(err))
	}
	if metricsServer != nil {
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("metrics server shutdown failed", logging.Err(err))
		}
	}
	return nil
}

// serviceLoops bundles the scheduled background loops.
type serviceLoops struct {
	sync *monitor.CalendarSync
}

// setupLoops builds the Google clients and registers the calendar sync
// and attendance monitor with the scheduler.
func setupLoops(ctx context.Context, cfg *config.Config, scheduler *monitor.Scheduler, store *session.Store, health *server.HealthChecker, rosterSet *roster.Roster, logger *slog.Logger, metrics *monitor.Metrics) (*serviceLoops, error) {
	calendarClient, err := calendar.NewClientForAccount(ctx, cfg.Account)
	if err != nil {
		return nil, fmt.Errorf("creating calendar client: %w", err)
	}
	meetClient, err := meet.NewClientForAccount(ctx, cfg.Account)
	if err != nil {
		return nil, fmt.Errorf("creating meet client: %w", err)
	}

	calendarSync := monitor.NewCalendarSync(calendarClient, store, logger, metrics, func() {
		health.SetReady(true)
	})
	attendance := monitor.NewAttendanceMonitor(meetClient, rosterSet, store, logger, metrics,
		cfg.Monitor.Workers, cfg.Monitor.Lead)

	if err := scheduler.Add("calendar-sync", cfg.Monitor.SyncInterval, calendarSync.Run); err != nil {
		return nil, err
	}
	if err := scheduler.Add("attendance-monitor", cfg.Monitor.PollInterval, attendance.Run); err != nil {
		return nil, err
	}

	return &serviceLoops{sync: calendarSync}, nil
}

// runInitialSync fills the skeleton right away instead of waiting for
// the first scheduler tick.
func (l *serviceLoops) runInitialSync(ctx context.Context) {
	_ = l.sync.Run(ctx)
}

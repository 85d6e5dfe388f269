package cmd

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/thetomat/tomat/internal/dashboard"
	"github.com/thetomat/tomat/internal/discord"
	"github.com/thetomat/tomat/internal/instrumentation"
	"github.com/thetomat/tomat/internal/server"
	"github.com/thetomat/tomat/internal/session"
	"github.com/thetomat/tomat/internal/web"
)

// MetricsConfig holds configuration for the metrics server.
type MetricsConfig struct {
	// Enabled determines whether to start the metrics server (default: true)
	Enabled bool

	// Addr is the address for the metrics server (e.g., ":9090")
	Addr string
}

func newServeCmd() *cobra.Command {
	var (
		debugMode           bool
		httpAddr            string
		baseURL             string
		discordClientID     string
		discordClientSecret string
		mockMode            bool
		sessionScope        string
		sessionTTL          time.Duration
		metricsEnabled      bool
		metricsAddr         string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the dashboard web server",
		Long: `Start the web server hosting the Shockwave landing page and dashboard.

OAuth Configuration:
  Base URL (required for deployed instances):
    --base-url https://your-domain.com OR TOMAT_BASE_URL env var
    Auto-detected for localhost (development only)

  Discord application credentials (required outside mock mode):
    --discord-client-id and --discord-client-secret flags
    OR DISCORD_CLIENT_ID and DISCORD_CLIENT_SECRET env vars
    The redirect URI registered with Discord must be <base-url>/auth/exchange.

Mock Mode:
  --mock serves the fixture user and guild data without contacting Discord.
  Intended for local development and demos only.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			scope := session.Scope(sessionScope)
			if scope != session.ScopeSession && scope != session.ScopePersistent {
				return fmt.Errorf("invalid session scope: %s (valid: session, persistent)", sessionScope)
			}

			metricsConfig := MetricsConfig{
				Enabled: metricsEnabled,
				Addr:    metricsAddr,
			}

			return runServe(debugMode, httpAddr, baseURL, discordClientID, discordClientSecret, mockMode, scope, sessionTTL, metricsConfig)
		},
	}

	cmd.Flags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	cmd.Flags().StringVar(&httpAddr, "http-addr", ":8080", "HTTP server address")
	cmd.Flags().StringVar(&baseURL, "base-url", "", "Public base URL used to build the OAuth redirect URI. Required for deployed instances. Can also use TOMAT_BASE_URL env var. Example: https://tomat.nl")
	cmd.Flags().StringVar(&discordClientID, "discord-client-id", "", "Discord application client ID. Can also use DISCORD_CLIENT_ID env var.")
	cmd.Flags().StringVar(&discordClientSecret, "discord-client-secret", "", "Discord application client secret. Can also use DISCORD_CLIENT_SECRET env var.")
	cmd.Flags().BoolVar(&mockMode, "mock", false, "Serve fixture user and guild data without contacting Discord (development only)")
	cmd.Flags().StringVar(&sessionScope, "session-scope", string(session.ScopePersistent), "Session cookie scope: session or persistent. Can also use SESSION_SCOPE env var.")
	cmd.Flags().DurationVar(&sessionTTL, "session-ttl", session.DefaultSessionTTL, "Idle lifetime of stored sessions")

	// Metrics server flags
	cmd.Flags().BoolVar(&metricsEnabled, "metrics-enabled", true, "Enable the metrics server on a dedicated port. Can also use METRICS_ENABLED env var.")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", ":9090", "Metrics server address. Can also use METRICS_ADDR env var.")

	return cmd
}

func runServe(debugMode bool, httpAddr, baseURL, discordClientID, discordClientSecret string, mockMode bool, scope session.Scope, sessionTTL time.Duration, metricsConfig MetricsConfig) error {
	// Setup graceful shutdown
	shutdownCtx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logLevel := slog.LevelInfo
	if debugMode {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	// Get Discord OAuth credentials from environment if not provided via flags
	if discordClientID == "" {
		discordClientID = os.Getenv("DISCORD_CLIENT_ID")
	}
	if discordClientSecret == "" {
		discordClientSecret = os.Getenv("DISCORD_CLIENT_SECRET")
	}
	if !mockMode && (discordClientID == "" || discordClientSecret == "") {
		return fmt.Errorf("discord credentials are required: provide --discord-client-id and --discord-client-secret (or DISCORD_CLIENT_ID / DISCORD_CLIENT_SECRET env vars), or run with --mock")
	}

	// Load metrics config from environment if not set via flags
	if !metricsConfig.Enabled {
		if os.Getenv("METRICS_ENABLED") == "true" {
			metricsConfig.Enabled = true
		}
	}
	if metricsConfig.Addr == "" || metricsConfig.Addr == server.DefaultMetricsAddr {
		if addr := os.Getenv("METRICS_ADDR"); addr != "" {
			metricsConfig.Addr = addr
		}
	}
	if envScope := os.Getenv("SESSION_SCOPE"); envScope != "" && scope == session.ScopePersistent {
		scope = session.Scope(envScope)
	}

	// Determine base URL from flag, environment variable, or auto-detection
	if baseURL == "" {
		baseURL = os.Getenv("TOMAT_BASE_URL")
	}
	if baseURL == "" {
		// Fall back to auto-detection for local development
		baseURL = fmt.Sprintf("http://%s", httpAddr)
		if httpAddr[0] == ':' {
			baseURL = fmt.Sprintf("http://localhost%s", httpAddr)
		}
		logger.Info("no base URL configured, using auto-detected", "base_url", baseURL)
	} else {
		logger.Info("using configured base URL", "base_url", baseURL)
	}

	// Initialize instrumentation provider
	instrConfig := instrumentation.DefaultConfig()
	instrConfig.ServiceVersion = version

	provider, err := instrumentation.NewProvider(shutdownCtx, instrConfig)
	if err != nil {
		return fmt.Errorf("failed to create instrumentation provider: %w", err)
	}
	defer func() {
		if err := provider.Shutdown(shutdownCtx); err != nil {
			log.Printf("Error during instrumentation shutdown: %v", err)
		}
	}()

	// Start metrics server if enabled
	var metricsServer *server.MetricsServer
	if metricsConfig.Enabled && provider.Enabled() {
		metricsServer, err = server.NewMetricsServer(server.MetricsServerConfig{
			Addr:                    metricsConfig.Addr,
			Enabled:                 true,
			InstrumentationProvider: provider,
		})
		if err != nil {
			return fmt.Errorf("failed to create metrics server: %w", err)
		}

		// Use ready channel to confirm metrics server started successfully
		metricsReady := make(chan struct{})
		metricsErr := make(chan error, 1)
		go func() {
			if err := metricsServer.StartWithReadySignal(metricsReady); err != nil && err != http.ErrServerClosed {
				metricsErr <- err
			}
			close(metricsErr)
		}()

		// Wait for metrics server to be ready or fail
		select {
		case <-metricsReady:
			logger.Info("metrics server started", "addr", metricsServer.Addr())
		case err := <-metricsErr:
			return fmt.Errorf("metrics server failed to start: %w", err)
		case <-time.After(5 * time.Second):
			return fmt.Errorf("metrics server startup timed out")
		}

		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := metricsServer.Shutdown(shutdownCtx); err != nil {
				log.Printf("Error during metrics server shutdown: %v", err)
			}
		}()
	}

	// Session store
	store := session.NewMemoryStoreWithLogger(sessionTTL, logger)
	defer store.Stop()

	// Discord client
	client := discord.NewClient(logger)
	if provider.Enabled() {
		client.SetMetrics(provider.Metrics())
	}

	controllerConfig := dashboard.Config{
		UseBackendExchange: !mockMode,
		Credentials: discord.OAuthCredentials{
			ClientID:     discordClientID,
			ClientSecret: discordClientSecret,
			RedirectURL:  baseURL + "/auth/exchange",
		},
		StorageScope: scope,
	}
	if mockMode {
		// Preserve the demo's simulated exchange latency.
		controllerConfig.Delay = func(ctx context.Context) error {
			select {
			case <-time.After(1500 * time.Millisecond):
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		logger.Warn("mock mode enabled - serving fixture data, do not use in production")
	}

	controller := dashboard.NewController(store, client, client, controllerConfig, logger)
	if provider.Enabled() {
		controller.SetMetrics(provider.Metrics())
	}

	handler, err := web.NewHandler(controller, client, logger)
	if err != nil {
		return fmt.Errorf("failed to create web handler: %w", err)
	}

	mux := http.NewServeMux()
	handler.Register(mux)

	srv := server.New(httpAddr, mux, logger)
	if provider.Enabled() {
		srv.SetMetrics(provider.Metrics())
	}

	fmt.Printf("Shockwave dashboard server starting on %s\n", httpAddr)
	fmt.Printf("  Dashboard: %s/dashboard\n", baseURL)
	fmt.Printf("  Health endpoints: /healthz, /readyz\n")
	if metricsConfig.Enabled {
		fmt.Printf("  Metrics endpoint: %s/metrics\n", metricsConfig.Addr)
	}

	serverDone := make(chan error, 1)
	go func() {
		defer close(serverDone)
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			serverDone <- err
		}
	}()

	select {
	case <-shutdownCtx.Done():
		fmt.Println("Shutdown signal received, stopping HTTP server...")
		stopCtx, stopCancel := context.WithTimeout(context.Background(), server.DefaultShutdownTimeout)
		defer stopCancel()
		if err := srv.Shutdown(stopCtx); err != nil {
			return fmt.Errorf("error shutting down HTTP server: %w", err)
		}
	case err := <-serverDone:
		if err != nil {
			return fmt.Errorf("HTTP server stopped with error: %w", err)
		}
		fmt.Println("HTTP server stopped normally")
	}

	fmt.Println("HTTP server gracefully stopped")
	return nil
}

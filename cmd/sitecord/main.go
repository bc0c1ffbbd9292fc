package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/sitecord/internal/config"
	"github.com/rpggio/sitecord/internal/digest"
	"github.com/rpggio/sitecord/internal/domain/message"
	"github.com/rpggio/sitecord/internal/domain/task"
	"github.com/rpggio/sitecord/internal/mcp"
	"github.com/rpggio/sitecord/internal/transport"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "sitecord",
		Short:         "Turn subcontractor text messages into task updates",
		Long:          `sitecord receives SMS webhooks from job-site trades, matches them to projects and tasks, and records progress.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newServeCmd(),
		newMCPCmd(),
		newParseCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the SMS webhook server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("config error: %w", err)
			}
			logger, closeLog := newLogger(os.Stdout, cfg.Log.Level)
			defer closeLog()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return runServe(ctx, cfg, logger)
		},
	}
}

func runServe(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	a, err := openApp(cfg.DB.Path, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	opts := transport.Options{
		Intake:         a.intake,
		Accounts:       a.accounts,
		RequestTimeout: cfg.Server.RequestTimeout,
		Logger:         logger,
	}
	if cfg.MCP.HTTPEnabled {
		opts.MCP = mcp.NewHTTPHandler(a.mcpServer(logger))
		opts.MCPToken = cfg.MCP.Token
		if cfg.MCP.Token == "" {
			logger.Warn("mcp endpoint enabled without a token")
		}
	}

	if cfg.Triage.DigestSchedule != "" {
		scheduler := digest.NewScheduler(a.triage, cfg.Triage.DigestSchedule, logger)
		if err := scheduler.Start(ctx); err != nil {
			return fmt.Errorf("start triage digest: %w", err)
		}
		defer scheduler.Stop()
	}

	httpServer := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           transport.NewServer(opts),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", httpServer.Addr, "mcp", cfg.MCP.HTTPEnabled)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Info("shutting down")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
	return nil
}

func newMCPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the operator tools over stdio",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("config error: %w", err)
			}
			// Stdout carries JSON-RPC, so logs go to stderr.
			logger, closeLog := newLogger(os.Stderr, cfg.Log.Level)
			defer closeLog()

			a, err := openApp(cfg.DB.Path, logger)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			logger.Info("starting stdio transport")
			if err := a.mcpServer(logger).Run(ctx, &sdkmcp.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("stdio server error: %w", err)
			}
			return nil
		},
	}
}

type parseOutput struct {
	Parsed          message.Parsed `json:"parsed"`
	EffectiveStatus message.Status `json:"effective_status"`
	Progress        *int           `json:"progress"`
}

func newParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <message>",
		Short: "Print what the parser extracts from a message",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed := message.Parse(strings.Join(args, " "))
			status, progress := task.EffectiveStatus(parsed)

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(parseOutput{
				Parsed:          parsed,
				EffectiveStatus: status,
				Progress:        progress,
			})
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "sitecord %s\n", version)
		},
	}
}

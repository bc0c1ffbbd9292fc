package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/sitecord/internal/domain/account"
	"github.com/rpggio/sitecord/internal/domain/project"
	"github.com/rpggio/sitecord/internal/domain/resolve"
	"github.com/rpggio/sitecord/internal/domain/task"
	"github.com/rpggio/sitecord/internal/domain/trade"
	"github.com/rpggio/sitecord/internal/domain/triage"
	"github.com/rpggio/sitecord/internal/intake"
	"github.com/rpggio/sitecord/internal/mcp"
	"github.com/rpggio/sitecord/internal/sqlite"
)

// app holds the opened store and the services built on it.
type app struct {
	db *sqlite.DB

	projects *project.Service
	trades   *trade.Service
	tasks    *task.Service
	triage   *triage.Service
	accounts *account.Service
	intake   *intake.Service
}

func openApp(dbPath string, logger *slog.Logger) (*app, error) {
	if err := ensureDBDir(dbPath); err != nil {
		return nil, fmt.Errorf("prepare database path: %w", err)
	}

	db, err := sqlite.New(dbPath)
	if err != nil {
		return nil, err
	}
	if err := db.RunMigrations(); err != nil {
		db.Close()
		return nil, err
	}

	projectRepo := sqlite.NewProjectRepository(db)
	tradeRepo := sqlite.NewTradeRepository(db)
	taskRepo := sqlite.NewTaskRepository(db)
	triageRepo := sqlite.NewTriageRepository(db)
	claimsRepo := sqlite.NewClaimsRepository(db)

	triageSvc := triage.NewService(triageRepo, logger)

	return &app{
		db:       db,
		projects: project.NewService(projectRepo, logger),
		trades:   trade.NewService(tradeRepo, logger),
		tasks:    task.NewService(taskRepo, logger),
		triage:   triageSvc,
		accounts: account.NewService(claimsRepo, logger),
		intake: intake.NewService(
			resolve.NewService(projectRepo, tradeRepo, taskRepo, logger),
			task.NewReconciler(taskRepo, tradeRepo, logger),
			triageSvc,
			logger,
		),
	}, nil
}

func (a *app) Close() error {
	return a.db.Close()
}

func (a *app) mcpServer(logger *slog.Logger) *sdkmcp.Server {
	return mcp.NewServer(mcp.Config{
		Services: mcp.Services{
			Projects: a.projects,
			Trades:   a.trades,
			Tasks:    a.tasks,
			Triage:   a.triage,
			Intake:   a.intake,
		},
		Version: version,
		Logger:  logger,
	})
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"

	"vadimgribanov.com/memory-mcp/internal/config"
	"vadimgribanov.com/memory-mcp/internal/database"
	"vadimgribanov.com/memory-mcp/internal/delivery/mcpserver"
	"vadimgribanov.com/memory-mcp/internal/repositories"
	"vadimgribanov.com/memory-mcp/internal/services"
	"vadimgribanov.com/memory-mcp/pkg/logging"
)

func main() {
	ctx := context.Background()
	if err := logging.SetupLogger(); err != nil {
		slog.ErrorContext(ctx, "Error setting up logger", "error", err)
		return
	}

	if err := godotenv.Load(); err != nil {
		slog.DebugContext(ctx, "No .env file loaded", "error", err)
	}

	appConfig, err := config.LoadConfig()
	if err != nil {
		slog.ErrorContext(ctx, "Error loading config", "error", err)
		return
	}

	dbPath := os.Getenv("DATABASE_PATH")
	if dbPath == "" {
		dbPath = appConfig.DatabasePath
	}

	db, err := database.NewDB(dbPath)
	if err != nil {
		slog.ErrorContext(ctx, "Error initializing database", "error", err)
		return
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		slog.ErrorContext(ctx, "Error running database migrations", "error", err)
		return
	}

	memoryRepo := repositories.NewMemoryRepo(db)
	memoryService := services.NewMemoryService(memoryRepo)
	writeGate := mcpserver.NewWriteGate()

	srv := server.NewMCPServer(
		appConfig.ServerName,
		appConfig.ServerVersion,
		server.WithToolCapabilities(false),
	)
	mcpserver.RegisterHandlers(srv, writeGate, memoryService)

	slog.InfoContext(ctx, "Listening on stdio...", "database", dbPath)
	if err := server.ServeStdio(srv); err != nil {
		slog.ErrorContext(ctx, "Server stopped", "error", err)
	}
}

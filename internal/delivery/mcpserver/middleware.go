package mcpserver

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// WriteGate serializes write tool calls so two concurrent writes cannot
// race on the title uniqueness check. Reads are not gated.
type WriteGate struct {
	slot chan struct{}
}

func NewWriteGate() *WriteGate {
	return &WriteGate{slot: make(chan struct{}, 1)}
}

func (g *WriteGate) Middleware(next server.ToolHandlerFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		select {
		case g.slot <- struct{}{}:
			defer func() {
				<-g.slot
			}()
			return next(ctx, request)
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

func withLogging(toolName string, next server.ToolHandlerFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		requestID := uuid.New().String()
		start := time.Now()
		slog.InfoContext(ctx, "Tool call received", "tool", toolName, "request_id", requestID)

		result, err := next(ctx, request)
		if err != nil {
			slog.ErrorContext(ctx, "Tool call failed", "tool", toolName, "request_id", requestID, "error", err)
			return result, err
		}

		slog.InfoContext(ctx, "Tool call completed", "tool", toolName, "request_id", requestID, "is_error", result.IsError, "duration", time.Since(start))
		return result, nil
	}
}

package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"vadimgribanov.com/memory-mcp/internal/apperrors"
	"vadimgribanov.com/memory-mcp/internal/services"
)

func RegisterHandlers(
	srv *server.MCPServer,
	writeGate *WriteGate,
	memoryService *services.MemoryService,
) {
	handler := NewToolHandler(memoryService)

	handlers := map[string]server.ToolHandlerFunc{
		"remember":      writeGate.Middleware(handler.Remember),
		"get_memory":    handler.GetMemory,
		"list_memories": handler.ListMemories,
		"update_memory": writeGate.Middleware(handler.UpdateMemory),
		"delete_memory": writeGate.Middleware(handler.DeleteMemory),
	}

	for _, tool := range Tools() {
		srv.AddTool(tool, withLogging(tool.Name, handlers[tool.Name]))
	}
}

type ToolHandler struct {
	memoryService *services.MemoryService
}

func NewToolHandler(memoryService *services.MemoryService) *ToolHandler {
	return &ToolHandler{memoryService: memoryService}
}

func (h *ToolHandler) Remember(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var in RememberInput
	if err := request.BindArguments(&in); err != nil {
		return invalidArgumentsResult("remember", err), nil
	}

	memory, err := h.memoryService.Remember(in.Title, in.Content)
	if err != nil {
		return errorResult(err), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Memory stored successfully with ID: %d.", memory.ID)), nil
}

func (h *ToolHandler) GetMemory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var in GetMemoryInput
	if err := request.BindArguments(&in); err != nil {
		return invalidArgumentsResult("get_memory", err), nil
	}

	memory, err := h.memoryService.Resolve(in.MemoryID, in.Title)
	if err != nil {
		return errorResult(err), nil
	}

	return jsonResult(memory)
}

func (h *ToolHandler) ListMemories(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var in ListMemoriesInput
	if err := request.BindArguments(&in); err != nil {
		return invalidArgumentsResult("list_memories", err), nil
	}

	memories, err := h.memoryService.ListMemories(in.Limit, in.Offset)
	if err != nil {
		return errorResult(err), nil
	}

	if len(memories) == 0 {
		return mcp.NewToolResultText("No memories stored yet."), nil
	}

	return jsonResult(memories)
}

func (h *ToolHandler) UpdateMemory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var in UpdateMemoryInput
	if err := request.BindArguments(&in); err != nil {
		return invalidArgumentsResult("update_memory", err), nil
	}
	if in.MemoryID == 0 {
		return errorResult(apperrors.Validation("memory_id is required")), nil
	}

	memory, err := h.memoryService.UpdateMemory(in.MemoryID, in.Title, in.Content)
	if err != nil {
		return errorResult(err), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Memory %d updated successfully.", memory.ID)), nil
}

func (h *ToolHandler) DeleteMemory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var in DeleteMemoryInput
	if err := request.BindArguments(&in); err != nil {
		return invalidArgumentsResult("delete_memory", err), nil
	}
	if in.MemoryID == 0 {
		return errorResult(apperrors.Validation("memory_id is required")), nil
	}

	if err := h.memoryService.DeleteMemory(in.MemoryID); err != nil {
		return errorResult(err), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Memory %d deleted successfully.", in.MemoryID)), nil
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errorResult(apperrors.Storage("failed to serialize result", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// errorResult shapes an application error as a structured tool error with
// its kind preserved; the kind is never collapsed into a generic failure.
func errorResult(err error) *mcp.CallToolResult {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		return mcp.NewToolResultError(fmt.Sprintf("%s: %s", appErr.Kind, appErr.Message))
	}
	return mcp.NewToolResultError(fmt.Sprintf("%s: %v", apperrors.KindStorage, err))
}

func invalidArgumentsResult(toolName string, err error) *mcp.CallToolResult {
	return errorResult(apperrors.InvalidArguments("invalid arguments for %s: %v", toolName, err))
}

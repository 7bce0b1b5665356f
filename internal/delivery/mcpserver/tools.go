package mcpserver

import (
	"github.com/mark3labs/mcp-go/mcp"
)

type RememberInput struct {
	Title   string `json:"title" jsonschema:"required,description=A concise title for the memory"`
	Content string `json:"content" jsonschema:"required,description=The full content of the memory to store"`
}

type GetMemoryInput struct {
	MemoryID *int64  `json:"memory_id,omitempty" jsonschema:"description=The ID of the memory to retrieve"`
	Title    *string `json:"title,omitempty" jsonschema:"description=The title of the memory to retrieve"`
}

type ListMemoriesInput struct {
	Limit  int `json:"limit,omitempty" jsonschema:"description=Maximum number of memories to return (all when omitted)"`
	Offset int `json:"offset,omitempty" jsonschema:"description=Number of memories to skip from the start of the list"`
}

type UpdateMemoryInput struct {
	MemoryID int64   `json:"memory_id" jsonschema:"required,description=The ID of the memory to update"`
	Title    *string `json:"title,omitempty" jsonschema:"description=Optional new title for the memory"`
	Content  *string `json:"content,omitempty" jsonschema:"description=Optional new content for the memory"`
}

type DeleteMemoryInput struct {
	MemoryID int64 `json:"memory_id" jsonschema:"required,description=The ID of the memory to delete"`
}

var (
	rememberSchema     = generateSchema[RememberInput]()
	getMemorySchema    = generateSchema[GetMemoryInput]()
	listMemoriesSchema = generateSchema[ListMemoriesInput]()
	updateMemorySchema = generateSchema[UpdateMemoryInput]()
	deleteMemorySchema = generateSchema[DeleteMemoryInput]()
)

// Tools returns the five tool declarations in the order they are served.
func Tools() []mcp.Tool {
	return []mcp.Tool{
		mcp.NewToolWithRawSchema("remember", "Store a new memory.", rememberSchema),
		mcp.NewToolWithRawSchema("get_memory", "Retrieve a specific memory by ID or title.", getMemorySchema),
		mcp.NewToolWithRawSchema("list_memories", "List all stored memories.", listMemoriesSchema),
		mcp.NewToolWithRawSchema("update_memory", "Update an existing memory.", updateMemorySchema),
		mcp.NewToolWithRawSchema("delete_memory", "Delete a memory.", deleteMemorySchema),
	}
}

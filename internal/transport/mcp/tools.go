package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	mcpmcp "github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	domainprompt "github.com/alanyang/promptvault/internal/domain/prompt"
	"github.com/alanyang/promptvault/internal/domain/view"
	"github.com/alanyang/promptvault/internal/service/library"
)

// RegisterTools registers the library tools on the MCP server.
// [OCP] Add a new tool by adding a new AddTool call — server.go never changes.
func RegisterTools(s *mcpserver.MCPServer, librarySvc *library.Service) {
	s.AddTool(mcpmcp.NewTool("search_prompts",
		mcpmcp.WithDescription("Search the prompt library. Returns matching prompts as JSON. All arguments are optional — omit them all to list the whole library."),
		mcpmcp.WithString("search", mcpmcp.Description("Case-insensitive substring matched against title, content, and tags")),
		mcpmcp.WithString("category", mcpmcp.Description("Exact category filter")),
		mcpmcp.WithString("sort", mcpmcp.Description("Sort order: newest (default), oldest, title, or category")),
	), searchPromptsHandler(librarySvc))

	s.AddTool(mcpmcp.NewTool("get_prompt",
		mcpmcp.WithDescription("Fetch a single prompt by id, including its full content."),
		mcpmcp.WithString("id", mcpmcp.Required(), mcpmcp.Description("Prompt UUID")),
	), getPromptHandler(librarySvc))

	s.AddTool(mcpmcp.NewTool("create_prompt",
		mcpmcp.WithDescription("Save a new prompt to the library."),
		mcpmcp.WithString("title", mcpmcp.Required(), mcpmcp.Description("Short display title")),
		mcpmcp.WithString("content", mcpmcp.Required(), mcpmcp.Description("The prompt body text")),
		mcpmcp.WithString("category", mcpmcp.Description("Free-text category label")),
		mcpmcp.WithString("tags", mcpmcp.Description("Comma-separated tags, e.g. \"go, review\"")),
	), createPromptHandler(librarySvc))
}

// ── Tool handlers ─────────────────────────────────────────────────────────

func searchPromptsHandler(librarySvc *library.Service) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcpmcp.CallToolRequest) (*mcpmcp.CallToolResult, error) {
		q := view.Query{
			Search:   mcpmcp.ParseString(req, "search", ""),
			Category: mcpmcp.ParseString(req, "category", ""),
			Sort:     view.ParseOption(mcpmcp.ParseString(req, "sort", "")),
		}

		prompts := view.Apply(librarySvc.List(ctx), q)
		result, err := json.Marshal(prompts)
		if err != nil {
			return mcpmcp.NewToolResultText(fmt.Sprintf("error: %s", err)), nil
		}
		return mcpmcp.NewToolResultText(string(result)), nil
	}
}

func getPromptHandler(librarySvc *library.Service) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcpmcp.CallToolRequest) (*mcpmcp.CallToolResult, error) {
		id, err := uuid.Parse(mcpmcp.ParseString(req, "id", ""))
		if err != nil {
			return mcpmcp.NewToolResultText("error: invalid id"), nil
		}

		p, ok := librarySvc.Get(ctx, id)
		if !ok {
			return mcpmcp.NewToolResultText("error: prompt not found"), nil
		}

		result, err := json.Marshal(p)
		if err != nil {
			return mcpmcp.NewToolResultText(fmt.Sprintf("error: %s", err)), nil
		}
		return mcpmcp.NewToolResultText(string(result)), nil
	}
}

func createPromptHandler(librarySvc *library.Service) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcpmcp.CallToolRequest) (*mcpmcp.CallToolResult, error) {
		p := librarySvc.Create(ctx, domainprompt.Fields{
			Title:    mcpmcp.ParseString(req, "title", ""),
			Content:  mcpmcp.ParseString(req, "content", ""),
			Category: mcpmcp.ParseString(req, "category", ""),
			Tags:     splitTags(mcpmcp.ParseString(req, "tags", "")),
		})

		result, _ := json.Marshal(map[string]string{"id": p.ID.String()})
		return mcpmcp.NewToolResultText(string(result)), nil
	}
}

// splitTags turns a comma-separated argument into the tag list, skipping
// blanks so trailing commas are harmless.
func splitTags(raw string) []string {
	var tags []string
	for _, tag := range strings.Split(raw, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

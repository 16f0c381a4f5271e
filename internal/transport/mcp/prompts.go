package mcp

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	mcpmcp "github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/alanyang/promptvault/internal/service/library"
)

// RegisterPrompts registers the one MCP native prompt: "library", which
// resolves a stored prompt by id. Clients discover ids with the
// search_prompts tool first.
func RegisterPrompts(s *mcpserver.MCPServer, librarySvc *library.Service) {
	s.AddPrompt(
		mcpmcp.NewPrompt("library",
			mcpmcp.WithPromptDescription("A prompt from the user's library, resolved by id."),
			mcpmcp.WithArgument("id",
				mcpmcp.ArgumentDescription("UUID of the stored prompt. Use the search_prompts tool to find it."),
				mcpmcp.RequiredArgument(),
			),
		),
		libraryPromptHandler(librarySvc),
	)
}

func libraryPromptHandler(librarySvc *library.Service) mcpserver.PromptHandlerFunc {
	return func(ctx context.Context, req mcpmcp.GetPromptRequest) (*mcpmcp.GetPromptResult, error) {
		id, err := uuid.Parse(req.Params.Arguments["id"])
		if err != nil {
			return nil, fmt.Errorf("invalid id: %w", err)
		}

		p, ok := librarySvc.Get(ctx, id)
		if !ok {
			return nil, fmt.Errorf("prompt %s not found", id)
		}

		return mcpmcp.NewGetPromptResult(
			p.Title,
			[]mcpmcp.PromptMessage{
				mcpmcp.NewPromptMessage(
					mcpmcp.RoleUser,
					mcpmcp.TextContent{
						Type: "text",
						Text: p.Content,
					},
				),
			},
		), nil
	}
}

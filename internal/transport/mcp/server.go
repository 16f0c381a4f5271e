package mcp

import (
	"net/http"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/alanyang/promptvault/internal/service/library"
)

// Server wraps the mark3labs/mcp-go MCPServer and its StreamableHTTPServer,
// exposing the prompt library to MCP clients (editors, agents).
// [SRP] Server lifecycle only — tools are registered in tools.go, the
// native prompt in prompts.go.
type Server struct {
	httpSrv *mcpserver.StreamableHTTPServer
}

func New(librarySvc *library.Service) *Server {
	mcpSrv := mcpserver.NewMCPServer(
		"promptvault",
		"1.0.0",
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithPromptCapabilities(true),
	)

	RegisterTools(mcpSrv, librarySvc)
	RegisterPrompts(mcpSrv, librarySvc)

	return &Server{httpSrv: mcpserver.NewStreamableHTTPServer(mcpSrv)}
}

// Handler returns an http.Handler that serves the MCP endpoint.
func (s *Server) Handler() http.Handler {
	return s.httpSrv
}

package transport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alanyang/promptvault/internal/adapter/memory"
	"github.com/alanyang/promptvault/internal/domain/event"
	porteventbus "github.com/alanyang/promptvault/internal/port/eventbus"
	"github.com/alanyang/promptvault/internal/service/library"
	prompthandler "github.com/alanyang/promptvault/internal/transport/prompt"
	wshandler "github.com/alanyang/promptvault/internal/transport/ws"
)

func NewRouter(
	ctx context.Context,
	librarySvc *library.Service,
	mcpHandler http.Handler,
	eventBus porteventbus.EventBus,
	cache *memory.Cache,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(RequestLogger())
	r.Use(CORSMiddleware())
	r.Use(IdempotencyMiddleware(cache))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	prompthandler.Register(api.Group("/prompts"), librarySvc)

	hub := wshandler.NewHub()
	hub.Register(api.Group("/ws"))

	// Bridge: every library mutation reaches WS clients so they recompute
	// their derived views; event.Type in the payload lets the client filter.
	if _, err := eventBus.Subscribe(ctx, event.ChannelLibrary, func(_ context.Context, e event.Event) {
		hub.Broadcast(e)
	}); err != nil {
		slog.Error("failed to subscribe library channel to WS hub", "error", err)
	}

	if mcpHandler != nil {
		r.Any("/mcp", gin.WrapH(mcpHandler))
		r.Any("/mcp/*path", gin.WrapH(mcpHandler))
	}

	return r
}

// Package api exposes a remote store over HTTP as the items resource
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/thenoetrevino/taskboard/internal/events"
	"github.com/thenoetrevino/taskboard/internal/gateway"
	"github.com/thenoetrevino/taskboard/internal/models"
)

// ClientIDHeader names the writer so its own change events can be skipped
const ClientIDHeader = "X-Client-ID"

// Notifier fans out change events after successful writes
type Notifier interface {
	Broadcast(event events.Event) error
}

// Handler serves the items and executors resources
type Handler struct {
	store    gateway.RemoteStore
	notifier Notifier
	health   func() any
	logger   *slog.Logger
}

// Option configures a Handler
type Option func(*Handler)

// WithNotifier broadcasts an items_changed event after every write
func WithNotifier(n Notifier) Option {
	return func(h *Handler) {
		h.notifier = n
	}
}

// WithHealth sets the payload served by GET /healthz
func WithHealth(fn func() any) Option {
	return func(h *Handler) {
		h.health = fn
	}
}

// WithLogger sets the request logger
func WithLogger(logger *slog.Logger) Option {
	return func(h *Handler) {
		h.logger = logger
	}
}

// NewHandler creates a handler over store
func NewHandler(store gateway.RemoteStore, opts ...Option) *Handler {
	h := &Handler{
		store:  store,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// NewRouter builds the gin engine with every route registered
func NewRouter(store gateway.RemoteStore, opts ...Option) *gin.Engine {
	h := NewHandler(store, opts...)

	router := gin.New()
	router.Use(h.requestLogger(), gin.Recovery())
	h.RegisterRoutes(router)
	return router
}

// RegisterRoutes attaches the handlers to router
func (h *Handler) RegisterRoutes(router gin.IRouter) {
	router.GET("/healthz", h.HandleHealth)

	items := router.Group("/items")
	items.GET("", h.HandleListItems)
	items.GET("/count", h.HandleCountItems)
	items.POST("", h.HandleCreateItem)
	items.POST("/upsert", h.HandleUpsertOrder)
	items.PATCH("/:id", h.HandleUpdateItem)
	items.DELETE("/:id", h.HandleDeleteItem)

	executors := router.Group("/executors")
	executors.GET("", h.HandleListExecutors)
	executors.POST("", h.HandleCreateExecutor)
}

// HandleHealth reports liveness and, when configured, hub metrics
func (h *Handler) HandleHealth(c *gin.Context) {
	body := gin.H{"status": "ok"}
	if h.health != nil {
		body["daemon"] = h.health()
	}
	c.JSON(http.StatusOK, body)
}

// requestLogger logs one line per request at debug level
func (h *Handler) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		h.logger.Debug("http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start))
	}
}

// notify broadcasts a change on behalf of the requesting client.
// A nil statuses list means any column may have changed.
func (h *Handler) notify(c *gin.Context, statuses ...models.Status) {
	if h.notifier == nil {
		return
	}
	err := h.notifier.Broadcast(events.Event{
		Type:      events.EventItemsChanged,
		Statuses:  statuses,
		Origin:    c.GetHeader(ClientIDHeader),
		Timestamp: time.Now(),
	})
	if err != nil {
		h.logger.Warn("failed to broadcast change", "error", err)
	}
}

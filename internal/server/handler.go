// Package server exposes the validation registry over HTTP.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"skeleton/internal/logger"
	"skeleton/internal/querylog"
	"skeleton/internal/validation"
	"skeleton/pkg/errors"
)

type ValidateRequest struct {
	Data     map[string]any    `json:"data"`
	Rules    map[string]string `json:"rules" binding:"required"`
	Messages map[string]string `json:"messages"`
}

type ValidateResponse struct {
	Data    map[string]any   `json:"data"`
	Queries []querylog.Entry `json:"queries,omitempty"`
}

type RuleInfo struct {
	Name     string `json:"name"`
	Implicit bool   `json:"implicit"`
	Message  string `json:"message"`
}

type Handler struct {
	Registry *validation.Registry
	Queries  *querylog.Recorder
	Logger   logger.Logger
}

func NewHandler(registry *validation.Registry, queries *querylog.Recorder, log logger.Logger) *Handler {
	return &Handler{
		Registry: registry,
		Queries:  queries,
		Logger:   log,
	}
}

// RegisterRoutes mounts the handlers on api, usually the /api group.
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	api.POST("/validate", h.Validate)
	api.GET("/rules", h.ListRules)
}

func (h *Handler) HandleError(c *gin.Context, err error) {
	if errors.IsValidation(err) {
		h.Logger.DebugwCtx(c.Request.Context(), "Validation failed", "error", err)
	} else {
		h.Logger.ErrorwCtx(c.Request.Context(), "Request error", "error", err, "path", c.Request.URL.Path)
	}

	c.JSON(errors.ToHTTPStatus(err), errors.ToErrorResponse(err))
}

// Validate runs the submitted rules against the submitted data. With
// ?log_queries=1 the SQL issued by database rules is returned as well.
func (h *Handler) Validate(c *gin.Context) {
	var req ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleError(c, errors.ErrBadRequest.WithCause(err).WithMessage(err.Error()))
		return
	}

	ctx := c.Request.Context()

	var collector *querylog.Collector
	if h.Queries != nil && c.Query("log_queries") == "1" {
		ctx, collector = querylog.WithCapture(ctx)
	}

	var (
		resp ValidateResponse
		err  error
	)
	resp.Data, err = h.Registry.Make(ctx, req.Data, req.Rules, req.Messages).Validate()
	if collector != nil {
		resp.Queries = collector.Entries()
	}
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) ListRules(c *gin.Context) {
	exts := h.Registry.Extensions()
	out := make([]RuleInfo, 0, len(exts))
	for _, ext := range exts {
		out = append(out, RuleInfo{Name: ext.Name, Implicit: ext.Implicit, Message: ext.Message})
	}
	c.JSON(http.StatusOK, out)
}

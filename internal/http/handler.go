package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/okris/salary-bonus/internal/http/middleware"
	"github.com/okris/salary-bonus/internal/model"
	"github.com/okris/salary-bonus/internal/service"
)

type Handler struct {
	bonus *service.BonusService
	log   zerolog.Logger
}

func NewHandler(bonus *service.BonusService, log zerolog.Logger) *Handler {
	return &Handler{bonus: bonus, log: log}
}

func (h *Handler) Register(router *gin.Engine, authMiddleware gin.HandlerFunc) {
	api := router.Group("/api/v1")
	api.Use(authMiddleware)
	api.POST("/runs", h.startRun)
	api.GET("/runs/:id", h.getRun)
	api.GET("/runs/:id/report.xlsx", h.exportExcel)
	api.GET("/runs/:id/engineers/:engineer/report.pdf", h.exportPDF)
}

type startRunRequest struct {
	Year int `json:"year"`
}

type runResponse struct {
	ID         string   `json:"id"`
	Year       int      `json:"year"`
	Status     string   `json:"status"`
	Error      *string  `json:"error,omitempty"`
	StartedAt  string   `json:"started_at"`
	FinishedAt *string  `json:"finished_at,omitempty"`
	Engineers  []string `json:"engineers,omitempty"`
}

func (h *Handler) startRun(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	var req startRunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Year == 0 {
		req.Year = time.Now().Year()
	}

	run, err := h.bonus.StartRun(c.Request.Context(), req.Year, principal)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, toRunResponse(run))
}

func (h *Handler) getRun(c *gin.Context) {
	id, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid run id"})
		return
	}

	run, err := h.bonus.GetRun(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toRunResponse(run))
}

func (h *Handler) exportExcel(c *gin.Context) {
	id, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid run id"})
		return
	}

	result, err := h.bonus.ExportExcel(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	contentType := "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	c.Data(http.StatusOK, contentType, result.Content)
}

func (h *Handler) exportPDF(c *gin.Context) {
	id, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid run id"})
		return
	}

	engineer := strings.TrimSpace(c.Param("engineer"))
	if engineer == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "engineer is required"})
		return
	}

	result, err := h.bonus.ExportPDF(c.Request.Context(), id, engineer)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	c.Data(http.StatusOK, "application/pdf", result.Content)
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrRunInProgress):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		h.log.Error().Err(err).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func toRunResponse(run *model.Run) runResponse {
	resp := runResponse{
		ID:        run.ID.String(),
		Year:      run.Year,
		Status:    string(run.Status),
		Error:     run.Error,
		StartedAt: run.StartedAt.Format(time.RFC3339),
		Engineers: run.Engineers,
	}
	if run.FinishedAt != nil {
		finished := run.FinishedAt.Format(time.RFC3339)
		resp.FinishedAt = &finished
	}
	return resp
}

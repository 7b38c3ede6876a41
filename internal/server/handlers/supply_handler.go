package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/petcare/internal/domain/models"
	service "github.com/mamadbah2/petcare/internal/service/supply"
)

// CallerIDKey is the gin context key the auth middleware stores the
// resolved caller identity under.
const CallerIDKey = "caller_id"

// SupplyHandler exposes the food supply operations over HTTP.
type SupplyHandler struct {
	svc    service.FoodService
	logger *zap.Logger
}

// NewSupplyHandler constructs the HTTP handler adapter.
func NewSupplyHandler(svc service.FoodService, logger *zap.Logger) *SupplyHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SupplyHandler{svc: svc, logger: logger}
}

// Create opens a new supply record for a pet.
func (h *SupplyHandler) Create(c *gin.Context) {
	var req models.CreateSupplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid create payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	record, err := h.svc.Create(c.Request.Context(), callerID(c), c.Param("petId"), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, record)
}

// List returns a pet's supplies. The status query selects the view:
// active (default), finished, or all.
func (h *SupplyHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	caller := callerID(c)
	petID := c.Param("petId")

	var (
		supplies []models.EnrichedSupply
		err      error
	)

	switch c.DefaultQuery("status", "active") {
	case "active":
		supplies, err = h.svc.ListActive(ctx, caller, petID)
	case "all":
		supplies, err = h.svc.ListAll(ctx, caller, petID)
	case "finished":
		limit := 0
		if raw := c.Query("limit"); raw != "" {
			limit, err = strconv.Atoi(raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be an integer"})
				return
			}
		}
		supplies, err = h.svc.ListFinished(ctx, caller, petID, limit)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "status must be active, finished or all"})
		return
	}

	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"supplies": supplies})
}

// Get returns one supply record with its projection.
func (h *SupplyHandler) Get(c *gin.Context) {
	supply, err := h.svc.GetByID(c.Request.Context(), callerID(c), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, supply)
}

// Update applies a partial update to an active supply record.
func (h *SupplyHandler) Update(c *gin.Context) {
	var upd models.SupplyUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		h.logger.Warn("invalid update payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	record, err := h.svc.Update(c.Request.Context(), callerID(c), c.Param("id"), upd)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, record)
}

// MarkFinished transitions a supply record to its terminal finished state.
func (h *SupplyHandler) MarkFinished(c *gin.Context) {
	record, err := h.svc.MarkFinished(c.Request.Context(), callerID(c), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

// UpdateFinishDate corrects the finish date of a finished supply record.
func (h *SupplyHandler) UpdateFinishDate(c *gin.Context) {
	var req models.UpdateFinishDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid finish date payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	record, err := h.svc.UpdateFinishDate(c.Request.Context(), callerID(c), c.Param("id"), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, record)
}

// Delete removes a supply record in any state.
func (h *SupplyHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), callerID(c), c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *SupplyHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, models.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		h.logger.Error("unexpected failure", zap.String("path", c.Request.URL.Path), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func callerID(c *gin.Context) string {
	return c.GetString(CallerIDKey)
}

package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mshservicos/hidro-scheduler/internal/audit"
	"github.com/mshservicos/hidro-scheduler/internal/cache"
	"github.com/mshservicos/hidro-scheduler/internal/httperr"
	"github.com/mshservicos/hidro-scheduler/internal/httpresp"
	"github.com/mshservicos/hidro-scheduler/internal/middleware"
	"github.com/mshservicos/hidro-scheduler/internal/models"
)

// TimeOffHandler administra as folgas e bloqueios da agenda.
type TimeOffHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
	cache *cache.AvailabilityCache
	loc   *time.Location
}

func NewTimeOffHandler(
	db *gorm.DB,
	dispatcher *audit.Dispatcher,
	availabilityCache *cache.AvailabilityCache,
	loc *time.Location,
) *TimeOffHandler {
	return &TimeOffHandler{
		db:    db,
		audit: dispatcher,
		cache: availabilityCache,
		loc:   loc,
	}
}

type CreateTimeOffRequest struct {
	StartAt time.Time `json:"start_at" binding:"required"`
	EndAt   time.Time `json:"end_at" binding:"required"`
	Reason  string    `json:"reason"`
}

func (h *TimeOffHandler) List(c *gin.Context) {
	q := h.db.Order("start_at ASC")

	if fromStr := c.Query("from"); fromStr != "" {
		if from, err := parseDate(fromStr, h.loc); err == nil {
			q = q.Where("end_at >= ?", from)
		}
	}
	if toStr := c.Query("to"); toStr != "" {
		if to, err := parseDate(toStr, h.loc); err == nil {
			q = q.Where("start_at < ?", to.AddDate(0, 0, 1))
		}
	}

	var rows []models.TimeOff
	if err := q.Find(&rows).Error; err != nil {
		httperr.Internal(c, "failed_to_list_time_off", "Erro ao listar folgas.")
		return
	}

	httpresp.List(c, rows)
}

func (h *TimeOffHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateTimeOffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	start := req.StartAt.In(h.loc)
	end := req.EndAt.In(h.loc)
	if !end.After(start) {
		httperr.BadRequest(c, "interval_invalid", "Intervalo inválido.")
		return
	}

	row := models.TimeOff{
		StartAt: start,
		EndAt:   end,
		Reason:  req.Reason,
	}

	if err := h.db.Create(&row).Error; err != nil {
		httperr.Internal(c, "failed_to_create_time_off", "Erro ao criar folga.")
		return
	}

	// O bloqueio pode cobrir mais de um dia.
	invalidateDays(c, h.cache, start, end)

	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "time_off_created",
		Entity:   "time_off",
		EntityID: &row.ID,
		Metadata: map[string]any{"start": row.StartAt, "end": row.EndAt},
	})

	c.JSON(http.StatusCreated, row)
}

func (h *TimeOffHandler) Delete(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	id := c.Param("id")

	var row models.TimeOff
	if err := h.db.First(&row, id).Error; err != nil {
		httperr.NotFound(c, "not_found", "Folga não encontrada.")
		return
	}

	if err := h.db.Delete(&row).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_time_off", "Erro ao remover folga.")
		return
	}

	invalidateDays(c, h.cache, row.StartAt.In(h.loc), row.EndAt.In(h.loc))

	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "time_off_deleted",
		Entity:   "time_off",
		EntityID: &row.ID,
	})

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

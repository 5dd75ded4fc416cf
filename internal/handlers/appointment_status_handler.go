package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mshservicos/hidro-scheduler/internal/cache"
	"github.com/mshservicos/hidro-scheduler/internal/httperr"
	"github.com/mshservicos/hidro-scheduler/internal/middleware"
	ucSchedule "github.com/mshservicos/hidro-scheduler/internal/usecase/schedule"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentStatusHandler struct {
	cache *cache.AvailabilityCache
	loc   *time.Location

	transitionUC *ucSchedule.TransitionStatus
}

func NewAppointmentStatusHandler(
	availabilityCache *cache.AvailabilityCache,
	loc *time.Location,
	transitionUC *ucSchedule.TransitionStatus,
) *AppointmentStatusHandler {
	return &AppointmentStatusHandler{
		cache:        availabilityCache,
		loc:          loc,
		transitionUC: transitionUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type TransitionRequest struct {
	Action string `json:"action" binding:"required"` // confirm | cancel | done | no_show
}

// ======================================================
// TRANSITION
// ======================================================

func (h *AppointmentStatusHandler) Transition(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	var req TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	result, err := h.transitionUC.Execute(c.Request.Context(), uint(id), req.Action, &userID)
	if err != nil {
		switch {
		case httperr.IsBusiness(err, "not_found"):
			httperr.NotFound(c, "not_found", "Agendamento não encontrado.")
		case httperr.IsBusiness(err, "invalid_state"):
			httperr.BadRequest(c, "invalid_state", "Transição de status não permitida.")
		case httperr.IsBusiness(err, "invalid_action"):
			httperr.BadRequest(c, "invalid_action", "Ação desconhecida.")
		default:
			httperr.Internal(c, "transition_failed", "Erro ao atualizar status.")
		}
		return
	}

	// Cancelamento libera o horário: derruba o snapshot do dia.
	if req.Action == "cancel" {
		h.cache.InvalidateDay(
			c.Request.Context(),
			dayKey(result.Appointment.StartAt.In(h.loc)),
		)
	}

	c.JSON(http.StatusOK, result)
}

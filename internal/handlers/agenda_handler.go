package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mshservicos/hidro-scheduler/internal/httperr"
	ucSchedule "github.com/mshservicos/hidro-scheduler/internal/usecase/schedule"
)

// AgendaHandler serve a grade do dia para a equipe: janela, slots em
// passo fixo e os agendamentos que os ocupam.
type AgendaHandler struct {
	loc        *time.Location
	overviewUC *ucSchedule.DayOverview
}

func NewAgendaHandler(loc *time.Location, overviewUC *ucSchedule.DayOverview) *AgendaHandler {
	return &AgendaHandler{loc: loc, overviewUC: overviewUC}
}

func (h *AgendaHandler) Day(c *gin.Context) {
	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Data obrigatória.")
		return
	}

	date, err := parseDate(dateStr, h.loc)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	stepMin := 0
	if stepStr := c.Query("step_min"); stepStr != "" {
		stepMin, err = strconv.Atoi(stepStr)
		if err != nil || stepMin < 0 {
			httperr.BadRequest(c, "invalid_step", "Passo inválido.")
			return
		}
	}

	out, err := h.overviewUC.Execute(c.Request.Context(), date, stepMin)
	if err != nil {
		httperr.Internal(c, "agenda_failed", "Erro ao montar a agenda.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":         dateStr,
		"window":       out.Window,
		"step_min":     out.StepMin,
		"slots":        out.Slots,
		"appointments": out.Appointments,
		"time_off":     out.TimeOff,
	})
}

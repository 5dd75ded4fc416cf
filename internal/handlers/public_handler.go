package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mshservicos/hidro-scheduler/internal/cache"
	domain "github.com/mshservicos/hidro-scheduler/internal/domain/schedule"
	"github.com/mshservicos/hidro-scheduler/internal/httperr"
	"github.com/mshservicos/hidro-scheduler/internal/httpresp"
	"github.com/mshservicos/hidro-scheduler/internal/models"
	ucSchedule "github.com/mshservicos/hidro-scheduler/internal/usecase/schedule"
	"github.com/mshservicos/hidro-scheduler/internal/validators"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type PublicHandler struct {
	db    *gorm.DB
	cache *cache.AvailabilityCache
	loc   *time.Location

	availabilityUC *ucSchedule.GetAvailability
	createUC       *ucSchedule.CreateAppointment
	cancelByCodeUC *ucSchedule.CancelByTrackingCode
}

func NewPublicHandler(
	db *gorm.DB,
	availabilityCache *cache.AvailabilityCache,
	loc *time.Location,
	availabilityUC *ucSchedule.GetAvailability,
	createUC *ucSchedule.CreateAppointment,
	cancelByCodeUC *ucSchedule.CancelByTrackingCode,
) *PublicHandler {
	return &PublicHandler{
		db:             db,
		cache:          availabilityCache,
		loc:            loc,
		availabilityUC: availabilityUC,
		createUC:       createUC,
		cancelByCodeUC: cancelByCodeUC,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type PublicCreateAppointmentRequest struct {
	CustomerName  string `json:"customer_name" binding:"required"`
	CustomerPhone string `json:"customer_phone" binding:"required"`
	CustomerEmail string `json:"customer_email"`
	ServiceID     uint   `json:"service_id" binding:"required"`
	Date          string `json:"date" binding:"required"` // YYYY-MM-DD
	Time          string `json:"time" binding:"required"` // HH:mm
	EndTime       string `json:"end_time"`                // HH:mm, opcional
	Notes         string `json:"notes"`
}

// bookingInterval monta o intervalo pedido; sem end_time o fim fica
// zerado e é calculado pela duração do serviço.
func bookingInterval(req PublicCreateAppointmentRequest, loc *time.Location) (time.Time, time.Time, error) {
	start, err := parseDateTime(req.Date, req.Time, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	var end time.Time
	if req.EndTime != "" {
		end, err = parseDateTime(req.Date, req.EndTime, loc)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	}

	return start, end, nil
}

////////////////////////////////////////////////////////
// SERVICES
////////////////////////////////////////////////////////

func (h *PublicHandler) ListServices(c *gin.Context) {
	query := strings.TrimSpace(strings.ToLower(c.Query("query")))

	q := h.db.Where("active = true")

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var services []models.Service
	if err := q.Order("id ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Erro ao listar serviços.")
		return
	}

	httpresp.List(c, services)
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

func (h *PublicHandler) Availability(c *gin.Context) {
	dateStr := c.Query("date")
	serviceIDStr := c.Query("service_id")

	if dateStr == "" || serviceIDStr == "" {
		httperr.BadRequest(c, "missing_params", "Data e serviço obrigatórios.")
		return
	}

	serviceID, err := strconv.ParseUint(serviceIDStr, 10, 64)
	if err != nil {
		httperr.BadRequest(c, "service_invalid", "Serviço inválido.")
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

	date, err := parseDate(dateStr, h.loc)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	if slots, ok := h.cache.GetSlots(c.Request.Context(), dateStr, uint(serviceID), stepMin); ok {
		c.JSON(http.StatusOK, gin.H{"date": dateStr, "slots": slots})
		return
	}

	slots, err := h.availabilityUC.Execute(
		c.Request.Context(),
		domain.AvailabilityInput{
			Date:      date,
			ServiceID: uint(serviceID),
			StepMin:   stepMin,
		},
	)

	if err != nil {
		if httperr.IsBusiness(err, "service_invalid") {
			httperr.BadRequest(c, "service_invalid", "Serviço inválido.")
			return
		}

		httperr.Internal(c, "availability_failed", "Erro ao calcular horários.")
		return
	}

	h.cache.SetSlots(c.Request.Context(), dateStr, uint(serviceID), stepMin, slots)

	c.JSON(http.StatusOK, gin.H{"date": dateStr, "slots": slots})
}

////////////////////////////////////////////////////////
// CREATE APPOINTMENT
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateAppointment(c *gin.Context) {
	var req PublicCreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.CustomerEmail))
	if email != "" && !validators.IsEmailDomainValid(email) {
		httperr.BadRequest(c, "invalid_email_domain", "O domínio do e-mail informado não parece ser válido.")
		return
	}

	start, end, err := bookingInterval(req, h.loc)
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "Data ou hora inválida.")
		return
	}

	ap, err := h.createUC.Execute(
		c.Request.Context(),
		ucSchedule.CreateAppointmentInput{
			ServiceID:     req.ServiceID,
			StartAt:       start,
			EndAt:         end,
			CustomerName:  req.CustomerName,
			CustomerPhone: req.CustomerPhone,
			CustomerEmail: email,
			Notes:         req.Notes,
		},
	)

	if err != nil {
		mapBookingErrors(c, err)
		return
	}

	h.cache.InvalidateDay(c.Request.Context(), dayKey(ap.StartAt.In(h.loc)))

	c.JSON(http.StatusCreated, ap)
}

// mapBookingErrors traduz os erros de negócio da reserva: intervalo em
// cima de folga ou de outra reserva vira 409, o resto 400.
func mapBookingErrors(c *gin.Context, err error) {
	switch {
	case httperr.IsBusiness(err, "service_invalid"):
		httperr.BadRequest(c, "service_invalid", "Serviço inválido.")
	case httperr.IsBusiness(err, "interval_invalid"):
		httperr.BadRequest(c, "interval_invalid", "Intervalo inválido.")
	case httperr.IsBusiness(err, "outside_business_hours"):
		httperr.BadRequest(c, "outside_business_hours", "Fora do horário de atendimento.")
	case httperr.IsBusiness(err, "slot_blocked"):
		httperr.Conflict(c, "slot_blocked", "Horário bloqueado.")
	case httperr.IsBusiness(err, "slot_taken"):
		httperr.Conflict(c, "slot_taken", "Horário já reservado.")
	default:
		httperr.Internal(c, "failed_to_create_appointment", "Erro ao criar agendamento.")
	}
}

////////////////////////////////////////////////////////
// TRACKING (SEM LOGIN)
////////////////////////////////////////////////////////

func (h *PublicHandler) TrackAppointment(c *gin.Context) {
	code := c.Param("code")

	var ap models.Appointment
	if err := h.db.
		Preload("Service").
		Where("tracking_code = ?", code).
		First(&ap).Error; err != nil {

		httperr.NotFound(c, "not_found", "Agendamento não encontrado.")
		return
	}

	// Visão reduzida: rastreio não expõe dados do cliente.
	c.JSON(http.StatusOK, gin.H{
		"tracking_code": ap.TrackingCode,
		"service":       ap.Service.Name,
		"start_at":      ap.StartAt,
		"end_at":        ap.EndAt,
		"status":        ap.Status,
	})
}

func (h *PublicHandler) CancelByTrackingCode(c *gin.Context) {
	code := c.Param("code")

	ap, err := h.cancelByCodeUC.Execute(c.Request.Context(), code)
	if err != nil {
		if httperr.IsBusiness(err, "not_found") {
			httperr.NotFound(c, "not_found", "Agendamento não encontrado.")
			return
		}
		if httperr.IsBusiness(err, "invalid_state") {
			httperr.BadRequest(c, "invalid_state", "Agendamento não pode ser cancelado.")
			return
		}

		httperr.Internal(c, "failed_to_cancel", "Erro ao cancelar agendamento.")
		return
	}

	h.cache.InvalidateDay(c.Request.Context(), dayKey(ap.StartAt.In(h.loc)))

	c.JSON(http.StatusOK, gin.H{
		"tracking_code": ap.TrackingCode,
		"status":        ap.Status,
		"canceled_at":   ap.CanceledAt,
	})
}

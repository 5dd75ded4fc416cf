package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mshservicos/hidro-scheduler/internal/audit"
	domain "github.com/mshservicos/hidro-scheduler/internal/domain/schedule"
	"github.com/mshservicos/hidro-scheduler/internal/httperr"
	"github.com/mshservicos/hidro-scheduler/internal/middleware"
	"github.com/mshservicos/hidro-scheduler/internal/models"
	"github.com/mshservicos/hidro-scheduler/internal/storage"
	ucSchedule "github.com/mshservicos/hidro-scheduler/internal/usecase/schedule"
)

// ======================================================
// HANDLER
// ======================================================

type WorkOrderHandler struct {
	db     *gorm.DB
	audit  *audit.Dispatcher
	photos *storage.PhotoStore

	generateUC *ucSchedule.GenerateWorkOrder
}

func NewWorkOrderHandler(
	db *gorm.DB,
	dispatcher *audit.Dispatcher,
	photos *storage.PhotoStore,
	generateUC *ucSchedule.GenerateWorkOrder,
) *WorkOrderHandler {
	return &WorkOrderHandler{
		db:         db,
		audit:      dispatcher,
		photos:     photos,
		generateUC: generateUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type UpdateWorkOrderRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Technician  *string `json:"technician,omitempty"`
	Status      *string `json:"status,omitempty"`
	LaborCents  *int    `json:"labor_cents,omitempty"`
	PartsCents  *int    `json:"parts_cents,omitempty"`
}

// ======================================================
// LIST / GET
// ======================================================

func (h *WorkOrderHandler) List(c *gin.Context) {
	status := c.Query("status")

	pageStr := c.DefaultQuery("page", "1")
	limitStr := c.DefaultQuery("limit", "50")

	page, _ := strconv.Atoi(pageStr)
	if page <= 0 {
		page = 1
	}

	limit, _ := strconv.Atoi(limitStr)
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	q := h.db.Model(&models.WorkOrder{})
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Internal(c, "work_order_count_failed", "Erro ao contar ordens de serviço.")
		return
	}

	var orders []models.WorkOrder
	if err := q.
		Preload("Customer").
		Preload("Photos").
		Order("number DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&orders).Error; err != nil {

		httperr.Internal(c, "work_order_list_failed", "Erro ao listar ordens de serviço.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"page":        page,
		"limit":       limit,
		"total":       total,
		"work_orders": orders,
	})
}

func (h *WorkOrderHandler) Get(c *gin.Context) {
	id := c.Param("id")

	var wo models.WorkOrder
	if err := h.db.
		Preload("Customer").
		Preload("Appointment").
		Preload("Photos").
		First(&wo, id).Error; err != nil {

		httperr.NotFound(c, "not_found", "Ordem de serviço não encontrada.")
		return
	}

	c.JSON(http.StatusOK, wo)
}

// ======================================================
// UPDATE
// ======================================================

func (h *WorkOrderHandler) Update(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	id := c.Param("id")

	var wo models.WorkOrder
	if err := h.db.First(&wo, id).Error; err != nil {
		httperr.NotFound(c, "not_found", "Ordem de serviço não encontrada.")
		return
	}

	var req UpdateWorkOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if req.Status != nil {
		next := domain.WorkOrderStatus(*req.Status)
		if err := domain.CanTransitionWorkOrder(domain.WorkOrderStatus(wo.Status), next); err != nil {
			httperr.BadRequest(c, "invalid_state", "Transição de status não permitida.")
			return
		}
		wo.Status = string(next)
	}

	if req.Title != nil {
		wo.Title = *req.Title
	}
	if req.Description != nil {
		wo.Description = *req.Description
	}
	if req.Technician != nil {
		wo.Technician = *req.Technician
	}
	if req.LaborCents != nil {
		if *req.LaborCents < 0 {
			httperr.BadRequest(c, "invalid_amount", "Valor inválido.")
			return
		}
		wo.LaborCents = *req.LaborCents
	}
	if req.PartsCents != nil {
		if *req.PartsCents < 0 {
			httperr.BadRequest(c, "invalid_amount", "Valor inválido.")
			return
		}
		wo.PartsCents = *req.PartsCents
	}

	wo.TotalCents = wo.LaborCents + wo.PartsCents

	if err := h.db.Save(&wo).Error; err != nil {
		httperr.Internal(c, "failed_to_update_work_order", "Erro ao atualizar ordem de serviço.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "work_order_updated",
		Entity:   "work_order",
		EntityID: &wo.ID,
	})

	c.JSON(http.StatusOK, wo)
}

// ======================================================
// FROM APPOINTMENT
// ======================================================

func (h *WorkOrderHandler) FromAppointment(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	appointmentID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	wo, alreadyExisted, err := h.generateUC.Execute(c.Request.Context(), uint(appointmentID), &userID)
	if err != nil {
		switch {
		case httperr.IsBusiness(err, "not_found"):
			httperr.NotFound(c, "not_found", "Agendamento não encontrado.")
		case httperr.IsBusiness(err, "invalid_state"):
			httperr.BadRequest(c, "invalid_state", "Agendamento precisa estar confirmado.")
		default:
			httperr.Internal(c, "failed_to_generate_work_order", "Erro ao gerar ordem de serviço.")
		}
		return
	}

	status := http.StatusCreated
	if alreadyExisted {
		status = http.StatusOK
	}

	c.JSON(status, wo)
}

// ======================================================
// PHOTOS
// ======================================================

func (h *WorkOrderHandler) UploadPhoto(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	id := c.Param("id")

	var wo models.WorkOrder
	if err := h.db.First(&wo, id).Error; err != nil {
		httperr.NotFound(c, "not_found", "Ordem de serviço não encontrada.")
		return
	}

	if !h.photos.Enabled() {
		httperr.BadRequest(c, "photos_disabled", "Armazenamento de fotos não configurado.")
		return
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		httperr.BadRequest(c, "missing_photo", "Arquivo de foto obrigatório.")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		httperr.Internal(c, "failed_to_read_photo", "Erro ao ler a foto.")
		return
	}
	defer file.Close()

	key, url, err := h.photos.Upload(c.Request.Context(), wo.ID, file)
	if err != nil {
		httperr.Internal(c, "failed_to_upload_photo", "Erro ao enviar a foto.")
		return
	}

	photo := models.WorkOrderPhoto{
		WorkOrderID: wo.ID,
		ObjectKey:   key,
		URL:         url,
	}

	if err := h.db.Create(&photo).Error; err != nil {
		httperr.Internal(c, "failed_to_save_photo", "Erro ao salvar a foto.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "work_order_photo_uploaded",
		Entity:   "work_order",
		EntityID: &wo.ID,
	})

	c.JSON(http.StatusCreated, photo)
}

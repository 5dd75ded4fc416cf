package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/mshservicos/hidro-scheduler/internal/domain/schedule"
	"github.com/mshservicos/hidro-scheduler/internal/httperr"
	"github.com/mshservicos/hidro-scheduler/internal/middleware"
	"github.com/mshservicos/hidro-scheduler/internal/models"
	ucSchedule "github.com/mshservicos/hidro-scheduler/internal/usecase/schedule"
)

type InvoiceHandler struct {
	db *gorm.DB

	issueUC *ucSchedule.IssueInvoice
}

func NewInvoiceHandler(db *gorm.DB, issueUC *ucSchedule.IssueInvoice) *InvoiceHandler {
	return &InvoiceHandler{db: db, issueUC: issueUC}
}

func (h *InvoiceHandler) List(c *gin.Context) {
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

	q := h.db.Model(&models.Invoice{})
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Internal(c, "invoice_count_failed", "Erro ao contar notas.")
		return
	}

	var invoices []models.Invoice
	if err := q.
		Preload("Customer").
		Preload("Items").
		Order("number DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&invoices).Error; err != nil {

		httperr.Internal(c, "invoice_list_failed", "Erro ao listar notas.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"page":     page,
		"limit":    limit,
		"total":    total,
		"invoices": invoices,
	})
}

func (h *InvoiceHandler) Get(c *gin.Context) {
	id := c.Param("id")

	var inv models.Invoice
	if err := h.db.
		Preload("Customer").
		Preload("WorkOrder").
		Preload("Items").
		First(&inv, id).Error; err != nil {

		httperr.NotFound(c, "not_found", "Nota não encontrada.")
		return
	}

	c.JSON(http.StatusOK, inv)
}

func (h *InvoiceHandler) FromWorkOrder(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	workOrderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	inv, alreadyExisted, err := h.issueUC.Execute(c.Request.Context(), uint(workOrderID), &userID)
	if err != nil {
		switch {
		case httperr.IsBusiness(err, "not_found"):
			httperr.NotFound(c, "not_found", "Ordem de serviço não encontrada.")
		case httperr.IsBusiness(err, "invalid_state"):
			httperr.BadRequest(c, "invalid_state", "Ordem de serviço não pode ser faturada.")
		default:
			httperr.Internal(c, "failed_to_issue_invoice", "Erro ao emitir nota.")
		}
		return
	}

	status := http.StatusCreated
	if alreadyExisted {
		status = http.StatusOK
	}

	c.JSON(status, inv)
}

// MarkPaid fecha o ciclo da nota: ISSUED → PAID.
func (h *InvoiceHandler) MarkPaid(c *gin.Context) {
	id := c.Param("id")

	var inv models.Invoice
	if err := h.db.First(&inv, id).Error; err != nil {
		httperr.NotFound(c, "not_found", "Nota não encontrada.")
		return
	}

	if err := domain.CanTransitionInvoice(
		domain.InvoiceStatus(inv.Status),
		domain.InvoicePaid,
	); err != nil {
		httperr.BadRequest(c, "invalid_state", "Nota não pode ser marcada como paga.")
		return
	}

	inv.Status = string(domain.InvoicePaid)
	if err := h.db.Save(&inv).Error; err != nil {
		httperr.Internal(c, "failed_to_update_invoice", "Erro ao atualizar nota.")
		return
	}

	c.JSON(http.StatusOK, inv)
}

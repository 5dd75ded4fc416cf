package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/mshservicos/hidro-scheduler/internal/domain/schedule"
	"github.com/mshservicos/hidro-scheduler/internal/httperr"
	"github.com/mshservicos/hidro-scheduler/internal/models"
)

// DashboardHandler resume o dia e o funil de OS/notas numa chamada só.
type DashboardHandler struct {
	db  *gorm.DB
	loc *time.Location
}

func NewDashboardHandler(db *gorm.DB, loc *time.Location) *DashboardHandler {
	return &DashboardHandler{db: db, loc: loc}
}

func (h *DashboardHandler) Summary(c *gin.Context) {
	now := time.Now().In(h.loc)
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, h.loc)
	dayEnd := dayStart.AddDate(0, 0, 1)

	var todayTotal, todayPending, todayConfirmed int64

	base := h.db.Model(&models.Appointment{}).
		Where("start_at >= ? AND start_at < ?", dayStart, dayEnd)

	if err := base.Session(&gorm.Session{}).
		Where("status <> ?", string(domain.StatusCanceled)).
		Count(&todayTotal).Error; err != nil {
		httperr.Internal(c, "dashboard_failed", "Erro ao montar o resumo.")
		return
	}

	base.Session(&gorm.Session{}).
		Where("status = ?", string(domain.StatusPending)).
		Count(&todayPending)

	base.Session(&gorm.Session{}).
		Where("status = ?", string(domain.StatusConfirmed)).
		Count(&todayConfirmed)

	var openOrders int64
	h.db.Model(&models.WorkOrder{}).
		Where("status IN ?", []string{
			string(domain.WorkOrderOpen),
			string(domain.WorkOrderInProgress),
			string(domain.WorkOrderWaitingParts),
		}).
		Count(&openOrders)

	var unpaidInvoices int64
	h.db.Model(&models.Invoice{}).
		Where("status = ?", string(domain.InvoiceIssued)).
		Count(&unpaidInvoices)

	var monthRevenueCents int64
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, h.loc)
	h.db.Model(&models.Invoice{}).
		Where("status = ? AND updated_at >= ?", string(domain.InvoicePaid), monthStart).
		Select("COALESCE(SUM(total_cents), 0)").
		Scan(&monthRevenueCents)

	c.JSON(http.StatusOK, gin.H{
		"today": gin.H{
			"date":      dayStart.Format("2006-01-02"),
			"total":     todayTotal,
			"pending":   todayPending,
			"confirmed": todayConfirmed,
		},
		"open_work_orders":    openOrders,
		"unpaid_invoices":     unpaidInvoices,
		"month_revenue_cents": monthRevenueCents,
	})
}

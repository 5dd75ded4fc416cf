package schedule

import (
	"context"
	"time"

	"github.com/mshservicos/hidro-scheduler/internal/audit"
	domain "github.com/mshservicos/hidro-scheduler/internal/domain/schedule"
	"github.com/mshservicos/hidro-scheduler/internal/httperr"
	"github.com/mshservicos/hidro-scheduler/internal/models"
)

type IssueInvoice struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	loc   *time.Location
}

func NewIssueInvoice(
	repo domain.Repository,
	audit *audit.Dispatcher,
	loc *time.Location,
) *IssueInvoice {
	return &IssueInvoice{
		repo:  repo,
		audit: audit,
		loc:   loc,
	}
}

// Execute emite a nota de uma OS no máximo uma vez: segunda chamada
// devolve a mesma nota. O total vira um único item; edição de itens não
// existe aqui. A OS emitida é encerrada (DONE).
func (uc *IssueInvoice) Execute(
	ctx context.Context,
	workOrderID uint,
	actorID *uint,
) (*models.Invoice, bool, error) {

	wo, err := uc.repo.GetWorkOrderByID(ctx, workOrderID)
	if err != nil {
		return nil, false, httperr.ErrBusiness("not_found")
	}

	if inv, err := uc.repo.GetInvoiceByWorkOrder(ctx, wo.ID); err == nil {
		return inv, true, nil
	}

	number, err := uc.repo.NextInvoiceNumber(ctx)
	if err != nil {
		return nil, false, err
	}

	now := time.Now().In(uc.loc)
	subtotal := wo.TotalCents

	inv := &models.Invoice{
		Number:        number,
		WorkOrderID:   wo.ID,
		CustomerID:    wo.CustomerID,
		Status:        string(domain.InvoiceIssued),
		IssuedAt:      &now,
		SubtotalCents: subtotal,
		DiscountCents: 0,
		TotalCents:    subtotal,
		Items: []models.InvoiceItem{
			{
				Description: "Serviço: " + wo.Title,
				Qty:         1,
				UnitCents:   subtotal,
				TotalCents:  subtotal,
			},
		},
	}

	if err := uc.repo.CreateInvoice(ctx, inv); err != nil {
		return nil, false, err
	}

	if domain.CanTransitionWorkOrder(domain.WorkOrderStatus(wo.Status), domain.WorkOrderDone) == nil {
		wo.Status = string(domain.WorkOrderDone)
		if err := uc.repo.UpdateWorkOrder(ctx, wo); err != nil {
			return nil, false, err
		}
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   actorID,
		Action:   "invoice_issued",
		Entity:   "invoice",
		EntityID: &inv.ID,
	})

	return inv, false, nil
}

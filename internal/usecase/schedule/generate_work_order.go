package schedule

import (
	"context"

	"github.com/mshservicos/hidro-scheduler/internal/audit"
	domain "github.com/mshservicos/hidro-scheduler/internal/domain/schedule"
	"github.com/mshservicos/hidro-scheduler/internal/httperr"
	"github.com/mshservicos/hidro-scheduler/internal/models"
)

type GenerateWorkOrder struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewGenerateWorkOrder(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *GenerateWorkOrder {
	return &GenerateWorkOrder{
		repo:  repo,
		audit: audit,
	}
}

// Execute gera a OS de um agendamento confirmado. Chamado de novo para
// o mesmo agendamento, devolve a OS existente sem criar outra.
func (uc *GenerateWorkOrder) Execute(
	ctx context.Context,
	appointmentID uint,
	actorID *uint,
) (*models.WorkOrder, bool, error) {

	ap, err := uc.repo.GetAppointmentByID(ctx, appointmentID)
	if err != nil {
		return nil, false, httperr.ErrBusiness("not_found")
	}

	if wo, err := uc.repo.GetWorkOrderByAppointment(ctx, ap.ID); err == nil {
		return wo, true, nil
	}

	if domain.Status(ap.Status) != domain.StatusConfirmed {
		return nil, false, httperr.ErrBusiness("invalid_state")
	}

	wo, _, err := ensureWorkOrder(ctx, uc.repo, ap)
	if err != nil {
		return nil, false, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   actorID,
		Action:   "work_order_created",
		Entity:   "work_order",
		EntityID: &wo.ID,
	})

	return wo, false, nil
}

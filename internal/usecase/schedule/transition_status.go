package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/mshservicos/hidro-scheduler/internal/audit"
	domain "github.com/mshservicos/hidro-scheduler/internal/domain/schedule"
	"github.com/mshservicos/hidro-scheduler/internal/httperr"
	"github.com/mshservicos/hidro-scheduler/internal/models"
)

type TransitionResult struct {
	Appointment      *models.Appointment `json:"appointment"`
	WorkOrder        *models.WorkOrder   `json:"work_order,omitempty"`
	WorkOrderCreated bool                `json:"work_order_created"`
}

type TransitionStatus struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	loc   *time.Location
}

func NewTransitionStatus(
	repo domain.Repository,
	audit *audit.Dispatcher,
	loc *time.Location,
) *TransitionStatus {
	return &TransitionStatus{
		repo:  repo,
		audit: audit,
		loc:   loc,
	}
}

// Execute aplica uma ação de ciclo de vida a um agendamento.
// confirm garante a OS (idempotente: reconfirmar devolve a OS existente);
// done arrasta a OS vinculada para DONE.
func (uc *TransitionStatus) Execute(
	ctx context.Context,
	appointmentID uint,
	action string,
	actorID *uint,
) (*TransitionResult, error) {

	ap, err := uc.repo.GetAppointmentByID(ctx, appointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("not_found")
	}

	now := time.Now().In(uc.loc)
	result := &TransitionResult{Appointment: ap}

	switch action {

	case "confirm":
		// Reconfirmação com OS já criada é no-op.
		if domain.Status(ap.Status) == domain.StatusConfirmed {
			if wo, err := uc.repo.GetWorkOrderByAppointment(ctx, ap.ID); err == nil {
				result.WorkOrder = wo
				return result, nil
			}
		}

		if err := domain.Confirm(ap); err != nil {
			return nil, err
		}
		if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
			return nil, err
		}

		wo, created, err := ensureWorkOrder(ctx, uc.repo, ap)
		if err != nil {
			return nil, err
		}
		result.WorkOrder = wo
		result.WorkOrderCreated = created

	case "cancel":
		if err := domain.Cancel(ap, now); err != nil {
			return nil, err
		}
		if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
			return nil, err
		}

	case "done":
		if err := domain.Complete(ap, now); err != nil {
			return nil, err
		}
		if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
			return nil, err
		}

		// Cascata: OS vinculada acompanha.
		if wo, err := uc.repo.GetWorkOrderByAppointment(ctx, ap.ID); err == nil {
			if domain.CanTransitionWorkOrder(domain.WorkOrderStatus(wo.Status), domain.WorkOrderDone) == nil {
				wo.Status = string(domain.WorkOrderDone)
				if err := uc.repo.UpdateWorkOrder(ctx, wo); err != nil {
					return nil, err
				}
			}
			result.WorkOrder = wo
		}

	case "no_show":
		if err := domain.MarkNoShow(ap); err != nil {
			return nil, err
		}
		if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
			return nil, err
		}

	default:
		return nil, httperr.ErrBusiness("invalid_action")
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   actorID,
		Action:   "appointment_" + action,
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return result, nil
}

// ensureWorkOrder cria a OS do agendamento no máximo uma vez.
func ensureWorkOrder(
	ctx context.Context,
	repo domain.Repository,
	ap *models.Appointment,
) (*models.WorkOrder, bool, error) {

	if wo, err := repo.GetWorkOrderByAppointment(ctx, ap.ID); err == nil {
		return wo, false, nil
	}

	number, err := repo.NextWorkOrderNumber(ctx)
	if err != nil {
		return nil, false, err
	}

	description := ""
	if ap.Notes != "" {
		description = "Obs do agendamento: " + ap.Notes
	}

	wo := &models.WorkOrder{
		Number:        number,
		AppointmentID: &ap.ID,
		CustomerID:    ap.CustomerID,
		Title:         fmt.Sprintf("%s • %s", ap.Service.Name, ap.Customer.Name),
		Description:   description,
		Status:        string(domain.WorkOrderOpen),
	}

	if err := repo.CreateWorkOrder(ctx, wo); err != nil {
		return nil, false, err
	}

	return wo, true, nil
}

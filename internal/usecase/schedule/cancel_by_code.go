package schedule

import (
	"context"
	"time"

	"github.com/mshservicos/hidro-scheduler/internal/audit"
	domain "github.com/mshservicos/hidro-scheduler/internal/domain/schedule"
	"github.com/mshservicos/hidro-scheduler/internal/httperr"
	"github.com/mshservicos/hidro-scheduler/internal/models"
)

// CancelByTrackingCode é o cancelamento do próprio cliente no fluxo de
// acompanhamento público — sem login, só com o código de rastreio.
type CancelByTrackingCode struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	loc   *time.Location
}

func NewCancelByTrackingCode(
	repo domain.Repository,
	audit *audit.Dispatcher,
	loc *time.Location,
) *CancelByTrackingCode {
	return &CancelByTrackingCode{
		repo:  repo,
		audit: audit,
		loc:   loc,
	}
}

func (uc *CancelByTrackingCode) Execute(
	ctx context.Context,
	code string,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointmentByTrackingCode(ctx, code)
	if err != nil {
		return nil, httperr.ErrBusiness("not_found")
	}

	now := time.Now().In(uc.loc)
	if err := domain.Cancel(ap, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "appointment_canceled_by_customer",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}

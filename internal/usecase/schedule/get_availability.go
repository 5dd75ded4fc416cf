package schedule

import (
	"context"
	"time"

	domain "github.com/mshservicos/hidro-scheduler/internal/domain/schedule"
	"github.com/mshservicos/hidro-scheduler/internal/httperr"
)

type GetAvailability struct {
	repo domain.Repository
	loc  *time.Location
}

func NewGetAvailability(repo domain.Repository, loc *time.Location) *GetAvailability {
	return &GetAvailability{repo: repo, loc: loc}
}

// Execute monta a lista ordenada de slots do dia para um serviço.
// StepMin zero usa varredura alinhada à duração do serviço (fluxo de
// reserva); StepMin > 0 usa grade fixa.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]domain.Slot, error) {

	service, err := uc.repo.GetServiceByID(ctx, in.ServiceID)
	if err != nil || !service.Active {
		return nil, httperr.ErrBusiness("service_invalid")
	}

	rows, err := uc.repo.ListBusinessHours(ctx)
	if err != nil {
		return nil, err
	}

	window := domain.ResolveWindow(rows, domain.Weekday(in.Date, uc.loc))
	if !window.Open {
		return []domain.Slot{}, nil
	}

	openAt, closeAt := window.Bounds(in.Date, uc.loc)

	// Uma busca só para o dia inteiro — nunca por candidato.
	timeOff, err := uc.repo.ListTimeOff(ctx, openAt, closeAt)
	if err != nil {
		return nil, err
	}

	busy, err := uc.repo.ListBookedAppointments(ctx, openAt, closeAt)
	if err != nil {
		return nil, err
	}

	span := time.Duration(service.DurationMin) * time.Minute

	gran := domain.ServiceAligned()
	if in.StepMin > 0 {
		gran = domain.FixedStep(in.StepMin)
	}

	return domain.BuildSlots(
		openAt,
		closeAt,
		span,
		gran.StepFor(span),
		domain.TimeOffIntervals(timeOff),
		domain.AppointmentIntervals(busy),
	), nil
}

package schedule

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mshservicos/hidro-scheduler/internal/audit"
	domain "github.com/mshservicos/hidro-scheduler/internal/domain/schedule"
	"github.com/mshservicos/hidro-scheduler/internal/httperr"
	"github.com/mshservicos/hidro-scheduler/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	ServiceID uint

	StartAt time.Time
	// Zero → calculado por StartAt + duração do serviço.
	EndAt time.Time

	CustomerName  string
	CustomerPhone string
	CustomerEmail string

	Notes string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	loc   *time.Location
}

func NewCreateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	loc *time.Location,
) *CreateAppointment {
	return &CreateAppointment{
		repo:  repo,
		audit: audit,
		loc:   loc,
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute revalida tudo na escrita. A disponibilidade exibida ao cliente
// é um snapshot que pode correr contra outras reservas; a checagem de
// folga + conflito + insert roda numa transação única no repositório, e
// a constraint de exclusão do banco segura o que escapar dela.
func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1. Serviço
	// --------------------------------------------------
	service, err := uc.repo.GetServiceByID(ctx, in.ServiceID)
	if err != nil || !service.Active {
		return nil, httperr.ErrBusiness("service_invalid")
	}

	// --------------------------------------------------
	// 2. Intervalo
	// --------------------------------------------------
	start := in.StartAt.In(uc.loc)

	end := in.EndAt.In(uc.loc)
	if in.EndAt.IsZero() {
		end = start.Add(time.Duration(service.DurationMin) * time.Minute)
	}
	if !end.After(start) {
		return nil, httperr.ErrBusiness("interval_invalid")
	}

	// --------------------------------------------------
	// 3. Horário comercial
	// --------------------------------------------------
	rows, err := uc.repo.ListBusinessHours(ctx)
	if err != nil {
		return nil, err
	}

	window := domain.ResolveWindow(rows, domain.Weekday(start, uc.loc))
	if !window.Contains(start, end, uc.loc) {
		return nil, httperr.ErrBusiness("outside_business_hours")
	}

	// --------------------------------------------------
	// 4. Recheck de folga + conflito, cliente e insert (transacional)
	// --------------------------------------------------
	// O cliente só é resolvido depois que o recheck passa: reserva
	// rejeitada não deixa cadastro para trás.
	var email *string
	if in.CustomerEmail != "" {
		email = &in.CustomerEmail
	}

	ap := &models.Appointment{
		TrackingCode: uuid.NewString(),
		ServiceID:    service.ID,
		StartAt:      start,
		EndAt:        end,
		Status:       string(domain.InitialStatus()),
		Notes:        in.Notes,
	}

	customer := domain.CustomerInput{
		Name:  in.CustomerName,
		Phone: in.CustomerPhone,
		Email: email,
	}

	if err := uc.repo.CreateAppointmentExclusive(ctx, ap, customer); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 5. Auditoria
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{
			"start": ap.StartAt,
			"end":   ap.EndAt,
		},
	})

	return ap, nil
}

package schedule

import (
	"context"
	"time"

	domain "github.com/mshservicos/hidro-scheduler/internal/domain/schedule"
	"github.com/mshservicos/hidro-scheduler/internal/models"
)

const defaultStepMin = 30

// AgendaSlot é um slot da grade da equipe, com o agendamento que o ocupa
// quando houver.
type AgendaSlot struct {
	domain.Slot
	AppointmentID *uint  `json:"appointment_id,omitempty"`
	CustomerName  string `json:"customer_name,omitempty"`
	ServiceName   string `json:"service_name,omitempty"`
	Status        string `json:"status,omitempty"`
}

type DayOverviewOutput struct {
	Window       domain.Window        `json:"window"`
	StepMin      int                  `json:"step_min"`
	Slots        []AgendaSlot         `json:"slots"`
	Appointments []models.Appointment `json:"appointments"`
	TimeOff      []models.TimeOff     `json:"time_off"`
}

type DayOverview struct {
	repo domain.Repository
	loc  *time.Location
}

func NewDayOverview(repo domain.Repository, loc *time.Location) *DayOverview {
	return &DayOverview{repo: repo, loc: loc}
}

// Execute monta a visão do dia para a agenda da equipe: grade fixa
// (independente do que está reservado), agendamentos com cliente e
// serviço, e folgas do dia.
func (uc *DayOverview) Execute(
	ctx context.Context,
	date time.Time,
	stepMin int,
) (*DayOverviewOutput, error) {

	if stepMin <= 0 {
		stepMin = defaultStepMin
	}
	gran := domain.FixedStep(stepMin)
	step := gran.StepFor(0)

	rows, err := uc.repo.ListBusinessHours(ctx)
	if err != nil {
		return nil, err
	}

	out := &DayOverviewOutput{
		StepMin:      int(step / time.Minute),
		Slots:        []AgendaSlot{},
		Appointments: []models.Appointment{},
		TimeOff:      []models.TimeOff{},
	}

	window := domain.ResolveWindow(rows, domain.Weekday(date, uc.loc))
	out.Window = window
	if !window.Open {
		return out, nil
	}

	openAt, closeAt := window.Bounds(date, uc.loc)

	timeOff, err := uc.repo.ListTimeOff(ctx, openAt, closeAt)
	if err != nil {
		return nil, err
	}
	out.TimeOff = timeOff

	dayStart := domain.DayStart(date, uc.loc)
	all, err := uc.repo.ListAppointmentsForDay(ctx, dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	out.Appointments = all

	busy, err := uc.repo.ListBookedAppointments(ctx, openAt, closeAt)
	if err != nil {
		return nil, err
	}

	slots := domain.BuildSlots(
		openAt,
		closeAt,
		step,
		step,
		domain.TimeOffIntervals(timeOff),
		domain.AppointmentIntervals(busy),
	)

	for _, slot := range slots {
		agendaSlot := AgendaSlot{Slot: slot}

		if slot.Reason == domain.ReasonBooked {
			for i := range busy {
				ap := &busy[i]
				if domain.Overlaps(slot.StartAt, slot.EndAt, ap.StartAt, ap.EndAt) {
					agendaSlot.AppointmentID = &ap.ID
					agendaSlot.CustomerName = ap.Customer.Name
					agendaSlot.ServiceName = ap.Service.Name
					agendaSlot.Status = ap.Status
					break
				}
			}
		}

		out.Slots = append(out.Slots, agendaSlot)
	}

	return out, nil
}

package schedule

import (
	"context"
	"time"

	"github.com/mshservicos/hidro-scheduler/internal/models"
)

// AvailabilityInput descreve uma consulta de disponibilidade de um dia.
// Date deve estar no timezone do negócio; StepMin zero usa varredura
// alinhada à duração do serviço.
type AvailabilityInput struct {
	Date      time.Time
	ServiceID uint
	StepMin   int
}

// CustomerInput identifica o cliente de uma reserva; a resolução
// (dedupe ou criação) acontece dentro da transação de escrita.
type CustomerInput struct {
	Name  string
	Phone string
	Email *string
}

type Repository interface {
	// -------- Catálogo --------
	GetServiceByID(
		ctx context.Context,
		id uint,
	) (*models.Service, error)

	// -------- Calendário --------
	ListBusinessHours(
		ctx context.Context,
	) ([]models.BusinessHours, error)

	// -------- Bloqueios (time-off) --------
	ListTimeOff(
		ctx context.Context,
		rangeStart time.Time,
		rangeEnd time.Time,
	) ([]models.TimeOff, error)

	// -------- Ocupação --------
	// Exclui CANCELED e normaliza EndAt ausente/degenerado pela duração
	// do serviço; todo intervalo devolvido é válido.
	ListBookedAppointments(
		ctx context.Context,
		rangeStart time.Time,
		rangeEnd time.Time,
	) ([]models.Appointment, error)

	// Visão completa do dia para a agenda da equipe (inclui cancelados,
	// com cliente e serviço carregados).
	ListAppointmentsForDay(
		ctx context.Context,
		dayStart time.Time,
		dayEnd time.Time,
	) ([]models.Appointment, error)

	// -------- Agendamentos --------
	// Recheca time-off e conflito de horário, resolve o cliente (dedupe
	// configurável) e insere, tudo numa única transação; devolve
	// slot_blocked/slot_taken em conflito. Reserva rejeitada não deixa
	// cliente criado para trás.
	CreateAppointmentExclusive(
		ctx context.Context,
		ap *models.Appointment,
		customer CustomerInput,
	) error

	GetAppointmentByID(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	GetAppointmentByTrackingCode(
		ctx context.Context,
		code string,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Ordens de serviço --------
	GetWorkOrderByID(
		ctx context.Context,
		id uint,
	) (*models.WorkOrder, error)

	GetWorkOrderByAppointment(
		ctx context.Context,
		appointmentID uint,
	) (*models.WorkOrder, error)

	CreateWorkOrder(
		ctx context.Context,
		wo *models.WorkOrder,
	) error

	UpdateWorkOrder(
		ctx context.Context,
		wo *models.WorkOrder,
	) error

	NextWorkOrderNumber(
		ctx context.Context,
	) (int, error)

	// -------- Notas --------
	GetInvoiceByWorkOrder(
		ctx context.Context,
		workOrderID uint,
	) (*models.Invoice, error)

	CreateInvoice(
		ctx context.Context,
		inv *models.Invoice,
	) error

	NextInvoiceNumber(
		ctx context.Context,
	) (int, error)
}

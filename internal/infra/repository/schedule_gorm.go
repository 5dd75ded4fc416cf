package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/mshservicos/hidro-scheduler/internal/domain/schedule"
	"github.com/mshservicos/hidro-scheduler/internal/httperr"
	"github.com/mshservicos/hidro-scheduler/internal/models"
)

type ScheduleGormRepository struct {
	db *gorm.DB

	// email | phone | none
	dedupeKey string
}

func NewScheduleGormRepository(db *gorm.DB, dedupeKey string) *ScheduleGormRepository {
	return &ScheduleGormRepository{db: db, dedupeKey: dedupeKey}
}

// --------------------------------------------------
// Catálogo
// --------------------------------------------------

func (r *ScheduleGormRepository) GetServiceByID(
	ctx context.Context,
	id uint,
) (*models.Service, error) {

	var service models.Service
	if err := r.db.WithContext(ctx).First(&service, id).Error; err != nil {
		return nil, err
	}
	return &service, nil
}

// --------------------------------------------------
// Calendário
// --------------------------------------------------

func (r *ScheduleGormRepository) ListBusinessHours(
	ctx context.Context,
) ([]models.BusinessHours, error) {

	var rows []models.BusinessHours
	if err := r.db.WithContext(ctx).
		Order("weekday ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	return rows, nil
}

// --------------------------------------------------
// Bloqueios (time-off)
// --------------------------------------------------

func (r *ScheduleGormRepository) ListTimeOff(
	ctx context.Context,
	rangeStart time.Time,
	rangeEnd time.Time,
) ([]models.TimeOff, error) {

	var rows []models.TimeOff
	if err := r.db.WithContext(ctx).
		Where("start_at <= ? AND end_at >= ?", rangeEnd, rangeStart).
		Order("start_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	return rows, nil
}

// --------------------------------------------------
// Ocupação
// --------------------------------------------------

func (r *ScheduleGormRepository) ListBookedAppointments(
	ctx context.Context,
	rangeStart time.Time,
	rangeEnd time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Service").
		Where(
			"status <> ? AND start_at < ? AND (end_at > ? OR end_at <= start_at)",
			string(domain.StatusCanceled), rangeEnd, rangeStart,
		).
		Order("start_at ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	// O filtro deixa passar linhas com end_at degenerado; depois de
	// normalizadas, algumas podem cair fora do range.
	out := apps[:0]
	for i := range apps {
		normalizeEnd(&apps[i])
		if domain.Overlaps(apps[i].StartAt, apps[i].EndAt, rangeStart, rangeEnd) {
			out = append(out, apps[i])
		}
	}

	return out, nil
}

// normalizeEnd sintetiza EndAt ausente/degenerado pela duração do
// serviço; quem consome assume intervalo sempre válido.
func normalizeEnd(ap *models.Appointment) {
	if ap.EndAt.After(ap.StartAt) {
		return
	}

	durationMin := ap.Service.DurationMin
	if durationMin <= 0 {
		durationMin = 60
	}
	ap.EndAt = ap.StartAt.Add(time.Duration(durationMin) * time.Minute)
}

func (r *ScheduleGormRepository) ListAppointmentsForDay(
	ctx context.Context,
	dayStart time.Time,
	dayEnd time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Service").
		Where(
			"start_at >= ? AND start_at < ?",
			dayStart, dayEnd,
		).
		Order("start_at ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

// --------------------------------------------------
// Clientes
// --------------------------------------------------

// getOrCreateCustomer roda dentro da transação de reserva; cliente só é
// tocado depois que o recheck de conflito passa.
func (r *ScheduleGormRepository) getOrCreateCustomer(
	tx *gorm.DB,
	in domain.CustomerInput,
) (*models.Customer, error) {

	var existing models.Customer

	switch r.dedupeKey {
	case "email":
		if in.Email != nil {
			err := tx.Where("email = ?", *in.Email).First(&existing).Error
			if err == nil {
				existing.Name = in.Name
				existing.Phone = in.Phone
				if err := tx.Save(&existing).Error; err != nil {
					return nil, err
				}
				return &existing, nil
			}
		}
	case "phone":
		if in.Phone != "" {
			err := tx.Where("phone = ?", in.Phone).First(&existing).Error
			if err == nil {
				return &existing, nil
			}
		}
	}

	customer := models.Customer{
		Name:  in.Name,
		Phone: in.Phone,
		Email: in.Email,
	}

	if err := tx.Create(&customer).Error; err != nil {
		return nil, err
	}

	return &customer, nil
}

// --------------------------------------------------
// Agendamentos
// --------------------------------------------------

// conflictScope trava FOR UPDATE as linhas de appointments que podem
// conflitar com o intervalo. Consulta de linhas, não count(): o
// Postgres rejeita FOR UPDATE em agregados (0A000). Linhas com end_at
// degenerado entram no resultado e são normalizadas por quem consome.
func conflictScope(tx *gorm.DB, startAt, endAt time.Time) *gorm.DB {
	return tx.
		Model(&models.Appointment{}).
		InnerJoins("Service").
		Clauses(clause.Locking{Strength: "UPDATE", Table: clause.Table{Name: "appointments"}}).
		Where(
			"appointments.status <> ? AND appointments.start_at < ? AND (appointments.end_at > ? OR appointments.end_at <= appointments.start_at)",
			string(domain.StatusCanceled), endAt, startAt,
		)
}

// CreateAppointmentExclusive roda o recheck de escrita, a resolução do
// cliente e o insert na mesma transação, com lock FOR UPDATE nos
// conflitos. A constraint de exclusão do Postgres é a última barreira:
// 23P01 vira slot_taken.
func (r *ScheduleGormRepository) CreateAppointmentExclusive(
	ctx context.Context,
	ap *models.Appointment,
	customer domain.CustomerInput,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var blackouts int64
		if err := tx.
			Model(&models.TimeOff{}).
			Where("start_at < ? AND end_at > ?", ap.EndAt, ap.StartAt).
			Count(&blackouts).Error; err != nil {
			return err
		}
		if blackouts > 0 {
			return httperr.ErrBusiness("slot_blocked")
		}

		var conflicts []models.Appointment
		if err := conflictScope(tx, ap.StartAt, ap.EndAt).Find(&conflicts).Error; err != nil {
			return err
		}
		for i := range conflicts {
			normalizeEnd(&conflicts[i])
			if domain.Overlaps(ap.StartAt, ap.EndAt, conflicts[i].StartAt, conflicts[i].EndAt) {
				return httperr.ErrBusiness("slot_taken")
			}
		}

		cust, err := r.getOrCreateCustomer(tx, customer)
		if err != nil {
			return err
		}
		ap.CustomerID = cust.ID

		if err := tx.Create(ap).Error; err != nil {
			return err
		}
		ap.Customer = *cust
		return nil
	})

	if err != nil && httperr.IsExclusionConflict(err) {
		return httperr.ErrBusiness("slot_taken")
	}

	return err
}

func (r *ScheduleGormRepository) GetAppointmentByID(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Service").
		First(&ap, id).Error; err != nil {
		return nil, err
	}

	return &ap, nil
}

func (r *ScheduleGormRepository) GetAppointmentByTrackingCode(
	ctx context.Context,
	code string,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Service").
		Where("tracking_code = ?", code).
		First(&ap).Error; err != nil {
		return nil, err
	}

	return &ap, nil
}

func (r *ScheduleGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

// --------------------------------------------------
// Ordens de serviço
// --------------------------------------------------

func (r *ScheduleGormRepository) GetWorkOrderByID(
	ctx context.Context,
	id uint,
) (*models.WorkOrder, error) {

	var wo models.WorkOrder
	if err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Photos").
		First(&wo, id).Error; err != nil {
		return nil, err
	}

	return &wo, nil
}

func (r *ScheduleGormRepository) GetWorkOrderByAppointment(
	ctx context.Context,
	appointmentID uint,
) (*models.WorkOrder, error) {

	var wo models.WorkOrder
	if err := r.db.WithContext(ctx).
		Where("appointment_id = ?", appointmentID).
		First(&wo).Error; err != nil {
		return nil, err
	}

	return &wo, nil
}

func (r *ScheduleGormRepository) CreateWorkOrder(
	ctx context.Context,
	wo *models.WorkOrder,
) error {
	return r.db.WithContext(ctx).Create(wo).Error
}

func (r *ScheduleGormRepository) UpdateWorkOrder(
	ctx context.Context,
	wo *models.WorkOrder,
) error {
	return r.db.WithContext(ctx).Save(wo).Error
}

func (r *ScheduleGormRepository) NextWorkOrderNumber(
	ctx context.Context,
) (int, error) {

	var last int
	if err := r.db.WithContext(ctx).
		Model(&models.WorkOrder{}).
		Select("COALESCE(MAX(number), 0)").
		Scan(&last).Error; err != nil {
		return 0, err
	}

	return last + 1, nil
}

// --------------------------------------------------
// Notas
// --------------------------------------------------

func (r *ScheduleGormRepository) GetInvoiceByWorkOrder(
	ctx context.Context,
	workOrderID uint,
) (*models.Invoice, error) {

	var inv models.Invoice
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Customer").
		Where("work_order_id = ?", workOrderID).
		First(&inv).Error; err != nil {
		return nil, err
	}

	return &inv, nil
}

func (r *ScheduleGormRepository) CreateInvoice(
	ctx context.Context,
	inv *models.Invoice,
) error {
	return r.db.WithContext(ctx).Create(inv).Error
}

func (r *ScheduleGormRepository) NextInvoiceNumber(
	ctx context.Context,
) (int, error) {

	var last int
	if err := r.db.WithContext(ctx).
		Model(&models.Invoice{}).
		Select("COALESCE(MAX(number), 0)").
		Scan(&last).Error; err != nil {
		return 0, err
	}

	return last + 1, nil
}

// Compile-time check
var _ domain.Repository = (*ScheduleGormRepository)(nil)

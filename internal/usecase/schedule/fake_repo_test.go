package schedule

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	domain "github.com/mshservicos/hidro-scheduler/internal/domain/schedule"
	"github.com/mshservicos/hidro-scheduler/internal/httperr"
	"github.com/mshservicos/hidro-scheduler/internal/models"
)

// fakeRepo implementa domain.Repository em memória, com a mesma
// semântica de conflito do repositório gorm (dedupe por email).
type fakeRepo struct {
	services     map[uint]*models.Service
	hours        []models.BusinessHours
	timeOff      []models.TimeOff
	appointments []*models.Appointment
	customers    []*models.Customer
	workOrders   []*models.WorkOrder
	invoices     []*models.Invoice

	nextID uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{services: map[uint]*models.Service{}}
}

func (f *fakeRepo) id() uint {
	f.nextID++
	return f.nextID
}

// --------------------------------------------------
// Fixtures
// --------------------------------------------------

func (f *fakeRepo) addService(durationMin int, active bool) *models.Service {
	s := &models.Service{
		ID:          f.id(),
		Name:        "Serviço",
		DurationMin: durationMin,
		Active:      active,
	}
	f.services[s.ID] = s
	return s
}

func (f *fakeRepo) addBusinessHours(weekday, startMin, endMin int) {
	f.hours = append(f.hours, models.BusinessHours{
		Weekday:  weekday,
		Active:   true,
		StartMin: startMin,
		EndMin:   endMin,
	})
}

func (f *fakeRepo) addTimeOff(start, end time.Time) {
	f.timeOff = append(f.timeOff, models.TimeOff{
		ID:      f.id(),
		StartAt: start,
		EndAt:   end,
	})
}

func (f *fakeRepo) addAppointment(svc *models.Service, start, end time.Time, status domain.Status) *models.Appointment {
	id := f.id()
	ap := &models.Appointment{
		ID:           id,
		TrackingCode: fmt.Sprintf("code-%d", id),
		ServiceID:    svc.ID,
		Service:      *svc,
		Customer:     models.Customer{Name: "Cliente"},
		StartAt:      start,
		EndAt:        end,
		Status:       string(status),
	}
	f.appointments = append(f.appointments, ap)
	return ap
}

// --------------------------------------------------
// domain.Repository
// --------------------------------------------------

func (f *fakeRepo) GetServiceByID(_ context.Context, id uint) (*models.Service, error) {
	s, ok := f.services[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (f *fakeRepo) ListBusinessHours(_ context.Context) ([]models.BusinessHours, error) {
	return f.hours, nil
}

func (f *fakeRepo) ListTimeOff(_ context.Context, rangeStart, rangeEnd time.Time) ([]models.TimeOff, error) {
	var out []models.TimeOff
	for _, r := range f.timeOff {
		if !r.StartAt.After(rangeEnd) && !r.EndAt.Before(rangeStart) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListBookedAppointments(_ context.Context, rangeStart, rangeEnd time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range f.appointments {
		if !domain.Status(ap.Status).Occupies() {
			continue
		}
		cp := *ap
		cp.EndAt = f.normalizedEnd(ap)
		if domain.Overlaps(cp.StartAt, cp.EndAt, rangeStart, rangeEnd) {
			out = append(out, cp)
		}
	}
	return out, nil
}

// normalizedEnd sintetiza EndAt ausente/degenerado pela duração do
// serviço, como o repositório gorm.
func (f *fakeRepo) normalizedEnd(ap *models.Appointment) time.Time {
	if ap.EndAt.After(ap.StartAt) {
		return ap.EndAt
	}

	durationMin := 60
	if s, ok := f.services[ap.ServiceID]; ok && s.DurationMin > 0 {
		durationMin = s.DurationMin
	}
	return ap.StartAt.Add(time.Duration(durationMin) * time.Minute)
}

func (f *fakeRepo) ListAppointmentsForDay(_ context.Context, dayStart, dayEnd time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range f.appointments {
		if !ap.StartAt.Before(dayStart) && ap.StartAt.Before(dayEnd) {
			out = append(out, *ap)
		}
	}
	return out, nil
}

func (f *fakeRepo) resolveCustomer(in domain.CustomerInput) *models.Customer {
	if in.Email != nil {
		for _, c := range f.customers {
			if c.Email != nil && *c.Email == *in.Email {
				c.Name = in.Name
				c.Phone = in.Phone
				return c
			}
		}
	}

	c := &models.Customer{ID: f.id(), Name: in.Name, Phone: in.Phone, Email: in.Email}
	f.customers = append(f.customers, c)
	return c
}

func (f *fakeRepo) CreateAppointmentExclusive(_ context.Context, ap *models.Appointment, customer domain.CustomerInput) error {
	for _, r := range f.timeOff {
		if domain.Overlaps(ap.StartAt, ap.EndAt, r.StartAt, r.EndAt) {
			return httperr.ErrBusiness("slot_blocked")
		}
	}

	for _, other := range f.appointments {
		if !domain.Status(other.Status).Occupies() {
			continue
		}
		if domain.Overlaps(ap.StartAt, ap.EndAt, other.StartAt, f.normalizedEnd(other)) {
			return httperr.ErrBusiness("slot_taken")
		}
	}

	cust := f.resolveCustomer(customer)
	ap.CustomerID = cust.ID
	ap.Customer = *cust

	ap.ID = f.id()
	f.appointments = append(f.appointments, ap)
	return nil
}

func (f *fakeRepo) GetAppointmentByID(_ context.Context, id uint) (*models.Appointment, error) {
	for _, ap := range f.appointments {
		if ap.ID == id {
			return ap, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) GetAppointmentByTrackingCode(_ context.Context, code string) (*models.Appointment, error) {
	for _, ap := range f.appointments {
		if ap.TrackingCode == code {
			return ap, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	for i, cur := range f.appointments {
		if cur.ID == ap.ID {
			f.appointments[i] = ap
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeRepo) GetWorkOrderByID(_ context.Context, id uint) (*models.WorkOrder, error) {
	for _, wo := range f.workOrders {
		if wo.ID == id {
			return wo, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) GetWorkOrderByAppointment(_ context.Context, appointmentID uint) (*models.WorkOrder, error) {
	for _, wo := range f.workOrders {
		if wo.AppointmentID != nil && *wo.AppointmentID == appointmentID {
			return wo, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) CreateWorkOrder(_ context.Context, wo *models.WorkOrder) error {
	if wo.AppointmentID != nil {
		for _, other := range f.workOrders {
			if other.AppointmentID != nil && *other.AppointmentID == *wo.AppointmentID {
				return gorm.ErrDuplicatedKey
			}
		}
	}

	wo.ID = f.id()
	f.workOrders = append(f.workOrders, wo)
	return nil
}

func (f *fakeRepo) UpdateWorkOrder(_ context.Context, wo *models.WorkOrder) error {
	for i, cur := range f.workOrders {
		if cur.ID == wo.ID {
			f.workOrders[i] = wo
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeRepo) NextWorkOrderNumber(_ context.Context) (int, error) {
	return len(f.workOrders) + 1, nil
}

func (f *fakeRepo) GetInvoiceByWorkOrder(_ context.Context, workOrderID uint) (*models.Invoice, error) {
	for _, inv := range f.invoices {
		if inv.WorkOrderID == workOrderID {
			return inv, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) CreateInvoice(_ context.Context, inv *models.Invoice) error {
	for _, other := range f.invoices {
		if other.WorkOrderID == inv.WorkOrderID {
			return gorm.ErrDuplicatedKey
		}
	}

	inv.ID = f.id()
	f.invoices = append(f.invoices, inv)
	return nil
}

func (f *fakeRepo) NextInvoiceNumber(_ context.Context) (int, error) {
	return len(f.invoices) + 1, nil
}

var _ domain.Repository = (*fakeRepo)(nil)

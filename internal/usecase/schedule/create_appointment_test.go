package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/mshservicos/hidro-scheduler/internal/domain/schedule"
	"github.com/mshservicos/hidro-scheduler/internal/httperr"
	"github.com/mshservicos/hidro-scheduler/internal/models"
)

// Segunda-feira, dia aberto nas fixtures.
func monday(h, m int) time.Time {
	return time.Date(2026, 9, 14, h, m, 0, 0, time.UTC)
}

func newBookingEnv(t *testing.T) (*fakeRepo, *models.Service, *CreateAppointment) {
	t.Helper()

	repo := newFakeRepo()
	svc := repo.addService(60, true)
	repo.addBusinessHours(1, 540, 1080) // seg 09:00-18:00

	uc := NewCreateAppointment(repo, nil, time.UTC)
	return repo, svc, uc
}

func TestCreateAppointment(t *testing.T) {
	ctx := context.Background()

	t.Run("slot livre reserva", func(t *testing.T) {
		repo, svc, uc := newBookingEnv(t)

		ap, err := uc.Execute(ctx, CreateAppointmentInput{
			ServiceID:     svc.ID,
			StartAt:       monday(10, 0),
			CustomerName:  "Maria",
			CustomerPhone: "11999990000",
		})

		require.NoError(t, err)
		assert.Equal(t, string(domain.StatusPending), ap.Status)
		assert.Equal(t, monday(11, 0), ap.EndAt)
		assert.NotEmpty(t, ap.TrackingCode)
		require.Len(t, repo.customers, 1)
		assert.Equal(t, repo.customers[0].ID, ap.CustomerID)
	})

	t.Run("horário ocupado devolve slot_taken", func(t *testing.T) {
		repo, svc, uc := newBookingEnv(t)
		repo.addAppointment(svc, monday(10, 0), monday(11, 0), domain.StatusPending)

		_, err := uc.Execute(ctx, CreateAppointmentInput{
			ServiceID:     svc.ID,
			StartAt:       monday(10, 30),
			CustomerName:  "Maria",
			CustomerPhone: "11999990000",
		})

		assert.True(t, httperr.IsBusiness(err, "slot_taken"))
	})

	t.Run("cancelado libera o horário", func(t *testing.T) {
		repo, svc, uc := newBookingEnv(t)
		repo.addAppointment(svc, monday(10, 0), monday(11, 0), domain.StatusCanceled)

		_, err := uc.Execute(ctx, CreateAppointmentInput{
			ServiceID:     svc.ID,
			StartAt:       monday(10, 0),
			CustomerName:  "Maria",
			CustomerPhone: "11999990000",
		})

		assert.NoError(t, err)
	})

	t.Run("folga devolve slot_blocked", func(t *testing.T) {
		repo, svc, uc := newBookingEnv(t)
		repo.addTimeOff(monday(14, 0), monday(15, 0))

		_, err := uc.Execute(ctx, CreateAppointmentInput{
			ServiceID:     svc.ID,
			StartAt:       monday(14, 30),
			CustomerName:  "Maria",
			CustomerPhone: "11999990000",
		})

		assert.True(t, httperr.IsBusiness(err, "slot_blocked"))
	})

	t.Run("fora do horário comercial", func(t *testing.T) {
		_, svc, uc := newBookingEnv(t)

		for _, start := range []time.Time{monday(8, 0), monday(17, 30)} {
			_, err := uc.Execute(ctx, CreateAppointmentInput{
				ServiceID:     svc.ID,
				StartAt:       start,
				CustomerName:  "Maria",
				CustomerPhone: "11999990000",
			})
			assert.True(t, httperr.IsBusiness(err, "outside_business_hours"), start.String())
		}
	})

	t.Run("terminando exatamente no fechamento passa", func(t *testing.T) {
		_, svc, uc := newBookingEnv(t)

		_, err := uc.Execute(ctx, CreateAppointmentInput{
			ServiceID:     svc.ID,
			StartAt:       monday(17, 0),
			CustomerName:  "Maria",
			CustomerPhone: "11999990000",
		})

		assert.NoError(t, err)
	})

	t.Run("dia fechado", func(t *testing.T) {
		_, svc, uc := newBookingEnv(t)

		sunday := time.Date(2026, 9, 13, 10, 0, 0, 0, time.UTC)
		_, err := uc.Execute(ctx, CreateAppointmentInput{
			ServiceID:     svc.ID,
			StartAt:       sunday,
			CustomerName:  "Maria",
			CustomerPhone: "11999990000",
		})

		assert.True(t, httperr.IsBusiness(err, "outside_business_hours"))
	})

	t.Run("serviço inativo", func(t *testing.T) {
		repo, _, uc := newBookingEnv(t)
		inactive := repo.addService(60, false)

		_, err := uc.Execute(ctx, CreateAppointmentInput{
			ServiceID:     inactive.ID,
			StartAt:       monday(10, 0),
			CustomerName:  "Maria",
			CustomerPhone: "11999990000",
		})

		assert.True(t, httperr.IsBusiness(err, "service_invalid"))
	})

	t.Run("intervalo explícito invertido", func(t *testing.T) {
		_, svc, uc := newBookingEnv(t)

		_, err := uc.Execute(ctx, CreateAppointmentInput{
			ServiceID:     svc.ID,
			StartAt:       monday(10, 0),
			EndAt:         monday(9, 0),
			CustomerName:  "Maria",
			CustomerPhone: "11999990000",
		})

		assert.True(t, httperr.IsBusiness(err, "interval_invalid"))
	})

	t.Run("end_at explícito reserva intervalo mais longo", func(t *testing.T) {
		_, svc, uc := newBookingEnv(t)

		ap, err := uc.Execute(ctx, CreateAppointmentInput{
			ServiceID:     svc.ID,
			StartAt:       monday(10, 0),
			EndAt:         monday(12, 0),
			CustomerName:  "Maria",
			CustomerPhone: "11999990000",
		})
		require.NoError(t, err)
		assert.Equal(t, monday(12, 0), ap.EndAt)

		_, err = uc.Execute(ctx, CreateAppointmentInput{
			ServiceID:     svc.ID,
			StartAt:       monday(11, 30),
			CustomerName:  "João",
			CustomerPhone: "11777770000",
		})
		assert.True(t, httperr.IsBusiness(err, "slot_taken"))
	})

	t.Run("end_at degenerado no banco ainda ocupa o horário", func(t *testing.T) {
		repo, svc, uc := newBookingEnv(t)
		repo.addAppointment(svc, monday(10, 0), monday(10, 0), domain.StatusConfirmed)

		_, err := uc.Execute(ctx, CreateAppointmentInput{
			ServiceID:     svc.ID,
			StartAt:       monday(10, 30),
			CustomerName:  "Maria",
			CustomerPhone: "11999990000",
		})

		assert.True(t, httperr.IsBusiness(err, "slot_taken"))
	})

	t.Run("reserva rejeitada não cria cliente", func(t *testing.T) {
		repo, svc, uc := newBookingEnv(t)
		repo.addAppointment(svc, monday(10, 0), monday(11, 0), domain.StatusPending)

		_, err := uc.Execute(ctx, CreateAppointmentInput{
			ServiceID:     svc.ID,
			StartAt:       monday(10, 0),
			CustomerName:  "Maria",
			CustomerPhone: "11999990000",
			CustomerEmail: "maria@example.com",
		})

		assert.True(t, httperr.IsBusiness(err, "slot_taken"))
		assert.Empty(t, repo.customers)
	})

	t.Run("dedupe de cliente por email", func(t *testing.T) {
		repo, svc, uc := newBookingEnv(t)

		first, err := uc.Execute(ctx, CreateAppointmentInput{
			ServiceID:     svc.ID,
			StartAt:       monday(9, 0),
			CustomerName:  "Maria",
			CustomerPhone: "11999990000",
			CustomerEmail: "maria@example.com",
		})
		require.NoError(t, err)

		second, err := uc.Execute(ctx, CreateAppointmentInput{
			ServiceID:     svc.ID,
			StartAt:       monday(11, 0),
			CustomerName:  "Maria Souza",
			CustomerPhone: "11888880000",
			CustomerEmail: "maria@example.com",
		})
		require.NoError(t, err)

		assert.Equal(t, first.CustomerID, second.CustomerID)
		require.Len(t, repo.customers, 1)
		assert.Equal(t, "Maria Souza", repo.customers[0].Name)
	})
}

package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/mshservicos/hidro-scheduler/internal/domain/schedule"
)

func TestDayOverview(t *testing.T) {
	ctx := context.Background()

	t.Run("grade fixa com agendamento anexado", func(t *testing.T) {
		repo := newFakeRepo()
		svc := repo.addService(60, true)
		repo.addBusinessHours(1, 540, 660) // 09:00-11:00
		booked := repo.addAppointment(svc, monday(9, 30), monday(10, 30), domain.StatusConfirmed)

		uc := NewDayOverview(repo, time.UTC)

		out, err := uc.Execute(ctx, monday(0, 0), 30)
		require.NoError(t, err)

		assert.Equal(t, 30, out.StepMin)
		require.Len(t, out.Slots, 4) // 09:00, 09:30, 10:00, 10:30
		require.Len(t, out.Appointments, 1)

		var hit int
		for _, s := range out.Slots {
			if s.AppointmentID != nil {
				hit++
				assert.Equal(t, booked.ID, *s.AppointmentID)
				assert.Equal(t, "Cliente", s.CustomerName)
				assert.Equal(t, domain.ReasonBooked, s.Reason)
			}
		}
		assert.Equal(t, 2, hit) // 09:30 e 10:00
	})

	t.Run("dia fechado devolve grade vazia", func(t *testing.T) {
		repo := newFakeRepo()

		uc := NewDayOverview(repo, time.UTC)

		out, err := uc.Execute(ctx, monday(0, 0), 0)
		require.NoError(t, err)

		assert.False(t, out.Window.Open)
		assert.Empty(t, out.Slots)
		assert.NotNil(t, out.Slots)
	})

	t.Run("passo inválido cai no padrão", func(t *testing.T) {
		repo := newFakeRepo()
		repo.addBusinessHours(1, 540, 600)

		uc := NewDayOverview(repo, time.UTC)

		out, err := uc.Execute(ctx, monday(0, 0), 0)
		require.NoError(t, err)
		assert.Equal(t, 30, out.StepMin)
	})
}

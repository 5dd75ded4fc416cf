package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/mshservicos/hidro-scheduler/internal/domain/schedule"
	"github.com/mshservicos/hidro-scheduler/internal/httperr"
)

func TestGetAvailability(t *testing.T) {
	ctx := context.Background()

	t.Run("dia livre alinha os slots à duração do serviço", func(t *testing.T) {
		repo := newFakeRepo()
		svc := repo.addService(60, true)
		repo.addBusinessHours(1, 540, 1080)

		uc := NewGetAvailability(repo, time.UTC)

		slots, err := uc.Execute(ctx, domain.AvailabilityInput{
			Date:      monday(0, 0),
			ServiceID: svc.ID,
		})

		require.NoError(t, err)
		require.Len(t, slots, 9)
		assert.Equal(t, monday(9, 0), slots[0].StartAt)
		assert.Equal(t, monday(18, 0), slots[8].EndAt)
		for _, s := range slots {
			assert.True(t, s.Free)
		}
	})

	t.Run("reserva e folga classificam os slots", func(t *testing.T) {
		repo := newFakeRepo()
		svc := repo.addService(60, true)
		repo.addBusinessHours(1, 540, 1080)
		repo.addAppointment(svc, monday(10, 0), monday(11, 0), domain.StatusConfirmed)
		repo.addTimeOff(monday(14, 0), monday(16, 0))

		uc := NewGetAvailability(repo, time.UTC)

		slots, err := uc.Execute(ctx, domain.AvailabilityInput{
			Date:      monday(0, 0),
			ServiceID: svc.ID,
		})

		require.NoError(t, err)
		byStart := map[time.Time]domain.Slot{}
		for _, s := range slots {
			byStart[s.StartAt] = s
		}

		assert.Equal(t, domain.ReasonBooked, byStart[monday(10, 0)].Reason)
		assert.Equal(t, domain.ReasonBlackout, byStart[monday(14, 0)].Reason)
		assert.Equal(t, domain.ReasonBlackout, byStart[monday(15, 0)].Reason)
		assert.True(t, byStart[monday(9, 0)].Free)
	})

	t.Run("end_at degenerado é normalizado pela duração", func(t *testing.T) {
		repo := newFakeRepo()
		svc := repo.addService(60, true)
		repo.addBusinessHours(1, 540, 1080)
		repo.addAppointment(svc, monday(10, 0), monday(10, 0), domain.StatusConfirmed)

		uc := NewGetAvailability(repo, time.UTC)

		slots, err := uc.Execute(ctx, domain.AvailabilityInput{
			Date:      monday(0, 0),
			ServiceID: svc.ID,
		})

		require.NoError(t, err)
		byStart := map[time.Time]domain.Slot{}
		for _, s := range slots {
			byStart[s.StartAt] = s
		}
		assert.Equal(t, domain.ReasonBooked, byStart[monday(10, 0)].Reason)
		assert.True(t, byStart[monday(11, 0)].Free)
	})

	t.Run("grade fixa usa o passo pedido", func(t *testing.T) {
		repo := newFakeRepo()
		svc := repo.addService(60, true)
		repo.addBusinessHours(1, 540, 660) // 09:00-11:00

		uc := NewGetAvailability(repo, time.UTC)

		slots, err := uc.Execute(ctx, domain.AvailabilityInput{
			Date:      monday(0, 0),
			ServiceID: svc.ID,
			StepMin:   30,
		})

		require.NoError(t, err)
		require.Len(t, slots, 3)
		assert.Equal(t, monday(9, 30), slots[1].StartAt)
	})

	t.Run("dia fechado devolve lista vazia", func(t *testing.T) {
		repo := newFakeRepo()
		svc := repo.addService(60, true)

		uc := NewGetAvailability(repo, time.UTC)

		slots, err := uc.Execute(ctx, domain.AvailabilityInput{
			Date:      monday(0, 0),
			ServiceID: svc.ID,
		})

		require.NoError(t, err)
		assert.NotNil(t, slots)
		assert.Empty(t, slots)
	})

	t.Run("serviço inativo", func(t *testing.T) {
		repo := newFakeRepo()
		svc := repo.addService(60, false)
		repo.addBusinessHours(1, 540, 1080)

		uc := NewGetAvailability(repo, time.UTC)

		_, err := uc.Execute(ctx, domain.AvailabilityInput{
			Date:      monday(0, 0),
			ServiceID: svc.ID,
		})

		assert.True(t, httperr.IsBusiness(err, "service_invalid"))
	})
}

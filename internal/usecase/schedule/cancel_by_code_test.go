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

func TestCancelByTrackingCode(t *testing.T) {
	ctx := context.Background()

	t.Run("cancela pelo código", func(t *testing.T) {
		repo := newFakeRepo()
		svc := repo.addService(60, true)
		ap := repo.addAppointment(svc, monday(10, 0), monday(11, 0), domain.StatusConfirmed)

		uc := NewCancelByTrackingCode(repo, nil, time.UTC)

		got, err := uc.Execute(ctx, ap.TrackingCode)
		require.NoError(t, err)
		assert.Equal(t, string(domain.StatusCanceled), got.Status)
		require.NotNil(t, got.CanceledAt)
	})

	t.Run("cancelar duas vezes falha", func(t *testing.T) {
		repo := newFakeRepo()
		svc := repo.addService(60, true)
		ap := repo.addAppointment(svc, monday(10, 0), monday(11, 0), domain.StatusPending)

		uc := NewCancelByTrackingCode(repo, nil, time.UTC)

		_, err := uc.Execute(ctx, ap.TrackingCode)
		require.NoError(t, err)

		_, err = uc.Execute(ctx, ap.TrackingCode)
		assert.True(t, httperr.IsBusiness(err, "invalid_state"))
	})

	t.Run("código desconhecido", func(t *testing.T) {
		uc := NewCancelByTrackingCode(newFakeRepo(), nil, time.UTC)

		_, err := uc.Execute(ctx, "nope")
		assert.True(t, httperr.IsBusiness(err, "not_found"))
	})
}

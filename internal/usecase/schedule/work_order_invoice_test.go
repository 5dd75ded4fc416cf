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

func TestGenerateWorkOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("confirmado gera OS uma vez", func(t *testing.T) {
		repo := newFakeRepo()
		svc := repo.addService(60, true)
		ap := repo.addAppointment(svc, monday(10, 0), monday(11, 0), domain.StatusConfirmed)

		uc := NewGenerateWorkOrder(repo, nil)

		wo, existed, err := uc.Execute(ctx, ap.ID, nil)
		require.NoError(t, err)
		assert.False(t, existed)
		assert.Equal(t, 1, wo.Number)
		require.NotNil(t, wo.AppointmentID)
		assert.Equal(t, ap.ID, *wo.AppointmentID)

		again, existed, err := uc.Execute(ctx, ap.ID, nil)
		require.NoError(t, err)
		assert.True(t, existed)
		assert.Equal(t, wo.ID, again.ID)
		require.Len(t, repo.workOrders, 1)
	})

	t.Run("pendente não gera OS", func(t *testing.T) {
		repo := newFakeRepo()
		svc := repo.addService(60, true)
		ap := repo.addAppointment(svc, monday(10, 0), monday(11, 0), domain.StatusPending)

		uc := NewGenerateWorkOrder(repo, nil)

		_, _, err := uc.Execute(ctx, ap.ID, nil)
		assert.True(t, httperr.IsBusiness(err, "invalid_state"))
	})

	t.Run("agendamento inexistente", func(t *testing.T) {
		uc := NewGenerateWorkOrder(newFakeRepo(), nil)

		_, _, err := uc.Execute(ctx, 42, nil)
		assert.True(t, httperr.IsBusiness(err, "not_found"))
	})
}

func TestIssueInvoice(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*fakeRepo, uint) {
		t.Helper()

		repo := newFakeRepo()
		svc := repo.addService(60, true)
		ap := repo.addAppointment(svc, monday(10, 0), monday(11, 0), domain.StatusConfirmed)

		genUC := NewGenerateWorkOrder(repo, nil)
		wo, _, err := genUC.Execute(ctx, ap.ID, nil)
		require.NoError(t, err)

		wo.LaborCents = 15000
		wo.PartsCents = 4500
		wo.TotalCents = 19500
		require.NoError(t, repo.UpdateWorkOrder(ctx, wo))

		return repo, wo.ID
	}

	t.Run("emite uma vez com item único", func(t *testing.T) {
		repo, woID := setup(t)
		uc := NewIssueInvoice(repo, nil, time.UTC)

		inv, existed, err := uc.Execute(ctx, woID, nil)
		require.NoError(t, err)
		assert.False(t, existed)

		assert.Equal(t, 1, inv.Number)
		assert.Equal(t, string(domain.InvoiceIssued), inv.Status)
		require.NotNil(t, inv.IssuedAt)
		assert.Equal(t, 19500, inv.TotalCents)
		require.Len(t, inv.Items, 1)
		assert.Equal(t, 19500, inv.Items[0].TotalCents)

		// A OS emitida é encerrada.
		assert.Equal(t, string(domain.WorkOrderDone), repo.workOrders[0].Status)
	})

	t.Run("reemissão devolve a mesma nota", func(t *testing.T) {
		repo, woID := setup(t)
		uc := NewIssueInvoice(repo, nil, time.UTC)

		first, _, err := uc.Execute(ctx, woID, nil)
		require.NoError(t, err)

		second, existed, err := uc.Execute(ctx, woID, nil)
		require.NoError(t, err)
		assert.True(t, existed)
		assert.Equal(t, first.ID, second.ID)
		require.Len(t, repo.invoices, 1)
	})

	t.Run("OS inexistente", func(t *testing.T) {
		uc := NewIssueInvoice(newFakeRepo(), nil, time.UTC)

		_, _, err := uc.Execute(ctx, 42, nil)
		assert.True(t, httperr.IsBusiness(err, "not_found"))
	})
}

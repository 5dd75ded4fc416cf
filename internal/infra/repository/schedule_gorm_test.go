package repository

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/mshservicos/hidro-scheduler/internal/models"
)

func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(postgres.New(postgres.Config{DSN: "host=localhost"}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
	})
	require.NoError(t, err)
	return db
}

// O Postgres rejeita FOR UPDATE em consulta agregada (0A000); o recheck
// de conflito precisa materializar linhas, nunca um count().
func TestConflictScopeLocksRows(t *testing.T) {
	db := dryRunDB(t)

	start := time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	var rows []models.Appointment
	stmt := conflictScope(db, start, end).Find(&rows).Statement

	sql := stmt.SQL.String()
	assert.Contains(t, sql, `FOR UPDATE OF "appointments"`)
	assert.NotContains(t, strings.ToLower(sql), "count(")
}

// Linhas com end_at degenerado precisam entrar no conjunto candidato
// para serem normalizadas depois.
func TestConflictScopeIncludesDegenerateRows(t *testing.T) {
	db := dryRunDB(t)

	start := time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC)

	var rows []models.Appointment
	stmt := conflictScope(db, start, start.Add(time.Hour)).Find(&rows).Statement

	assert.Contains(t, stmt.SQL.String(), "appointments.end_at <= appointments.start_at")
}

func TestNormalizeEnd(t *testing.T) {
	start := time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC)

	degenerate := models.Appointment{
		StartAt: start,
		EndAt:   start,
		Service: models.Service{DurationMin: 45},
	}
	normalizeEnd(&degenerate)
	assert.Equal(t, start.Add(45*time.Minute), degenerate.EndAt)

	noDuration := models.Appointment{StartAt: start, EndAt: start.Add(-time.Hour)}
	normalizeEnd(&noDuration)
	assert.Equal(t, start.Add(time.Hour), noDuration.EndAt)

	valid := models.Appointment{
		StartAt: start,
		EndAt:   start.Add(30 * time.Minute),
		Service: models.Service{DurationMin: 45},
	}
	normalizeEnd(&valid)
	assert.Equal(t, start.Add(30*time.Minute), valid.EndAt)
}

package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinutesToHHMM(t *testing.T) {
	assert.Equal(t, "00:00", minutesToHHMM(0))
	assert.Equal(t, "09:00", minutesToHHMM(540))
	assert.Equal(t, "18:30", minutesToHHMM(1110))
}

func TestHHMMToMinutes(t *testing.T) {
	min, err := hhmmToMinutes("09:00")
	require.NoError(t, err)
	assert.Equal(t, 540, min)

	min, err = hhmmToMinutes("23:59")
	require.NoError(t, err)
	assert.Equal(t, 1439, min)

	_, err = hhmmToMinutes("25:00")
	assert.Error(t, err)

	_, err = hhmmToMinutes("9h30")
	assert.Error(t, err)
}

func TestParseDateTime(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	got, err := parseDateTime("2026-09-14", "10:30", loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 9, 14, 10, 30, 0, 0, loc), got)

	_, err = parseDateTime("14/09/2026", "10:30", loc)
	assert.Error(t, err)
}

package handlers

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mshservicos/hidro-scheduler/internal/cache"
)

func parseDate(dateStr string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", dateStr, loc)
}

func parseDateTime(dateStr, timeStr string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation("2006-01-02 15:04", dateStr+" "+timeStr, loc)
}

func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// invalidateDays derruba o snapshot de slots de cada dia tocado por
// [start, end).
func invalidateDays(c *gin.Context, avCache *cache.AvailabilityCache, start, end time.Time) {
	day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	for ; day.Before(end); day = day.AddDate(0, 0, 1) {
		avCache.InvalidateDay(c.Request.Context(), dayKey(day))
	}
}

// --------------------------------------------------
// Janela de atendimento: minutos ↔ HH:MM
// --------------------------------------------------

func minutesToHHMM(min int) string {
	return fmt.Sprintf("%02d:%02d", min/60, min%60)
}

func hhmmToMinutes(hm string) (int, error) {
	t, err := time.Parse("15:04", hm)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

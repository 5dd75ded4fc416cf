package schedule

import (
	"time"

	"github.com/mshservicos/hidro-scheduler/internal/models"
)

// Interval é um intervalo de tempo meio-aberto [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps testa sobreposição entre [aStart, aEnd) e [bStart, bEnd).
// Meio-aberto nas duas pontas: um agendamento que termina às 10:00
// não conflita com um slot que começa às 10:00.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

func OverlapsAny(start, end time.Time, intervals []Interval) bool {
	for _, iv := range intervals {
		if Overlaps(start, end, iv.Start, iv.End) {
			return true
		}
	}
	return false
}

func TimeOffIntervals(rows []models.TimeOff) []Interval {
	out := make([]Interval, 0, len(rows))
	for _, r := range rows {
		out = append(out, Interval{Start: r.StartAt, End: r.EndAt})
	}
	return out
}

func AppointmentIntervals(rows []models.Appointment) []Interval {
	out := make([]Interval, 0, len(rows))
	for _, r := range rows {
		out = append(out, Interval{Start: r.StartAt, End: r.EndAt})
	}
	return out
}

package schedule

import (
	"time"

	"github.com/mshservicos/hidro-scheduler/internal/models"
)

const minutesPerDay = 24 * 60

// Window é a janela de atendimento resolvida para um dia.
type Window struct {
	Open     bool `json:"open"`
	StartMin int  `json:"start_min"`
	EndMin   int  `json:"end_min"`
}

// ResolveWindow procura a linha do dia da semana (0=domingo..6=sábado).
// Fecha quando não há linha, a linha está inativa ou EndMin <= StartMin —
// configuração inválida nunca gera janela negativa.
func ResolveWindow(rows []models.BusinessHours, weekday int) Window {
	for _, r := range rows {
		if r.Weekday != weekday {
			continue
		}
		startMin := clampMinute(r.StartMin)
		endMin := clampMinute(r.EndMin)
		if !r.Active || endMin <= startMin {
			return Window{}
		}
		return Window{Open: true, StartMin: startMin, EndMin: endMin}
	}
	return Window{}
}

func clampMinute(m int) int {
	if m < 0 {
		return 0
	}
	if m > minutesPerDay {
		return minutesPerDay
	}
	return m
}

// DayStart devolve a meia-noite do dia de date no timezone do negócio.
func DayStart(date time.Time, loc *time.Location) time.Time {
	d := date.In(loc)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc)
}

// Weekday devolve o dia da semana no timezone do negócio, nunca no do
// servidor.
func Weekday(date time.Time, loc *time.Location) int {
	return int(date.In(loc).Weekday())
}

// Bounds converte a janela em instantes absolutos do dia.
func (w Window) Bounds(date time.Time, loc *time.Location) (openAt, closeAt time.Time) {
	day := DayStart(date, loc)
	openAt = day.Add(time.Duration(w.StartMin) * time.Minute)
	closeAt = day.Add(time.Duration(w.EndMin) * time.Minute)
	return openAt, closeAt
}

// Contains testa se [start, end) cabe inteiro dentro da janela do dia de
// start.
func (w Window) Contains(start, end time.Time, loc *time.Location) bool {
	if !w.Open {
		return false
	}
	openAt, closeAt := w.Bounds(start, loc)
	return !start.Before(openAt) && !end.After(closeAt)
}

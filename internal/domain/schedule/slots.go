package schedule

import "time"

type SlotReason string

const (
	ReasonBlackout SlotReason = "BLACKOUT"
	ReasonBooked   SlotReason = "BOOKED"
)

// Slot é um intervalo candidato de agendamento já classificado.
type Slot struct {
	StartAt time.Time  `json:"start_at"`
	EndAt   time.Time  `json:"end_at"`
	Free    bool       `json:"free"`
	Reason  SlotReason `json:"reason,omitempty"`
}

// Limites do passo da grade fixa. Evita passo zero (loop infinito) e
// grades degeneradas.
const (
	MinStepMin = 5
	MaxStepMin = 240
)

// Granularity define o passo da varredura de slots. Grade fixa para a
// agenda da equipe (exibição uniforme do dia), alinhado à duração do
// serviço para o fluxo de reserva (todo slot oferecido comporta uma
// reserva inteira).
type Granularity struct {
	stepMin int
}

func FixedStep(stepMin int) Granularity {
	if stepMin < MinStepMin {
		stepMin = MinStepMin
	}
	if stepMin > MaxStepMin {
		stepMin = MaxStepMin
	}
	return Granularity{stepMin: stepMin}
}

func ServiceAligned() Granularity {
	return Granularity{}
}

// StepFor resolve o passo efetivo para um serviço de duração span.
func (g Granularity) StepFor(span time.Duration) time.Duration {
	if g.stepMin == 0 {
		return span
	}
	return time.Duration(g.stepMin) * time.Minute
}

// BuildSlots varre [openAt, closeAt) em incrementos de step e classifica
// cada candidato [t, t+span). O último candidato precisa caber inteiro
// antes de closeAt (sem slot parcial no fechamento). Prioridade de
// classificação: BLACKOUT > BOOKED > livre. Sobreposição parcial já
// bloqueia o slot inteiro. A saída preserva a ordem cronológica.
func BuildSlots(openAt, closeAt time.Time, span, step time.Duration, timeOff, busy []Interval) []Slot {
	if span <= 0 || step <= 0 || !closeAt.After(openAt) {
		return []Slot{}
	}

	slots := []Slot{}
	for cur := openAt; !cur.Add(span).After(closeAt); cur = cur.Add(step) {
		end := cur.Add(span)

		slot := Slot{StartAt: cur, EndAt: end, Free: true}
		switch {
		case OverlapsAny(cur, end, timeOff):
			slot.Free = false
			slot.Reason = ReasonBlackout
		case OverlapsAny(cur, end, busy):
			slot.Free = false
			slot.Reason = ReasonBooked
		}

		slots = append(slots, slot)
	}

	return slots
}

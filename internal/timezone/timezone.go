package timezone

import "time"

// O negócio opera num único fuso fixo; toda conta de data/hora recebe o
// *time.Location explicitamente em vez de depender do fuso do servidor.
const DefaultTimezone = "America/Sao_Paulo"

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, _ := time.LoadLocation(DefaultTimezone)
	return loc
}

func NowIn(loc *time.Location) time.Time {
	return time.Now().In(loc)
}

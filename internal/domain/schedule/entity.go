package schedule

import (
	"time"

	"github.com/mshservicos/hidro-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Confirm(ap *models.Appointment) error {
	if err := CanConfirm(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusConfirmed)
	return nil
}

func Cancel(ap *models.Appointment, now time.Time) error {
	if err := CanCancel(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCanceled)
	ap.CanceledAt = &now
	return nil
}

func Complete(ap *models.Appointment, now time.Time) error {
	if err := CanComplete(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusDone)
	ap.CompletedAt = &now
	return nil
}

func MarkNoShow(ap *models.Appointment) error {
	if err := CanTransition(Status(ap.Status), StatusNoShow); err != nil {
		return err
	}

	ap.Status = string(StatusNoShow)
	return nil
}

package schedule

import "github.com/mshservicos/hidro-scheduler/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusDone      Status = "DONE"
	StatusCanceled  Status = "CANCELED"
	StatusNoShow    Status = "NO_SHOW"
)

// Occupies diz se o agendamento ainda ocupa o horário na agenda.
func (s Status) Occupies() bool {
	return s != StatusCanceled
}

// Tabela fechada de transições. Transição ausente é ilegal — sem
// comparação de string solta espalhada pelos handlers.
var appointmentTransitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCanceled, StatusNoShow, StatusDone},
	StatusConfirmed: {StatusCanceled, StatusNoShow, StatusDone},
	StatusNoShow:    {StatusDone},
	StatusDone:      {},
	StatusCanceled:  {},
}

func CanTransition(from, to Status) error {
	for _, next := range appointmentTransitions[from] {
		if next == to {
			return nil
		}
	}
	return httperr.ErrBusiness("invalid_state")
}

// CanCancel vale para admin e para o cliente no fluxo de acompanhamento.
func CanCancel(current Status) error {
	return CanTransition(current, StatusCanceled)
}

func CanConfirm(current Status) error {
	return CanTransition(current, StatusConfirmed)
}

func CanComplete(current Status) error {
	return CanTransition(current, StatusDone)
}

func InitialStatus() Status {
	return StatusPending
}

// ===============================
// Work Order Status
// ===============================

type WorkOrderStatus string

const (
	WorkOrderOpen         WorkOrderStatus = "OPEN"
	WorkOrderInProgress   WorkOrderStatus = "IN_PROGRESS"
	WorkOrderWaitingParts WorkOrderStatus = "WAITING_PARTS"
	WorkOrderDone         WorkOrderStatus = "DONE"
	WorkOrderCanceled     WorkOrderStatus = "CANCELED"
)

var workOrderTransitions = map[WorkOrderStatus][]WorkOrderStatus{
	WorkOrderOpen:         {WorkOrderInProgress, WorkOrderDone, WorkOrderCanceled},
	WorkOrderInProgress:   {WorkOrderWaitingParts, WorkOrderDone, WorkOrderCanceled},
	WorkOrderWaitingParts: {WorkOrderInProgress, WorkOrderDone, WorkOrderCanceled},
	WorkOrderDone:         {},
	WorkOrderCanceled:     {},
}

func CanTransitionWorkOrder(from, to WorkOrderStatus) error {
	for _, next := range workOrderTransitions[from] {
		if next == to {
			return nil
		}
	}
	return httperr.ErrBusiness("invalid_state")
}

// ===============================
// Invoice Status
// ===============================

type InvoiceStatus string

const (
	InvoiceDraft    InvoiceStatus = "DRAFT"
	InvoiceIssued   InvoiceStatus = "ISSUED"
	InvoicePaid     InvoiceStatus = "PAID"
	InvoiceCanceled InvoiceStatus = "CANCELED"
)

var invoiceTransitions = map[InvoiceStatus][]InvoiceStatus{
	InvoiceDraft:    {InvoiceIssued, InvoiceCanceled},
	InvoiceIssued:   {InvoicePaid, InvoiceCanceled},
	InvoicePaid:     {},
	InvoiceCanceled: {},
}

func CanTransitionInvoice(from, to InvoiceStatus) error {
	for _, next := range invoiceTransitions[from] {
		if next == to {
			return nil
		}
	}
	return httperr.ErrBusiness("invalid_state")
}

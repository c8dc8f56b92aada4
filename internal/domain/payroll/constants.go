package payroll

const (
	StatusDraft     = "draft"
	StatusFinalized = "finalized"
	StatusPaid      = "paid"
)

// nextStatus lists the only transition out of each status.
var nextStatus = map[string]string{
	StatusDraft:     StatusFinalized,
	StatusFinalized: StatusPaid,
}

const centPlaces = 2

package directory

import "github.com/shopspring/decimal"

type Employee struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	HourlyRate   *decimal.Decimal `json:"hourlyRate,omitempty"`
	Status       string           `json:"employmentStatus"`
	Compensation string           `json:"compensationType"`
}

func (e Employee) Active() bool {
	return e.Status == StatusActive
}

func (e Employee) Hourly() bool {
	return e.Compensation == CompensationHourly
}

func (e Employee) Salaried() bool {
	return e.Compensation == CompensationSalaried
}

package directory

const (
	StatusActive     = "active"
	StatusOnLeave    = "on_leave"
	StatusTerminated = "terminated"

	CompensationHourly   = "hourly"
	CompensationSalaried = "salaried"
)

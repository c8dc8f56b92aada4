package timeoff

const (
	TypeVacation = "vacation"
	TypeSick     = "sick"
	TypePersonal = "personal"
	TypeUnpaid   = "unpaid"
)

// hourPlaces is the scale of the balance and request hours columns.
const hourPlaces = 4

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusDenied   = "denied"
)

func ValidType(t string) bool {
	switch t {
	case TypeVacation, TypeSick, TypePersonal, TypeUnpaid:
		return true
	}
	return false
}

// Pooled reports whether the type draws from an annual hours balance.
func Pooled(t string) bool {
	return t != TypeUnpaid && ValidType(t)
}

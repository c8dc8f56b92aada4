package requests

import (
	"encoding/json"
	"time"

	"timeclock/internal/domain/schedule"
)

type Request struct {
	ID            string
	EmployeeID    string
	RequestedDate time.Time
	Details       Details
	Reason        string
	Status        string
	ReviewNotes   *string
	ReviewedBy    *string
	ReviewedAt    *time.Time
	CreatedAt     time.Time
}

func (r Request) Type() string {
	if r.Details == nil {
		return ""
	}
	return r.Details.Type()
}

func (r Request) Pending() bool {
	return r.Status == StatusPending
}

// record is the flattened row and wire shape of a request.
type record struct {
	ID                 string              `json:"id"`
	EmployeeID         string              `json:"employeeId"`
	RequestType        string              `json:"requestType"`
	RequestedDate      time.Time           `json:"requestedDate"`
	CurrentStart       *schedule.ShiftTime `json:"currentStart,omitempty"`
	CurrentEnd         *schedule.ShiftTime `json:"currentEnd,omitempty"`
	RequestedStart     *schedule.ShiftTime `json:"requestedStart,omitempty"`
	RequestedEnd       *schedule.ShiftTime `json:"requestedEnd,omitempty"`
	SwapWithEmployeeID *string             `json:"swapWithEmployeeId,omitempty"`
	Reason             string              `json:"reason"`
	Status             string              `json:"status"`
	ReviewNotes        *string             `json:"reviewNotes,omitempty"`
	ReviewedBy         *string             `json:"reviewedBy,omitempty"`
	ReviewedAt         *time.Time          `json:"reviewedAt,omitempty"`
	CreatedAt          time.Time           `json:"createdAt"`
}

func (r Request) toRecord() record {
	rec := record{
		ID:            r.ID,
		EmployeeID:    r.EmployeeID,
		RequestType:   r.Type(),
		RequestedDate: r.RequestedDate,
		Reason:        r.Reason,
		Status:        r.Status,
		ReviewNotes:   r.ReviewNotes,
		ReviewedBy:    r.ReviewedBy,
		ReviewedAt:    r.ReviewedAt,
		CreatedAt:     r.CreatedAt,
	}
	switch d := r.Details.(type) {
	case ScheduleChange:
		rec.CurrentStart, rec.CurrentEnd = splitShift(d.Current)
		rec.RequestedStart, rec.RequestedEnd = splitShift(&d.Requested)
	case ShiftSwap:
		partner := d.SwapWithEmployeeID
		rec.SwapWithEmployeeID = &partner
	case TimeOffCoverage:
		rec.CurrentStart, rec.CurrentEnd = splitShift(d.Current)
	}
	return rec
}

func (rec record) toRequest() (Request, error) {
	in := DetailsInput{
		CurrentStart:   rec.CurrentStart,
		CurrentEnd:     rec.CurrentEnd,
		RequestedStart: rec.RequestedStart,
		RequestedEnd:   rec.RequestedEnd,
	}
	if rec.SwapWithEmployeeID != nil {
		in.SwapWithEmployeeID = *rec.SwapWithEmployeeID
	}
	details, err := BuildDetails(rec.RequestType, in)
	if err != nil {
		return Request{}, err
	}
	return Request{
		ID:            rec.ID,
		EmployeeID:    rec.EmployeeID,
		RequestedDate: rec.RequestedDate,
		Details:       details,
		Reason:        rec.Reason,
		Status:        rec.Status,
		ReviewNotes:   rec.ReviewNotes,
		ReviewedBy:    rec.ReviewedBy,
		ReviewedAt:    rec.ReviewedAt,
		CreatedAt:     rec.CreatedAt,
	}, nil
}

func (r Request) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.toRecord())
}

func (r *Request) UnmarshalJSON(data []byte) error {
	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}
	decoded, err := rec.toRequest()
	if err != nil {
		return err
	}
	*r = decoded
	return nil
}

func splitShift(shift *schedule.Shift) (*schedule.ShiftTime, *schedule.ShiftTime) {
	if shift == nil {
		return nil, nil
	}
	start, end := shift.Start, shift.End
	return &start, &end
}

type SubmitInput struct {
	EmployeeID    string
	RequestedDate time.Time
	Reason        string
	Details       Details
}

type Review struct {
	ReviewerID string
	Notes      string
}

type ListFilter struct {
	EmployeeID string
	Status     string
	Type       string
	Limit      int
	Offset     int
}

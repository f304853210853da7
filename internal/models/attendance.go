package models

import "time"

// AttendanceStatus is the single-letter status code used on report cards:
// H hadir (present), I izin (permitted leave), S sakit (sick),
// A alpa (unexcused absence), D dispensasi (excused dispensation).
type AttendanceStatus string

const (
	StatusPresent      AttendanceStatus = "H"
	StatusPermit       AttendanceStatus = "I"
	StatusSick         AttendanceStatus = "S"
	StatusAbsent       AttendanceStatus = "A"
	StatusDispensation AttendanceStatus = "D"
)

// Valid returns true when the status is a supported value.
func (s AttendanceStatus) Valid() bool {
	switch s {
	case StatusPresent, StatusPermit, StatusSick, StatusAbsent, StatusDispensation:
		return true
	default:
		return false
	}
}

type AttendanceRecord struct {
	ID         int64            `json:"id"`
	Semester   int              `json:"semester"`
	StudentID  string           `json:"student_id"`
	Date       time.Time        `json:"date"`
	Status     AttendanceStatus `json:"status"`
	Notes      *string          `json:"notes,omitempty"`
	RecordedAt time.Time        `json:"recorded_at"`
}

type RecordAttendanceRequest struct {
	StudentID string           `json:"student_id"`
	Date      string           `json:"date"`
	Status    AttendanceStatus `json:"status"`
	Notes     string           `json:"notes"`
}

type DeleteAttendanceRequest struct {
	StudentID string `json:"student_id"`
	Date      string `json:"date"`
}

type CheckinRequest struct {
	Identifier string `json:"identifier"`
}

type CheckinResult string

const (
	CheckinRecorded  CheckinResult = "recorded"
	CheckinDuplicate CheckinResult = "already_recorded"
)

type CheckinResponse struct {
	Result  CheckinResult `json:"result"`
	Student Student       `json:"student"`
	Time    string        `json:"time"`
}

// CheckinLogEntry is one row of the live check-in feed for a given date.
type CheckinLogEntry struct {
	StudentID   string           `json:"student_id"`
	StudentName string           `json:"student_name"`
	ClassName   string           `json:"class_name"`
	Status      AttendanceStatus `json:"status"`
	RecordedAt  time.Time        `json:"recorded_at"`
}

package models

// SemesterData bundles everything recorded for one semester.
type SemesterData struct {
	Semester   int                `json:"semester"`
	Config     SemesterConfig     `json:"config"`
	Grades     map[string]Grades  `json:"grades"`
	Attendance []AttendanceRecord `json:"attendance"`
}

// AppState is the whole application state: the student roster plus both
// semesters. It is the unit of backup and restore; map keys are the
// semester numbers 1 and 2.
type AppState struct {
	Students  []Student            `json:"students"`
	Semesters map[int]SemesterData `json:"semesters"`
}

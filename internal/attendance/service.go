package attendance

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/pjok-digital/backend/internal/models"
	"github.com/pjok-digital/backend/internal/report"
	"github.com/pjok-digital/backend/internal/students"
)

var (
	ErrCardNotRecognized = errors.New("card not recognized")
	ErrInvalidDate       = errors.New("invalid date")
	ErrInvalidStatus     = errors.New("invalid status")
)

type Service struct {
	store    *Store
	students *students.Store
}

func NewService(store *Store, studentStore *students.Store) *Service {
	return &Service{store: store, students: studentStore}
}

func parseDate(s string) (time.Time, error) {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return d, nil
}

// Record stores one manual status entry. Notes only make sense on a
// dispensation; any other status drops them so stale reasons never
// survive a correction.
func (s *Service) Record(semester int, req models.RecordAttendanceRequest) (*models.AttendanceRecord, error) {
	if !req.Status.Valid() {
		return nil, ErrInvalidStatus
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}
	if _, err := s.students.Get(req.StudentID); err != nil {
		return nil, err
	}

	var notes *string
	if req.Status == models.StatusDispensation && req.Notes != "" {
		notes = &req.Notes
	}
	return s.store.Upsert(semester, req.StudentID, date, req.Status, notes)
}

func (s *Service) Remove(semester int, req models.DeleteAttendanceRequest) error {
	date, err := parseDate(req.Date)
	if err != nil {
		return err
	}
	return s.store.Delete(semester, req.StudentID, date)
}

// Checkin handles a card scan or NIS entry for today. An unknown
// identifier fails; a second scan on the same day reports the duplicate
// without touching the existing record.
func (s *Service) Checkin(semester int, identifier string, now time.Time) (*models.CheckinResponse, error) {
	student, err := s.students.GetByIdentifier(identifier)
	if err != nil {
		if err == students.ErrNotFound {
			return nil, ErrCardNotRecognized
		}
		return nil, err
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	exists, err := s.store.Exists(semester, student.ID, today)
	if err != nil {
		return nil, err
	}

	resp := &models.CheckinResponse{
		Student: *student,
		Time:    now.Format("15:04:05"),
	}
	if exists {
		resp.Result = models.CheckinDuplicate
		return resp, nil
	}

	if _, err := s.store.Upsert(semester, student.ID, today, models.StatusPresent, nil); err != nil {
		return nil, err
	}
	resp.Result = models.CheckinRecorded
	return resp, nil
}

func (s *Service) Log(semester int, date time.Time) ([]models.CheckinLogEntry, error) {
	return s.store.TodayLog(semester, date)
}

func (s *Service) List(semester int) ([]models.AttendanceRecord, error) {
	return s.store.ListBySemester(semester)
}

func (s *Service) ListByStudent(semester int, studentID string) ([]models.AttendanceRecord, error) {
	return s.store.ListByStudent(semester, studentID)
}

func (s *Service) ListByDate(semester int, date time.Time) ([]models.AttendanceRecord, error) {
	return s.store.ListByDate(semester, date)
}

// StudentReport bundles one student's stats and monthly grid. The
// meeting-day denominator comes from the whole semester's recording
// activity, not just this student's rows.
type StudentReport struct {
	Stats report.AttendanceStats `json:"stats"`
	Grid  []report.MonthGrid     `json:"grid"`
}

func (s *Service) StudentReport(semester int, studentID string) (*StudentReport, error) {
	all, err := s.store.ListBySemester(semester)
	if err != nil {
		return nil, err
	}
	own, err := s.store.ListByStudent(semester, studentID)
	if err != nil {
		return nil, err
	}

	days := report.EffectiveMeetingDays(all)
	return &StudentReport{
		Stats: report.ComputeAttendanceStats(own, days),
		Grid:  report.ComputeAttendanceGrid(own, report.MonthsForSemester(semester)),
	}, nil
}

// RecapRow is one student's line in the class attendance recap: counts,
// percentage and the monthly week grid.
type RecapRow struct {
	Student models.Student         `json:"student"`
	Stats   report.AttendanceStats `json:"stats"`
	Grid    []report.MonthGrid     `json:"grid"`
}

// ClassRecap computes per-student attendance stats for one class. The
// meeting-day denominator is shared across the class.
func (s *Service) ClassRecap(semester int, class string) ([]RecapRow, int, error) {
	roster, err := s.students.List(class, "")
	if err != nil {
		return nil, 0, err
	}
	records, err := s.store.ListClassRecords(semester, class)
	if err != nil {
		return nil, 0, err
	}

	days := report.EffectiveMeetingDays(records)
	byStudent := make(map[string][]models.AttendanceRecord)
	for _, r := range records {
		byStudent[r.StudentID] = append(byStudent[r.StudentID], r)
	}

	months := report.MonthsForSemester(semester)
	rows := make([]RecapRow, 0, len(roster))
	for _, st := range roster {
		rows = append(rows, RecapRow{
			Student: st,
			Stats:   report.ComputeAttendanceStats(byStudent[st.ID], days),
			Grid:    report.ComputeAttendanceGrid(byStudent[st.ID], months),
		})
	}
	return rows, days, nil
}

// BuildRecapCSV renders recap rows as CSV cells, header included.
func BuildRecapCSV(rows []RecapRow, days int) [][]string {
	out := [][]string{{"No", "NIS", "Nama", "Kelas", "H", "S", "I", "A", "D", "Pertemuan", "Persentase"}}
	for i, row := range rows {
		out = append(out, []string{
			strconv.Itoa(i + 1),
			row.Student.NIS,
			row.Student.Name,
			row.Student.ClassName,
			strconv.Itoa(row.Stats.Present),
			strconv.Itoa(row.Stats.Sick),
			strconv.Itoa(row.Stats.Permit),
			strconv.Itoa(row.Stats.Absent),
			strconv.Itoa(row.Stats.Dispensation),
			strconv.Itoa(days),
			fmt.Sprintf("%d%%", row.Stats.Percentage),
		})
	}
	return out
}

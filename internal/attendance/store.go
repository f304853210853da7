package attendance

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/pjok-digital/backend/internal/models"
)

var ErrNotFound = errors.New("attendance record not found")

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

const recordCols = `id, semester, student_id, date, status, notes, recorded_at`

// Upsert records one student's status for a date. Re-recording the same
// day replaces the previous status; last write wins.
func (s *Store) Upsert(semester int, studentID string, date time.Time, status models.AttendanceStatus, notes *string) (*models.AttendanceRecord, error) {
	var rec models.AttendanceRecord
	err := s.db.QueryRow(
		fmt.Sprintf(`INSERT INTO attendance_records (semester, student_id, date, status, notes)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (semester, student_id, date)
		 DO UPDATE SET status = $4, notes = $5, recorded_at = NOW()
		 RETURNING %s`, recordCols),
		semester, studentID, date, status, notes,
	).Scan(&rec.ID, &rec.Semester, &rec.StudentID, &rec.Date, &rec.Status,
		&rec.Notes, &rec.RecordedAt)
	if err != nil {
		return nil, fmt.Errorf("upsert attendance: %w", err)
	}
	return &rec, nil
}

func (s *Store) Delete(semester int, studentID string, date time.Time) error {
	res, err := s.db.Exec(
		`DELETE FROM attendance_records WHERE semester = $1 AND student_id = $2 AND date = $3`,
		semester, studentID, date,
	)
	if err != nil {
		return fmt.Errorf("delete attendance: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) Exists(semester int, studentID string, date time.Time) (bool, error) {
	var exists bool
	err := s.db.QueryRow(
		`SELECT EXISTS(
		    SELECT 1 FROM attendance_records
		    WHERE semester = $1 AND student_id = $2 AND date = $3)`,
		semester, studentID, date,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check attendance: %w", err)
	}
	return exists, nil
}

func (s *Store) ListBySemester(semester int) ([]models.AttendanceRecord, error) {
	rows, err := s.db.Query(
		fmt.Sprintf(`SELECT %s FROM attendance_records
		 WHERE semester = $1 ORDER BY date, student_id`, recordCols),
		semester,
	)
	if err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	return scanRecords(rows)
}

func (s *Store) ListByDate(semester int, date time.Time) ([]models.AttendanceRecord, error) {
	rows, err := s.db.Query(
		fmt.Sprintf(`SELECT %s FROM attendance_records
		 WHERE semester = $1 AND date = $2 ORDER BY student_id`, recordCols),
		semester, date,
	)
	if err != nil {
		return nil, fmt.Errorf("list attendance by date: %w", err)
	}
	return scanRecords(rows)
}

func (s *Store) ListByStudent(semester int, studentID string) ([]models.AttendanceRecord, error) {
	rows, err := s.db.Query(
		fmt.Sprintf(`SELECT %s FROM attendance_records
		 WHERE semester = $1 AND student_id = $2 ORDER BY date`, recordCols),
		semester, studentID,
	)
	if err != nil {
		return nil, fmt.Errorf("list student attendance: %w", err)
	}
	return scanRecords(rows)
}

// ListClassRecords returns every record in a semester belonging to
// students of the given class.
func (s *Store) ListClassRecords(semester int, class string) ([]models.AttendanceRecord, error) {
	rows, err := s.db.Query(
		`SELECT r.id, r.semester, r.student_id, r.date, r.status, r.notes, r.recorded_at
		 FROM attendance_records r
		 JOIN students st ON st.id = r.student_id
		 WHERE r.semester = $1 AND st.class_name = $2
		 ORDER BY r.date, st.name`,
		semester, class,
	)
	if err != nil {
		return nil, fmt.Errorf("list class attendance: %w", err)
	}
	return scanRecords(rows)
}

// TodayLog returns the check-in feed for one date, newest first.
func (s *Store) TodayLog(semester int, date time.Time) ([]models.CheckinLogEntry, error) {
	rows, err := s.db.Query(
		`SELECT r.student_id, st.name, st.class_name, r.status, r.recorded_at
		 FROM attendance_records r
		 JOIN students st ON st.id = r.student_id
		 WHERE r.semester = $1 AND r.date = $2
		 ORDER BY r.recorded_at DESC`,
		semester, date,
	)
	if err != nil {
		return nil, fmt.Errorf("today log: %w", err)
	}
	defer rows.Close()

	var entries []models.CheckinLogEntry
	for rows.Next() {
		var e models.CheckinLogEntry
		if err := rows.Scan(&e.StudentID, &e.StudentName, &e.ClassName, &e.Status, &e.RecordedAt); err != nil {
			return nil, fmt.Errorf("scan log entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func scanRecords(rows *sql.Rows) ([]models.AttendanceRecord, error) {
	defer rows.Close()

	var records []models.AttendanceRecord
	for rows.Next() {
		var r models.AttendanceRecord
		if err := rows.Scan(&r.ID, &r.Semester, &r.StudentID, &r.Date, &r.Status,
			&r.Notes, &r.RecordedAt); err != nil {
			return nil, fmt.Errorf("scan attendance record: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

package state

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/pjok-digital/backend/internal/attendance"
	"github.com/pjok-digital/backend/internal/grades"
	"github.com/pjok-digital/backend/internal/models"
	"github.com/pjok-digital/backend/internal/students"
)

// Store builds and restores whole-application snapshots. Snapshots are
// the backup format the dashboard saves to and loads from; a restore
// replaces everything currently in the database.
type Store struct {
	db         *sql.DB
	students   *students.Store
	attendance *attendance.Store
	grades     *grades.Store
	config     *grades.ConfigStore
}

func NewStore(db *sql.DB, studentStore *students.Store, attendanceStore *attendance.Store, gradeStore *grades.Store, configStore *grades.ConfigStore) *Store {
	return &Store{
		db:         db,
		students:   studentStore,
		attendance: attendanceStore,
		grades:     gradeStore,
		config:     configStore,
	}
}

func (s *Store) Snapshot() (*models.AppState, error) {
	roster, err := s.students.List("", "")
	if err != nil {
		return nil, err
	}

	state := &models.AppState{
		Students:  roster,
		Semesters: make(map[int]models.SemesterData),
	}
	if state.Students == nil {
		state.Students = []models.Student{}
	}

	for _, sem := range []int{1, 2} {
		cfg, err := s.config.GetConfig(sem)
		if err != nil {
			return nil, err
		}
		records, err := s.attendance.ListBySemester(sem)
		if err != nil {
			return nil, err
		}

		gradeMap := make(map[string]models.Grades, len(roster))
		for _, st := range roster {
			g, err := s.grades.GetGrades(sem, st.ID, cfg.Materials)
			if err != nil {
				return nil, err
			}
			gradeMap[st.ID] = g
		}

		if cfg.Materials == nil {
			cfg.Materials = []models.MaterialInfo{}
		}
		if records == nil {
			records = []models.AttendanceRecord{}
		}
		state.Semesters[sem] = models.SemesterData{
			Semester:   sem,
			Config:     *cfg,
			Grades:     gradeMap,
			Attendance: records,
		}
	}

	return state, nil
}

// Restore replaces the entire database contents with the snapshot in a
// single transaction. Material IDs are regenerated; daily scores follow
// their slot positions.
func (s *Store) Restore(ctx context.Context, state *models.AppState) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{
		"attendance_records", "daily_scores", "grades", "materials", "semester_kkm", "students",
	} {
		if _, err := tx.Exec(`DELETE FROM ` + table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	for _, st := range state.Students {
		id := st.ID
		if id == "" {
			id = uuid.New().String()
		}
		_, err := tx.Exec(
			`INSERT INTO students (id, nis, card_id, name, class_name, gender)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			id, st.NIS, st.CardID, st.Name, st.ClassName, st.Gender,
		)
		if err != nil {
			return fmt.Errorf("restore student %s: %w", st.NIS, err)
		}
	}

	for sem, data := range state.Semesters {
		if sem != 1 && sem != 2 {
			return fmt.Errorf("invalid semester %d in snapshot", sem)
		}

		for level, kkm := range data.Config.KKM {
			_, err := tx.Exec(
				`INSERT INTO semester_kkm (semester, level, kkm) VALUES ($1, $2, $3)`,
				sem, level, kkm,
			)
			if err != nil {
				return fmt.Errorf("restore kkm: %w", err)
			}
		}

		materialIDs := make([]int64, len(data.Config.Materials))
		for i, m := range data.Config.Materials {
			err := tx.QueryRow(
				`INSERT INTO materials (semester, position, label, topic)
				 VALUES ($1, $2, $3, $4) RETURNING id`,
				sem, i+1, m.Label, m.Topic,
			).Scan(&materialIDs[i])
			if err != nil {
				return fmt.Errorf("restore material: %w", err)
			}
		}

		for studentID, g := range data.Grades {
			_, err := tx.Exec(
				`INSERT INTO grades (semester, student_id, pts, pas, pts_remedial, pas_remedial)
				 VALUES ($1, $2, $3, $4, $5, $6)`,
				sem, studentID, g.PTS, g.PAS, g.PTSRemedial, g.PASRemedial,
			)
			if err != nil {
				return fmt.Errorf("restore grades for %s: %w", studentID, err)
			}

			for i, id := range materialIDs {
				score := 0
				if i < len(g.Daily) {
					score = g.Daily[i]
				}
				var remedial *int
				if i < len(g.DailyRemedial) {
					remedial = g.DailyRemedial[i]
				}
				if score == 0 && remedial == nil {
					continue
				}
				_, err := tx.Exec(
					`INSERT INTO daily_scores (student_id, material_id, score, remedial)
					 VALUES ($1, $2, $3, $4)
					 ON CONFLICT (student_id, material_id) DO UPDATE SET score = $3, remedial = $4`,
					studentID, id, score, remedial,
				)
				if err != nil {
					return fmt.Errorf("restore daily score: %w", err)
				}
			}
		}

		for _, rec := range data.Attendance {
			_, err := tx.Exec(
				`INSERT INTO attendance_records (semester, student_id, date, status, notes)
				 VALUES ($1, $2, $3, $4, $5)
				 ON CONFLICT (semester, student_id, date)
				 DO UPDATE SET status = $4, notes = $5`,
				sem, rec.StudentID, rec.Date, rec.Status, rec.Notes,
			)
			if err != nil {
				return fmt.Errorf("restore attendance: %w", err)
			}
		}
	}

	return tx.Commit()
}

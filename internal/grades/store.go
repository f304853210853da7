package grades

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/pjok-digital/backend/internal/models"
)

var ErrUnknownField = errors.New("unknown grade field")

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// GetGrades assembles one student's scores for a semester. Daily slots
// follow the material positions; a slot with no recorded score is 0.
func (s *Store) GetGrades(semester int, studentID string, materials []models.MaterialInfo) (models.Grades, error) {
	g := models.Grades{
		Daily:         make([]int, len(materials)),
		DailyRemedial: make([]*int, len(materials)),
	}

	err := s.db.QueryRow(
		`SELECT pts, pas, pts_remedial, pas_remedial
		 FROM grades WHERE semester = $1 AND student_id = $2`,
		semester, studentID,
	).Scan(&g.PTS, &g.PAS, &g.PTSRemedial, &g.PASRemedial)
	if err != nil && err != sql.ErrNoRows {
		return g, fmt.Errorf("get grades: %w", err)
	}

	slotByMaterial := make(map[int64]int, len(materials))
	for i, m := range materials {
		slotByMaterial[m.ID] = i
	}

	rows, err := s.db.Query(
		`SELECT ds.material_id, ds.score, ds.remedial
		 FROM daily_scores ds
		 JOIN materials m ON m.id = ds.material_id
		 WHERE ds.student_id = $1 AND m.semester = $2`,
		studentID, semester,
	)
	if err != nil {
		return g, fmt.Errorf("get daily scores: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var materialID int64
		var score int
		var remedial *int
		if err := rows.Scan(&materialID, &score, &remedial); err != nil {
			return g, fmt.Errorf("scan daily score: %w", err)
		}
		if i, ok := slotByMaterial[materialID]; ok {
			g.Daily[i] = score
			g.DailyRemedial[i] = remedial
		}
	}
	return g, rows.Err()
}

// GetClassGrades loads the scores of every student in a class in two
// queries rather than 2N.
func (s *Store) GetClassGrades(semester int, class string, materials []models.MaterialInfo) (map[string]models.Grades, error) {
	slotByMaterial := make(map[int64]int, len(materials))
	for i, m := range materials {
		slotByMaterial[m.ID] = i
	}

	out := make(map[string]models.Grades)
	get := func(studentID string) models.Grades {
		if g, ok := out[studentID]; ok {
			return g
		}
		return models.Grades{
			Daily:         make([]int, len(materials)),
			DailyRemedial: make([]*int, len(materials)),
		}
	}

	rows, err := s.db.Query(
		`SELECT g.student_id, g.pts, g.pas, g.pts_remedial, g.pas_remedial
		 FROM grades g
		 JOIN students st ON st.id = g.student_id
		 WHERE g.semester = $1 AND st.class_name = $2`,
		semester, class,
	)
	if err != nil {
		return nil, fmt.Errorf("get class grades: %w", err)
	}
	for rows.Next() {
		var studentID string
		var pts, pas int
		var ptsRemedial, pasRemedial *int
		if err := rows.Scan(&studentID, &pts, &pas, &ptsRemedial, &pasRemedial); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan class grades: %w", err)
		}
		g := get(studentID)
		g.PTS, g.PAS = pts, pas
		g.PTSRemedial, g.PASRemedial = ptsRemedial, pasRemedial
		out[studentID] = g
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	scoreRows, err := s.db.Query(
		`SELECT ds.student_id, ds.material_id, ds.score, ds.remedial
		 FROM daily_scores ds
		 JOIN materials m ON m.id = ds.material_id
		 JOIN students st ON st.id = ds.student_id
		 WHERE m.semester = $1 AND st.class_name = $2`,
		semester, class,
	)
	if err != nil {
		return nil, fmt.Errorf("get class daily scores: %w", err)
	}
	defer scoreRows.Close()

	for scoreRows.Next() {
		var studentID string
		var materialID int64
		var score int
		var remedial *int
		if err := scoreRows.Scan(&studentID, &materialID, &score, &remedial); err != nil {
			return nil, fmt.Errorf("scan class daily score: %w", err)
		}
		i, ok := slotByMaterial[materialID]
		if !ok {
			continue
		}
		g := get(studentID)
		g.Daily[i] = score
		g.DailyRemedial[i] = remedial
		out[studentID] = g
	}
	return out, scoreRows.Err()
}

// UpdateField writes a single score. Daily fields address a material by
// ID; exam fields upsert the semester row.
func (s *Store) UpdateField(semester int, studentID string, req models.UpdateGradeRequest) error {
	switch req.Field {
	case models.FieldDaily:
		_, err := s.db.Exec(
			`INSERT INTO daily_scores (student_id, material_id, score)
			 VALUES ($1, $2, $3)
			 ON CONFLICT (student_id, material_id) DO UPDATE SET score = $3`,
			studentID, req.MaterialID, req.Value,
		)
		if err != nil {
			return fmt.Errorf("update daily score: %w", err)
		}
		return nil
	case models.FieldDailyRemedial:
		_, err := s.db.Exec(
			`INSERT INTO daily_scores (student_id, material_id, score, remedial)
			 VALUES ($1, $2, 0, $3)
			 ON CONFLICT (student_id, material_id) DO UPDATE SET remedial = $3`,
			studentID, req.MaterialID, req.Value,
		)
		if err != nil {
			return fmt.Errorf("update daily remedial: %w", err)
		}
		return nil
	case models.FieldPTS, models.FieldPAS, models.FieldPTSRemedial, models.FieldPASRemedial:
		column := map[models.GradeField]string{
			models.FieldPTS:         "pts",
			models.FieldPAS:         "pas",
			models.FieldPTSRemedial: "pts_remedial",
			models.FieldPASRemedial: "pas_remedial",
		}[req.Field]
		_, err := s.db.Exec(
			fmt.Sprintf(`INSERT INTO grades (semester, student_id, %s)
			 VALUES ($1, $2, $3)
			 ON CONFLICT (semester, student_id) DO UPDATE SET %s = $3`, column, column),
			semester, studentID, req.Value,
		)
		if err != nil {
			return fmt.Errorf("update %s: %w", column, err)
		}
		return nil
	default:
		return ErrUnknownField
	}
}

// ApplyRemediation persists solver output as remedial overrides inside
// one transaction. Base scores are never touched; only the override
// columns move, and only upward relative to the effective value.
func (s *Store) ApplyRemediation(ctx context.Context, semester int, studentID string, before, after models.Grades, materials []models.MaterialInfo) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	for i, m := range materials {
		if i >= len(after.Daily) {
			break
		}
		beforeVal := 0
		if i < len(before.Daily) {
			beforeVal = before.Daily[i]
		}
		if after.Daily[i] <= beforeVal {
			continue
		}
		_, err := tx.Exec(
			`INSERT INTO daily_scores (student_id, material_id, score, remedial)
			 VALUES ($1, $2, 0, $3)
			 ON CONFLICT (student_id, material_id) DO UPDATE SET remedial = $3`,
			studentID, m.ID, after.Daily[i],
		)
		if err != nil {
			return fmt.Errorf("apply daily remediation: %w", err)
		}
	}

	if after.PTS > before.PTS {
		_, err := tx.Exec(
			`INSERT INTO grades (semester, student_id, pts_remedial)
			 VALUES ($1, $2, $3)
			 ON CONFLICT (semester, student_id) DO UPDATE SET pts_remedial = $3`,
			semester, studentID, after.PTS,
		)
		if err != nil {
			return fmt.Errorf("apply pts remediation: %w", err)
		}
	}
	if after.PAS > before.PAS {
		_, err := tx.Exec(
			`INSERT INTO grades (semester, student_id, pas_remedial)
			 VALUES ($1, $2, $3)
			 ON CONFLICT (semester, student_id) DO UPDATE SET pas_remedial = $3`,
			semester, studentID, after.PAS,
		)
		if err != nil {
			return fmt.Errorf("apply pas remediation: %w", err)
		}
	}

	return tx.Commit()
}

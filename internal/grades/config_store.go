package grades

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/pjok-digital/backend/internal/models"
)

var ErrMaterialNotFound = errors.New("material not found")

// ConfigStore manages the per-semester settings: KKM thresholds by class
// level and the ordered material list.
type ConfigStore struct {
	db *sql.DB
}

func NewConfigStore(db *sql.DB) *ConfigStore {
	return &ConfigStore{db: db}
}

func (s *ConfigStore) GetConfig(semester int) (*models.SemesterConfig, error) {
	cfg := &models.SemesterConfig{KKM: make(map[string]int)}

	rows, err := s.db.Query(
		`SELECT level, kkm FROM semester_kkm WHERE semester = $1`, semester)
	if err != nil {
		return nil, fmt.Errorf("get kkm: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var level string
		var kkm int
		if err := rows.Scan(&level, &kkm); err != nil {
			return nil, err
		}
		cfg.KKM[level] = kkm
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	materials, err := s.ListMaterials(semester)
	if err != nil {
		return nil, err
	}
	cfg.Materials = materials

	return cfg, nil
}

func (s *ConfigStore) ListMaterials(semester int) ([]models.MaterialInfo, error) {
	rows, err := s.db.Query(
		`SELECT id, semester, position, label, topic
		 FROM materials WHERE semester = $1 ORDER BY position`, semester)
	if err != nil {
		return nil, fmt.Errorf("list materials: %w", err)
	}
	defer rows.Close()

	var materials []models.MaterialInfo
	for rows.Next() {
		var m models.MaterialInfo
		if err := rows.Scan(&m.ID, &m.Semester, &m.Position, &m.Label, &m.Topic); err != nil {
			return nil, fmt.Errorf("scan material: %w", err)
		}
		materials = append(materials, m)
	}
	return materials, rows.Err()
}

func (s *ConfigStore) UpdateKKM(semester int, kkm map[string]int) error {
	for level, value := range kkm {
		_, err := s.db.Exec(
			`INSERT INTO semester_kkm (semester, level, kkm)
			 VALUES ($1, $2, $3)
			 ON CONFLICT (semester, level) DO UPDATE SET kkm = $3`,
			semester, level, value,
		)
		if err != nil {
			return fmt.Errorf("update kkm %s: %w", level, err)
		}
	}
	return nil
}

// AddMaterial appends a new daily-assessment slot at the end of the
// semester's material list.
func (s *ConfigStore) AddMaterial(semester int, req models.MaterialRequest) (*models.MaterialInfo, error) {
	var m models.MaterialInfo
	err := s.db.QueryRow(
		`INSERT INTO materials (semester, position, label, topic)
		 VALUES ($1,
		         (SELECT COALESCE(MAX(position), 0) + 1 FROM materials WHERE semester = $1),
		         $2, $3)
		 RETURNING id, semester, position, label, topic`,
		semester, req.Label, req.Topic,
	).Scan(&m.ID, &m.Semester, &m.Position, &m.Label, &m.Topic)
	if err != nil {
		return nil, fmt.Errorf("add material: %w", err)
	}
	return &m, nil
}

func (s *ConfigStore) UpdateMaterial(id int64, req models.MaterialRequest) (*models.MaterialInfo, error) {
	var m models.MaterialInfo
	err := s.db.QueryRow(
		`UPDATE materials SET label = $1, topic = $2 WHERE id = $3
		 RETURNING id, semester, position, label, topic`,
		req.Label, req.Topic, id,
	).Scan(&m.ID, &m.Semester, &m.Position, &m.Label, &m.Topic)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrMaterialNotFound
		}
		return nil, fmt.Errorf("update material: %w", err)
	}
	return &m, nil
}

// DeleteMaterial removes one slot and closes the gap in a single
// transaction. Scores stay attached to their material rows, so the
// slots after the deleted one keep their values under their new
// positions.
func (s *ConfigStore) DeleteMaterial(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var semester, position int
	err = tx.QueryRow(
		`SELECT semester, position FROM materials WHERE id = $1`, id,
	).Scan(&semester, &position)
	if err != nil {
		if err == sql.ErrNoRows {
			return ErrMaterialNotFound
		}
		return fmt.Errorf("get material: %w", err)
	}

	// Deleting cascades into daily_scores for this material.
	if _, err := tx.Exec(`DELETE FROM materials WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete material: %w", err)
	}

	_, err = tx.Exec(
		`UPDATE materials SET position = position - 1
		 WHERE semester = $1 AND position > $2`,
		semester, position,
	)
	if err != nil {
		return fmt.Errorf("resequence materials: %w", err)
	}

	return tx.Commit()
}

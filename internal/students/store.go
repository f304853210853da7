package students

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/pjok-digital/backend/internal/models"
)

var (
	ErrNotFound  = errors.New("student not found")
	ErrDuplicate = errors.New("nis or card already registered")
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

const studentCols = `id, nis, card_id, name, class_name, gender, created_at, updated_at`

func scanStudent(row interface{ Scan(...interface{}) error }) (*models.Student, error) {
	var s models.Student
	err := row.Scan(&s.ID, &s.NIS, &s.CardID, &s.Name, &s.ClassName, &s.Gender,
		&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Store) Create(req models.StudentRequest) (*models.Student, error) {
	id := uuid.New().String()
	row := s.db.QueryRow(
		fmt.Sprintf(`INSERT INTO students (id, nis, card_id, name, class_name, gender)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING %s`, studentCols),
		id, req.NIS, nullString(req.CardID), req.Name, req.ClassName, req.Gender,
	)
	student, err := scanStudent(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("create student: %w", err)
	}
	return student, nil
}

func (s *Store) Get(id string) (*models.Student, error) {
	row := s.db.QueryRow(
		fmt.Sprintf(`SELECT %s FROM students WHERE id = $1`, studentCols), id)
	student, err := scanStudent(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get student: %w", err)
	}
	return student, nil
}

// GetByIdentifier resolves a student by NIS first, then by card ID. Both
// namespaces are unique so the first hit wins.
func (s *Store) GetByIdentifier(identifier string) (*models.Student, error) {
	row := s.db.QueryRow(
		fmt.Sprintf(`SELECT %s FROM students WHERE nis = $1 OR card_id = $1 LIMIT 1`, studentCols),
		identifier,
	)
	student, err := scanStudent(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get student by identifier: %w", err)
	}
	return student, nil
}

func (s *Store) GetByCardID(cardID string) (*models.Student, error) {
	row := s.db.QueryRow(
		fmt.Sprintf(`SELECT %s FROM students WHERE card_id = $1`, studentCols), cardID)
	student, err := scanStudent(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get student by card: %w", err)
	}
	return student, nil
}

// List returns students ordered by class then name, optionally filtered
// to a single class and/or a name/NIS substring.
func (s *Store) List(class, search string) ([]models.Student, error) {
	query := fmt.Sprintf(`SELECT %s FROM students`, studentCols)
	var clauses []string
	var args []interface{}

	if class != "" {
		args = append(args, class)
		clauses = append(clauses, fmt.Sprintf("class_name = $%d", len(args)))
	}
	if search != "" {
		args = append(args, "%"+search+"%")
		clauses = append(clauses, fmt.Sprintf("(name ILIKE $%d OR nis LIKE $%d)", len(args), len(args)))
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY class_name, name"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	defer rows.Close()

	var out []models.Student
	for rows.Next() {
		var st models.Student
		if err := rows.Scan(&st.ID, &st.NIS, &st.CardID, &st.Name, &st.ClassName,
			&st.Gender, &st.CreatedAt, &st.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan student: %w", err)
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

func (s *Store) Update(id string, req models.StudentRequest) (*models.Student, error) {
	row := s.db.QueryRow(
		fmt.Sprintf(`UPDATE students
		 SET nis = $1, card_id = $2, name = $3, class_name = $4, gender = $5, updated_at = NOW()
		 WHERE id = $6
		 RETURNING %s`, studentCols),
		req.NIS, nullString(req.CardID), req.Name, req.ClassName, req.Gender, id,
	)
	student, err := scanStudent(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("update student: %w", err)
	}
	return student, nil
}

// Delete removes a student. Grades, daily scores and attendance records
// go with it via ON DELETE CASCADE.
func (s *Store) Delete(id string) error {
	res, err := s.db.Exec(`DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete student: %w", err)
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

// Classes lists the distinct class names currently in use, sorted.
func (s *Store) Classes() ([]string, error) {
	rows, err := s.db.Query(`SELECT DISTINCT class_name FROM students ORDER BY class_name`)
	if err != nil {
		return nil, fmt.Errorf("list classes: %w", err)
	}
	defer rows.Close()

	var classes []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		classes = append(classes, c)
	}
	return classes, rows.Err()
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func normalizeClass(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

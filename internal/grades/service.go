package grades

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"

	"github.com/pjok-digital/backend/internal/attendance"
	"github.com/pjok-digital/backend/internal/models"
	"github.com/pjok-digital/backend/internal/report"
	"github.com/pjok-digital/backend/internal/students"
)

var ErrMaterialWrongSemester = errors.New("material does not belong to this semester")

type Service struct {
	store      *Store
	config     *ConfigStore
	students   *students.Store
	attendance *attendance.Service
}

func NewService(store *Store, config *ConfigStore, studentStore *students.Store, attendanceService *attendance.Service) *Service {
	return &Service{store: store, config: config, students: studentStore, attendance: attendanceService}
}

// StudentDetail is one student's full grade picture: raw scores, the
// derived report figures and where they stand against the KKM.
type StudentDetail struct {
	Student models.Student    `json:"student"`
	Grades  models.Grades     `json:"grades"`
	Stats   report.GradeStats `json:"stats"`
	KKM     int               `json:"kkm"`
	Passing bool              `json:"passing"`
}

func (s *Service) StudentDetail(semester int, studentID string) (*StudentDetail, error) {
	student, err := s.students.Get(studentID)
	if err != nil {
		return nil, err
	}
	cfg, err := s.config.GetConfig(semester)
	if err != nil {
		return nil, err
	}
	grades, err := s.store.GetGrades(semester, studentID, cfg.Materials)
	if err != nil {
		return nil, err
	}

	stats := report.ComputeGradeStats(grades.Effective(), len(cfg.Materials))
	kkm := report.ResolveKKM(student.ClassName, cfg.KKM)
	if _, ok := cfg.KKM[report.ClassLevel(student.ClassName)]; !ok {
		log.Printf("[grades] no KKM configured for class %s, using default %d", student.ClassName, kkm)
	}

	return &StudentDetail{
		Student: *student,
		Grades:  grades,
		Stats:   stats,
		KKM:     kkm,
		Passing: report.IsPassing(stats.ReportFinal, kkm),
	}, nil
}

// UpdateGrade writes one score. Daily fields must name a material of the
// same semester; the slot is created on first write.
func (s *Service) UpdateGrade(semester int, studentID string, req models.UpdateGradeRequest) (*StudentDetail, error) {
	if _, err := s.students.Get(studentID); err != nil {
		return nil, err
	}

	if req.Field == models.FieldDaily || req.Field == models.FieldDailyRemedial {
		materials, err := s.config.ListMaterials(semester)
		if err != nil {
			return nil, err
		}
		found := false
		for _, m := range materials {
			if m.ID == req.MaterialID {
				found = true
				break
			}
		}
		if !found {
			return nil, ErrMaterialWrongSemester
		}
	}

	if err := s.store.UpdateField(semester, studentID, req); err != nil {
		return nil, err
	}
	return s.StudentDetail(semester, studentID)
}

// GradeRecapRow is one student's line in the class grade recap. The
// attendance summary rides along so the recap table needs one request.
type GradeRecapRow struct {
	Student    models.Student         `json:"student"`
	Grades     models.Grades          `json:"grades"`
	Stats      report.GradeStats      `json:"stats"`
	KKM        int                    `json:"kkm"`
	Passing    bool                   `json:"passing"`
	Attendance report.AttendanceStats `json:"attendance"`
}

func (s *Service) ClassRecap(semester int, class string) ([]GradeRecapRow, []models.MaterialInfo, error) {
	roster, err := s.students.List(class, "")
	if err != nil {
		return nil, nil, err
	}
	cfg, err := s.config.GetConfig(semester)
	if err != nil {
		return nil, nil, err
	}
	byStudent, err := s.store.GetClassGrades(semester, class, cfg.Materials)
	if err != nil {
		return nil, nil, err
	}

	attendanceRows, _, err := s.attendance.ClassRecap(semester, class)
	if err != nil {
		return nil, nil, err
	}
	attendanceByStudent := make(map[string]report.AttendanceStats, len(attendanceRows))
	for _, row := range attendanceRows {
		attendanceByStudent[row.Student.ID] = row.Stats
	}

	rows := make([]GradeRecapRow, 0, len(roster))
	for _, st := range roster {
		grades, ok := byStudent[st.ID]
		if !ok {
			grades = models.Grades{
				Daily:         make([]int, len(cfg.Materials)),
				DailyRemedial: make([]*int, len(cfg.Materials)),
			}
		}
		stats := report.ComputeGradeStats(grades.Effective(), len(cfg.Materials))
		kkm := report.ResolveKKM(st.ClassName, cfg.KKM)
		rows = append(rows, GradeRecapRow{
			Student:    st,
			Grades:     grades,
			Stats:      stats,
			KKM:        kkm,
			Passing:    report.IsPassing(stats.ReportFinal, kkm),
			Attendance: attendanceByStudent[st.ID],
		})
	}
	return rows, cfg.Materials, nil
}

// RunRemediation lifts every failing student to their KKM and persists
// the raises as remedial overrides. An empty class runs across every
// class. Passing students are left alone.
func (s *Service) RunRemediation(ctx context.Context, semester int, class string) (*models.RemediationResponse, error) {
	classes := []string{class}
	if class == "" {
		all, err := s.students.Classes()
		if err != nil {
			return nil, err
		}
		classes = all
	}

	resp := &models.RemediationResponse{Students: []models.RemediationAdjustment{}}
	for _, c := range classes {
		rows, materials, err := s.ClassRecap(semester, c)
		if err != nil {
			return nil, err
		}
		if err := s.remediateRows(ctx, semester, rows, materials, resp); err != nil {
			return nil, err
		}
	}

	if resp.Adjusted == 0 {
		resp.Message = "All students already meet the KKM"
	} else {
		resp.Message = fmt.Sprintf("%d student(s) adjusted to meet the KKM", resp.Adjusted)
	}
	return resp, nil
}

func (s *Service) remediateRows(ctx context.Context, semester int, rows []GradeRecapRow, materials []models.MaterialInfo, resp *models.RemediationResponse) error {
	for _, row := range rows {
		if row.Passing {
			continue
		}

		before := row.Grades.Effective()
		after := report.SolveRemediation(before, len(materials), row.KKM)
		if err := s.store.ApplyRemediation(ctx, semester, row.Student.ID, before, after, materials); err != nil {
			return fmt.Errorf("remediate %s: %w", row.Student.ID, err)
		}

		afterStats := report.ComputeGradeStats(after, len(materials))
		resp.Adjusted++
		resp.Students = append(resp.Students, models.RemediationAdjustment{
			StudentID:    row.Student.ID,
			StudentName:  row.Student.Name,
			KKM:          row.KKM,
			BeforeReport: row.Stats.ReportFinal,
			AfterReport:  afterStats.ReportFinal,
		})
	}
	return nil
}

// BuildRecapCSV renders grade recap rows as CSV cells. Daily columns
// follow the material labels; effective scores are shown.
func BuildRecapCSV(rows []GradeRecapRow, materials []models.MaterialInfo) [][]string {
	header := []string{"No", "NIS", "Nama", "Kelas"}
	for _, m := range materials {
		header = append(header, m.Label)
	}
	header = append(header, "Rata-rata NH", "PTS", "PAS", "Nilai Raport", "KKM", "Keterangan")

	out := [][]string{header}
	for i, row := range rows {
		eff := row.Grades.Effective()
		cells := []string{
			strconv.Itoa(i + 1),
			row.Student.NIS,
			row.Student.Name,
			row.Student.ClassName,
		}
		for j := range materials {
			score := 0
			if j < len(eff.Daily) {
				score = eff.Daily[j]
			}
			cells = append(cells, strconv.Itoa(score))
		}
		status := "Tuntas"
		if !row.Passing {
			status = "Belum Tuntas"
		}
		cells = append(cells,
			strconv.Itoa(row.Stats.DailyAverage),
			strconv.Itoa(eff.PTS),
			strconv.Itoa(eff.PAS),
			strconv.Itoa(row.Stats.ReportFinal),
			strconv.Itoa(row.KKM),
			status,
		)
		out = append(out, cells)
	}
	return out
}

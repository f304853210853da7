package models

// Grades holds one student's raw scores for a semester. Daily is
// index-aligned with the semester's material list; missing slots are 0.
// Remedial fields are improvement scores ("nilai perbaikan") — optional
// overrides that can only raise the matching base score.
type Grades struct {
	Daily         []int  `json:"daily"`
	PTS           int    `json:"pts"`
	PAS           int    `json:"pas"`
	DailyRemedial []*int `json:"daily_remedial,omitempty"`
	PTSRemedial   *int   `json:"pts_remedial,omitempty"`
	PASRemedial   *int   `json:"pas_remedial,omitempty"`
}

// Effective folds remedial overrides into the base scores. An override
// only takes effect when it improves on the base value, so the result is
// what every aggregation surface should compute from.
func (g Grades) Effective() Grades {
	out := Grades{
		Daily: make([]int, len(g.Daily)),
		PTS:   g.PTS,
		PAS:   g.PAS,
	}
	copy(out.Daily, g.Daily)
	for i, r := range g.DailyRemedial {
		if r != nil && i < len(out.Daily) && *r > out.Daily[i] {
			out.Daily[i] = *r
		}
	}
	if g.PTSRemedial != nil && *g.PTSRemedial > out.PTS {
		out.PTS = *g.PTSRemedial
	}
	if g.PASRemedial != nil && *g.PASRemedial > out.PAS {
		out.PAS = *g.PASRemedial
	}
	return out
}

type GradeField string

const (
	FieldDaily         GradeField = "daily"
	FieldPTS           GradeField = "pts"
	FieldPAS           GradeField = "pas"
	FieldDailyRemedial GradeField = "daily_remedial"
	FieldPTSRemedial   GradeField = "pts_remedial"
	FieldPASRemedial   GradeField = "pas_remedial"
)

// Valid returns true when the field is a supported value.
func (f GradeField) Valid() bool {
	switch f {
	case FieldDaily, FieldPTS, FieldPAS, FieldDailyRemedial, FieldPTSRemedial, FieldPASRemedial:
		return true
	default:
		return false
	}
}

type UpdateGradeRequest struct {
	Field      GradeField `json:"field"`
	Value      int        `json:"value"`
	MaterialID int64      `json:"material_id,omitempty"`
}

type RemediationRequest struct {
	Class string `json:"class,omitempty"`
}

type RemediationAdjustment struct {
	StudentID    string `json:"student_id"`
	StudentName  string `json:"student_name"`
	KKM          int    `json:"kkm"`
	BeforeReport int    `json:"before_report"`
	AfterReport  int    `json:"after_report"`
}

type RemediationResponse struct {
	Adjusted int                     `json:"adjusted"`
	Message  string                  `json:"message"`
	Students []RemediationAdjustment `json:"students"`
}

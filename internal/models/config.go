package models

// MaterialInfo is one daily-assessment column ("NH1: Bola Voli").
// Position defines the slot order of daily scores; positions are kept
// dense, so deleting a material re-sequences the ones after it.
type MaterialInfo struct {
	ID       int64  `json:"id"`
	Semester int    `json:"semester"`
	Position int    `json:"position"`
	Label    string `json:"label"`
	Topic    string `json:"topic"`
}

// SemesterConfig carries the KKM thresholds per class level ("7", "8",
// "9") and the ordered material list for one semester.
type SemesterConfig struct {
	KKM       map[string]int `json:"kkm"`
	Materials []MaterialInfo `json:"materials"`
}

type MaterialRequest struct {
	Label string `json:"label"`
	Topic string `json:"topic"`
}

type UpdateKKMRequest struct {
	KKM map[string]int `json:"kkm"`
}

package models

import "time"

type Gender string

const (
	GenderMale   Gender = "L"
	GenderFemale Gender = "P"
)

// Valid returns true when the gender is a supported value.
func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale
}

type Student struct {
	ID        string    `json:"id"`
	NIS       string    `json:"nis"`
	CardID    *string   `json:"card_id,omitempty"`
	Name      string    `json:"name"`
	ClassName string    `json:"class_name"`
	Gender    Gender    `json:"gender"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type StudentRequest struct {
	NIS       string `json:"nis"`
	CardID    string `json:"card_id"`
	Name      string `json:"name"`
	ClassName string `json:"class_name"`
	Gender    Gender `json:"gender"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

package models

import "time"

// Subject is a university course, the grouping entity for resources and questions
type Subject struct {
	ID            int64     `json:"id" db:"id" example:"1"`
	NameAr        string    `json:"name_ar" db:"name_ar" example:"الحسبان I"`
	NameEn        string    `json:"name_en" db:"name_en" example:"Calculus I"`
	DescriptionAr *string   `json:"description_ar,omitempty" db:"description_ar"`
	DescriptionEn *string   `json:"description_en,omitempty" db:"description_en"`
	Code          string    `json:"code" db:"code" example:"EGS11101"`
	Semester      int       `json:"semester" db:"semester" example:"1"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// SubjectSummary is a subject with its cached counters flattened alongside
type SubjectSummary struct {
	Subject
	StatisticsCounters
}

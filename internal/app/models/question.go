package models

import "time"

// Question is a bilingual question bank entry
type Question struct {
	ID             int64      `json:"id" db:"id"`
	SubjectID      *int64     `json:"subject_id,omitempty" db:"subject_id"`
	TopicAr        *string    `json:"topic_ar,omitempty" db:"topic_ar"`
	TopicEn        *string    `json:"topic_en,omitempty" db:"topic_en"`
	QuestionTextAr string     `json:"question_text_ar" db:"question_text_ar"`
	QuestionTextEn string     `json:"question_text_en" db:"question_text_en"`
	AnswerTextAr   *string    `json:"answer_text_ar,omitempty" db:"answer_text_ar"`
	AnswerTextEn   *string    `json:"answer_text_en,omitempty" db:"answer_text_en"`
	ImageURL       *string    `json:"image_url,omitempty" db:"image_url"`
	AnswerImageURL *string    `json:"answer_image_url,omitempty" db:"answer_image_url"`
	Difficulty     Difficulty `json:"difficulty" db:"difficulty" example:"medium"`
	AddedBy        *int64     `json:"added_by,omitempty" db:"added_by"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at" db:"updated_at"`

	SubjectNameAr *string `json:"subject_name_ar,omitempty"`
	SubjectNameEn *string `json:"subject_name_en,omitempty"`
	SubjectCode   *string `json:"subject_code,omitempty"`
}

// QuestionFilter narrows question listings
type QuestionFilter struct {
	SubjectID  *int64
	Difficulty *Difficulty
	Search     string
}

package models

import "time"

// Resource is an uploaded or linked piece of course material
type Resource struct {
	ID            int64        `json:"id" db:"id" example:"10"`
	SubjectID     int64        `json:"subject_id" db:"subject_id" example:"1"`
	Type          ResourceType `json:"type" db:"type" example:"lecture"`
	TitleAr       string       `json:"title_ar" db:"title_ar"`
	TitleEn       string       `json:"title_en" db:"title_en" example:"Limits and continuity"`
	DescriptionAr *string      `json:"description_ar,omitempty" db:"description_ar"`
	DescriptionEn *string      `json:"description_en,omitempty" db:"description_en"`
	FilePath      *string      `json:"file_path,omitempty" db:"file_path"`
	FileURL       *string      `json:"file_url,omitempty" db:"file_url"`
	FileSize      *int64       `json:"file_size,omitempty" db:"file_size"`
	FileType      *string      `json:"file_type,omitempty" db:"file_type" example:"application/pdf"`
	Source        *string      `json:"source,omitempty" db:"source"`
	OrderIndex    *int         `json:"order_index,omitempty" db:"order_index" example:"0"`
	AddedBy       *int64       `json:"added_by,omitempty" db:"added_by"`
	CreatedAt     time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at" db:"updated_at"`

	// Populated by joined queries only
	SubjectNameAr *string `json:"subject_name_ar,omitempty"`
	SubjectNameEn *string `json:"subject_name_en,omitempty"`
	SubjectCode   *string `json:"subject_code,omitempty"`
}

// ResourceFilter narrows resource listings
type ResourceFilter struct {
	SubjectID *int64
	Type      *ResourceType
	Limit     int
}

package dto

import "github.com/eee-uofk/coursehub/internal/app/models"

// SubjectRequest is the body for creating or replacing a subject
type SubjectRequest struct {
	NameAr        string  `json:"name_ar" binding:"required,max=255" example:"الحسبان I"`
	NameEn        string  `json:"name_en" binding:"required,max=255" example:"Calculus I"`
	DescriptionAr *string `json:"description_ar" binding:"omitempty,max=5000"`
	DescriptionEn *string `json:"description_en" binding:"omitempty,max=5000"`
	Code          string  `json:"code" binding:"required,max=50" example:"EGS11101"`
	Semester      int     `json:"semester" binding:"omitempty,min=1,max=12" example:"1"`
}

// SubjectDetailResponse is a subject with its statistics and resources grouped by type
type SubjectDetailResponse struct {
	models.Subject
	Statistics models.StatisticsCounters                 `json:"statistics"`
	Resources  map[models.ResourceType][]models.Resource `json:"resources"`
}

package dto

// AnnouncementRequest is the body for creating or replacing an announcement
type AnnouncementRequest struct {
	TitleAr   string `json:"title_ar" binding:"required,max=255"`
	TitleEn   string `json:"title_en" binding:"required,max=255"`
	ContentAr string `json:"content_ar" binding:"required,max=20000"`
	ContentEn string `json:"content_en" binding:"required,max=20000"`
	Priority  string `json:"priority" binding:"omitempty,oneof=low medium high urgent" example:"medium"`
	Type      string `json:"type" binding:"omitempty,oneof=general exam submission" example:"general"`
	IsActive  *bool  `json:"is_active" example:"true"`
}

// ReactRequest is the body of POST /announcements/{id}/reactions
type ReactRequest struct {
	ReactionType string `json:"reaction_type" binding:"required,oneof=like love wow sad" example:"like"`
}

// ReactionsResponse lists the counter of every reaction type for an announcement
type ReactionsResponse struct {
	AnnouncementID int64          `json:"announcement_id" example:"5"`
	Counts         map[string]int `json:"counts"`
	Total          int            `json:"total" example:"3"`
}

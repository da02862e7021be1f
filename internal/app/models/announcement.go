package models

import "time"

// Announcement is a bilingual notice shown on the board
type Announcement struct {
	ID        int64                `json:"id" db:"id"`
	TitleAr   string               `json:"title_ar" db:"title_ar"`
	TitleEn   string               `json:"title_en" db:"title_en"`
	ContentAr string               `json:"content_ar" db:"content_ar"`
	ContentEn string               `json:"content_en" db:"content_en"`
	Priority  AnnouncementPriority `json:"priority" db:"priority" example:"high"`
	Type      AnnouncementType     `json:"type" db:"type" example:"exam"`
	IsActive  bool                 `json:"is_active" db:"is_active"`
	AddedBy   *int64               `json:"added_by,omitempty" db:"added_by"`
	CreatedAt time.Time            `json:"created_at" db:"created_at"`
	UpdatedAt time.Time            `json:"updated_at" db:"updated_at"`
}

// AnnouncementFilter narrows announcement listings
type AnnouncementFilter struct {
	ActiveOnly bool
	Type       *AnnouncementType
	Limit      int
}

// AnnouncementReaction holds the counter for one (announcement, reaction type) pair
type AnnouncementReaction struct {
	AnnouncementID int64        `json:"announcement_id" db:"announcement_id" example:"5"`
	ReactionType   ReactionType `json:"reaction_type" db:"reaction_type" example:"like"`
	Count          int          `json:"count" db:"count" example:"2"`
}

package models

import (
	"sort"
	"strings"
)

// RoleType defines the user role type
type RoleType string

const (
	RoleAdmin RoleType = "admin"
)

// ResourceType is the pedagogical category of a resource
type ResourceType string

const (
	ResourceTypeLecture           ResourceType = "lecture"
	ResourceTypeSheet             ResourceType = "sheet"
	ResourceTypeAssignment        ResourceType = "assignment"
	ResourceTypeExam              ResourceType = "exam"
	ResourceTypeReference         ResourceType = "reference"
	ResourceTypeImportantQuestion ResourceType = "important_question"
)

// ResourceTypes lists every resource type in display order
var ResourceTypes = []ResourceType{
	ResourceTypeLecture,
	ResourceTypeSheet,
	ResourceTypeAssignment,
	ResourceTypeExam,
	ResourceTypeReference,
	ResourceTypeImportantQuestion,
}

// ParseResourceType normalises a stored or submitted type.
// Legacy rows use the plural "important_questions".
func ParseResourceType(raw string) (ResourceType, bool) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if normalized == "important_questions" {
		return ResourceTypeImportantQuestion, true
	}
	for _, t := range ResourceTypes {
		if string(t) == normalized {
			return t, true
		}
	}
	return "", false
}

// Difficulty of a question bank entry
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// AnnouncementPriority orders announcements on the notice board
type AnnouncementPriority string

const (
	PriorityLow    AnnouncementPriority = "low"
	PriorityMedium AnnouncementPriority = "medium"
	PriorityHigh   AnnouncementPriority = "high"
	PriorityUrgent AnnouncementPriority = "urgent"
)

// Rank returns a sortable weight, higher is more important
func (p AnnouncementPriority) Rank() int {
	switch p {
	case PriorityUrgent:
		return 4
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// AnnouncementType categorises announcements
type AnnouncementType string

const (
	AnnouncementTypeGeneral    AnnouncementType = "general"
	AnnouncementTypeExam       AnnouncementType = "exam"
	AnnouncementTypeSubmission AnnouncementType = "submission"
)

// ReactionType is one of the fixed emoji reactions
type ReactionType string

const (
	ReactionLike ReactionType = "like"
	ReactionLove ReactionType = "love"
	ReactionWow  ReactionType = "wow"
	ReactionSad  ReactionType = "sad"
)

// ReactionTypes lists every reaction type
var ReactionTypes = []ReactionType{ReactionLike, ReactionLove, ReactionWow, ReactionSad}

// IsValid reports whether r is a known reaction
func (r ReactionType) IsValid() bool {
	for _, t := range ReactionTypes {
		if t == r {
			return true
		}
	}
	return false
}

// SortResources orders resources by order_index ascending with absent indexes last,
// breaking ties by created_at descending.
func SortResources(resources []Resource) {
	sort.SliceStable(resources, func(i, j int) bool {
		a, b := resources[i], resources[j]
		switch {
		case a.OrderIndex != nil && b.OrderIndex != nil && *a.OrderIndex != *b.OrderIndex:
			return *a.OrderIndex < *b.OrderIndex
		case a.OrderIndex != nil && b.OrderIndex == nil:
			return true
		case a.OrderIndex == nil && b.OrderIndex != nil:
			return false
		}
		return a.CreatedAt.After(b.CreatedAt)
	})
}

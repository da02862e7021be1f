package models

import "time"

// StatisticsCounters are the ten denormalized per-subject counters
type StatisticsCounters struct {
	TotalLectures           int `json:"total_lectures" db:"total_lectures"`
	TotalAssignments        int `json:"total_assignments" db:"total_assignments"`
	TotalExams              int `json:"total_exams" db:"total_exams"`
	TotalSheets             int `json:"total_sheets" db:"total_sheets"`
	TotalReferences         int `json:"total_references" db:"total_references"`
	TotalImportantQuestions int `json:"total_important_questions" db:"total_important_questions"`
	TotalQuestions          int `json:"total_questions" db:"total_questions"`
	TotalLabs               int `json:"total_labs" db:"total_labs"`
	TotalPracticals         int `json:"total_practicals" db:"total_practicals"`
	TotalTutorials          int `json:"total_tutorials" db:"total_tutorials"`
}

// SubjectStatistics is the cached statistics row of one subject
type SubjectStatistics struct {
	SubjectID int64 `json:"subject_id" db:"subject_id"`
	StatisticsCounters
	UpdatedAt *time.Time `json:"updated_at,omitempty" db:"updated_at"`
}

// SubjectStatisticsView joins a statistics row with its subject's identity
type SubjectStatisticsView struct {
	SubjectID int64  `json:"subject_id"`
	Code      string `json:"code"`
	NameAr    string `json:"name_ar"`
	NameEn    string `json:"name_en"`
	Semester  int    `json:"semester"`
	StatisticsCounters
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// TypeCounts tallies resources per type
type TypeCounts map[ResourceType]int

// ApplyTo writes the six resource buckets onto counters
func (tc TypeCounts) ApplyTo(c *StatisticsCounters) {
	c.TotalLectures = tc[ResourceTypeLecture]
	c.TotalSheets = tc[ResourceTypeSheet]
	c.TotalAssignments = tc[ResourceTypeAssignment]
	c.TotalExams = tc[ResourceTypeExam]
	c.TotalReferences = tc[ResourceTypeReference]
	c.TotalImportantQuestions = tc[ResourceTypeImportantQuestion]
}

// CountResourceTypes classifies raw type values; unknown values are dropped.
func CountResourceTypes(types []string) TypeCounts {
	counts := make(TypeCounts, len(ResourceTypes))
	for _, raw := range types {
		if t, ok := ParseResourceType(raw); ok {
			counts[t]++
		}
	}
	return counts
}

package dto

import (
	"time"

	"github.com/eee-uofk/coursehub/internal/app/models"
)

// UpdateSubjectStatisticsRequest overrides a subject's counters; omitted fields become 0
type UpdateSubjectStatisticsRequest struct {
	TotalLectures           *int `json:"total_lectures" binding:"omitempty,min=0,max=100000"`
	TotalAssignments        *int `json:"total_assignments" binding:"omitempty,min=0,max=100000"`
	TotalExams              *int `json:"total_exams" binding:"omitempty,min=0,max=100000"`
	TotalSheets             *int `json:"total_sheets" binding:"omitempty,min=0,max=100000"`
	TotalReferences         *int `json:"total_references" binding:"omitempty,min=0,max=100000"`
	TotalImportantQuestions *int `json:"total_important_questions" binding:"omitempty,min=0,max=100000"`
	TotalQuestions          *int `json:"total_questions" binding:"omitempty,min=0,max=100000"`
	TotalLabs               *int `json:"total_labs" binding:"omitempty,min=0,max=100000"`
	TotalPracticals         *int `json:"total_practicals" binding:"omitempty,min=0,max=100000"`
	TotalTutorials          *int `json:"total_tutorials" binding:"omitempty,min=0,max=100000"`
}

// Counters builds a full counter set with omitted fields defaulted to zero
func (r *UpdateSubjectStatisticsRequest) Counters() models.StatisticsCounters {
	or0 := func(v *int) int {
		if v == nil {
			return 0
		}
		return *v
	}
	return models.StatisticsCounters{
		TotalLectures:           or0(r.TotalLectures),
		TotalAssignments:        or0(r.TotalAssignments),
		TotalExams:              or0(r.TotalExams),
		TotalSheets:             or0(r.TotalSheets),
		TotalReferences:         or0(r.TotalReferences),
		TotalImportantQuestions: or0(r.TotalImportantQuestions),
		TotalQuestions:          or0(r.TotalQuestions),
		TotalLabs:               or0(r.TotalLabs),
		TotalPracticals:         or0(r.TotalPracticals),
		TotalTutorials:          or0(r.TotalTutorials),
	}
}

// OverallStatistics sums every subject's counters; TotalSubjects is a live count
type OverallStatistics struct {
	TotalSubjects           int64 `json:"totalSubjects" example:"7"`
	TotalLectures           int64 `json:"totalLectures" example:"42"`
	TotalAssignments        int64 `json:"totalAssignments"`
	TotalExams              int64 `json:"totalExams"`
	TotalSheets             int64 `json:"totalSheets"`
	TotalReferences         int64 `json:"totalReferences"`
	TotalImportantQuestions int64 `json:"totalImportantQuestions"`
	TotalQuestions          int64 `json:"totalQuestions"`
	TotalLabs               int64 `json:"totalLabs"`
	TotalPracticals         int64 `json:"totalPracticals"`
	TotalTutorials          int64 `json:"totalTutorials"`
}

// SyncFailure names a subject whose statistics could not be recomputed
type SyncFailure struct {
	SubjectID int64  `json:"subject_id" example:"3"`
	Error     string `json:"error"`
}

// SyncReport summarises one aggregator run
type SyncReport struct {
	// Count is the number of subjects whose row was written
	Count     int           `json:"count" example:"7"`
	Processed int           `json:"processed" example:"7"`
	Failed    []SyncFailure `json:"failed,omitempty"`
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"-"`
}

// SyncStatisticsResponse is the body of POST /statistics/sync
type SyncStatisticsResponse struct {
	Success    bool          `json:"success" example:"true"`
	Count      int           `json:"count" example:"7"`
	Processed  int           `json:"processed" example:"7"`
	Failed     []SyncFailure `json:"failed,omitempty"`
	DurationMs int64         `json:"duration_ms" example:"120"`
	Timestamp  time.Time     `json:"timestamp"`
}

package dto

// QuestionRequest is the multipart form for creating or replacing a question.
// Optional file parts are named "image" and "answer_image".
type QuestionRequest struct {
	SubjectID      *int64  `form:"subject_id" binding:"omitempty,min=1"`
	TopicAr        *string `form:"topic_ar" binding:"omitempty,max=255"`
	TopicEn        *string `form:"topic_en" binding:"omitempty,max=255"`
	QuestionTextAr string  `form:"question_text_ar" binding:"required,max=20000"`
	QuestionTextEn string  `form:"question_text_en" binding:"required,max=20000"`
	AnswerTextAr   *string `form:"answer_text_ar" binding:"omitempty,max=20000"`
	AnswerTextEn   *string `form:"answer_text_en" binding:"omitempty,max=20000"`
	Difficulty     string  `form:"difficulty" binding:"omitempty,oneof=easy medium hard" example:"medium"`
	// Update only: drop the stored images without uploading replacements
	RemoveImage       bool `form:"remove_image"`
	RemoveAnswerImage bool `form:"remove_answer_image"`
}

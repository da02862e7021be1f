package dto

// ResourceRequest is the multipart form for creating or replacing a resource.
// The optional file part is named "file".
type ResourceRequest struct {
	SubjectID     int64   `form:"subject_id" binding:"required,min=1" example:"1"`
	Type          string  `form:"type" binding:"required,oneof=lecture sheet assignment exam reference important_question" example:"lecture"`
	TitleAr       string  `form:"title_ar" binding:"required,max=255"`
	TitleEn       string  `form:"title_en" binding:"required,max=255"`
	DescriptionAr *string `form:"description_ar" binding:"omitempty,max=5000"`
	DescriptionEn *string `form:"description_en" binding:"omitempty,max=5000"`
	Source        *string `form:"source" binding:"omitempty,url,max=1000"`
	FileURL       *string `form:"file_url" binding:"omitempty,url,max=1000"`
	OrderIndex    *int    `form:"order_index" binding:"omitempty,min=0,max=100000"`
}

// ResourceOrderItem assigns a new order_index to one resource
type ResourceOrderItem struct {
	ID         int64 `json:"id" binding:"required,min=1" example:"10"`
	OrderIndex *int  `json:"order_index" binding:"required,min=0,max=100000" example:"2"`
}

// UpdateResourceOrderRequest is the body of PUT /resources/order
type UpdateResourceOrderRequest struct {
	Orders []ResourceOrderItem `json:"orders" binding:"required,min=1,max=500,dive"`
}

// MoveResourceRequest moves a resource one step within its subject
type MoveResourceRequest struct {
	Direction string `json:"direction" binding:"required,oneof=up down" example:"up"`
}

// OrderFailure reports a pair that could not be applied
type OrderFailure struct {
	ID    int64  `json:"id" example:"10"`
	Error string `json:"error" example:"resource not found"`
}

// OrderUpdateResult summarises a batch of order_index updates
type OrderUpdateResult struct {
	Updated []ResourceOrderItem `json:"updated"`
	Failed  []OrderFailure      `json:"failed,omitempty"`
}

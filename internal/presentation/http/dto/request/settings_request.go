package request

// UpdateReceiptSettingsRequest represents a numbering settings update.
// Omitted fields are left unchanged.
type UpdateReceiptSettingsRequest struct {
	Mode       *string `json:"mode"`
	Prefix     *string `json:"prefix" binding:"omitempty,max=40"`
	Seq        *int64  `json:"seq"`
	SchoolName *string `json:"school_name" binding:"omitempty,max=120"`
}

// ActivateYearRequest represents an academic year activation
type ActivateYearRequest struct {
	Name      string `json:"name" binding:"required,max=20"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// CreateFeeTypeRequest represents a fee type creation request
type CreateFeeTypeRequest struct {
	Name string `json:"name" binding:"required,max=120"`
}

// SetFeeTypeActiveRequest toggles a fee type
type SetFeeTypeActiveRequest struct {
	Active bool `json:"active"`
}

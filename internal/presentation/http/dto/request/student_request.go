package request

// CreateStudentRequest represents a student admission request
type CreateStudentRequest struct {
	AdmissionNo   string `json:"admission_no" binding:"required,max=40"`
	Name          string `json:"name" binding:"required,max=120"`
	ClassName     string `json:"class_name" binding:"max=50"`
	Section       string `json:"section" binding:"max=20"`
	ParentName    string `json:"parent_name" binding:"max=120"`
	Phone         string `json:"phone" binding:"max=40"`
	Email         string `json:"email" binding:"omitempty,email"`
	BalanceAmount string `json:"balance_amount"`
}

// UpdateStudentRequest represents a student edit request. Omitted fields are
// left unchanged.
type UpdateStudentRequest struct {
	Name       *string `json:"name" binding:"omitempty,max=120"`
	ClassName  *string `json:"class_name" binding:"omitempty,max=50"`
	Section    *string `json:"section" binding:"omitempty,max=20"`
	ParentName *string `json:"parent_name" binding:"omitempty,max=120"`
	Phone      *string `json:"phone" binding:"omitempty,max=40"`
	Email      *string `json:"email" binding:"omitempty,email"`
}

// DiscontinueStudentRequest represents a discontinuation request
type DiscontinueStudentRequest struct {
	AsOf        string `json:"as_of"`
	Collectible bool   `json:"collectible"`
}

// SetCreditRequest represents a credit balance correction
type SetCreditRequest struct {
	Amount string `json:"amount" binding:"required"`
	Reason string `json:"reason" binding:"max=255"`
}

// AssignFeeRequest represents a fee assignment for a student
type AssignFeeRequest struct {
	FeeTypeID string `json:"fee_type_id" binding:"required,uuid"`
	Amount    string `json:"amount" binding:"required"`
}

// BulkAssignFeeRequest assigns one fee amount to a set of students
type BulkAssignFeeRequest struct {
	FeeTypeID  string   `json:"fee_type_id" binding:"required,uuid"`
	Amount     string   `json:"amount" binding:"required"`
	StudentIDs []string `json:"student_ids" binding:"required,min=1"`
}

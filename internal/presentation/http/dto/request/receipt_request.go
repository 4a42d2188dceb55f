package request

// ReceiptLineRequest is one fee-type amount on the receipt form. Amounts are
// strings so blank form fields arrive as empty rather than zero-valued.
type ReceiptLineRequest struct {
	FeeTypeID string `json:"fee_type_id" binding:"required,uuid"`
	Amount    string `json:"amount"`
}

// CreateReceiptRequest represents a receipt creation request
type CreateReceiptRequest struct {
	StudentID string               `json:"student_id" binding:"required,uuid"`
	Lines     []ReceiptLineRequest `json:"lines" binding:"required"`
	Mode      string               `json:"mode" binding:"required"`
	Notes     string               `json:"notes" binding:"max=255"`
	// ReceiptNo is required only in manual numbering mode.
	ReceiptNo string `json:"receipt_no" binding:"max=40"`
}

// CreateWaiverRequest represents a waiver proposal
type CreateWaiverRequest struct {
	StudentID string `json:"student_id" binding:"required,uuid"`
	FeeTypeID string `json:"fee_type_id" binding:"required,uuid"`
	Amount    string `json:"amount"`
	Percent   string `json:"percent"`
	Reason    string `json:"reason" binding:"max=255"`
}

// CreateRefundRequest represents a refund request
type CreateRefundRequest struct {
	StudentID string `json:"student_id" binding:"required,uuid"`
	FeeTypeID string `json:"fee_type_id" binding:"omitempty,uuid"`
	Amount    string `json:"amount" binding:"required"`
	Mode      string `json:"mode" binding:"required"`
	Reason    string `json:"reason" binding:"max=255"`
}

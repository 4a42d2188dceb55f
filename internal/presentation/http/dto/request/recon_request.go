package request

// SubmitCashCountRequest represents a cash count submission
type SubmitCashCountRequest struct {
	Date          string `json:"date" binding:"required"`
	AmountCounted string `json:"amount_counted" binding:"required"`
	Notes         string `json:"notes" binding:"max=255"`
}

// SubmitSettlementRequest represents a settlement batch submission. The
// window runs from start_date for days_grouping days (default 2). An
// override percent/flat replaces the rule when either is given.
type SubmitSettlementRequest struct {
	Provider        string `json:"provider" binding:"max=40"`
	StartDate       string `json:"start_date" binding:"required"`
	DaysGrouping    int    `json:"days_grouping"`
	RuleID          string `json:"rule_id" binding:"omitempty,uuid"`
	OverridePercent string `json:"override_percent"`
	OverrideFlat    string `json:"override_flat"`
	BankNet         string `json:"bank_net" binding:"required"`
}

// CreateFeeRuleRequest represents a provider fee rule
type CreateFeeRuleRequest struct {
	Name    string `json:"name" binding:"required,max=120"`
	Percent string `json:"percent"`
	Flat    string `json:"flat"`
}

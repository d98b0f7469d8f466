package connections

type CreateConnectionPayload struct {
	SourceQuoteID string  `json:"source_quote_id" validate:"required"`
	TargetQuoteID string  `json:"target_quote_id" validate:"required,nefield=SourceQuoteID"`
	Description   *string `json:"description" validate:"omitempty,max=1000"`
}

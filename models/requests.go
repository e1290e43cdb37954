package models

// CreateRecordRequest is the body of POST /records.
type CreateRecordRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

// UpdateRecordRequest is the body of PUT /records/{id}. Only non-nil fields
// are applied.
type UpdateRecordRequest struct {
	ID          string  `json:"-"`
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Completed   *bool   `json:"completed,omitempty"`
}

// IsEmpty reports whether the request carries no field to change.
func (r UpdateRecordRequest) IsEmpty() bool {
	return r.Title == nil && r.Description == nil && r.Completed == nil
}

package dto

// OverheadTypeResponse reports the configured overhead application method.
type OverheadTypeResponse struct {
	OverheadType string `json:"overheadType"`
}

// SetOverheadTypeRequest updates the overhead application method.
// Allowed values: "", "fixed", "percentage".
type SetOverheadTypeRequest struct {
	OverheadType string `json:"overheadType"`
}

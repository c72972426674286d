package models

// CreateVisitRequest is the body of a new visit note.
type CreateVisitRequest struct {
	Note string `json:"note"`
}

// SetQuantityRequest carries a raw quantity as typed by the user. Numbers
// and strings are both accepted and normalized server side.
type SetQuantityRequest struct {
	Quantity any `json:"quantity"`
}

// TallyLine is one row of the per-visit product picker.
type TallyLine struct {
	Product Product `json:"product"`
	Count   int     `json:"count"`
}

// Reconciliation describes the outcome of a total price computation.
type Reconciliation struct {
	Visit     Visit    `json:"visit"`
	Unmatched []string `json:"unmatched,omitempty"`
}

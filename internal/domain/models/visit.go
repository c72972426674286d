package models

import "time"

const (
	// VisitDateLayout is the stored format of Visit.Date.
	VisitDateLayout = "2006-01-02"
	// VisitTimeLayout is the stored format of Visit.Time.
	VisitTimeLayout = "15:04"

	// ZeroTotal is the total_price written for a visit with an empty tally.
	ZeroTotal = "0"
)

// TallyEntry is one requested product line of a visit.
type TallyEntry struct {
	ProductCode string `bson:"product_code" json:"product_code"`
	Count       int    `bson:"count" json:"count"`
}

// Visit is a recorded customer interaction stored in the visitings collection.
type Visit struct {
	ID           string       `bson:"_id,omitempty" json:"id"`
	CustomerCode string       `bson:"customer_code" json:"customer_code"`
	Date         string       `bson:"date" json:"date"`
	Time         string       `bson:"time" json:"time"`
	Note         string       `bson:"note" json:"note"`
	Completed    bool         `bson:"completed" json:"completed"`
	TotalPrice   string       `bson:"total_price" json:"total_price"`
	Products     []TallyEntry `bson:"products" json:"products"`
}

// RecordedAt combines Date and Time. A missing time counts as midnight.
// ok is false when the date cannot be parsed.
func (v Visit) RecordedAt() (t time.Time, ok bool) {
	clock := v.Time
	if clock == "" {
		clock = "00:00"
	}
	t, err := time.Parse(VisitDateLayout+"T"+VisitTimeLayout, v.Date+"T"+clock)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// CountFor returns the tallied count for a product code, zero when absent.
func (v Visit) CountFor(productCode string) int {
	for _, entry := range v.Products {
		if entry.ProductCode == productCode {
			return entry.Count
		}
	}
	return 0
}

// VisitPatch is a partial update of a visit. Nil fields are left untouched.
type VisitPatch struct {
	Completed  *bool
	Products   *[]TallyEntry
	TotalPrice *string

	// IfProducts, when set, makes the update conditional on the stored
	// tally still equal to it. A mismatch fails with ErrConflict.
	IfProducts *[]TallyEntry
}

// ExpectedProducts returns the guard tally and whether one is set.
func (p VisitPatch) ExpectedProducts() ([]TallyEntry, bool) {
	if p.IfProducts == nil {
		return nil, false
	}
	return *p.IfProducts, true
}

// Fields renders the patch as a store field map.
func (p VisitPatch) Fields() map[string]any {
	fields := make(map[string]any, 3)
	if p.Completed != nil {
		fields["completed"] = *p.Completed
	}
	if p.Products != nil {
		products := *p.Products
		if products == nil {
			products = []TallyEntry{}
		}
		fields["products"] = products
	}
	if p.TotalPrice != nil {
		fields["total_price"] = *p.TotalPrice
	}
	return fields
}

// IsEmpty reports whether the patch would change nothing.
func (p VisitPatch) IsEmpty() bool {
	return p.Completed == nil && p.Products == nil && p.TotalPrice == nil
}

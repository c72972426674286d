package models

// Product is a catalogue entry. UnitPrice keeps the stored string form
// ("Price [C]") and is only parsed when totals are computed.
type Product struct {
	ID          string `bson:"_id,omitempty" json:"id,omitempty"`
	Code        string `bson:"Code" json:"code"`
	Description string `bson:"Description" json:"description"`
	Size        string `bson:"Size" json:"size"`
	PackQty     string `bson:"Qty" json:"qty"`
	UnitPrice   string `bson:"Price [C]" json:"price"`
}

package models

// Customer is a read-only reference record from the customers collection.
// Field keys match the spreadsheet headers the collection was seeded from.
type Customer struct {
	ID       string `bson:"_id,omitempty" json:"id,omitempty" csv:"-"`
	Code     string `bson:"CODE" json:"code" csv:"CODE"`
	Name     string `bson:"NAME" json:"name" csv:"NAME"`
	Tel      string `bson:"TEL" json:"tel" csv:"TEL"`
	Mobile   string `bson:"MOBILE" json:"mobile" csv:"MOBILE"`
	Address1 string `bson:"ADDRESS1" json:"address1" csv:"ADDRESS1"`
	Address2 string `bson:"ADDRESS2,omitempty" json:"address2,omitempty" csv:"ADDRESS2"`
	City     string `bson:"CITY" json:"city" csv:"CITY"`
	PostCode string `bson:"POST CODE" json:"post_code" csv:"POST CODE"`
}

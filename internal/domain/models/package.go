package models

// Package holds packaging details shown as-is to the user.
type Package struct {
	ID             string `bson:"_id,omitempty" json:"id,omitempty" csv:"-"`
	Code           string `bson:"Code" json:"code" csv:"Code"`
	Name           string `bson:"Name" json:"name" csv:"Name"`
	Category       string `bson:"Category" json:"category" csv:"Category"`
	PalletPrice    string `bson:"Pallet Price" json:"pallet_price" csv:"Pallet Price"`
	CNTPrice       string `bson:"CNT Price" json:"cnt_price" csv:"CNT Price"`
	CaseSize       string `bson:"Case Size" json:"case_size" csv:"Case Size"`
	Ply            string `bson:"PLY" json:"ply" csv:"PLY"`
	PerfLengthMM   string `bson:"Perf Length (mm)" json:"perf_length_mm" csv:"Perf Length (mm)"`
	RollWidthMM    string `bson:"Roll Width (mm)" json:"roll_width_mm" csv:"Roll Width (mm)"`
	NumberOfSheets string `bson:"Number of Sheets" json:"number_of_sheets" csv:"Number of Sheets"`
	RollDiameterMM string `bson:"Roll Diameter (mm)" json:"roll_diameter_mm" csv:"Roll Diameter (mm)"`
	GSM            string `bson:"GSM" json:"gsm" csv:"GSM"`
	RollWeightG    string `bson:"Roll Weight (g)" json:"roll_weight_g" csv:"Roll Weight (g)"`
	CoreWeightG    string `bson:"Core Weight (g)" json:"core_weight_g" csv:"Core Weight (g)"`
	Color          string `bson:"Color" json:"color" csv:"Color"`
	Fragrance      string `bson:"Fragrance" json:"fragrance" csv:"Fragrance"`
	PalletCount    string `bson:"Pallet Count" json:"pallet_count" csv:"Pallet Count"`
}

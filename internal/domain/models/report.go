package models

// DailyVisitReport aggregates the visits recorded on one day.
type DailyVisitReport struct {
	Date       string  `json:"date"`
	Visits     int     `json:"visits"`
	Completed  int     `json:"completed"`
	Customers  int     `json:"customers"`
	TotalValue string  `json:"total_value"`
	Rows       []Visit `json:"-"`
}

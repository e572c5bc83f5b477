package models

// DailyStat is one day of aggregated transaction activity. Day is a UTC
// calendar date formatted as 2006-01-02.
type DailyStat struct {
	Day    string  `json:"day"`
	Count  int64   `json:"count"`
	Amount float64 `json:"amount"`
}

// internal/services/demand_service.go
package services

import "time"

type DemandLevel string

const (
	DemandLow    DemandLevel = "low"
	DemandMedium DemandLevel = "medium"
	DemandHigh   DemandLevel = "high"
)

type DemandForecast struct {
	Day           string      `json:"day"`
	DemandLevel   DemandLevel `json:"demand_level"`
	PeakHours     []string    `json:"peak_hours"`
	Reason        string      `json:"reason"`
	SuggestedPrep string      `json:"suggested_prep"`
}

// PredictDemand looks up the fixed weekday profile.
func PredictDemand(day time.Weekday) DemandForecast {
	f := DemandForecast{Day: day.String()}
	switch day {
	case time.Friday, time.Saturday, time.Sunday:
		f.DemandLevel = DemandHigh
		f.PeakHours = []string{"12:30-14:30", "19:00-22:30"}
		f.Reason = "Weekend dining and family outings push both meal peaks up"
		f.SuggestedPrep = "Prepare about 40% above the weekday baseline and add kitchen staff for dinner"
	case time.Tuesday:
		f.DemandLevel = DemandLow
		f.PeakHours = []string{"13:00-14:00", "20:00-21:00"}
		f.Reason = "Tuesday is historically the quietest day of the week"
		f.SuggestedPrep = "Prepare about 20% below the weekday baseline and limit perishable stock"
	default:
		f.DemandLevel = DemandMedium
		f.PeakHours = []string{"12:30-14:00", "19:30-21:30"}
		f.Reason = "Regular weekday traffic driven by office lunches"
		f.SuggestedPrep = "Prepare the weekday baseline"
	}
	return f
}

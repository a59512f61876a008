package models

type BookingStatus string

const (
	BookingConfirmed BookingStatus = "confirmed"
	BookingPending   BookingStatus = "pending"
	BookingFailed    BookingStatus = "failed"
	BookingNone      BookingStatus = "none"
)

type Itinerary struct {
	Days               []Day    `json:"days"`
	TotalEstimatedCost *float64 `json:"totalEstimatedCost,omitempty"`
}

type Day struct {
	Date          string            `json:"date"`
	Activities    []PlannedActivity `json:"activities"`
	Accommodation *Business         `json:"accommodation,omitempty"`
	Notes         string            `json:"notes,omitempty"`
}

type PlannedActivity struct {
	Time            string        `json:"time"`     // "HH:MM", 24h
	Duration        int           `json:"duration"` // minutes
	Category        string        `json:"category"`
	Activity        Business      `json:"activity"`
	BookingRequired bool          `json:"bookingRequired"`
	BookingStatus   BookingStatus `json:"bookingStatus"`
	Cost            *float64      `json:"cost,omitempty"`
}

// ItineraryRequest is sent to the itinerary generation backend.
type ItineraryRequest struct {
	Destination string       `json:"destination"`
	StartDate   string       `json:"startDate"`
	EndDate     string       `json:"endDate"`
	GroupSize   int          `json:"groupSize"`
	Preferences *Preferences `json:"preferences,omitempty"`
}

// BalanceReport summarises how evenly an itinerary is spread.
type BalanceReport struct {
	CategoryBalance     float64  `json:"categoryBalance"`
	PacingBalance       float64  `json:"pacingBalance"`
	TimeBalance         float64  `json:"timeBalance"`
	OverallBalance      float64  `json:"overallBalance"`
	TotalActivities     int      `json:"totalActivities"`
	AvgActivitiesPerDay float64  `json:"avgActivitiesPerDay"`
	TotalEstimatedCost  float64  `json:"totalEstimatedCost"`
	ComputedCost        float64  `json:"computedCost"`
	AvgCostPerDay       float64  `json:"avgCostPerDay"`
	Preset              string   `json:"preset"`
	Recommendations     []string `json:"recommendations"`
}

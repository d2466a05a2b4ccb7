package model

// AvailabilityWindow is a single bookable window on the 24h clock.
// Start and End are zero-padded "HH:MM" strings with Start < End.
type AvailabilityWindow struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// AvailabilityRule is the recurring weekly template for one weekday.
// Weekday follows time.Weekday: 0 = Sunday, 6 = Saturday. A disabled rule
// contributes no availability regardless of its windows. Windows are not
// required to be sorted or disjoint.
type AvailabilityRule struct {
	Weekday int                  `json:"day_of_week"`
	Windows []AvailabilityWindow `json:"windows"`
	Enabled bool                 `json:"enabled"`
}

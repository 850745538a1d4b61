package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Calendar dates travel as YYYY-MM-DD in both directions. Each model below
// overrides only its date field and leaves the rest to the default encoding.

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

func parseJSONDate(field, s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if d, err := ParseDate(s); err == nil {
		return d, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s %q, expected YYYY-MM-DD", field, s)
	}
	return DateOnly(t), nil
}

func (f Flock) MarshalJSON() ([]byte, error) {
	type Alias Flock
	return json.Marshal(struct {
		Alias
		StartDate string `json:"start_date"`
	}{Alias(f), formatDate(f.StartDate)})
}

func (f *Flock) UnmarshalJSON(data []byte) error {
	type Alias Flock
	aux := struct {
		*Alias
		StartDate string `json:"start_date"`
	}{Alias: (*Alias)(f)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	d, err := parseJSONDate("start_date", aux.StartDate)
	f.StartDate = d
	return err
}

func (r FeedingRecord) MarshalJSON() ([]byte, error) {
	type Alias FeedingRecord
	return json.Marshal(struct {
		Alias
		FeedingDate string `json:"feeding_date"`
	}{Alias(r), formatDate(r.FeedingDate)})
}

func (r *FeedingRecord) UnmarshalJSON(data []byte) error {
	type Alias FeedingRecord
	aux := struct {
		*Alias
		FeedingDate string `json:"feeding_date"`
	}{Alias: (*Alias)(r)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	d, err := parseJSONDate("feeding_date", aux.FeedingDate)
	r.FeedingDate = d
	return err
}

func (r GrowthTrackingRecord) MarshalJSON() ([]byte, error) {
	type Alias GrowthTrackingRecord
	return json.Marshal(struct {
		Alias
		TrackingDate string `json:"tracking_date"`
	}{Alias(r), formatDate(r.TrackingDate)})
}

func (r *GrowthTrackingRecord) UnmarshalJSON(data []byte) error {
	type Alias GrowthTrackingRecord
	aux := struct {
		*Alias
		TrackingDate string `json:"tracking_date"`
	}{Alias: (*Alias)(r)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	d, err := parseJSONDate("tracking_date", aux.TrackingDate)
	r.TrackingDate = d
	return err
}

func (r InventoryConsumptionRecord) MarshalJSON() ([]byte, error) {
	type Alias InventoryConsumptionRecord
	return json.Marshal(struct {
		Alias
		ConsumptionDate string `json:"consumption_date"`
	}{Alias(r), formatDate(r.ConsumptionDate)})
}

func (r *InventoryConsumptionRecord) UnmarshalJSON(data []byte) error {
	type Alias InventoryConsumptionRecord
	aux := struct {
		*Alias
		ConsumptionDate string `json:"consumption_date"`
	}{Alias: (*Alias)(r)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	d, err := parseJSONDate("consumption_date", aux.ConsumptionDate)
	r.ConsumptionDate = d
	return err
}

func (m PerformanceMetrics) MarshalJSON() ([]byte, error) {
	type Alias PerformanceMetrics
	return json.Marshal(struct {
		Alias
		CalculationDate string `json:"calculation_date"`
	}{Alias(m), formatDate(m.CalculationDate)})
}

func (m *PerformanceMetrics) UnmarshalJSON(data []byte) error {
	type Alias PerformanceMetrics
	aux := struct {
		*Alias
		CalculationDate string `json:"calculation_date"`
	}{Alias: (*Alias)(m)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	d, err := parseJSONDate("calculation_date", aux.CalculationDate)
	m.CalculationDate = d
	return err
}

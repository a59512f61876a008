// Package itinerary scores generated multi-day itineraries and fetches them from the generation backend.
package itinerary

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"wanderly/models"

	"go.uber.org/zap"
)

// Preset selects how the three balances are combined into the overall score.
type Preset string

const (
	// EqualThirds averages category, pacing and time balance.
	EqualThirds Preset = "equal_thirds"
	// CategoryPacing weights category 0.4 and pacing 0.6, ignoring time of day.
	CategoryPacing Preset = "category_pacing"
)

// ParsePreset accepts a preset name; empty selects EqualThirds.
func ParsePreset(name string) (Preset, error) {
	switch Preset(strings.ToLower(strings.TrimSpace(name))) {
	case "", EqualThirds:
		return EqualThirds, nil
	case CategoryPacing:
		return CategoryPacing, nil
	default:
		return "", fmt.Errorf("unknown balance preset %q", name)
	}
}

const (
	idealActivitiesPerDay = 4.0
	saturatingCategories  = 4.0
	timeBuckets           = 3.0
	recommendThreshold    = 0.7
	weakBalance           = 0.6
)

const (
	recVariety      = "Consider adding more variety to your activities"
	recFewerPerDay  = "Consider reducing the number of activities per day for a more relaxed pace"
	recMorePerDay   = "Consider adding more activities to make the most of your trip"
	recSpreadByTime = "Try spreading activities throughout the day (morning, afternoon, evening)"
)

var priceTierCost = map[string]float64{
	"$":    25,
	"$$":   50,
	"$$$":  100,
	"$$$$": 150,
}

type bucket int

const (
	morning bucket = iota
	afternoon
	evening
)

// Scorer computes balance reports.
type Scorer struct {
	preset Preset
	logger *zap.Logger
}

func NewScorer(preset Preset, logger *zap.Logger) *Scorer {
	if preset == "" {
		preset = EqualThirds
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scorer{preset: preset, logger: logger}
}

// Evaluate scores it with the scorer's default preset.
func (s *Scorer) Evaluate(it models.Itinerary) models.BalanceReport {
	return s.EvaluateWith(it, s.preset)
}

func (s *Scorer) EvaluateWith(it models.Itinerary, preset Preset) models.BalanceReport {
	categories := make(map[string]int)
	buckets := make(map[bucket]struct{})
	total := 0
	computedCost := 0.0

	for di, day := range it.Days {
		for ai, act := range day.Activities {
			total++
			categories[act.Category]++
			buckets[s.bucketFor(act.Time, di, ai)] = struct{}{}
			computedCost += activityCost(act)
		}
	}

	report := models.BalanceReport{
		CategoryBalance: math.Min(1, float64(len(categories))/saturatingCategories),
		TimeBalance:     math.Min(1, float64(len(buckets))/timeBuckets),
		TotalActivities: total,
		ComputedCost:    computedCost,
		Preset:          string(preset),
		Recommendations: []string{},
	}

	if days := len(it.Days); days > 0 {
		report.AvgActivitiesPerDay = float64(total) / float64(days)
		report.PacingBalance = clamp01(1 - math.Abs(report.AvgActivitiesPerDay-idealActivitiesPerDay)/idealActivitiesPerDay)
		report.AvgCostPerDay = computedCost / float64(days)
	}

	report.TotalEstimatedCost = computedCost
	if it.TotalEstimatedCost != nil {
		report.TotalEstimatedCost = *it.TotalEstimatedCost
	}

	switch preset {
	case CategoryPacing:
		report.OverallBalance = 0.4*report.CategoryBalance + 0.6*report.PacingBalance
	default:
		report.OverallBalance = (report.CategoryBalance + report.PacingBalance + report.TimeBalance) / 3
	}

	if report.OverallBalance < recommendThreshold {
		report.Recommendations = recommendations(report)
	}
	return report
}

func recommendations(r models.BalanceReport) []string {
	recs := []string{}
	if r.CategoryBalance < weakBalance {
		recs = append(recs, recVariety)
	}
	if r.PacingBalance < weakBalance {
		if r.AvgActivitiesPerDay > idealActivitiesPerDay {
			recs = append(recs, recFewerPerDay)
		} else {
			recs = append(recs, recMorePerDay)
		}
	}
	if r.TimeBalance < weakBalance {
		recs = append(recs, recSpreadByTime)
	}
	return recs
}

// bucketFor places an activity in a time-of-day bucket. Bad times fall into the morning.
func (s *Scorer) bucketFor(raw string, day, idx int) bucket {
	hour, err := parseHour(raw)
	if err != nil {
		s.logger.Warn("Unparseable activity time, treating as morning",
			zap.String("time", raw), zap.Int("day", day), zap.Int("activity", idx), zap.Error(err))
		return morning
	}
	switch {
	case hour < 12:
		return morning
	case hour < 17:
		return afternoon
	default:
		return evening
	}
}

func parseHour(raw string) (int, error) {
	hh, _, _ := strings.Cut(strings.TrimSpace(raw), ":")
	hour, err := strconv.Atoi(hh)
	if err != nil {
		return 0, err
	}
	if hour < 0 || hour > 23 {
		return 0, fmt.Errorf("hour %d out of range", hour)
	}
	return hour, nil
}

func activityCost(act models.PlannedActivity) float64 {
	if act.Cost != nil {
		return *act.Cost
	}
	return priceTierCost[strings.TrimSpace(act.Activity.PriceLevel)]
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

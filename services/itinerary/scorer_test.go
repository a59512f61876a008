package itinerary

import (
	"testing"

	"wanderly/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func act(at, category, price string) models.PlannedActivity {
	return models.PlannedActivity{
		Time:          at,
		Duration:      90,
		Category:      category,
		Activity:      models.Business{Name: category + " " + at, PriceLevel: price},
		BookingStatus: models.BookingNone,
	}
}

func balancedItinerary() models.Itinerary {
	return models.Itinerary{Days: []models.Day{
		{Date: "2025-06-01", Activities: []models.PlannedActivity{
			act("09:00", "museum", "$"), act("12:30", "restaurant", "$$"),
			act("15:00", "park", ""), act("19:00", "nightlife", "$$$"),
		}},
		{Date: "2025-06-02", Activities: []models.PlannedActivity{
			act("08:00", "park", ""), act("13:00", "restaurant", "$$"),
			act("16:59", "museum", "$"), act("21:00", "restaurant", "$$$$"),
		}},
	}}
}

func TestEvaluate_PerfectBalance(t *testing.T) {
	report := NewScorer(EqualThirds, nil).Evaluate(balancedItinerary())

	assert.InDelta(t, 1.0, report.CategoryBalance, 1e-9)
	assert.InDelta(t, 1.0, report.PacingBalance, 1e-9)
	assert.InDelta(t, 1.0, report.TimeBalance, 1e-9)
	assert.InDelta(t, 1.0, report.OverallBalance, 1e-9)
	assert.Equal(t, 8, report.TotalActivities)
	assert.InDelta(t, 4.0, report.AvgActivitiesPerDay, 1e-9)
	assert.Empty(t, report.Recommendations)
	assert.Equal(t, string(EqualThirds), report.Preset)
}

func TestEvaluate_SingleSparseDay(t *testing.T) {
	it := models.Itinerary{Days: []models.Day{
		{Date: "2025-06-01", Activities: []models.PlannedActivity{act("09:00", "museum", "$")}},
	}}
	report := NewScorer(EqualThirds, nil).Evaluate(it)

	assert.InDelta(t, 0.25, report.CategoryBalance, 1e-9)
	assert.InDelta(t, 1.0/3.0, report.TimeBalance, 1e-9)
	assert.InDelta(t, 0.25, report.PacingBalance, 1e-9)
	assert.InDelta(t, (0.25+0.25+1.0/3.0)/3, report.OverallBalance, 1e-9)
	assert.Equal(t, []string{recVariety, recMorePerDay, recSpreadByTime}, report.Recommendations)
}

func TestEvaluate_OverpackedDaysSuggestFewer(t *testing.T) {
	var acts []models.PlannedActivity
	for _, h := range []string{"07:00", "08:00", "09:00", "10:00", "11:00", "12:00", "13:00", "14:00"} {
		acts = append(acts, act(h, "tour", ""))
	}
	report := NewScorer(EqualThirds, nil).Evaluate(models.Itinerary{Days: []models.Day{{Activities: acts}}})

	// mean 8 is distance 4 from ideal: pacing bottoms out at zero
	assert.InDelta(t, 0.0, report.PacingBalance, 1e-9)
	assert.Contains(t, report.Recommendations, recFewerPerDay)
	assert.NotContains(t, report.Recommendations, recMorePerDay)
}

func TestEvaluate_PacingClampedAtZero(t *testing.T) {
	var acts []models.PlannedActivity
	for i := 0; i < 12; i++ {
		acts = append(acts, act("10:00", "tour", ""))
	}
	report := NewScorer(EqualThirds, nil).Evaluate(models.Itinerary{Days: []models.Day{{Activities: acts}}})
	assert.Equal(t, 0.0, report.PacingBalance)
}

func TestEvaluate_ZeroDays(t *testing.T) {
	report := NewScorer(EqualThirds, nil).Evaluate(models.Itinerary{})

	assert.Equal(t, 0.0, report.PacingBalance)
	assert.Equal(t, 0.0, report.AvgActivitiesPerDay)
	assert.Equal(t, 0.0, report.AvgCostPerDay)
	assert.Equal(t, 0, report.TotalActivities)
	assert.Equal(t, 0.0, report.OverallBalance)
	assert.NotEmpty(t, report.Recommendations)
}

func TestEvaluate_UnparseableTimeIsMorningAndLogged(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	scorer := NewScorer(EqualThirds, zap.New(core))

	it := models.Itinerary{Days: []models.Day{{Activities: []models.PlannedActivity{
		act("soon", "museum", ""), act("25:00", "park", ""), act("08:15", "cafe", ""),
	}}}}
	report := scorer.Evaluate(it)

	assert.InDelta(t, 1.0/3.0, report.TimeBalance, 1e-9)
	assert.Equal(t, 2, logs.FilterMessage("Unparseable activity time, treating as morning").Len())
}

func TestEvaluate_CostEstimate(t *testing.T) {
	explicit := 10.0
	withCost := act("18:00", "show", "$$$$")
	withCost.Cost = &explicit

	it := models.Itinerary{Days: []models.Day{
		{Activities: []models.PlannedActivity{act("09:00", "cafe", "$$"), act("12:00", "lunch", "$$$$")}},
		{Activities: []models.PlannedActivity{withCost, act("10:00", "walk", "free")}},
	}}

	report := NewScorer(EqualThirds, nil).Evaluate(it)
	assert.InDelta(t, 210.0, report.ComputedCost, 1e-9)
	assert.InDelta(t, 210.0, report.TotalEstimatedCost, 1e-9)
	assert.InDelta(t, 105.0, report.AvgCostPerDay, 1e-9)

	authoritative := 500.0
	it.TotalEstimatedCost = &authoritative
	report = NewScorer(EqualThirds, nil).Evaluate(it)
	assert.InDelta(t, 500.0, report.TotalEstimatedCost, 1e-9)
	assert.InDelta(t, 210.0, report.ComputedCost, 1e-9)
	assert.InDelta(t, 105.0, report.AvgCostPerDay, 1e-9)
}

func TestEvaluate_CategoryPacingPreset(t *testing.T) {
	it := models.Itinerary{Days: []models.Day{
		{Activities: []models.PlannedActivity{act("09:00", "museum", "")}},
	}}
	scorer := NewScorer(EqualThirds, nil)

	report := scorer.EvaluateWith(it, CategoryPacing)
	assert.InDelta(t, 0.4*0.25+0.6*0.25, report.OverallBalance, 1e-9)
	assert.Equal(t, string(CategoryPacing), report.Preset)

	perfect := scorer.EvaluateWith(balancedItinerary(), CategoryPacing)
	assert.InDelta(t, 1.0, perfect.OverallBalance, 1e-9)
}

func TestNewScorer_DefaultPresetDrivesEvaluate(t *testing.T) {
	it := models.Itinerary{Days: []models.Day{
		{Activities: []models.PlannedActivity{act("09:00", "museum", "")}},
	}}

	assert.Equal(t, string(EqualThirds), NewScorer("", nil).Evaluate(it).Preset)

	report := NewScorer(CategoryPacing, nil).Evaluate(it)
	assert.Equal(t, string(CategoryPacing), report.Preset)
	assert.InDelta(t, 0.4*0.25+0.6*0.25, report.OverallBalance, 1e-9)
}

func TestEvaluate_RecommendationsOnlyBelowThreshold(t *testing.T) {
	// three categories, four per day, two buckets: overall (0.75+1+0.667)/3 ≈ 0.806
	it := models.Itinerary{Days: []models.Day{{Activities: []models.PlannedActivity{
		act("09:00", "a", ""), act("10:00", "b", ""), act("13:00", "c", ""), act("14:00", "a", ""),
	}}}}
	report := NewScorer(EqualThirds, nil).Evaluate(it)
	assert.Greater(t, report.OverallBalance, 0.7)
	assert.Empty(t, report.Recommendations)
}

func TestParsePreset(t *testing.T) {
	p, err := ParsePreset("")
	require.NoError(t, err)
	assert.Equal(t, EqualThirds, p)

	p, err = ParsePreset("Category_Pacing")
	require.NoError(t, err)
	assert.Equal(t, CategoryPacing, p)

	_, err = ParsePreset("golden_ratio")
	assert.Error(t, err)
}

package suggestion

import (
	"testing"

	"wanderly/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_Mapping(t *testing.T) {
	biz := &models.Business{ID: "b1", Name: "Trattoria Roma"}

	cases := []struct {
		name string
		in   models.Suggestion
		want NextAction
	}{
		{"query", models.Suggestion{Text: "Vegan options", Action: models.ActionQuery},
			NextAction{Kind: Dispatch, Utterance: "Vegan options"}},
		{"explore", models.Suggestion{Text: "Trattoria Roma", Action: models.ActionExplore},
			NextAction{Kind: Dispatch, Utterance: "Tell me more about Trattoria Roma"}},
		{"clarify", models.Suggestion{Text: "Dinner for two", Action: models.ActionClarify},
			NextAction{Kind: Dispatch, Utterance: "Dinner for two"}},
		{"book with business", models.Suggestion{Text: "Book it", Action: models.ActionBook, Data: &models.SuggestionData{Business: biz}},
			NextAction{Kind: CompositeDispatchAndSelect, Utterance: "Book Trattoria Roma", Business: biz}},
		{"book without data", models.Suggestion{Text: "Book it", Action: models.ActionBook},
			NextAction{Kind: Dispatch, Utterance: "Book this option"}},
		{"book with empty data", models.Suggestion{Text: "Book it", Action: models.ActionBook, Data: &models.SuggestionData{}},
			NextAction{Kind: Dispatch, Utterance: "Book this option"}},
		{"default", models.Suggestion{Text: "Surprise me", Action: models.ActionDefault},
			NextAction{Kind: Dispatch, Utterance: "Surprise me"}},
		{"unknown", models.Suggestion{Text: "Whatever", Action: "teleport"},
			NextAction{Kind: Dispatch, Utterance: "Whatever"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Resolve(tc.in))
		})
	}
}

func TestResolve_IsPure(t *testing.T) {
	s := models.Suggestion{ID: "s1", Text: "Book", Action: models.ActionBook,
		Data: &models.SuggestionData{Business: &models.Business{ID: "b1", Name: "Cafe"}}}

	first := Resolve(s)
	second := Resolve(s)
	assert.Equal(t, first, second)

	// the returned business is a copy; mutating it leaves the suggestion untouched
	first.Business.Name = "changed"
	assert.Equal(t, "Cafe", s.Data.Business.Name)
	assert.Equal(t, "Book Cafe", Resolve(s).Utterance)
}

func TestNextAction_Flags(t *testing.T) {
	assert.True(t, NextAction{Kind: Dispatch}.ShouldDispatch())
	assert.False(t, NextAction{Kind: Dispatch}.Selects())
	assert.True(t, NextAction{Kind: CompositeDispatchAndSelect}.ShouldDispatch())
	assert.True(t, NextAction{Kind: CompositeDispatchAndSelect}.Selects())
	assert.False(t, NextAction{Kind: SelectBusiness}.ShouldDispatch())
	assert.Equal(t, "dispatch_and_select", CompositeDispatchAndSelect.String())
}

func TestResolveLabel(t *testing.T) {
	biz := &models.Business{Name: "Trattoria Roma"}

	cases := []struct {
		label string
		biz   *models.Business
		kind  LabelKind
		want  string
	}{
		{"Make a reservation", biz, LabelMakeReservation, "Make a reservation at Trattoria Roma"},
		{"make a RESERVATION", biz, LabelMakeReservation, "Make a reservation at Trattoria Roma"},
		{"  Make a reservation ", nil, LabelMakeReservation, "Make a reservation"},
		{"Get directions", biz, LabelGetDirections, "Get directions to Trattoria Roma"},
		{"Show popular options", biz, LabelShowPopular, "Show me popular options"},
		{"Plan a trip", nil, LabelPlanTrip, "Help me plan a trip"},
		{"View menu", &models.Business{}, LabelViewMenu, "Show me the menu"},
		{"Make a reservation please", biz, LabelUnmatched, "Make a reservation please"},
		{"Reserve", biz, LabelUnmatched, "Reserve"},
	}
	for _, tc := range cases {
		got := ResolveLabel(tc.label, tc.biz)
		assert.Equal(t, tc.kind, got.Kind, tc.label)
		assert.Equal(t, tc.want, got.Utterance, tc.label)
		assert.Equal(t, tc.kind != LabelUnmatched, got.Matched())
	}
}

func TestLabelTable_IndexCoversEveryKind(t *testing.T) {
	require.Len(t, labelIndex, len(labelTable))
	for kind, tpl := range labelTable {
		assert.Equal(t, kind, LookupLabel(tpl.label))
		assert.NotEmpty(t, tpl.plain)
	}
}

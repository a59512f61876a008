package suggestion

import (
	"fmt"
	"strings"

	"wanderly/models"
)

// LabelKind enumerates the suggested-action labels the assistant understands.
type LabelKind int

const (
	LabelUnmatched LabelKind = iota
	LabelMakeReservation
	LabelGetDirections
	LabelShowPopular
	LabelSeeMore
	LabelCheckAvailability
	LabelViewMenu
	LabelReadReviews
	LabelPlanTrip
)

type labelTemplate struct {
	label        string
	withBusiness string // %s is the business name; empty means the plain form is used
	plain        string
}

// labelTable is keyed by kind so adding a label is a table edit checked at compile time.
var labelTable = map[LabelKind]labelTemplate{
	LabelMakeReservation:   {label: "Make a reservation", withBusiness: "Make a reservation at %s", plain: "Make a reservation"},
	LabelGetDirections:     {label: "Get directions", withBusiness: "Get directions to %s", plain: "Get directions"},
	LabelShowPopular:       {label: "Show popular options", plain: "Show me popular options"},
	LabelSeeMore:           {label: "See more options", withBusiness: "Show me more options like %s", plain: "Show me more options"},
	LabelCheckAvailability: {label: "Check availability", withBusiness: "Check availability at %s", plain: "Check availability"},
	LabelViewMenu:          {label: "View menu", withBusiness: "Show me the menu for %s", plain: "Show me the menu"},
	LabelReadReviews:       {label: "Read reviews", withBusiness: "Show me reviews for %s", plain: "Show me reviews"},
	LabelPlanTrip:          {label: "Plan a trip", withBusiness: "Plan a trip around %s", plain: "Help me plan a trip"},
}

// labelIndex maps the lower-cased label text back to its kind. Built once at startup.
var labelIndex = func() map[string]LabelKind {
	idx := make(map[string]LabelKind, len(labelTable))
	for kind, tpl := range labelTable {
		idx[strings.ToLower(tpl.label)] = kind
	}
	return idx
}()

// LabelResolution is the outcome of looking up a free-text label.
type LabelResolution struct {
	Kind      LabelKind
	Utterance string
}

func (r LabelResolution) Matched() bool {
	return r.Kind != LabelUnmatched
}

// LookupLabel returns the kind for an exact, case-insensitive label match.
func LookupLabel(label string) LabelKind {
	return labelIndex[strings.ToLower(strings.TrimSpace(label))]
}

// ResolveLabel turns a suggested-action label into an utterance. Unknown labels pass through verbatim.
func ResolveLabel(label string, business *models.Business) LabelResolution {
	kind := LookupLabel(label)
	if kind == LabelUnmatched {
		return LabelResolution{Kind: LabelUnmatched, Utterance: label}
	}

	tpl := labelTable[kind]
	if business != nil && business.Name != "" && tpl.withBusiness != "" {
		return LabelResolution{Kind: kind, Utterance: fmt.Sprintf(tpl.withBusiness, business.Name)}
	}
	return LabelResolution{Kind: kind, Utterance: tpl.plain}
}

// Package suggestion turns backend suggestions and suggested-action labels into the next step
// the assistant should take. Everything here is pure.
package suggestion

import (
	"wanderly/models"
)

type NextActionKind int

const (
	// Dispatch sends Utterance to the recommendation backend.
	Dispatch NextActionKind = iota
	// SelectBusiness highlights Business in the UI without dispatching.
	SelectBusiness
	// CompositeDispatchAndSelect selects Business and dispatches Utterance.
	CompositeDispatchAndSelect
)

func (k NextActionKind) String() string {
	switch k {
	case Dispatch:
		return "dispatch"
	case SelectBusiness:
		return "select_business"
	case CompositeDispatchAndSelect:
		return "dispatch_and_select"
	default:
		return "unknown"
	}
}

// NextAction is the tagged result of Resolve. Business is set only for the select kinds.
type NextAction struct {
	Kind      NextActionKind   `json:"-"`
	Utterance string           `json:"utterance,omitempty"`
	Business  *models.Business `json:"business,omitempty"`
}

// ShouldDispatch reports whether the action sends an utterance.
func (a NextAction) ShouldDispatch() bool {
	return a.Kind == Dispatch || a.Kind == CompositeDispatchAndSelect
}

// Selects reports whether the action selects a business.
func (a NextAction) Selects() bool {
	return a.Kind == SelectBusiness || a.Kind == CompositeDispatchAndSelect
}

const (
	explorePrefix   = "Tell me more about "
	bookPrefix      = "Book "
	bookWithoutData = "Book this option"
)

// Resolve maps a suggestion to its next action. The same suggestion always yields the same action.
func Resolve(s models.Suggestion) NextAction {
	switch s.Action {
	case models.ActionQuery, models.ActionClarify:
		return NextAction{Kind: Dispatch, Utterance: s.Text}
	case models.ActionExplore:
		return NextAction{Kind: Dispatch, Utterance: explorePrefix + s.Text}
	case models.ActionBook:
		if s.Data != nil && s.Data.Business != nil {
			biz := *s.Data.Business
			return NextAction{Kind: CompositeDispatchAndSelect, Business: &biz, Utterance: bookPrefix + biz.Name}
		}
		return NextAction{Kind: Dispatch, Utterance: bookWithoutData}
	default:
		return NextAction{Kind: Dispatch, Utterance: s.Text}
	}
}

// Package model holds the shared types of the risk assessment engine: the
// questionnaire answer variant, computed factor results, resolved actions,
// and the persisted assessment snapshot.
package model

import (
	"encoding/json"
	"strings"

	"github.com/rotisserie/eris"
)

// ClientCategory identifies the top-level questionnaire variant.
type ClientCategory string

const (
	CategoryIndividual ClientCategory = "individual"
	CategoryCorporate  ClientCategory = "corporate"
)

// AnswerValue is a tagged variant holding either a single answer string or a
// multi-select answer. The wire shape is `string | string[]`.
type AnswerValue struct {
	multi  bool
	single string
	values []string
}

// Answer wraps a single-valued answer.
func Answer(v string) AnswerValue {
	return AnswerValue{single: v}
}

// MultiAnswer wraps a multi-select answer. The slice is copied.
func MultiAnswer(vs ...string) AnswerValue {
	cp := make([]string, len(vs))
	copy(cp, vs)
	return AnswerValue{multi: true, values: cp}
}

// IsMulti reports whether the answer is multi-valued.
func (a AnswerValue) IsMulti() bool { return a.multi }

// Values returns the answer as a slice. Single answers yield one element;
// an empty single answer yields an empty slice.
func (a AnswerValue) Values() []string {
	if a.multi {
		return a.values
	}
	if a.single == "" {
		return nil
	}
	return []string{a.single}
}

// String renders the answer for display. Multi answers join with ", ".
func (a AnswerValue) String() string {
	if a.multi {
		return strings.Join(a.values, ", ")
	}
	return a.single
}

// MarshalJSON writes a string for single answers and an array for multi.
func (a AnswerValue) MarshalJSON() ([]byte, error) {
	if a.multi {
		return json.Marshal(a.values)
	}
	return json.Marshal(a.single)
}

// UnmarshalJSON accepts either a JSON string or an array of strings.
func (a *AnswerValue) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*a = Answer(s)
		return nil
	}
	var vs []string
	if err := json.Unmarshal(data, &vs); err == nil {
		*a = MultiAnswer(vs...)
		return nil
	}
	return eris.Errorf("model: answer must be string or string array, got %s", string(data))
}

// Answers maps questionnaire field ids to their values.
type Answers map[string]AnswerValue

// Get returns the answer for a field id and whether it was supplied.
func (as Answers) Get(fieldID string) (AnswerValue, bool) {
	v, ok := as[fieldID]
	return v, ok
}

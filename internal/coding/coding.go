// Package coding derives the binary responsibility indicators from the
// free-text answer of each trial.
package coding

import (
	"strings"
)

// Value is an optional 0/1 indicator.
type Value int8

const (
	Unset Value = iota - 1
	No
	Yes
)

// String renders the value as written to the CSV; Unset is an empty cell.
func (v Value) String() string {
	switch v {
	case No:
		return "0"
	case Yes:
		return "1"
	default:
		return ""
	}
}

func valueOf(b bool) Value {
	if b {
		return Yes
	}
	return No
}

// Indicators is the coded outcome for one answer.
type Indicators struct {
	Proximal Value
	Distal   Value
}

// Matched reports whether any rule fired.
func (in Indicators) Matched() bool {
	return in.Proximal != Unset || in.Distal != Unset
}

// nameRule sets distal when the answer mentions one of keywords: 1 when the
// trial's gender_order equals gender, 0 otherwise. With complement the rule
// also sets proximal to the opposite of distal.
type nameRule struct {
	keywords   []string
	gender     string
	complement bool
}

// Applied in order; a later match overwrites an earlier one. "girl and bobby"
// therefore ends with the girl rule's distal.
var nameRules = []nameRule{
	{keywords: []string{"sophia", "suzy"}, gender: "girl", complement: true},
	{keywords: []string{"bobby", "andy"}, gender: "boy", complement: true},
	{keywords: []string{"boy"}, gender: "boy"},
	{keywords: []string{"girl"}, gender: "girl"},
}

var noneKeywords = []string{"neither", "nobody", "no one"}

// Code classifies an answer. text is matched case-insensitively by
// substring; gender is compared exactly.
func Code(text, gender string) Indicators {
	s := strings.ToLower(text)

	if strings.Contains(s, "both") {
		return Indicators{Proximal: Yes, Distal: Yes}
	}
	if containsAny(s, noneKeywords) {
		return Indicators{Proximal: No, Distal: No}
	}

	out := Indicators{Proximal: Unset, Distal: Unset}
	for _, r := range nameRules {
		if !containsAny(s, r.keywords) {
			continue
		}
		out.Distal = valueOf(gender == r.gender)
		if r.complement {
			out.Proximal = valueOf(gender != r.gender)
		}
	}
	return out
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

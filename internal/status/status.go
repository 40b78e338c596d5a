// Package status classifies a row's composite score and breakdown into
// OK, REVISAR, or SUSPEITO according to a configurable policy.
package status

import (
	"fmt"

	"github.com/panbanda/combfino/internal/similarity"
)

// Status is a row's classification.
type Status string

const (
	OK       Status = "OK"
	Revisar  Status = "REVISAR"
	Suspeito Status = "SUSPEITO"
)

// Policy names a classification mode.
type Policy string

const (
	PolicyAny      Policy = "any"
	PolicyAll      Policy = "all"
	PolicyWeighted Policy = "weighted"
)

// ParsePolicy validates a policy string from configuration.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case PolicyAny, PolicyAll, PolicyWeighted:
		return Policy(s), nil
	default:
		return "", fmt.Errorf("unknown policy %q: must be one of any, all, weighted", s)
	}
}

// Classify applies policy to a composite score and its breakdown against
// threshold th.
//
//   - weighted: SUSPEITO if score >= th; REVISAR if score >= 0.85*th; else OK.
//   - any: SUSPEITO if any component >= th; else OK (no REVISAR band).
//   - all: SUSPEITO if every component >= th; else OK.
func Classify(score float64, b similarity.Breakdown, th float64, policy Policy) Status {
	switch policy {
	case PolicyAny:
		if b.Jaccard >= th || b.Control >= th || b.Idents >= th || b.Loops >= th || b.Calls >= th {
			return Suspeito
		}
		return OK
	case PolicyAll:
		if b.Jaccard >= th && b.Control >= th && b.Idents >= th && b.Loops >= th && b.Calls >= th {
			return Suspeito
		}
		return OK
	default: // weighted
		if score >= th {
			return Suspeito
		}
		if score >= 0.85*th {
			return Revisar
		}
		return OK
	}
}

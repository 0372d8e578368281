package registry

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"

	"forme.dev/groups/errs"
)

// Rule is an explicit, named consistency rule over a registry.
//
// ID must be stable across versions. Apply must be deterministic and side
// effect free; it may return a *multierror.Error carrying several violations.
type Rule struct {
	ID    string
	Apply func(*Registry) error
}

func (r Rule) apply(reg *Registry) error {
	if r.Apply == nil {
		return errs.New(errs.KindInternal, "GRP-INTERNAL-001", "nil rule Apply")
	}
	return r.Apply(reg)
}

// Rules returns the registry consistency rules in evaluation order.
func Rules() []Rule {
	return []Rule{
		{ID: "GRP-REG-001", Apply: checkComplete},
		{ID: "GRP-REG-002", Apply: checkAliases},
		{ID: "GRP-REG-003", Apply: checkRepresentations},
		{ID: "GRP-REG-004", Apply: checkReserved},
		{ID: "GRP-REG-005", Apply: checkBrackets},
		{ID: "GRP-REG-006", Apply: checkSubstrings},
	}
}

// Validate runs every rule and returns all violations together, or nil.
// Violations are *errs.Error values of KindCollision.
func (r *Registry) Validate() error {
	var result *multierror.Error
	for _, rule := range Rules() {
		if err := rule.apply(r); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}

func collision(ruleID, format string, args ...any) error {
	return errs.New(errs.KindCollision, ruleID, fmt.Sprintf(format, args...))
}

func checkComplete(r *Registry) error {
	var result *multierror.Error
	for _, k := range Kinds() {
		s, ok := r.specs[k]
		if !ok {
			result = multierror.Append(result, collision("GRP-REG-001", "kind %s is missing", k))
			continue
		}
		if s.Kind != k {
			result = multierror.Append(result, collision("GRP-REG-001", "spec for %s declares kind %s", k, s.Kind))
		}
		if len(s.Aliases) == 0 {
			result = multierror.Append(result, collision("GRP-REG-001", "kind %s has no aliases", k))
		}
	}
	return result.ErrorOrNil()
}

func checkAliases(r *Registry) error {
	var result *multierror.Error
	owner := map[string]Kind{}
	for _, k := range Kinds() {
		for _, a := range r.specs[k].Aliases {
			if a == "" || strings.TrimSpace(a) != a {
				result = multierror.Append(result, collision("GRP-REG-002", "kind %s has malformed alias %q", k, a))
				continue
			}
			for _, w := range ReservedWords {
				if a == w {
					result = multierror.Append(result, collision("GRP-REG-002", "alias %q of kind %s is a reserved word", a, k))
				}
			}
			prev, seen := owner[a]
			switch {
			case seen && prev != k:
				result = multierror.Append(result, collision("GRP-REG-002", "alias %q is already used by %s", a, prev))
			case seen:
				result = multierror.Append(result, collision("GRP-REG-002", "alias %q is repeated in %s", a, k))
			default:
				owner[a] = k
			}
		}
	}
	return result.ErrorOrNil()
}

func checkRepresentations(r *Registry) error {
	var result *multierror.Error
	owner := map[string]Kind{}
	for _, k := range Kinds() {
		rep := r.specs[k].Rep
		if rep == nil {
			result = multierror.Append(result, collision("GRP-REG-003", "kind %s has no representation type", k))
			continue
		}
		key := rep.String()
		if prev, ok := owner[key]; ok {
			result = multierror.Append(result, collision("GRP-REG-003", "type %s is already used by %s", key, prev))
			continue
		}
		owner[key] = k
	}
	return result.ErrorOrNil()
}

func checkReserved(r *Registry) error {
	var result *multierror.Error
	owner := map[string]Kind{}
	for _, k := range Kinds() {
		m := r.specs[k].Reserved
		if m == "" {
			result = multierror.Append(result, collision("GRP-REG-004", "kind %s has no reserved marker", k))
			continue
		}
		if prev, ok := owner[m]; ok {
			result = multierror.Append(result, collision("GRP-REG-004", "reserved marker %q is already used by %s", m, prev))
			continue
		}
		owner[m] = k
	}
	for _, k := range Kinds() {
		for _, a := range r.specs[k].Aliases {
			if mk, ok := owner[a]; ok {
				result = multierror.Append(result, collision("GRP-REG-004", "alias %q of %s is the reserved marker of %s", a, k, mk))
			}
		}
	}
	return result.ErrorOrNil()
}

func checkBrackets(r *Registry) error {
	var result *multierror.Error
	for _, k := range Kinds() {
		s := r.specs[k]
		if k.IsPrimitive() && (s.Open != "" || s.Close != "" || s.Separator != "") {
			result = multierror.Append(result, collision("GRP-REG-005", "primitive kind %s cannot declare bracket syntax", k))
			continue
		}
		if s.Open != "" && s.Open == s.Close {
			result = multierror.Append(result, collision("GRP-REG-005", "prefix and suffix of %s cannot be the same: %s", k, s.Open))
		}
		if s.Open == "" && s.Close != "" {
			result = multierror.Append(result, collision("GRP-REG-005", "kind %s declares a suffix without a prefix", k))
		}
		if s.Close == "" && s.Separator != "" {
			result = multierror.Append(result, collision("GRP-REG-005", "kind %s declares a separator without a suffix", k))
		}
		for _, b := range []string{s.Open, s.Close} {
			if len(b) > 1 {
				result = multierror.Append(result, collision("GRP-REG-005", "bracket %q of %s must be a single character", b, k))
			}
		}
	}
	// A character cannot open for one kind and close for another.
	opens := map[string]Kind{}
	for _, k := range Kinds() {
		if o := r.specs[k].Open; o != "" {
			opens[o] = k
		}
	}
	for _, k := range Kinds() {
		if c := r.specs[k].Close; c != "" {
			if ok, found := opens[c]; found {
				result = multierror.Append(result, collision("GRP-REG-005", "%q closes %s but opens %s", c, k, ok))
			}
		}
	}
	return result.ErrorOrNil()
}

// checkSubstrings rejects ambiguous spellings: an alias of one kind that is
// contained in an alias of a different kind, unless whitelisted.
func checkSubstrings(r *Registry) error {
	var result *multierror.Error
	for _, k := range Kinds() {
		for _, a := range r.specs[k].Aliases {
			if a == "" || r.overlaps[a] {
				continue
			}
			for _, other := range Kinds() {
				if other == k {
					continue
				}
				for _, b := range r.specs[other].Aliases {
					if a != b && strings.Contains(b, a) {
						result = multierror.Append(result, collision("GRP-REG-006", "alias %q of %s is a substring of %q of %s", a, k, b, other))
					}
				}
			}
		}
	}
	return result.ErrorOrNil()
}

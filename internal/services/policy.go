package services

import (
	"sort"

	"apparelstock/internal/domain"
	"apparelstock/internal/validate"
)

// TagPolicy is the allowed vocabulary for a tag-like field. An empty policy
// allows any value.
type TagPolicy struct {
	Allowed map[string]struct{}
}

func NewTagPolicy(values []string) TagPolicy {
	if len(values) == 0 {
		return TagPolicy{}
	}
	p := TagPolicy{Allowed: make(map[string]struct{}, len(values))}
	for _, v := range values {
		p.Allowed[v] = struct{}{}
	}
	return p
}

// Check reports every value outside the policy as a field error on field.
func (p TagPolicy) Check(field string, values []string) error {
	if len(p.Allowed) == 0 {
		return nil
	}
	var bad []string
	for _, v := range values {
		if _, ok := p.Allowed[v]; !ok {
			bad = append(bad, v)
		}
	}
	if len(bad) == 0 {
		return nil
	}
	return validate.Field(field, "contains values outside the allowed list: "+joinQuoted(bad))
}

// Choices returns the allowed values sorted, or nil for an open policy.
func (p TagPolicy) Choices() []string {
	if len(p.Allowed) == 0 {
		return nil
	}
	out := make([]string, 0, len(p.Allowed))
	for v := range p.Allowed {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func joinQuoted(vals []string) string {
	s := ""
	for i, v := range vals {
		if i > 0 {
			s += ", "
		}
		s += `"` + v + `"`
	}
	return s
}

// distinct unions the lists and sorts the result byte-wise, so capitals
// come before lowercase.
func distinct(lists []domain.StringList) []string {
	seen := map[string]struct{}{}
	for _, l := range lists {
		for _, v := range l {
			seen[v] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

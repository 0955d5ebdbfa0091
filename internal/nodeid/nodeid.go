package nodeid

import "strings"

// ExpandSeparator joins a sub-graph instance ID with the ID of a node cloned
// from the instance's internal graph.
const ExpandSeparator = "__"

// Sanitize maps an arbitrary node or pin identifier onto a string that is
// safe to embed in a generated identifier: alphanumerics and underscores are
// kept, everything else becomes an underscore. An identifier that would
// start with a digit gains a leading underscore.
func Sanitize(id string) string {
	var b strings.Builder
	b.Grow(len(id))
	for _, r := range id {
		if r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	s := b.String()
	if s == "" {
		return "_"
	}
	if s[0] >= '0' && s[0] <= '9' {
		return "_" + s
	}
	return s
}

// ResultVar names the generated variable holding a node's computed result.
func ResultVar(id string) string {
	return "node_" + Sanitize(id) + "_result"
}

// Expand composes the ID of a node cloned out of a sub-graph instance.
func Expand(instanceID, internalID string) string {
	return instanceID + ExpandSeparator + internalID
}

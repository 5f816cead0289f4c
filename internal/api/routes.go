// ABOUTME: Origin routing table mapping logical paths to backend base URLs
// ABOUTME: Cost analytics paths go to the analytics origin, everything else to primary

package api

import (
	"sort"
	"strings"
)

// DefaultAnalyticsPrefixes are the logical path prefixes served by the
// analytics origin when no override is configured.
var DefaultAnalyticsPrefixes = []string{"/cost", "/free-tier", "/api/cost"}

// Rule maps a logical path prefix to a backend origin.
type Rule struct {
	Prefix string
	Origin string
}

// RouteTable resolves logical paths to backend origins. Rules are checked
// most-specific-first so a generic prefix cannot swallow a longer one; the
// primary origin is the fallback, so every path resolves to exactly one origin.
type RouteTable struct {
	rules    []Rule
	fallback string
}

// NewRouteTable creates a routing table with the given primary (fallback)
// origin and a set of prefixes mapped to the analytics origin. An empty
// prefix list uses DefaultAnalyticsPrefixes.
func NewRouteTable(primary, analytics string, analyticsPrefixes []string) *RouteTable {
	if len(analyticsPrefixes) == 0 {
		analyticsPrefixes = DefaultAnalyticsPrefixes
	}

	t := &RouteTable{fallback: primary}
	for _, prefix := range analyticsPrefixes {
		t.Add(prefix, analytics)
	}
	return t
}

// Add registers a prefix rule, keeping rules ordered longest-prefix-first.
func (t *RouteTable) Add(prefix, origin string) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return
	}
	if !strings.HasPrefix(prefix, "/") {
		prefix = "/" + prefix
	}

	t.rules = append(t.rules, Rule{Prefix: prefix, Origin: origin})
	sort.SliceStable(t.rules, func(i, j int) bool {
		return len(t.rules[i].Prefix) > len(t.rules[j].Prefix)
	})
}

// Resolve returns the origin that serves the given logical path. The first
// matching rule wins; paths matching no rule go to the fallback origin.
func (t *RouteTable) Resolve(path string) string {
	for _, rule := range t.rules {
		if strings.HasPrefix(path, rule.Prefix) {
			return rule.Origin
		}
	}
	return t.fallback
}

// Rules returns a copy of the active prefix rules in evaluation order.
func (t *RouteTable) Rules() []Rule {
	out := make([]Rule, len(t.rules))
	copy(out, t.rules)
	return out
}

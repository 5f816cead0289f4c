// ABOUTME: Tests for the origin routing table
// ABOUTME: Verifies prefix matching, specificity ordering, and fallback

package api

import "testing"

func TestResolve_DefaultPrefixes(t *testing.T) {
	table := NewRouteTable("https://api.example.com", "https://analytics.example.com", nil)

	cases := []struct {
		path string
		want string
	}{
		{"/costs/summary", "https://analytics.example.com"},
		{"/costs/history", "https://analytics.example.com"},
		{"/cost-explorer", "https://analytics.example.com"},
		{"/free-tier/status", "https://analytics.example.com"},
		{"/api/costs/breakdown", "https://analytics.example.com"},
		{"/auth/login", "https://api.example.com"},
		{"/accounts", "https://api.example.com"},
		{"/alerts", "https://api.example.com"},
		{"/assistant/chat", "https://api.example.com"},
		{"/", "https://api.example.com"},
	}

	for _, tc := range cases {
		if got := table.Resolve(tc.path); got != tc.want {
			t.Errorf("Resolve(%q) = %q, want %q", tc.path, got, tc.want)
		}
	}
}

func TestResolve_MostSpecificPrefixWins(t *testing.T) {
	table := NewRouteTable("https://primary.example.com", "https://analytics.example.com", nil)
	table.Add("/api", "https://other.example.com")

	// "/api/cost" is longer than "/api" and must win for its paths
	if got := table.Resolve("/api/costs/summary"); got != "https://analytics.example.com" {
		t.Errorf("expected analytics origin for /api/costs/summary, got %q", got)
	}
	if got := table.Resolve("/api/health"); got != "https://other.example.com" {
		t.Errorf("expected other origin for /api/health, got %q", got)
	}
}

func TestResolve_CustomPrefixes(t *testing.T) {
	table := NewRouteTable("https://primary.example.com", "https://analytics.example.com",
		[]string{"/spend", "usage"})

	// Prefixes are normalized to have a leading slash
	if got := table.Resolve("/spend/daily"); got != "https://analytics.example.com" {
		t.Errorf("expected analytics origin for /spend/daily, got %q", got)
	}
	if got := table.Resolve("/usage"); got != "https://analytics.example.com" {
		t.Errorf("expected analytics origin for /usage, got %q", got)
	}
	// Default prefixes do not apply when overridden
	if got := table.Resolve("/costs/summary"); got != "https://primary.example.com" {
		t.Errorf("expected primary origin for /costs/summary, got %q", got)
	}
}

func TestAdd_IgnoresEmptyPrefix(t *testing.T) {
	table := NewRouteTable("https://primary.example.com", "https://analytics.example.com", nil)
	before := len(table.Rules())

	table.Add("", "https://other.example.com")
	table.Add("   ", "https://other.example.com")

	if got := len(table.Rules()); got != before {
		t.Errorf("expected %d rules, got %d", before, got)
	}
}

func TestRules_OrderedLongestFirst(t *testing.T) {
	table := NewRouteTable("https://primary.example.com", "https://analytics.example.com", nil)

	rules := table.Rules()
	for i := 1; i < len(rules); i++ {
		if len(rules[i-1].Prefix) < len(rules[i].Prefix) {
			t.Errorf("rules out of order: %q before %q", rules[i-1].Prefix, rules[i].Prefix)
		}
	}
}

func TestRules_ReturnsCopy(t *testing.T) {
	table := NewRouteTable("https://primary.example.com", "https://analytics.example.com", nil)

	rules := table.Rules()
	rules[0].Origin = "mutated"

	if table.Rules()[0].Origin == "mutated" {
		t.Error("Rules() must return a copy, not the internal slice")
	}
}

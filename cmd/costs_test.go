// ABOUTME: Tests for the costs command group
// ABOUTME: Verifies output formatting and exit codes against a mock backend

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/AnurajMane/web-cost/internal/api"
)

// testTokens is a no-op token source for cmd tests.
type testTokens struct{}

func (testTokens) Token() string { return "" }
func (testTokens) Clear() error  { return nil }

func newTestClient(serverURL string) *api.Client {
	return api.New(api.NewRouteTable(serverURL, serverURL, nil), testTokens{})
}

func TestRunCostsSummary_Human(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/costs/summary" {
			t.Errorf("expected path /costs/summary, got %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(api.CostSummary{
			TotalMTD:      1234.56,
			Forecasted:    2000.00,
			ChangePercent: -4.2,
		})
	}))
	defer server.Close()

	var buf bytes.Buffer
	jsonOutput = false
	exitCode := runCostsSummary(context.Background(), newTestClient(server.URL), &buf)

	if exitCode != 0 {
		t.Errorf("expected exit code 0, got %d", exitCode)
	}
	for _, want := range []string{"1234.56", "2000.00", "-4.2"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, buf.String())
		}
	}
}

func TestRunCostsSummary_JSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(api.CostSummary{TotalMTD: 100})
	}))
	defer server.Close()

	var buf bytes.Buffer
	jsonOutput = true
	defer func() { jsonOutput = false }()

	exitCode := runCostsSummary(context.Background(), newTestClient(server.URL), &buf)
	if exitCode != 0 {
		t.Errorf("expected exit code 0, got %d", exitCode)
	}

	var parsed map[string]any
	if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if parsed["total_mtd"] != 100.0 {
		t.Errorf("expected total_mtd 100 in JSON, got %v", parsed["total_mtd"])
	}
}

func TestRunCostsSummary_BackendError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"message": "backend down"})
	}))
	defer server.Close()

	var buf bytes.Buffer
	jsonOutput = false
	exitCode := runCostsSummary(context.Background(), newTestClient(server.URL), &buf)

	if exitCode != 1 {
		t.Errorf("expected exit code 1, got %d", exitCode)
	}
	if !strings.Contains(buf.String(), "backend down") {
		t.Errorf("expected backend message in output, got:\n%s", buf.String())
	}
}

func TestRunCostsHistory_PassesDaysFlag(t *testing.T) {
	var gotDays string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotDays = r.URL.Query().Get("days")
		json.NewEncoder(w).Encode([]api.CostPoint{{Date: "2026-08-01", Cost: 10}})
	}))
	defer server.Close()

	var buf bytes.Buffer
	jsonOutput = false
	historyDaysFlag = 14
	defer func() { historyDaysFlag = 30 }()

	exitCode := runCostsHistory(context.Background(), newTestClient(server.URL), &buf)
	if exitCode != 0 {
		t.Errorf("expected exit code 0, got %d", exitCode)
	}
	if gotDays != "14" {
		t.Errorf("expected days=14, got %q", gotDays)
	}
	if !strings.Contains(buf.String(), "2026-08-01") {
		t.Errorf("expected date in output, got:\n%s", buf.String())
	}
}

func TestRunFreeTier_StatusColumns(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]api.FreeTierUsage{
			{Service: "Lambda", UsageValue: 50, LimitValue: 100, Unit: "GB-s"},
			{Service: "S3", UsageValue: 96, LimitValue: 100, Unit: "GB"},
		})
	}))
	defer server.Close()

	var buf bytes.Buffer
	jsonOutput = false
	exitCode := runFreeTier(context.Background(), newTestClient(server.URL), &buf)

	if exitCode != 0 {
		t.Errorf("expected exit code 0, got %d", exitCode)
	}
	output := buf.String()
	if !strings.Contains(output, "Lambda") || !strings.Contains(output, "ok") {
		t.Errorf("expected Lambda with ok status, got:\n%s", output)
	}
	if !strings.Contains(output, "critical") {
		t.Errorf("expected critical status for 96%% usage, got:\n%s", output)
	}
}

package walkforward

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yourusername/walkforward/internal/backtest"
)

func reportResult(t *testing.T) *Result {
	t.Helper()
	windows := []WindowResult{
		fullWindow(0, testBundle(0.5, 0.4, 2.0), testBundle(0.4, 0.3, 1.0)),
		fullWindow(1, testBundle(0.5, 0.4, 2.0), testBundle(0.5, 0.2, 2.0)),
		failedWindow(2),
	}
	result, err := Aggregate(testConfig(), windows)
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}
	return result
}

func TestGenerateConsoleReport(t *testing.T) {
	report := GenerateConsoleReport(reportResult(t))

	if !strings.Contains(report, "2 scored, 1 failed") {
		t.Errorf("report should summarize window outcomes:\n%s", report)
	}
	for _, metric := range backtest.MetricKeys() {
		if !strings.Contains(report, metric) {
			t.Errorf("report missing section for %s", metric)
		}
	}
	if strings.Contains(report, "cancelled") {
		t.Error("complete run should not carry the partial notice")
	}
}

func TestGenerateConsoleReportPartial(t *testing.T) {
	result := reportResult(t)
	result.Partial = true
	report := GenerateConsoleReport(result)
	if !strings.Contains(report, "partial") {
		t.Errorf("partial run should be flagged in the report:\n%s", report)
	}
}

func TestExportToJSON(t *testing.T) {
	result := reportResult(t)
	path := filepath.Join(t.TempDir(), "nested", "result.json")

	if err := ExportToJSON(result, path); err != nil {
		t.Fatalf("ExportToJSON failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading exported file failed: %v", err)
	}

	var decoded Result
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("exported file is not valid JSON: %v", err)
	}
	if decoded.Summary.WindowCount != result.Summary.WindowCount {
		t.Errorf("exported window count %d != %d", decoded.Summary.WindowCount, result.Summary.WindowCount)
	}
}

func TestExportToJSONEmptyPath(t *testing.T) {
	if err := ExportToJSON(reportResult(t), ""); err == nil {
		t.Fatal("expected error for empty output path")
	}
}

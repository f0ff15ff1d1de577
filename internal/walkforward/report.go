package walkforward

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yourusername/walkforward/internal/backtest"
)

// GenerateConsoleReport formats a validation result for terminal output
func GenerateConsoleReport(result *Result) string {
	var builder strings.Builder
	builder.WriteString("Walk-Forward Validation Report\n")
	builder.WriteString("==============================\n")
	builder.WriteString(fmt.Sprintf("Run: %s\n", result.RunID))
	builder.WriteString(fmt.Sprintf("Windows: %d scored, %d failed\n", result.Summary.ScoredWindows, result.Summary.FailedWindows))
	if result.Partial {
		builder.WriteString("NOTE: run was cancelled, result is partial\n")
	}
	builder.WriteString(fmt.Sprintf("Degradation: %d/%d windows (%.1f%%) below %.2f on %s\n",
		result.Degradation.DegradedCount, result.Degradation.EvaluatedWindows,
		result.Degradation.Percentage*100, result.Degradation.Threshold, result.Degradation.PrimaryMetric))

	for _, metric := range backtest.MetricKeys() {
		builder.WriteString(fmt.Sprintf("\n%s\n", metric))
		if summary, ok := result.Summary.Metrics[metric]; ok && summary.Samples > 0 {
			builder.WriteString(fmt.Sprintf("  validate mean=%.4f median=%.4f min=%.4f max=%.4f\n",
				summary.Mean, summary.Median, summary.Min, summary.Max))
		}
		if ratio, ok := result.Summary.AverageRatio[metric]; ok {
			builder.WriteString(fmt.Sprintf("  avg ratio: %s\n", formatRatio(ratio)))
		}
		if stability, ok := result.Stability[metric]; ok {
			builder.WriteString(fmt.Sprintf("  stability CV: %s\n", formatStability(stability)))
		}
		if significance, ok := result.Significance[metric]; ok {
			builder.WriteString(fmt.Sprintf("  paired t-test: %s\n", formatSignificance(significance)))
		}
	}
	return builder.String()
}

func formatRatio(r Ratio) string {
	if !r.Valid {
		return "not computable"
	}
	return fmt.Sprintf("%.4f", r.Value)
}

func formatStability(s StabilityScore) string {
	if !s.Defined {
		return s.Reason
	}
	return fmt.Sprintf("%.4f (n=%d)", s.CV, s.Samples)
}

func formatSignificance(s SignificanceResult) string {
	if !s.Defined {
		return s.Reason
	}
	return fmt.Sprintf("p=%.4f t=%.4f (n=%d)", s.PValue, s.TStatistic, s.Samples)
}

// ExportToJSON writes the full result to an indented JSON file
func ExportToJSON(result *Result, outputPath string) error {
	if outputPath == "" {
		return fmt.Errorf("output path is required")
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	return os.WriteFile(outputPath, data, 0o644)
}

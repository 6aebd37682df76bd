package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// scenarioOp учитывает сценарий целиком.
const scenarioOp = "scenario"

// Latency хранит перцентили задержки в миллисекундах.
type Latency struct {
	Min float64 `json:"min"`
	Avg float64 `json:"avg"`
	P50 float64 `json:"p50"`
	P95 float64 `json:"p95"`
	P99 float64 `json:"p99"`
	Max float64 `json:"max"`
}

// OpReport содержит итоги одной gRPC-операции.
type OpReport struct {
	Calls     int64            `json:"calls"`
	Success   int64            `json:"success"`
	Failed    int64            `json:"failed"`
	ErrorRate float64          `json:"error_rate"`
	Codes     map[string]int64 `json:"codes"`
	LatencyMs Latency          `json:"latency_ms"`
}

// Report описывает итог прогона.
type Report struct {
	StartedAt         time.Time           `json:"started_at"`
	DurationSeconds   float64             `json:"duration_seconds"`
	TotalScenarios    int64               `json:"total_scenarios"`
	FailedScenarios   int64               `json:"failed_scenarios"`
	ErrorRate         float64             `json:"error_rate"`
	RPS               float64             `json:"rps"`
	ScenarioLatencyMs Latency             `json:"scenario_latency_ms"`
	Methods           map[string]OpReport `json:"methods"`
}

type sample struct {
	took time.Duration
	code codes.Code
}

// recorder собирает результаты вызовов из всех воркеров.
type recorder struct {
	mu      sync.Mutex
	samples map[string][]sample
}

func newRecorder() *recorder {
	return &recorder{samples: make(map[string][]sample)}
}

// observe учитывает вызов op, начатый в started и завершившийся с err.
func (r *recorder) observe(op string, started time.Time, err error) {
	s := sample{took: time.Since(started), code: status.Code(err)}

	r.mu.Lock()
	r.samples[op] = append(r.samples[op], s)
	r.mu.Unlock()
}

func (r *recorder) report(startedAt time.Time, elapsed time.Duration) Report {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := Report{
		StartedAt:       startedAt.UTC(),
		DurationSeconds: elapsed.Seconds(),
		Methods:         make(map[string]OpReport, len(r.samples)),
	}
	for op, samples := range r.samples {
		summary := summarize(samples)
		if op != scenarioOp {
			out.Methods[op] = summary
			continue
		}
		out.TotalScenarios = summary.Calls
		out.FailedScenarios = summary.Failed
		out.ErrorRate = summary.ErrorRate
		out.ScenarioLatencyMs = summary.LatencyMs
	}
	if elapsed > 0 {
		out.RPS = float64(out.TotalScenarios) / elapsed.Seconds()
	}
	return out
}

func summarize(samples []sample) OpReport {
	op := OpReport{Codes: make(map[string]int64), Calls: int64(len(samples))}
	took := make([]time.Duration, 0, len(samples))
	for _, s := range samples {
		if s.code == codes.OK {
			op.Success++
		}
		op.Codes[s.code.String()]++
		took = append(took, s.took)
	}
	op.Failed = op.Calls - op.Success
	if op.Calls > 0 {
		op.ErrorRate = float64(op.Failed) / float64(op.Calls)
	}
	op.LatencyMs = latencyOf(took)
	return op
}

// latencyOf считает перцентили методом ближайшего ранга. Вход не меняется.
func latencyOf(values []time.Duration) Latency {
	if len(values) == 0 {
		return Latency{}
	}
	sorted := append([]time.Duration(nil), values...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	var total time.Duration
	for _, v := range sorted {
		total += v
	}
	rank := func(p float64) float64 {
		idx := int(math.Ceil(p/100*float64(len(sorted)))) - 1
		return ms(sorted[max(idx, 0)])
	}
	return Latency{
		Min: ms(sorted[0]),
		Avg: ms(total / time.Duration(len(sorted))),
		P50: rank(50),
		P95: rank(95),
		P99: rank(99),
		Max: ms(sorted[len(sorted)-1]),
	}
}

func ms(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000
}

// writeReport сохраняет отчёт в JSON-файл.
func writeReport(path string, report Report) error {
	clean := filepath.Clean(path)
	if clean == "." || clean == string(filepath.Separator) {
		return errors.New("output path must point to a file")
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return os.WriteFile(clean, append(data, '\n'), 0o644)
}

func printReport(w io.Writer, report Report, mode loadMode) {
	l := report.ScenarioLatencyMs
	_, _ = fmt.Fprintf(w, "mode=%s total=%d failed=%d error_rate=%.4f duration=%.2fs rps=%.2f\n",
		mode, report.TotalScenarios, report.FailedScenarios, report.ErrorRate, report.DurationSeconds, report.RPS)
	_, _ = fmt.Fprintf(w, "scenario ms: min=%.2f avg=%.2f p50=%.2f p95=%.2f p99=%.2f max=%.2f\n",
		l.Min, l.Avg, l.P50, l.P95, l.P99, l.Max)

	ops := make([]string, 0, len(report.Methods))
	for op := range report.Methods {
		ops = append(ops, op)
	}
	sort.Strings(ops)
	for _, op := range ops {
		r := report.Methods[op]
		_, _ = fmt.Fprintf(w, "  %s: calls=%d success=%d failed=%d p95=%.2fms codes=%v\n",
			op, r.Calls, r.Success, r.Failed, r.LatencyMs.P95, r.Codes)
	}
}

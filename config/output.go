package config

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/relaxer-go/relaxer/pareto"
)

// solutionRecord is one entry in the JSON array a solutions file holds,
// matching relaxer/io.py JSONFileOutput.write_solutions's object shape.
type solutionRecord struct {
	Model     string          `json:"model"`
	Timestamp string          `json:"timestamp"`
	Depth     int             `json:"depth"`
	Supported bool            `json:"supported_solution"`
	Solution  [][]interface{} `json:"solution"`
}

// WriteSolutionsJSON appends one solutionRecord to the JSON array file
// at path, creating it if absent (spec §6.4). Infinite coordinates are
// rendered as the string "inf", matching the original's
// `"inf" if math.isinf(x) else float(x)` substitution.
func WriteSolutionsJSON(path, model string, depth int, supported bool, points []pareto.Point, timestamp string) error {
	record := solutionRecord{
		Model:     model,
		Timestamp: timestamp,
		Depth:     depth,
		Supported: supported,
		Solution:  pointsToJSON(points),
	}
	return appendJSONRecord(path, record)
}

func pointsToJSON(points []pareto.Point) [][]interface{} {
	out := make([][]interface{}, len(points))
	for i, p := range points {
		row := make([]interface{}, len(p))
		for j, v := range p {
			if math.IsInf(v, 1) {
				row[j] = "inf"
			} else {
				row[j] = v
			}
		}
		out[i] = row
	}
	return out
}

// WriteStatsJSON appends a stats record to the JSON array file at path,
// matching relaxer/io.py JSONFileOutput.write_stats. stats holds the
// per-phase float64 seconds from Stats.Seconds() plus whatever summary
// values (e.g. "total_seconds", "slowest_phase") the caller mixes in.
func WriteStatsJSON(path, model, timestamp string, stats map[string]interface{}) error {
	record := map[string]interface{}{"model": model, "timestamp": timestamp}
	for k, v := range stats {
		record[k] = v
	}
	return appendJSONRecord(path, record)
}

// appendJSONRecord loads the JSON array at path (treating a missing or
// malformed file as an empty array, matching the original's
// json.JSONDecodeError fallback), appends record, and rewrites the file.
func appendJSONRecord(path string, record interface{}) error {
	var records []interface{}
	if data, err := os.ReadFile(path); err == nil {
		_ = json.Unmarshal(data, &records)
	}
	records = append(records, record)

	out, err := json.MarshalIndent(records, "", "    ")
	if err != nil {
		return fmt.Errorf("config: marshaling %q: %w", path, err)
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("config: writing %q: %w", path, err)
	}
	return nil
}

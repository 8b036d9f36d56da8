// Package config implements the JSON relaxation-input configuration and
// the YAML tuning-defaults file (spec §6.4, SPEC_FULL §2 "Configuration"),
// matching relaxer/io.py's Config/RelaxationInput dataclasses and the
// teacher's cmd/workload_config.go style of loading a YAML preset file
// with gopkg.in/yaml.v3.
package config

import (
	"encoding/json"
	"fmt"
	"math/big"
	"os"

	"gopkg.in/yaml.v3"
)

// RelaxationSelector names a single guard or invariant to relax, by the
// clock it constrains and the location/edge it is attached to. The
// concrete model parser that resolves a selector against a loaded
// ta.System is an external front-end collaborator (spec §6.1); this
// struct only fixes the selector's wire shape.
type RelaxationSelector struct {
	Clock    string `json:"clock"`
	Location string `json:"location,omitempty"`
	EdgeFrom string `json:"edge_from,omitempty"`
	EdgeTo   string `json:"edge_to,omitempty"`
}

// RelaxationInput is one model/depth pairing to run relax() over,
// mirroring relaxer.io.RelaxationInput.
type RelaxationInput struct {
	Model                string               `json:"model"`
	Type                 string               `json:"type"`
	Depth                int                  `json:"depth"`
	InvariantRelaxations []RelaxationSelector `json:"invariant_relaxations,omitempty"`
	GuardRelaxations     []RelaxationSelector `json:"guard_relaxations,omitempty"`
	RelaxAll             bool                 `json:"relax_all,omitempty"`
}

// OutputConfig selects where solutions are written: "stdout" (default)
// or "file" (Path must then be set).
type OutputConfig struct {
	Type string `json:"type"`
	Path string `json:"path,omitempty"`
}

// StatsConfig selects where per-phase timing stats are written.
type StatsConfig struct {
	Type string `json:"type"`
	Path string `json:"path"`
}

// DumpConfig selects the dump sink backend and its root directory.
type DumpConfig struct {
	Type string `json:"type"`
	Path string `json:"path"`
}

// Config is the top-level JSON document a relaxer run is driven from.
type Config struct {
	Inputs []RelaxationInput `json:"inputs"`
	Output OutputConfig      `json:"output"`
	Stats  *StatsConfig      `json:"stats,omitempty"`
	Debug  bool              `json:"debug,omitempty"`
	Dump   *DumpConfig       `json:"dump,omitempty"`
}

// Load reads and parses a Config from path, defaulting Output.Type to
// "stdout" when the document omits an output section entirely.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: reading %q: %w", path, err)
	}

	cfg := Config{Output: OutputConfig{Type: "stdout"}}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parsing %q: %w", path, err)
	}
	return cfg, nil
}

// Defaults is the YAML-loaded tuning-knob file (SPEC_FULL §2), loaded by
// the CLI's --defaults flag: the optimizer's edge-sampling grid point
// count, the strict-inequality epsilon, and a fallback dump directory,
// each applied only where the corresponding CLI flag wasn't explicitly
// set. Modeled on the teacher's workload_config.go YAML preset loader.
type Defaults struct {
	GridPoints int    `yaml:"grid_points"`
	Epsilon    string `yaml:"epsilon"`
	DumpDir    string `yaml:"dump_dir"`
}

// defaultEpsilon is used when a Defaults document omits the epsilon key,
// matching spec §4.8 step 1's default strict-inequality margin.
const defaultEpsilon = "1/10"

// LoadDefaults reads and parses a Defaults document from path.
func LoadDefaults(path string) (Defaults, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Defaults{}, fmt.Errorf("config: reading %q: %w", path, err)
	}

	d := Defaults{GridPoints: 2, Epsilon: defaultEpsilon}
	if err := yaml.Unmarshal(data, &d); err != nil {
		return Defaults{}, fmt.Errorf("config: parsing %q: %w", path, err)
	}
	return d, nil
}

// EpsilonRat parses Epsilon as an exact rational ("num/den" or decimal
// form, whatever big.Rat.SetString accepts).
func (d Defaults) EpsilonRat() (*big.Rat, error) {
	eps := d.Epsilon
	if eps == "" {
		eps = defaultEpsilon
	}
	r, ok := new(big.Rat).SetString(eps)
	if !ok {
		return nil, fmt.Errorf("config: invalid epsilon %q", d.Epsilon)
	}
	return r, nil
}

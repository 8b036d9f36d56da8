package cmd

import (
	"fmt"
	"math/big"
	"time"

	"github.com/relaxer-go/relaxer/config"
	"github.com/relaxer-go/relaxer/dump"
	"github.com/relaxer-go/relaxer/pipeline"
	"github.com/relaxer-go/relaxer/ta"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// LoadModel resolves a RelaxationInput's model path into a ta.System.
// The concrete UPPAAL/XML front-end parser is an external collaborator
// (spec §6.1) outside this module's scope; callers that embed this CLI
// against a real front-end overwrite LoadModel during init. The
// unassigned default reports a clear error instead of silently no-oping.
var LoadModel func(path string) (ta.System, error)

var (
	modelPath    string
	depth        int
	configPath   string
	defaultsPath string
	gridPoints   int
	epsilonStr   string
	logLevel     string
	debug        bool
	dumpDir      string
	outputPath   string
	statsPath    string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Compute maximal relaxations for one model or a config file's batch of inputs",
	RunE:  runRelax,
}

func init() {
	runCmd.Flags().StringVarP(&modelPath, "model", "m", "", "Path to a timed-automaton model")
	runCmd.Flags().IntVarP(&depth, "depth", "d", 3, "Maximum trace depth to check")
	runCmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to a JSON batch config; supersedes --model/--depth when given")
	runCmd.Flags().StringVar(&defaultsPath, "defaults", "", "Path to a YAML tuning-defaults file (grid points, epsilon, dump directory); --grid-points/--epsilon/--dump still override it when explicitly set")
	runCmd.Flags().IntVar(&gridPoints, "grid-points", 2, "Edge-sampling grid points for the polyhedron optimizer")
	runCmd.Flags().StringVar(&epsilonStr, "epsilon", "1/10", "Strict-inequality conversion epsilon, as a rational (e.g. 1/10)")
	runCmd.Flags().StringVar(&logLevel, "log", "warn", "Log level (debug, info, warn, error)")
	runCmd.Flags().BoolVar(&debug, "debug", false, "Enable debug-mode equivalence checking of normal-form transforms")
	runCmd.Flags().StringVar(&dumpDir, "dump", "", "Directory to dump intermediate formulas into; omitted means no dumping")
	runCmd.Flags().StringVar(&outputPath, "output", "", "File to append solution JSON to; omitted means stdout")
	runCmd.Flags().StringVar(&statsPath, "stats", "", "File to append per-phase timing stats JSON to")
}

func runRelax(cmd *cobra.Command, args []string) error {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", logLevel, err)
	}
	logrus.SetLevel(level)

	inputs, cfg, err := resolveInputs()
	if err != nil {
		return err
	}

	if defaultsPath != "" {
		defaults, err := config.LoadDefaults(defaultsPath)
		if err != nil {
			return err
		}
		if !cmd.Flags().Changed("grid-points") {
			gridPoints = defaults.GridPoints
		}
		if !cmd.Flags().Changed("epsilon") {
			epsilonStr = defaults.Epsilon
		}
		if !cmd.Flags().Changed("dump") && defaults.DumpDir != "" {
			dumpDir = defaults.DumpDir
		}
	}

	// A --config batch drives Output/Stats/Dump/Debug the same way it
	// drives Inputs, unless the corresponding flag was set explicitly.
	if cfg != nil {
		if !cmd.Flags().Changed("debug") {
			debug = cfg.Debug
		}
		if !cmd.Flags().Changed("output") && cfg.Output.Type == "file" {
			outputPath = cfg.Output.Path
		}
		if !cmd.Flags().Changed("stats") && cfg.Stats != nil {
			statsPath = cfg.Stats.Path
		}
		if !cmd.Flags().Changed("dump") && cfg.Dump != nil {
			dumpDir = cfg.Dump.Path
		}
	}

	epsilon, ok := new(big.Rat).SetString(epsilonStr)
	if !ok {
		return fmt.Errorf("invalid epsilon %q", epsilonStr)
	}

	var dumper dump.Handler
	if dumpDir != "" {
		dumper = dump.NewDirectoryHandler(dumpDir)
	}

	for _, input := range inputs {
		if err := runOne(input, epsilon, dumper); err != nil {
			return err
		}
	}
	return nil
}

// resolveInputs implements SPEC_FULL §2's documented quirk: -m/-d are
// accepted standalone, but a --config file supersedes them whenever both
// are given — same as the original CLI, not "fixed". The returned
// *config.Config is nil when inputs came from --model/--depth alone, so
// callers know there's no Output/Stats/Dump/Debug section to honor.
func resolveInputs() ([]config.RelaxationInput, *config.Config, error) {
	if configPath != "" {
		cfg, err := config.Load(configPath)
		if err != nil {
			return nil, nil, err
		}
		return cfg.Inputs, &cfg, nil
	}
	if modelPath == "" {
		return nil, nil, fmt.Errorf("one of --model or --config is required")
	}
	return []config.RelaxationInput{{Model: modelPath, Depth: depth}}, nil, nil
}

func runOne(input config.RelaxationInput, epsilon *big.Rat, dumper dump.Handler) error {
	if LoadModel == nil {
		return fmt.Errorf("cmd: no model loader configured; wire cmd.LoadModel to a timed-automaton front-end")
	}
	system, err := LoadModel(input.Model)
	if err != nil {
		return fmt.Errorf("loading model %q: %w", input.Model, err)
	}

	result, err := pipeline.Relax(system, pipeline.Options{
		Depth:      input.Depth,
		GridPoints: gridPoints,
		Epsilon:    epsilon,
		Dump:       dumper,
		Debug:      debug,
	})
	if err != nil {
		return fmt.Errorf("relaxing %q: %w", input.Model, err)
	}

	timestamp := time.Now().UTC().Format(time.RFC3339)

	if outputPath != "" {
		if err := config.WriteSolutionsJSON(outputPath, input.Model, input.Depth, result.Supported, result.Set.Points(), timestamp); err != nil {
			return err
		}
	} else {
		printSolutions(input.Model, result)
	}

	if statsPath != "" {
		stats := make(map[string]interface{}, len(result.Stats.Seconds())+2)
		for phase, seconds := range result.Stats.Seconds() {
			stats[phase] = seconds
		}
		stats["total_seconds"] = result.Stats.TotalSeconds()
		if slowest, seconds := result.Stats.SlowestPhase(); slowest != "" {
			stats["slowest_phase"] = string(slowest)
			stats["slowest_phase_seconds"] = seconds
		}
		if err := config.WriteStatsJSON(statsPath, input.Model, timestamp, stats); err != nil {
			return err
		}
	}
	return nil
}

func printSolutions(model string, result *pipeline.Result) {
	fmt.Printf("Model: %s\n", model)
	fmt.Printf("Supported: %v\n", result.Supported)
	fmt.Println("==================== Solutions ====================")
	for _, p := range result.Set.Points() {
		fmt.Printf("%v\n", []float64(p))
	}
}

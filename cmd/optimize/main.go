package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/farmstead/config"
)

// evalRow is one line of optimize_log.csv.
type evalRow struct {
	Eval      int     `csv:"eval"`
	Fitness   float64 `csv:"fitness"`
	Water     int     `csv:"water"`
	Food      int     `csv:"food"`
	Shortages int     `csv:"shortages"`
}

// evalLog appends rows to a CSV file, writing the header with the first row.
type evalLog struct {
	w             io.Writer
	headerWritten bool
}

func (l *evalLog) write(row evalRow) error {
	rows := []evalRow{row}
	if !l.headerWritten {
		l.headerWritten = true
		return gocsv.Marshal(&rows, l.w)
	}
	return gocsv.MarshalWithoutHeaders(&rows, l.w)
}

// formatDuration formats a duration as 1h02m03s, or 2m05s when under an hour.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}

// parseHorizons parses a comma-separated list of positive day counts.
func parseHorizons(s string) ([]int, error) {
	var horizons []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		days, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("horizon %q: %w", part, err)
		}
		if days <= 0 {
			return nil, fmt.Errorf("horizon %d: must be positive", days)
		}
		horizons = append(horizons, days)
	}
	if len(horizons) == 0 {
		return nil, fmt.Errorf("no horizons given")
	}
	return horizons, nil
}

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	horizonList := flag.String("horizons", "10,30,60", "Comma-separated run lengths in days")
	maxEvals := flag.Int("max-evals", 200, "Maximum number of evaluations")
	population := flag.Int("population", 0, "CMA-ES population size (0 = auto)")
	maxPool := flag.Float64("max-pool", 500, "Upper bound for each starting pool")
	penalty := flag.Float64("penalty", 1000, "Fitness penalty per shortage")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	if *outputDir == "" {
		log.Fatal("--output is required")
	}
	horizons, err := parseHorizons(*horizonList)
	if err != nil {
		log.Fatalf("invalid --horizons: %v", err)
	}

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	config.MustInit(*configPath)
	baseCfg := config.Cfg()

	params := NewParamVector(baseCfg, *maxPool)
	evaluator := NewFitnessEvaluator(params, horizons, baseCfg, *penalty)

	dim := params.Dim()
	initX := params.Normalize(params.Clamp(params.DefaultVector()))

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			return evaluator.Evaluate(params.Denormalize(x))
		},
	}

	settings := &optimize.Settings{
		FuncEvaluations: *maxEvals,
		Concurrent:      0, // Sequential; each evaluation already fans out across horizons
	}

	popSize := *population
	if popSize == 0 {
		popSize = 4 + int(3.0*math.Log(float64(dim)))
	}

	method := &optimize.CmaEsChol{
		InitStepSize: 0.3,
		Population:   popSize,
	}

	logPath := filepath.Join(*outputDir, "optimize_log.csv")
	logFile, err := os.Create(logPath)
	if err != nil {
		log.Fatalf("failed to create log file: %v", err)
	}
	defer logFile.Close()
	evalLogger := &evalLog{w: logFile}

	evalCount := 0
	bestFitness := math.Inf(1)
	var bestParams []float64
	startTime := time.Now()

	// Wrap the function to log evaluations
	originalFunc := problem.Func
	problem.Func = func(x []float64) float64 {
		fit := originalFunc(x)
		evalCount++

		clamped := params.Clamp(params.Denormalize(x))
		if fit < bestFitness {
			bestFitness = fit
			bestParams = clamped
		}

		water, food := params.Pools(clamped)
		shortages := evaluator.LastShortages()
		if err := evalLogger.write(evalRow{
			Eval:      evalCount,
			Fitness:   fit,
			Water:     water,
			Food:      food,
			Shortages: shortages,
		}); err != nil {
			log.Printf("failed to write eval log: %v", err)
		}

		elapsed := time.Since(startTime)
		avgPerEval := elapsed / time.Duration(evalCount)
		remaining := time.Duration(*maxEvals-evalCount) * avgPerEval

		fmt.Printf("Eval %d/%d: water=%d food=%d shortages=%d fitness=%.0f (best=%.0f) | elapsed: %s, ETA: %s\n",
			evalCount, *maxEvals, water, food, shortages, fit, bestFitness,
			formatDuration(elapsed), formatDuration(remaining))

		return fit
	}

	fmt.Printf("Starting CMA-ES optimization with %d parameters, population=%d, max_evals=%d\n",
		dim, popSize, *maxEvals)
	fmt.Printf("Horizons per evaluation: %v\n", horizons)

	result, err := optimize.Minimize(problem, initX, settings, method)
	if err != nil {
		log.Printf("optimization ended: %v", err)
	}

	// Use best params found (may be from any evaluation, not just final)
	if bestParams == nil && result != nil {
		bestParams = params.Clamp(params.Denormalize(result.X))
	}
	if bestParams == nil {
		log.Fatal("no evaluation completed")
	}

	totalTime := time.Since(startTime)
	fmt.Printf("\nOptimization complete after %d evaluations in %s\n", evalCount, formatDuration(totalTime))
	fmt.Printf("Best fitness: %.0f\n", bestFitness)

	fmt.Println("\nBest parameters:")
	water, food := params.Pools(bestParams)
	fmt.Printf("  %s: %d\n", params.Specs[0].Path, water)
	fmt.Printf("  %s: %d\n", params.Specs[1].Path, food)

	bestCfg := baseCfg.Clone()
	params.ApplyToConfig(bestCfg, bestParams)

	configOutPath := filepath.Join(*outputDir, "best_config.yaml")
	if err := bestCfg.WriteYAML(configOutPath); err != nil {
		log.Printf("failed to write best config: %v", err)
	} else {
		fmt.Printf("\nBest config saved to: %s\n", configOutPath)
	}
}

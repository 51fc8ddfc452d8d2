package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dshills/roguecore/pkg/dungeonstate"
	"github.com/dshills/roguecore/pkg/generate"
	"github.com/dshills/roguecore/pkg/pass"
	"github.com/dshills/roguecore/pkg/seed"
	"github.com/dshills/roguecore/pkg/traceexport"
	"github.com/dshills/roguecore/pkg/validation"
)

const version = "1.0.0"

var (
	configPath = flag.String("config", "", "Path to YAML configuration file (required)")
	outputDir  = flag.String("output", ".", "Output directory for generated files")
	format     = flag.String("format", "json", "Export format: json, svg, or all")
	seedFlag   = flag.Uint64("seed", 0, "Primary seed (0 = derive one from the current time)")
	verbose    = flag.Bool("verbose", false, "Enable verbose output")
	versionF   = flag.Bool("version", false, "Print version and exit")
	help       = flag.Bool("help", false, "Show help message")
)

func main() {
	flag.Parse()

	if *versionF {
		fmt.Printf("dungeongen version %s\n", version)
		os.Exit(0)
	}

	if *help {
		printHelp()
		os.Exit(0)
	}

	if *configPath == "" {
		fmt.Fprintln(os.Stderr, "Error: -config flag is required")
		printUsage()
		os.Exit(1)
	}

	validFormats := map[string]bool{"json": true, "svg": true, "all": true}
	if !validFormats[*format] {
		fmt.Fprintf(os.Stderr, "Error: invalid format %q, must be one of: json, svg, all\n", *format)
		os.Exit(1)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	if *verbose {
		fmt.Printf("Loading configuration from %s\n", *configPath)
	}

	cfg, err := dungeonstate.LoadConfig(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if *seedFlag != 0 {
		if *verbose {
			fmt.Printf("Overriding primary seed from %d to %d\n", cfg.Seed.Primary, *seedFlag)
		}
		cfg.Seed = seed.FromPrimary(uint32(*seedFlag))
	} else if cfg.Seed.Primary == 0 {
		cfg.Seed = seed.FromPrimary(uint32(time.Now().UnixNano()))
	}

	if *verbose {
		fmt.Printf("Using seed: %s\n", seed.Encode(cfg.Seed))
		fmt.Printf("Algorithm: %s, size: %dx%d\n", cfg.Algorithm, cfg.Width, cfg.Height)
	}

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	start := time.Now()
	if *verbose {
		fmt.Println("Generating dungeon...")
	}

	outcome := generate.GenerateWithTrace(ctx, cfg)
	if !outcome.Success {
		return fmt.Errorf("generation failed: %w", outcome.Err)
	}
	artifact := outcome.Artifact

	elapsed := time.Since(start)
	if *verbose {
		fmt.Printf("Generation completed in %v\n", elapsed)
	}

	report := validation.Validate(artifact, cfg.Profile)
	if *verbose {
		fmt.Println(report.Summary())
		printStats(artifact, report)
	}
	if !report.Valid {
		fmt.Fprintln(os.Stderr, "Warning: generated dungeon failed invariant validation")
	}

	baseName := fmt.Sprintf("dungeon_%d", artifact.Seed.Primary)

	if *format == "json" || *format == "all" {
		if err := exportJSON(artifact, outcome.Trace, baseName); err != nil {
			return err
		}
	}

	if *format == "svg" || *format == "all" {
		if err := exportSVG(artifact, baseName); err != nil {
			return err
		}
	}

	fmt.Printf("Successfully generated dungeon (seed=%d) in %v\n", artifact.Seed.Primary, elapsed)
	return nil
}

func exportJSON(artifact *dungeonstate.Artifact, trace *pass.Trace, baseName string) error {
	filename := filepath.Join(*outputDir, baseName+".json")
	if *verbose {
		fmt.Printf("Exporting JSON to %s\n", filename)
	}

	if err := traceexport.SaveJSONToFile(artifact, trace, filename); err != nil {
		return fmt.Errorf("failed to export JSON: %w", err)
	}

	if *verbose {
		info, _ := os.Stat(filename)
		fmt.Printf("  Wrote %d bytes\n", info.Size())
	}

	return nil
}

func printStats(artifact *dungeonstate.Artifact, report *validation.Report) {
	fmt.Println("\nDungeon Statistics:")
	fmt.Printf("  Rooms: %d\n", len(artifact.Rooms))
	fmt.Printf("  Connections: %d\n", len(artifact.Connections))
	fmt.Printf("  Spawns: %d\n", len(artifact.Spawns))
	fmt.Printf("  Checksum: %08x\n", artifact.Checksum)

	if report.Metrics != nil {
		fmt.Println("\nMetrics:")
		fmt.Printf("  FloorRatio: %.3f\n", report.Metrics.FloorRatio)
		fmt.Printf("  RoomDensity: %.3f\n", report.Metrics.RoomDensity)
		fmt.Printf("  AverageConnectionPathLength: %.2f\n", report.Metrics.AverageConnectionPathLength)
		fmt.Printf("  DeadEndCount: %d\n", report.Metrics.DeadEndCount)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "\nUsage: dungeongen -config <config.yaml> [options]")
	fmt.Fprintln(os.Stderr, "\nRun 'dungeongen -help' for detailed help")
}

func printHelp() {
	fmt.Printf("dungeongen version %s\n\n", version)
	fmt.Println("A command-line tool for generating procedural dungeons.")
	fmt.Println("\nUsage:")
	fmt.Println("  dungeongen -config <config.yaml> [options]")
	fmt.Println("\nRequired Flags:")
	fmt.Println("  -config string")
	fmt.Println("        Path to YAML configuration file")
	fmt.Println("\nOptional Flags:")
	fmt.Println("  -output string")
	fmt.Println("        Output directory for generated files (default: current directory)")
	fmt.Println("  -format string")
	fmt.Println("        Export format: json, svg, or all (default: json)")
	fmt.Println("  -seed uint")
	fmt.Println("        Primary seed (0 = derive one from the current time) (default: 0)")
	fmt.Println("  -verbose")
	fmt.Println("        Enable verbose output")
	fmt.Println("  -version")
	fmt.Println("        Print version and exit")
	fmt.Println("  -help")
	fmt.Println("        Show this help message")
	fmt.Println("\nExamples:")
	fmt.Println("  # Generate dungeon with default JSON export")
	fmt.Println("  dungeongen -config dungeon.yaml")
	fmt.Println("\n  # Generate with custom seed and all export formats")
	fmt.Println("  dungeongen -config dungeon.yaml -seed 12345 -format all -output ./out")
	fmt.Println("\n  # Generate SVG visualization with verbose output")
	fmt.Println("  dungeongen -config dungeon.yaml -format svg -verbose")
	fmt.Println("\nConfiguration File:")
	fmt.Println("  The YAML configuration file specifies dungeon parameters including:")
	fmt.Println("  - width/height (grid dimensions)")
	fmt.Println("  - algorithm (bsp, cellular, hybrid)")
	fmt.Println("  - roomSizeRange, roomCount")
	fmt.Println("  - content density knobs (enemyDensity, itemDensity, ...)")
	fmt.Println("  - profile (full or production)")
	fmt.Println("\n  See the project documentation for detailed configuration schema.")
}

func exportSVG(artifact *dungeonstate.Artifact, baseName string) error {
	filename := filepath.Join(*outputDir, baseName+".svg")
	if *verbose {
		fmt.Printf("Exporting SVG to %s\n", filename)
	}

	opts := traceexport.DefaultSVGOptions()
	opts.Title = fmt.Sprintf("Dungeon (seed=%d)", artifact.Seed.Primary)

	if err := traceexport.SaveSVGToFile(artifact, opts, filename); err != nil {
		return fmt.Errorf("failed to export SVG: %w", err)
	}

	if *verbose {
		info, _ := os.Stat(filename)
		fmt.Printf("  Wrote %d bytes\n", info.Size())
	}

	return nil
}

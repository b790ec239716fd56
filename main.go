package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/JMS55/raytracing-in-one-weekend/pkg/core"
	"github.com/JMS55/raytracing-in-one-weekend/pkg/output"
	"github.com/JMS55/raytracing-in-one-weekend/pkg/renderer"
	"github.com/JMS55/raytracing-in-one-weekend/pkg/scene"
)

// Config holds the command line options
type Config struct {
	SceneName string
	Width     int
	Height    int
	Samples   int
	MaxDepth  int
	Seed      uint64
	Workers   int
	Output    string
	Annotate  bool
	Help      bool

	set map[string]bool // Flags given explicitly on the command line
}

// newFlagSet declares the command line flags, storing their values in cfg
func newFlagSet(cfg *Config) *flag.FlagSet {
	fs := flag.NewFlagSet("raytracer", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&cfg.SceneName, "scene", "default", "Built-in scene name or path to a .json scene file")
	fs.IntVar(&cfg.Width, "width", 0, "Image width (overrides the scene)")
	fs.IntVar(&cfg.Height, "height", 0, "Image height (overrides the scene)")
	fs.IntVar(&cfg.Samples, "samples", 0, "Samples per pixel (overrides the scene)")
	fs.IntVar(&cfg.MaxDepth, "depth", 0, "Maximum ray bounce depth (overrides the scene)")
	fs.Uint64Var(&cfg.Seed, "seed", 0, "Random seed (overrides the scene)")
	fs.IntVar(&cfg.Workers, "workers", 0, "Number of parallel workers (0 = one per logical CPU)")
	fs.StringVar(&cfg.Output, "out", "", "Output file, .png or .ppm (default output/<scene>/render_<timestamp>.png)")
	fs.BoolVar(&cfg.Annotate, "annotate", false, "Draw render statistics into the PNG")
	fs.BoolVar(&cfg.Help, "help", false, "Show help information")
	return fs
}

// parseFlags parses command line arguments into a Config
func parseFlags(args []string) (Config, error) {
	var cfg Config
	fs := newFlagSet(&cfg)
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	cfg.set = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { cfg.set[f.Name] = true })

	positive := []struct {
		name  string
		value int
	}{
		{"width", cfg.Width},
		{"height", cfg.Height},
		{"samples", cfg.Samples},
		{"depth", cfg.MaxDepth},
	}
	for _, p := range positive {
		if cfg.set[p.name] && p.value <= 0 {
			return cfg, fmt.Errorf("-%s must be positive, got %d", p.name, p.value)
		}
	}
	return cfg, nil
}

// applyOverrides replaces the scene's recommended sampling settings with explicit flags
func applyOverrides(s *scene.Scene, cfg Config) {
	if cfg.set["width"] {
		s.SamplingConfig.Width = cfg.Width
	}
	if cfg.set["height"] {
		s.SamplingConfig.Height = cfg.Height
	}
	if cfg.set["samples"] {
		s.SamplingConfig.SamplesPerPixel = cfg.Samples
	}
	if cfg.set["depth"] {
		s.SamplingConfig.MaxDepth = cfg.MaxDepth
	}
	if cfg.set["seed"] {
		s.SamplingConfig.Seed = cfg.Seed
	}
}

// outputPath returns the configured output file or a timestamped default for the scene
func outputPath(cfg Config, now time.Time) string {
	if cfg.Output != "" {
		return cfg.Output
	}
	name := strings.TrimSuffix(filepath.Base(cfg.SceneName), filepath.Ext(cfg.SceneName))
	timestamp := now.Format("20060102_150405")
	return filepath.Join("output", name, fmt.Sprintf("render_%s.png", timestamp))
}

func printHelp() {
	fmt.Println("Raytracer")
	fmt.Println("Usage: raytracer [options]")
	fmt.Println()
	fmt.Println("Options:")
	fs := newFlagSet(&Config{})
	fs.SetOutput(os.Stdout)
	fs.PrintDefaults()
	fmt.Println()
	fmt.Println("Available scenes:")
	for _, info := range scene.List() {
		fmt.Printf("  %-12s %s\n", info.ID, info.Description)
	}
	fmt.Println("  <file>.json  Scene described in a JSON file")
	fmt.Println()
	fmt.Println("Output will be saved to output/<scene>/render_<timestamp>.png unless -out is given")
}

// run renders the configured scene and writes the result
func run(ctx context.Context, cfg Config, logger core.Logger) error {
	selectedScene, err := scene.Create(cfg.SceneName)
	if err != nil {
		return fmt.Errorf("failed to create scene: %w", err)
	}
	applyOverrides(selectedScene, cfg)
	logger.Printf("Using scene %s (%d objects)\n", cfg.SceneName, selectedScene.GetPrimitiveCount())

	raytracer := renderer.NewRaytracer(selectedScene, cfg.Workers, logger)
	img, stats, err := raytracer.Render(ctx)
	if err != nil {
		return err
	}

	filename := outputPath(cfg, time.Now())
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	annotation := ""
	if cfg.Annotate {
		annotation = stats.String()
	}
	if err := output.Save(img, filename, annotation); err != nil {
		return err
	}

	logger.Printf("Render saved as %s\n", filename)
	return nil
}

func main() {
	cfg, err := parseFlags(os.Args[1:])
	if err != nil && !errors.Is(err, flag.ErrHelp) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run with -help for usage")
		os.Exit(2)
	}

	if cfg.Help || errors.Is(err, flag.ErrHelp) {
		printHelp()
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Println("Starting Raytracer...")
	if err := run(ctx, cfg, renderer.NewDefaultLogger()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

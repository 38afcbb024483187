package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"voxelgrid/pkg/config"
	"voxelgrid/pkg/grid"
)

func main() {
	// Parse command line arguments
	configPath := flag.String("config", "", "Path to YAML configuration file")
	writeConfig := flag.String("write-config", "", "Write a default configuration file to the given path and exit")
	levels := flag.Int("levels", 0, "Number of pyramid levels to derive (overrides config)")
	alignCorners := flag.Bool("align-corners", true, "Extend the normalized domain to the corner point centers")
	flag.Parse()

	if *writeConfig != "" {
		if err := config.CreateDefaultConfigFile(*writeConfig); err != nil {
			log.Fatalf("Failed to write default config: %v", err)
		}
		fmt.Printf("Default configuration written to: %s\n", *writeConfig)
		return
	}

	// Validate inputs
	if *configPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	// The flag wins over the config only when set explicitly.
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "align-corners" {
			cfg.Grid.AlignCorners = *alignCorners
		}
	})
	if *levels > 0 {
		cfg.Pyramid.Levels = *levels
	}

	g, err := grid.FromHeader(cfg.Volume, cfg.Grid.AlignCorners)
	if err != nil {
		log.Fatalf("Invalid volume geometry: %v", err)
	}

	fmt.Println("================================")
	fmt.Println("SAMPLING GRID GEOMETRY")
	fmt.Println("================================")
	printGrid("Input grid", g, cfg.Output.Verbose)

	// Resample to the configured target spacing
	if len(cfg.Resample.Spacing) > 0 || cfg.Resample.Isotropic {
		var resampled *grid.Grid
		if cfg.Resample.Isotropic {
			resampled, err = g.ResampleMin()
		} else {
			resampled, err = g.Resample(cfg.Resample.Spacing)
		}
		if err != nil {
			log.Fatalf("Resampling failed: %v", err)
		}
		fmt.Println()
		printGrid("Resampled grid", resampled, cfg.Output.Verbose)
		g = resampled
	}

	// Crop the configured border margin
	if len(cfg.Crop.Margin) > 0 {
		cropped, err := g.Crop(cfg.Crop.Margin...)
		if err != nil {
			log.Fatalf("Cropping failed: %v", err)
		}
		fmt.Println()
		printGrid("Cropped grid", cropped, cfg.Output.Verbose)
		g = cropped
	}

	// Derive the multi-resolution pyramid
	if cfg.Pyramid.Levels > 1 {
		var opts []grid.ResizeOption
		if cfg.Pyramid.MinSize > 0 {
			opts = append(opts, grid.MinSize(cfg.Pyramid.MinSize))
		}
		pyramid, err := g.Pyramid(cfg.Pyramid.Levels, opts...)
		if err != nil {
			log.Fatalf("Pyramid derivation failed: %v", err)
		}
		fmt.Println("\nResolution pyramid:")
		fmt.Println("===================")
		for level := 0; level <= cfg.Pyramid.Levels; level++ {
			pg := pyramid[level]
			fmt.Printf("Level %d: size=%v spacing=%v origin=%v\n",
				level, pg.Size(), pg.Spacing(), pg.Origin())
		}
	}
}

// printGrid writes a human readable summary of a sampling grid.
func printGrid(label string, g *grid.Grid, verbose bool) {
	fmt.Printf("%s:\n", label)
	fmt.Printf("  Size:    %v\n", g.Size())
	fmt.Printf("  Spacing: %v\n", g.Spacing())
	fmt.Printf("  Center:  %v\n", g.Center())
	fmt.Printf("  Origin:  %v\n", g.Origin())
	fmt.Printf("  Extent:  %v\n", g.Extent())
	if !verbose {
		return
	}
	fmt.Printf("  Points:  %d\n", g.Numel())
	if m, err := g.SamplingTransform(); err == nil {
		r, c := m.Dims()
		fmt.Printf("  Sampling transform (%dx%d):\n", r, c)
		for i := 0; i < r; i++ {
			fmt.Printf("    %v\n", m.RawRowView(i))
		}
	}
}

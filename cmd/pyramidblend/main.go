package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"pyramidblend/internal/models"
	"pyramidblend/pkg/blend"
	"pyramidblend/pkg/config"
	"pyramidblend/pkg/imgio"
	"pyramidblend/pkg/pyramid"
	"pyramidblend/pkg/render"
)

func main() {
	// Parse command line arguments
	image1 := flag.String("image1", "", "First input image (selected where the mask is white)")
	image2 := flag.String("image2", "", "Second input image (selected where the mask is black)")
	maskPath := flag.String("mask", "", "Mask image, thresholded to black/white")
	outputName := flag.String("output", "blended.png", "Output image filename")
	configPath := flag.String("config", "", "Optional YAML configuration file")
	maxLevels := flag.Int("levels", 0, "Maximum number of pyramid levels (overrides config)")
	filterSizeImage := flag.Int("filter-size", 0, "Odd blur kernel length for the image pyramids (overrides config)")
	filterSizeMask := flag.Int("mask-filter-size", 0, "Odd blur kernel length for the mask pyramid (overrides config)")
	workers := flag.Int("workers", 0, "Number of CPU cores to use (overrides config)")
	renderPyramids := flag.Bool("render-pyramids", false, "Save pyramid mosaics alongside the blended output")
	mosaicDir := flag.String("mosaic-dir", "", "Directory to save pyramid mosaics (overrides config)")
	flag.Parse()

	// Validate inputs
	if *image1 == "" || *image2 == "" || *maskPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	// Load configuration, falling back to defaults when no file is given
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Explicit flags override the configuration file
	if *maxLevels > 0 {
		cfg.Blend.MaxLevels = *maxLevels
	}
	if *filterSizeImage > 0 {
		cfg.Blend.FilterSizeImage = *filterSizeImage
	}
	if *filterSizeMask > 0 {
		cfg.Blend.FilterSizeMask = *filterSizeMask
	}
	if *workers > 0 {
		cfg.Processing.NumWorkers = *workers
	}
	if *renderPyramids {
		cfg.Output.RenderPyramids = true
	}
	if *mosaicDir != "" {
		cfg.Output.MosaicDir = *mosaicDir
	}
	if cfg.Processing.NumWorkers > 0 {
		runtime.GOMAXPROCS(cfg.Processing.NumWorkers)
	}

	fmt.Println("================================")
	fmt.Println("LAPLACIAN PYRAMID IMAGE BLENDING")
	fmt.Println("================================")

	// Step 1: Load the two images and the mask
	fmt.Println("Step 1: Loading input images...")
	im1, err := imgio.LoadRGB(*image1)
	if err != nil {
		log.Fatalf("Failed to load first image: %v", err)
	}
	im2, err := imgio.LoadRGB(*image2)
	if err != nil {
		log.Fatalf("Failed to load second image: %v", err)
	}
	mask, err := imgio.LoadMask(*maskPath)
	if err != nil {
		log.Fatalf("Failed to load mask: %v", err)
	}

	rows, cols := im1.Dims()
	if cfg.Output.Verbose {
		fmt.Printf("Loaded %dx%d images\n", cols, rows)
		fmt.Printf("Pyramid levels: up to %d, image filter size: %d, mask filter size: %d\n",
			cfg.Blend.MaxLevels, cfg.Blend.FilterSizeImage, cfg.Blend.FilterSizeMask)
	}

	// Step 2: Blend the color channels in parallel
	fmt.Println("Step 2: Blending color channels...")
	startTime := time.Now()
	out, err := blend.BlendRGB(im1, im2, mask,
		cfg.Blend.MaxLevels, cfg.Blend.FilterSizeImage, cfg.Blend.FilterSizeMask)
	if err != nil {
		log.Fatalf("Blending failed: %v", err)
	}
	blendTime := time.Since(startTime)

	// Step 3: Save the blended output
	fmt.Println("Step 3: Saving blended image...")
	if err := imgio.Save(*outputName, imgio.ToRGB(out)); err != nil {
		log.Fatalf("Failed to save output: %v", err)
	}

	fmt.Printf("\nBlending completed in %.2f seconds using %d cores\n",
		blendTime.Seconds(), cfg.Processing.NumWorkers)
	fmt.Printf("Output saved to: %s\n", *outputName)

	// Report per-channel similarity of the result against both sources.
	// A hard mask should leave the output close to one source inside
	// the mask and close to the other outside it; the numbers give a
	// quick sanity check without opening the image.
	if cfg.Output.Verbose {
		fmt.Println("\nBlend statistics:")
		fmt.Println("=================")
		fmt.Printf("RMSE vs first image:  R=%.4f G=%.4f B=%.4f\n",
			blend.RMSE(out.R, im1.R), blend.RMSE(out.G, im1.G), blend.RMSE(out.B, im1.B))
		fmt.Printf("RMSE vs second image: R=%.4f G=%.4f B=%.4f\n",
			blend.RMSE(out.R, im2.R), blend.RMSE(out.G, im2.G), blend.RMSE(out.B, im2.B))
		fmt.Printf("SSIM vs first image:  R=%.4f G=%.4f B=%.4f\n",
			blend.SSIM(out.R, im1.R), blend.SSIM(out.G, im1.G), blend.SSIM(out.B, im1.B))
		fmt.Printf("SSIM vs second image: R=%.4f G=%.4f B=%.4f\n",
			blend.SSIM(out.R, im2.R), blend.SSIM(out.G, im2.G), blend.SSIM(out.B, im2.B))
	}

	// Optionally render pyramid mosaics for inspection
	if cfg.Output.RenderPyramids {
		fmt.Println("\nRendering pyramid mosaics...")
		if err := os.MkdirAll(cfg.Output.MosaicDir, 0755); err != nil {
			log.Fatalf("Failed to create mosaic directory: %v", err)
		}

		gray := imgio.GrayFromRGB(im1)
		gaussPyr, _, err := pyramid.BuildGaussian(gray, cfg.Blend.MaxLevels, cfg.Blend.FilterSizeImage)
		if err != nil {
			log.Fatalf("Failed to build Gaussian pyramid: %v", err)
		}
		lapPyr, _, err := pyramid.BuildLaplacian(gray, cfg.Blend.MaxLevels, cfg.Blend.FilterSizeImage)
		if err != nil {
			log.Fatalf("Failed to build Laplacian pyramid: %v", err)
		}
		maskPyr, _, err := pyramid.BuildGaussian(mask, cfg.Blend.MaxLevels, cfg.Blend.FilterSizeMask)
		if err != nil {
			log.Fatalf("Failed to build mask pyramid: %v", err)
		}

		mosaics := []struct {
			name string
			pyr  models.Pyramid
		}{
			{"gaussian.png", gaussPyr},
			{"laplacian.png", lapPyr},
			{"mask.png", maskPyr},
		}
		for _, m := range mosaics {
			path := filepath.Join(cfg.Output.MosaicDir, m.name)
			if err := render.SaveMosaic(m.pyr, cfg.Output.MosaicLevels, path); err != nil {
				log.Printf("Warning: Failed to save %s: %v", m.name, err)
				continue
			}
			fmt.Printf("Saved %s\n", path)
		}
	}
}

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/echoflaresat/raytrace/config"
	"github.com/echoflaresat/raytrace/earth"
	"github.com/echoflaresat/raytrace/render"
	"github.com/echoflaresat/raytrace/texture"
)

type flags struct {
	scene         *string
	width, height *int
	out           *string
	timeStr       *string
	day, night    *string
	jobs          *string
	workers       *int
	verbose       *bool
	showHelp      *bool
}

func defineFlags() flags {
	return flags{
		scene:  flag.String("scene", config.SceneGradient, "Scene to render: gradient or daylight"),
		width:  flag.Int("width", config.DefaultWidth, "Image width in pixels"),
		height: flag.Int("height", config.DefaultHeight, "Image height in pixels"),
		out:    flag.String("out", "image.ppm", "Output PPM file path"),

		timeStr: flag.String("time", "", "Time in RFC3339 format (e.g., 2025-08-02T15:04:05Z); defaults to now"),
		day:     flag.String("day", "", "Day texture path (TIFF, JPEG or PNG)"),
		night:   flag.String("night", "", "Night texture path (TIFF, JPEG or PNG)"),

		jobs:    flag.String("jobs", "", "JSON file listing several images to render"),
		workers: flag.Int("workers", runtime.GOMAXPROCS(0), "Images rendered at the same time with -jobs"),

		verbose:  flag.Bool("v", false, "Log render progress"),
		showHelp: flag.Bool("h", false, "Show this help message"),
	}
}

func printHelp() {
	fmt.Fprintf(os.Stderr, `Raytrace - plain PPM image generator

Usage:
  %[1]s [options]

`, os.Args[0])

	printGroup("Image Options", []string{"scene", "width", "height", "out"})
	printGroup("Daylight Options", []string{"time", "day", "night"})
	printGroup("Batch", []string{"jobs", "workers"})
	printGroup("Misc", []string{"v", "h"})
}

func printGroup(title string, keys []string) {
	fmt.Fprintf(os.Stderr, "%s:\n", title)
	for _, name := range keys {
		if f := flag.Lookup(name); f != nil {
			fmt.Fprintf(os.Stderr, "  -%-8s %s (default %q)\n", f.Name, f.Usage, f.DefValue)
		}
	}
	fmt.Fprintln(os.Stderr)
}

func main() {
	cfg := defineFlags()
	flag.Usage = printHelp
	flag.Parse()

	if *cfg.showHelp {
		printHelp()
		return
	}

	level := slog.LevelInfo
	if *cfg.verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	jobs, err := collectJobs(cfg)
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := runJobs(ctx, jobs, *cfg.workers); err != nil {
		log.Fatal(err)
	}
}

// collectJobs returns the jobs from -jobs, or a single job built from the image flags.
func collectJobs(cfg flags) ([]config.Job, error) {
	if *cfg.jobs != "" {
		return config.LoadJobs(*cfg.jobs)
	}

	job := config.Job{
		Scene:  *cfg.scene,
		Width:  *cfg.width,
		Height: *cfg.height,
		Out:    *cfg.out,
		Time:   *cfg.timeStr,
		Day:    *cfg.day,
		Night:  *cfg.night,
	}
	job.Resolve(0)
	if err := job.Validate(); err != nil {
		return nil, err
	}
	return []config.Job{job}, nil
}

// runJobs renders every job, at most workers at a time.
// Each image is rendered on a single goroutine; the first failure cancels the rest.
func runJobs(ctx context.Context, jobs []config.Job, workers int) error {
	if workers <= 0 {
		workers = 1
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, job := range jobs {
		g.Go(func() error {
			start := time.Now()
			shader, err := buildShader(job)
			if err != nil {
				return fmt.Errorf("job %s: %w", job.Name, err)
			}
			if err := render.RenderFile(ctx, job.Out, job.Width, job.Height, shader); err != nil {
				return fmt.Errorf("job %s: %w", job.Name, err)
			}
			slog.Info("image written", "job", job.Name, "path", job.Out,
				"width", job.Width, "height", job.Height, "elapsed", time.Since(start))
			return nil
		})
	}
	return g.Wait()
}

func buildShader(job config.Job) (render.Shader, error) {
	switch job.Scene {
	case config.SceneGradient:
		return render.Gradient{}, nil
	case config.SceneDaylight:
		t, err := config.ParseTime(job.Time)
		if err != nil {
			return nil, err
		}
		d := render.NewDaylight(earth.SunDirection(t))
		if d.Day, err = loadTexture(job.Day, job.Width, job.Height); err != nil {
			return nil, err
		}
		if d.Night, err = loadTexture(job.Night, job.Width, job.Height); err != nil {
			return nil, err
		}
		return d, nil
	}
	return nil, fmt.Errorf("%w: %q", config.ErrUnknownScene, job.Scene)
}

// loadTexture loads path resampled to the output grid; an empty path yields nil.
func loadTexture(path string, width, height int) (*texture.Texture, error) {
	if path == "" {
		return nil, nil
	}
	tex, err := texture.Load(path)
	if err != nil {
		return nil, err
	}
	return tex.Resize(width, height), nil
}

package batch

import (
	"fmt"
	"image/color"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"mesh-rasterizer/internal/config"
	"mesh-rasterizer/internal/imageio"
	"mesh-rasterizer/internal/logging"
	"mesh-rasterizer/internal/postprocess"
	"mesh-rasterizer/internal/raster"
	"mesh-rasterizer/internal/texture"
)

// Config holds all shared resources for a batch run.
type Config struct {
	TexResolver texture.Resolver
	Workers     int
	Progress    time.Duration // ticker period; 0 means 2s
}

// Result holds the outcome of rendering one job.
type Result struct {
	Name     string        `json:"name"`
	Output   string        `json:"output"`
	Width    int           `json:"width"`
	Height   int           `json:"height"`
	Stats    raster.Stats  `json:"stats"`
	Duration time.Duration `json:"duration"`
	Success  bool          `json:"success"`
	Error    string        `json:"error,omitempty"`
}

// Run renders all jobs using a worker pool. Each job is rasterized on a
// single goroutine; jobs run concurrently. Results keep job order.
func Run(cfg Config, jobs []config.Config) []Result {
	total := len(jobs)
	results := make([]Result, total)
	var processed atomic.Int64

	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}
	period := cfg.Progress
	if period <= 0 {
		period = 2 * time.Second
	}

	log := logging.Logger().With("pkg", "batch")
	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(period)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					elapsed := time.Since(start).Seconds()
					rate := float64(p) / elapsed
					fmt.Printf("  [%d/%d] %.2f renders/sec\n", p, total, rate)
				}
			}
		}
	}()

	// Worker pool
	jobChan := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobChan {
				results[idx] = processJob(cfg, jobs[idx])
				processed.Add(1)
				r := results[idx]
				if r.Success {
					log.Info("rendered", "name", r.Name, "output", r.Output, "fragments", r.Stats.Fragments, "elapsed", r.Duration)
				} else {
					log.Warn("render failed", "name", r.Name, "err", r.Error)
				}
			}
		}()
	}

	// Send work
	for i := range jobs {
		jobChan <- i
	}
	close(jobChan)

	wg.Wait()
	close(done)

	return results
}

func processJob(cfg Config, job config.Config) Result {
	start := time.Now()
	res := Result{
		Name:   job.Name,
		Output: job.Output,
		Width:  job.Width,
		Height: job.Height,
	}
	fail := func(err error) Result {
		res.Error = err.Error()
		res.Duration = time.Since(start)
		return res
	}

	ss := max(job.Supersample, 1)
	if err := raster.CheckSize(job.Width*ss, job.Height*ss); err != nil {
		return fail(fmt.Errorf("batch: scene %s: %w", job.Name, err))
	}

	scene, err := BuildScene(job)
	if err != nil {
		return fail(err)
	}

	fs := &raster.FragmentStage{
		Textures:       cfg.TexResolver,
		Gamma:          job.Gamma,
		AmbientDamping: job.AmbientDamping,
	}
	surface, stats := raster.Render(scene, job.Width*ss, job.Height*ss, fs)
	res.Stats = stats

	img := surface.Image()
	if ss > 1 {
		img = postprocess.Downsample(img, job.Width, job.Height)
	}

	if job.Caption {
		postprocess.Caption(img, []string{
			job.Name,
			fmt.Sprintf("faces %d drawn %d", stats.Faces, stats.Drawn),
			fmt.Sprintf("fragments %d", stats.Fragments),
		}, color.White)
	}

	opt := &imageio.Options{Quality: job.FormatQuality}
	if err := imageio.Save(job.Output, img, opt); err != nil {
		return fail(err)
	}

	if job.Thumbnail > 0 {
		thumb := postprocess.Thumbnail(img, job.Thumbnail)
		if err := imageio.Save(ThumbnailPath(job.Output), thumb, opt); err != nil {
			return fail(err)
		}
	}

	res.Success = true
	res.Duration = time.Since(start)
	return res
}

// ThumbnailPath derives the thumbnail file name for an output path.
func ThumbnailPath(output string) string {
	ext := filepath.Ext(output)
	return strings.TrimSuffix(output, ext) + "_thumb.webp"
}

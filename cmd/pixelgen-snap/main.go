package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/louis-kldzj/game-tools/internal/app"
	"github.com/louis-kldzj/game-tools/internal/config"
	"github.com/louis-kldzj/game-tools/internal/engine"
	"github.com/louis-kldzj/game-tools/internal/geometry"
	"github.com/louis-kldzj/game-tools/internal/render"
)

type job struct {
	seed int64
}

type result struct {
	seed      int64
	path      string
	instances int
	err       error
}

type snapConfig struct {
	opts   config.Options
	preset geometry.Preset
	ticks  int
	tps    int
	outDir string
}

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	preset := flag.String("preset", "", "resolution preset (hd, fhd, qhd, 4k, square); overrides -width/-height")
	seeds := flag.Int("seeds", 4, "number of consecutive seeds to render")
	ticks := flag.Int("ticks", 0, "ticks to advance before capturing")
	animate := flag.Bool("animate", false, "animate during the capture ticks")
	outDir := flag.String("out", "snapshots", "output directory")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	flag.Parse()

	logger, closeLog := cfg.OpenLogger()
	defer closeLog()

	opts, err := cfg.Options(logger)
	if err != nil {
		log.Fatalf("options: %v", err)
	}
	opts.Overlay = false
	opts.Animate = *animate

	p := geometry.Preset{Name: "custom", Width: cfg.Width, Height: cfg.Height}
	if *preset != "" {
		var ok bool
		if p, ok = geometry.LookupPreset(*preset); !ok {
			log.Fatalf("unknown preset %q", *preset)
		}
	}
	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatal(err)
	}
	sc := snapConfig{opts: opts, preset: p, ticks: *ticks, tps: cfg.TPS, outDir: *outDir}
	first := cfg.ResolvedSeed()

	fmt.Printf("Rendering %d seeds at %dx%d (%d workers, %d ticks)\n", *seeds, p.Width, p.Height, *workers, *ticks)

	jobs := make(chan job)
	results := make(chan result)
	var wg sync.WaitGroup

	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			raster := render.New()
			for j := range jobs {
				results <- snapshot(sc, raster, j.seed)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for i := 0; i < *seeds; i++ {
			jobs <- job{seed: first + int64(i)}
		}
		close(jobs)
	}()

	start := time.Now()
	var all []result
	failed := 0
	for res := range results {
		all = append(all, res)
		if res.err != nil {
			failed++
			logger.Error("snapshot failed", zap.Int64("seed", res.seed), zap.Error(res.err))
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].seed < all[j].seed })

	for _, res := range all {
		if res.err != nil {
			fmt.Printf("seed %d: %v\n", res.seed, res.err)
			continue
		}
		fmt.Printf("seed %d: %s (%d instances)\n", res.seed, res.path, res.instances)
	}
	fmt.Printf("\n%d written, %d failed in %s\n", len(all)-failed, failed, time.Since(start).Round(time.Millisecond))
	if failed > 0 {
		os.Exit(1)
	}
}

// snapshot renders one seed and writes it as PNG.
func snapshot(sc snapConfig, raster *render.Rasterizer, seed int64) result {
	res := result{seed: seed}
	eng, err := engine.New(sc.opts, engine.WithSeed(seed))
	if err != nil {
		res.err = err
		return res
	}
	g := sc.preset.Geometry()
	if err := eng.Sync(g.Width, g.Height); err != nil {
		res.err = err
		return res
	}
	eng.Startup()
	eng.Tick(0)
	dt := 1 / float64(max(sc.tps, 1))
	for i := 0; i < sc.ticks; i++ {
		eng.Tick(dt)
	}
	frame := eng.Snapshot()
	res.instances = len(frame.Instances)
	name := fmt.Sprintf("pixelgen-%s-%s-%d.png", sc.opts.Palette, sc.preset.Name, seed)
	res.path = filepath.Join(sc.outDir, name)
	res.err = app.WritePNG(res.path, raster.Render(frame))
	return res
}

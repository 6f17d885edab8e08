package main

import (
	"bufio"
	"encoding/hex"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"tileworld.ai/internal/persistence/archive"
	"tileworld.ai/internal/persistence/indexdb"
	persistlog "tileworld.ai/internal/persistence/log"
	"tileworld.ai/internal/persistence/snapshot"
	"tileworld.ai/internal/sim/biome"
	"tileworld.ai/internal/sim/grid"
	"tileworld.ai/internal/sim/props"
	"tileworld.ai/internal/sim/tuning"
)

func main() {
	var (
		seed       = flag.Int64("seed", 1337, "world seed")
		width      = flag.Int("width", 0, "world width in tiles (0 = tuning default)")
		height     = flag.Int("height", 0, "world height in tiles (0 = tuning default)")
		tuningPath = flag.String("tuning", "", "path to tuning.yaml (optional)")
		outPath    = flag.String("out", "", "write a snapshot to this path (optional)")
		ppmPath    = flag.String("ppm", "", "write a biome color preview to this path (optional)")
		dbPath     = flag.String("db", "", "snapshot index db path (default: <data>/index.db)")
		disableDB  = flag.Bool("disable_db", false, "skip recording snapshot metadata")
		dataDir    = flag.String("data", "./data", "runtime data directory (run log, archives, index db)")
		doArchive  = flag.Bool("archive", false, "copy the snapshot into <data>/archives/seed_<seed>/")
	)
	flag.Parse()

	logger := log.New(os.Stdout, "[worldgen] ", log.LstdFlags|log.Lmicroseconds)

	tun := tuning.Default()
	if strings.TrimSpace(*tuningPath) != "" {
		var err error
		tun, err = tuning.Load(*tuningPath)
		if err != nil {
			logger.Fatalf("load tuning: %v", err)
		}
	}
	if *width <= 0 {
		*width = tun.WorldWidth
	}
	if *height <= 0 {
		*height = tun.WorldHeight
	}

	cfg := grid.Config{
		Width:            *width,
		Height:           *height,
		Seed:             *seed,
		SampleResolution: tun.SampleResolution,
	}

	logger.Printf("generating %dx%d world, seed=%d", cfg.Width, cfg.Height, cfg.Seed)
	start := time.Now()
	gen := grid.StartGeneration(cfg)
	g, err := gen.Wait()
	if err != nil {
		logger.Fatalf("generate: %v", err)
	}
	genMS := time.Since(start).Milliseconds()
	digest := g.Digest()
	logger.Printf("generated in %dms digest=%s", genMS, hex.EncodeToString(digest[:8]))

	printHistogram(logger, g)
	printPropStats(logger, g, cfg.Seed)

	if strings.TrimSpace(*ppmPath) != "" {
		if err := writePPM(*ppmPath, g); err != nil {
			logger.Fatalf("write ppm: %v", err)
		}
		logger.Printf("preview written to %s", *ppmPath)
	}

	if strings.TrimSpace(*outPath) == "" {
		return
	}
	if err := snapshot.Write(*outPath, g); err != nil {
		logger.Fatalf("write snapshot: %v", err)
	}
	logger.Printf("snapshot written to %s", *outPath)

	abs, err := filepath.Abs(*outPath)
	if err != nil {
		abs = *outPath
	}
	digestHex := hex.EncodeToString(digest[:])

	runs := persistlog.NewRunLogger(*dataDir)
	defer runs.Close()
	err = runs.WriteRun(persistlog.RunEntry{
		Seed:      cfg.Seed,
		Width:     g.Width(),
		Height:    g.Height(),
		Digest:    digestHex,
		GenMillis: genMS,
		Snapshot:  abs,
	})
	if err != nil {
		logger.Printf("run log: %v", err)
	}

	if *doArchive {
		dst, err := archive.ArchiveSnapshot(*dataDir, *outPath, snapshot.Header{
			Version: snapshot.Version,
			Width:   g.Width(),
			Height:  g.Height(),
			Seed:    cfg.Seed,
			Digest:  digestHex,
		})
		if err != nil {
			logger.Fatalf("archive snapshot: %v", err)
		}
		logger.Printf("snapshot archived to %s", dst)
	}

	if *disableDB {
		return
	}
	path := strings.TrimSpace(*dbPath)
	if path == "" {
		path = filepath.Join(*dataDir, "index.db")
	}
	idx, err := indexdb.OpenSQLite(path)
	if err != nil {
		logger.Fatalf("open index db: %v", err)
	}
	defer idx.Close()

	err = idx.RecordSnapshot(indexdb.SnapshotRow{
		Path:      abs,
		Seed:      cfg.Seed,
		Width:     g.Width(),
		Height:    g.Height(),
		Digest:    digestHex,
		GenMillis: genMS,
	})
	if err != nil {
		logger.Fatalf("record snapshot: %v", err)
	}
	logger.Printf("snapshot recorded in %s", path)
}

func printHistogram(logger *log.Logger, g *grid.Grid) {
	counts := make(map[biome.Biome]int)
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			b, _ := g.BiomeAt(x, y)
			counts[b]++
		}
	}
	keys := make([]biome.Biome, 0, len(counts))
	for b := range counts {
		keys = append(keys, b)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	total := g.Width() * g.Height()
	for _, b := range keys {
		logger.Printf("  %-20s %7d tiles (%5.1f%%)", b, counts[b], 100*float64(counts[b])/float64(total))
	}
}

func printPropStats(logger *log.Logger, g *grid.Grid, seed int64) {
	counts := make(map[props.Kind]int)
	total := 0
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			b, _ := g.BiomeAt(x, y)
			for _, k := range props.At(seed, b, x, y) {
				counts[k]++
				total++
			}
		}
	}
	logger.Printf("props: %d total", total)
	for k := props.Kind(0); k < props.KindCount; k++ {
		if counts[k] > 0 {
			logger.Printf("  %-12s %7d", k, counts[k])
		}
	}
}

// writePPM emits a plain P3 image using the biome palette, one pixel per tile.
func writePPM(path string, g *grid.Grid) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "P3\n%d %d\n255\n", g.Width(), g.Height())
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			b, _ := g.BiomeAt(x, y)
			r, gg, bb := b.Color()
			fmt.Fprintf(w, "%d %d %d\n", r, gg, bb)
		}
	}
	if err := w.Flush(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

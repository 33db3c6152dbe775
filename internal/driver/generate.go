package driver

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"mosdl/internal/loader"
	"mosdl/internal/observ"
	"mosdl/internal/pipeline"
	"mosdl/internal/render"
)

// GenerateOptions configures a generation run.
type GenerateOptions struct {
	// Render holds the options handed to the render core.
	Render render.Options
	// OutputDir is where area files are written. Ignored when Stdout is set.
	OutputDir string
	// Stdout keeps the rendered text in the results instead of writing files.
	Stdout bool
	// SkipCache bypasses the render cache for both reads and writes.
	SkipCache bool
	// Cache is the optional render cache. Nil disables caching.
	Cache *DiskCache
	// Progress receives per-file events. Nil discards them.
	Progress pipeline.ProgressSink
	// Timer records phase durations when non-nil.
	Timer *observ.Timer
}

func (o GenerateOptions) sink() pipeline.ProgressSink {
	if o.Progress == nil {
		return pipeline.NopSink{}
	}
	return o.Progress
}

// AreaOutput is one rendered area of an input file.
type AreaOutput struct {
	Name string
	File string
	Text []byte
}

// FileResult captures the outcome of one input file.
type FileResult struct {
	Path      string
	Areas     []AreaOutput
	FromCache bool
}

// CollectInputs expands files and directories into a sorted list of .xml
// specification files.
func CollectInputs(paths []string) ([]string, error) {
	var files []string
	seen := make(map[string]struct{})
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			if _, dup := seen[path]; !dup {
				seen[path] = struct{}{}
				files = append(files, path)
			}
			continue
		}
		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !strings.HasSuffix(p, ".xml") {
				return nil
			}
			if _, dup := seen[p]; !dup {
				seen[p] = struct{}{}
				files = append(files, p)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	sort.Strings(files)
	return files, nil
}

// Generate runs the full pipeline for the given inputs. Results come back in
// input order. The first failure aborts the run: partially written output of
// the failing area must be treated as discarded.
func Generate(ctx context.Context, paths []string, opts GenerateOptions) ([]FileResult, error) {
	var collectPhase int
	if opts.Timer != nil {
		collectPhase = opts.Timer.Begin("collect")
	}
	files, err := CollectInputs(paths)
	if opts.Timer != nil {
		opts.Timer.End(collectPhase, fmt.Sprintf("%d file(s)", len(files)))
	}
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, errors.New("generate: no specification files found")
	}

	sink := opts.sink()
	for _, file := range files {
		sink.OnEvent(pipeline.Event{File: file, Stage: pipeline.StageLoad, Status: pipeline.StatusQueued})
	}

	var renderPhase int
	if opts.Timer != nil {
		renderPhase = opts.Timer.Begin("load+render")
	}
	results := make([]FileResult, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, file := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			result, err := renderFile(file, opts)
			if err != nil {
				sink.OnEvent(pipeline.Event{File: file, Stage: pipeline.StageRender, Status: pipeline.StatusError, Err: err})
				return err
			}
			results[i] = result
			status := pipeline.StatusDone
			if !opts.Stdout {
				// Writing still pending, keep the file in a working state.
				status = pipeline.StatusWorking
			}
			sink.OnEvent(pipeline.Event{File: file, Stage: pipeline.StageRender, Status: status})
			return nil
		})
	}
	waitErr := g.Wait()
	if opts.Timer != nil {
		opts.Timer.End(renderPhase, "")
	}
	if waitErr != nil {
		return nil, waitErr
	}

	if opts.Stdout {
		return results, nil
	}

	var writePhase int
	if opts.Timer != nil {
		writePhase = opts.Timer.Begin("write")
	}
	err = writeOutputs(results, opts.OutputDir, sink)
	if opts.Timer != nil {
		opts.Timer.End(writePhase, "")
	}
	if err != nil {
		return nil, err
	}
	return results, nil
}

// renderFile loads one specification file and renders all of its areas,
// consulting the render cache first.
func renderFile(path string, opts GenerateOptions) (FileResult, error) {
	sink := opts.sink()
	sink.OnEvent(pipeline.Event{File: path, Stage: pipeline.StageLoad, Status: pipeline.StatusWorking})

	data, err := os.ReadFile(path)
	if err != nil {
		return FileResult{}, fmt.Errorf("generate %s: %w", path, err)
	}
	key := sha256.Sum256(data)

	if opts.Cache != nil && !opts.SkipCache {
		var payload cachePayload
		hit, err := opts.Cache.Get(key, &payload)
		if err != nil {
			log.Debug().Err(err).Str("path", path).Msg("render cache read failed")
		}
		if hit && payload.Schema == cacheSchemaVersion && payload.DocMode == uint8(opts.Render.Doc) {
			log.Debug().Str("path", path).Msg("render cache hit")
			result := FileResult{Path: path, FromCache: true}
			for _, area := range payload.Areas {
				result.Areas = append(result.Areas, AreaOutput{Name: area.Name, File: area.File, Text: area.Text})
			}
			return result, nil
		}
	}

	model, err := loader.Parse(data)
	if err != nil {
		return FileResult{}, fmt.Errorf("generate %s: %w", path, err)
	}

	result := FileResult{Path: path}
	for _, area := range model.Areas {
		result.Areas = append(result.Areas, AreaOutput{
			Name: area.Name,
			File: render.FileName(area),
			Text: render.RenderArea(area, opts.Render),
		})
	}
	log.Debug().Str("path", path).Int("areas", len(result.Areas)).Msg("rendered specification")

	if opts.Cache != nil && !opts.SkipCache {
		payload := cachePayload{Schema: cacheSchemaVersion, DocMode: uint8(opts.Render.Doc)}
		for _, area := range result.Areas {
			payload.Areas = append(payload.Areas, cachedArea{Name: area.Name, File: area.File, Text: area.Text})
		}
		if err := opts.Cache.Put(key, &payload); err != nil {
			log.Debug().Err(err).Str("path", path).Msg("render cache write failed")
		}
	}
	return result, nil
}

// writeOutputs flushes rendered areas to disk in input order. Any failure
// aborts the remaining writes.
func writeOutputs(results []FileResult, dir string, sink pipeline.ProgressSink) error {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("generate: create output directory: %w", err)
	}
	for _, result := range results {
		sink.OnEvent(pipeline.Event{File: result.Path, Stage: pipeline.StageWrite, Status: pipeline.StatusWorking})
		for _, area := range result.Areas {
			target := filepath.Join(dir, area.File)
			if err := os.WriteFile(target, area.Text, 0o644); err != nil {
				wrapped := fmt.Errorf("generate %s: write %s: %w", result.Path, target, err)
				sink.OnEvent(pipeline.Event{File: result.Path, Stage: pipeline.StageWrite, Status: pipeline.StatusError, Err: wrapped})
				return wrapped
			}
			log.Debug().Str("area", area.Name).Str("file", target).Msg("wrote MOSDL file")
		}
		sink.OnEvent(pipeline.Event{File: result.Path, Stage: pipeline.StageWrite, Status: pipeline.StatusDone})
	}
	return nil
}

package preview

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// WriteFrames renders every frame with render and writes it to dir as
// frame_0000.png, frame_0001.png and so on. Frames are encoded on up to
// workers goroutines; zero means GOMAXPROCS. It returns the written paths
// in frame order.
func WriteFrames(ctx context.Context, dir string, frames []Frame, workers int, render func(Frame) image.Image) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	paths := make([]string, len(frames))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, f := range frames {
		paths[i] = filepath.Join(dir, fmt.Sprintf("frame_%04d.png", f.Index))
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return writePNG(paths[i], render(f))
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}

func writePNG(path string, img image.Image) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
	}()
	if err := png.Encode(file, img); err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	return nil
}

package commands

import (
	"context"
	stderrors "errors"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/go-drift/animwrap/pkg/config"
	"github.com/go-drift/animwrap/pkg/preview"
)

// swatchColor fills the default child when no --image is given.
var swatchColor = color.RGBA{0x4f, 0x9d, 0xff, 0xff}

type previewOptions struct {
	names       []string
	fps         int
	out         string
	width       int
	height      int
	image       string
	workers     int
	maxDuration time.Duration
	watch       bool
}

func newPreviewCommand(g *globals) *cobra.Command {
	var opts previewOptions

	cmd := &cobra.Command{
		Use:   "preview [file]",
		Short: "Render animations to PNG frames",
		Long: `Render animations to PNG frames on a simulated clock.

ON_CLICK animations are pressed once, DRAGGABLE animations are dragged and
released, ON_LOAD animations start on mount. Frames are written to
<out>/<name>/frame_NNNN.png until the run ends. With --watch the document
is re-rendered whenever it changes.`,
		Example: `  # Render every animation in the project's document
  animwrap preview

  # Render one animation at 60 fps using a custom child image
  animwrap preview --name pop --fps 60 --image button.png ui.yaml

  # Re-render on save
  animwrap preview --watch`,
		Args: cobra.MaximumNArgs(1),
		PreRun: func(cmd *cobra.Command, _ []string) {
			if g.project == nil {
				return
			}
			p := g.project.Preview
			flags := cmd.Flags()
			if !flags.Changed("fps") {
				opts.fps = p.FPS
			}
			if !flags.Changed("out") {
				opts.out = p.Out
				if !filepath.IsAbs(opts.out) {
					opts.out = filepath.Join(g.project.Root, opts.out)
				}
			}
			if !flags.Changed("width") {
				opts.width = p.Width
			}
			if !flags.Changed("height") {
				opts.height = p.Height
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			path := g.documentPath(args)
			logger := g.component("preview")
			ctx := cmd.Context()

			if !opts.watch {
				return renderDocument(ctx, logger, path, opts)
			}
			if err := renderDocument(ctx, logger, path, opts); err != nil {
				logger.Error().Err(err).Msg("render failed")
			}
			w := &watcher{logger: logger, delay: watchDelay}
			return w.Watch(ctx, path, func() error {
				return renderDocument(ctx, logger, path, opts)
			})
		},
	}

	cmd.Flags().StringSliceVarP(&opts.names, "name", "n", nil, "animations to render (default all)")
	cmd.Flags().IntVar(&opts.fps, "fps", 30, "frames per second")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "preview", "output directory")
	cmd.Flags().IntVar(&opts.width, "width", preview.DefaultCanvas.Width, "canvas width in pixels")
	cmd.Flags().IntVar(&opts.height, "height", preview.DefaultCanvas.Height, "canvas height in pixels")
	cmd.Flags().StringVar(&opts.image, "image", "", "child image (PNG or JPEG); default is a solid swatch")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "PNG encoder goroutines (default GOMAXPROCS)")
	cmd.Flags().DurationVar(&opts.maxDuration, "max-duration", 10*time.Second, "stop sampling after this long")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "re-render when the document changes")

	return cmd
}

func renderDocument(ctx context.Context, logger zerolog.Logger, path string, opts previewOptions) error {
	doc, err := config.Load(path)
	if err != nil {
		return err
	}
	names := opts.names
	if len(names) == 0 {
		names = doc.Names()
	}

	canvas := preview.DefaultCanvas
	canvas.Width, canvas.Height = opts.width, opts.height
	child, err := loadChild(opts.image, min(canvas.Width, canvas.Height)/3)
	if err != nil {
		return err
	}

	for _, name := range names {
		cfg, err := doc.Lookup(name)
		if err != nil {
			return err
		}
		frames, err := preview.Sample(cfg, preview.Options{FPS: opts.fps, MaxDuration: opts.maxDuration, Logger: &logger})
		switch {
		case stderrors.Is(err, preview.ErrNotSettled):
			logger.Warn().Str("animation", name).Dur("max_duration", opts.maxDuration).Msg("animation did not settle; writing partial frames")
		case err != nil:
			return fmt.Errorf("animation %q: %w", name, err)
		}

		dir := filepath.Join(opts.out, name)
		paths, err := preview.WriteFrames(ctx, dir, frames, opts.workers, func(f preview.Frame) image.Image {
			return preview.Render(canvas, child, f.Transform)
		})
		if err != nil {
			return fmt.Errorf("animation %q: %w", name, err)
		}
		logger.Info().
			Str("animation", name).
			Str("type", string(cfg.Type())).
			Int("frames", len(paths)).
			Str("dir", dir).
			Msg("preview written")
	}
	return nil
}

// loadChild decodes path, or returns a swatch of side size when path is
// empty.
func loadChild(path string, size int) (image.Image, error) {
	if path == "" {
		return preview.Swatch(max(size, 1), swatchColor), nil
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open child image: %w", err)
	}
	defer file.Close()
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return img, nil
}

package commands

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"github.com/go-drift/animwrap/pkg/config"
	"github.com/go-drift/animwrap/pkg/host/ebitenhost"
	"github.com/go-drift/animwrap/pkg/telemetry"
	"github.com/go-drift/animwrap/pkg/wrapper"
)

func newDemoCommand(g *globals) *cobra.Command {
	var (
		name        string
		image       string
		width       int
		height      int
		hud         bool
		metricsAddr string
	)

	cmd := &cobra.Command{
		Use:   "demo [file]",
		Short: "Play an animation in a window",
		Long: `Mount one animation in a window and drive it with the mouse.

Click the child to trigger ON_CLICK animations, or drag it when it is
DRAGGABLE. Space triggers the animation, S stops it, R resets it and F
finishes it. With --metrics-addr the run counters are served in the
Prometheus format on /metrics while the window is open.`,
		Example: `  # Play the only animation in the project's document
  animwrap demo

  # Play "pop" and expose metrics
  animwrap demo --name pop --metrics-addr :9090`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := g.component("demo")

			doc, err := config.Load(g.documentPath(args))
			if err != nil {
				return err
			}
			if name == "" {
				names := doc.Names()
				if len(names) != 1 {
					return fmt.Errorf("--name is required when the document has %d animations", len(names))
				}
				name = names[0]
			}
			cfg, err := doc.Lookup(name)
			if err != nil {
				return err
			}

			opts := wrapper.Options{Logger: &logger}
			if metricsAddr != "" {
				metrics := telemetry.NewMetrics(telemetry.MetricsConfig{})
				opts.Observer = metrics
				go func() {
					if err := metrics.Serve(ctx, metricsAddr); err != nil {
						logger.Error().Err(err).Str("addr", metricsAddr).Msg("metrics server failed")
					}
				}()
				logger.Info().Str("addr", metricsAddr).Msg("serving metrics")
			}

			view := wrapper.NewView(opts)
			if err := view.Mount(wrapper.Props{
				Config:   cfg,
				Children: []wrapper.Node{name},
				OnAnimationFinish: func() {
					logger.Info().Str("animation", name).Msg("animation finished")
				},
			}); err != nil {
				return err
			}
			defer view.Unmount()

			src, err := loadChild(image, min(width, height)/4)
			if err != nil {
				return err
			}
			game := ebitenhost.New(view, ebiten.NewImageFromImage(src), ebitenhost.Options{
				Width:  width,
				Height: height,
				HUD:    hud,
				Logger: &logger,
				Done:   ctx.Done(),
			})
			return game.Run("animwrap: " + name)
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "animation to play")
	cmd.Flags().StringVar(&image, "image", "", "child image (PNG or JPEG); default is a solid swatch")
	cmd.Flags().IntVar(&width, "width", 640, "window width")
	cmd.Flags().IntVar(&height, "height", 480, "window height")
	cmd.Flags().BoolVar(&hud, "hud", true, "show lifecycle status")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")

	return cmd
}

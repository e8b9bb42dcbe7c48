package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/go-drift/animwrap/pkg/config"
)

func newInfoCommand(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "info [file]",
		Short: "Show project settings and the animations in a document",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)

			if p := g.project; p != nil {
				fmt.Fprintf(tw, "project\t%s\n", p.Name)
				fmt.Fprintf(tw, "module\t%s\n", p.ModulePath)
				fmt.Fprintf(tw, "root\t%s\n", p.Root)
				fmt.Fprintf(tw, "preview\t%dx%d @ %d fps -> %s\n", p.Preview.Width, p.Preview.Height, p.Preview.FPS, p.Preview.Out)
			} else {
				fmt.Fprintln(tw, "project\t(not in a Go module)")
			}

			path := g.documentPath(args)
			fmt.Fprintf(tw, "document\t%s\n", path)

			doc, err := config.Load(path)
			if err != nil {
				tw.Flush()
				return err
			}

			fmt.Fprintln(tw)
			fmt.Fprintln(tw, "NAME\tTYPE\tTRIGGER\tDURATION\tEASING")
			for _, name := range doc.Names() {
				cfg := doc.Animations[name]
				base := cfg.Common()
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
					name, cfg.Type(), base.Trigger(), base.Duration.Std(), base.Interpolation)
			}
			return tw.Flush()
		},
	}
}

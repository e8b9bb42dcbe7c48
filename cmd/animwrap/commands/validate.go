package commands

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/animwrap/pkg/config"
	"github.com/go-drift/animwrap/pkg/wrapper"
)

// validation is the outcome for one named animation.
type validation struct {
	Name string
	Type config.Type
	Err  error
}

func newValidateCommand(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [file]",
		Short: "Validate an animation document",
		Long: `Validate every animation in a document.

Each animation is decoded, range-checked and mounted on a throwaway
wrapper, so an animation that validates can always be mounted. All
animations are checked even when an earlier one fails.`,
		Example: `  # Validate the project's document
  animwrap validate

  # Validate a specific file
  animwrap validate ./ui/buttons.yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := g.documentPath(args)
			logger := g.component("validate")
			logger.Debug().Str("path", path).Msg("validating document")

			results, err := validateFile(path)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			failed := 0
			for _, r := range results {
				if r.Err != nil {
					failed++
					fmt.Fprintf(out, "FAIL  %s: %v\n", r.Name, r.Err)
					continue
				}
				fmt.Fprintf(out, "ok    %s (%s)\n", r.Name, r.Type)
			}
			if len(results) == 0 {
				logger.Warn().Str("path", path).Msg("document has no animations")
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d animations in %s are invalid", failed, len(results), path)
			}
			return nil
		},
	}
	return cmd
}

// validateFile checks each animation in path independently.
func validateFile(path string) ([]validation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var raw struct {
		Animations map[string]yaml.Node `yaml:"animations"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	names := make([]string, 0, len(raw.Animations))
	for name := range raw.Animations {
		names = append(names, name)
	}
	sort.Strings(names)

	results := make([]validation, 0, len(names))
	for _, name := range names {
		node := raw.Animations[name]
		r := validation{Name: name}
		cfg, err := config.DecodeNode(&node)
		if err == nil {
			r.Type = cfg.Type()
			err = dryMount(cfg)
		}
		r.Err = err
		results = append(results, r)
	}
	return results, nil
}

// dryMount mounts cfg on a detached view and unmounts it again.
func dryMount(cfg config.Config) error {
	view := wrapper.NewView(wrapper.Options{})
	if err := view.Mount(wrapper.Props{Config: cfg, Children: []wrapper.Node{"child"}}); err != nil {
		return err
	}
	view.Unmount()
	return nil
}

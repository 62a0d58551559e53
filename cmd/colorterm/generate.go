package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/alexisbeaulieu97/colorterm/internal/schema"
	"github.com/alexisbeaulieu97/colorterm/internal/store"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

type generateOptions struct {
	format string
	count  int
}

// generatedPalette is the printed form of one history entry.
type generatedPalette struct {
	ID            string            `json:"id" yaml:"id"`
	Mode          string            `json:"mode" yaml:"mode"`
	Target        string            `json:"target" yaml:"target"`
	Colors        map[string]string `json:"colors" yaml:"colors"`
	SelectedAlpha float64           `json:"selectedAlpha" yaml:"selectedAlpha"`
}

func newGenerateCmd(app *AppContext) *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate palettes and print their role mapping",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, app, opts)
		},
	}

	cmd.Flags().StringP("mode", "m", "", "Generation mode (cubehelix, random)")
	cmd.Flags().StringP("target", "t", "", "Target terminal (iterm, warp, hyper)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", formatText, "Output format (text, json, yaml)")
	cmd.Flags().IntVarP(&opts.count, "count", "n", 1, "Number of palettes to generate")
	bindFlag(cmd, "mode", "generator.mode")
	bindFlag(cmd, "target", "target")

	return cmd
}

func runGenerate(cmd *cobra.Command, app *AppContext, opts *generateOptions) error {
	switch opts.format {
	case formatText, formatJSON, formatYAML:
	default:
		return newCommandError("generate", "validating flags", fmt.Errorf("unknown format %q", opts.format), "Use --format text, json or yaml.")
	}
	if opts.count < 1 {
		return newCommandError("generate", "validating flags", fmt.Errorf("count must be at least 1, got %d", opts.count), "Pass a positive --count.")
	}

	ctx, logger := app.CommandContext(cmd, "command.generate")
	logger.Debug(ctx, "generate start", "mode", app.Config.Generator.Mode, "target", app.Config.Target, "count", opts.count)

	st := app.NewStore(logger)
	out := make([]generatedPalette, 0, opts.count)
	for i := 0; i < opts.count; i++ {
		if err := st.ChangeMode(ctx); err != nil {
			logger.Error(ctx, "generate command failed", "error", err)
			return newCommandError("generate", "generating palette", err, "Lower generator.min_contrast or raise generator.max_iterations.")
		}
		p, err := snapshot(st)
		if err != nil {
			return err
		}
		out = append(out, p)
	}

	return writePalettes(cmd.OutOrStdout(), opts.format, out)
}

func snapshot(st *store.Store) (generatedPalette, error) {
	entry, _ := st.Current()
	mapping, err := st.Mapping()
	if err != nil {
		return generatedPalette{}, err
	}
	alpha, err := st.SelectedAlpha()
	if err != nil {
		return generatedPalette{}, err
	}
	return generatedPalette{
		ID:            entry.ID.String(),
		Mode:          string(entry.Mode),
		Target:        string(st.Target()),
		Colors:        mapping,
		SelectedAlpha: alpha,
	}, nil
}

func writePalettes(w io.Writer, format string, palettes []generatedPalette) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(palettes)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(palettes); err != nil {
			return err
		}
		return enc.Close()
	}

	for i, p := range palettes {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "# %s %s %s\n", p.Mode, p.Target, p.ID)
		writeMapping(w, p.Target, p.Colors)
	}
	return nil
}

// writeMapping prints roles in schema order, one "role  value" line each.
func writeMapping(w io.Writer, target string, colors map[string]string) {
	roles := rolesFor(target)
	width := 0
	for _, r := range roles {
		width = max(width, len(r))
	}
	for _, r := range roles {
		fmt.Fprintf(w, "%-*s  %s\n", width, r, colors[r])
	}
}

func rolesFor(target string) []string {
	roles, err := schema.Roles(schema.Target(target))
	if err != nil {
		return nil
	}
	return roles
}

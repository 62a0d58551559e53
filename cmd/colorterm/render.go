package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/colorterm/internal/render"
	"github.com/alexisbeaulieu97/colorterm/pkg/diff"
)

type renderOptions struct {
	out  string
	diff bool
}

func newRenderCmd(app *AppContext) *cobra.Command {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a freshly generated theme file locally",
		Long: `Generate a palette and render the theme file of the target without the
render service. With --diff the file is not written; a unified diff against
the existing file is printed instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, app, opts)
		},
	}

	cmd.Flags().StringP("mode", "m", "", "Generation mode (cubehelix, random)")
	cmd.Flags().StringP("target", "t", "", "Target terminal (iterm, warp, hyper)")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "Theme file to write (defaults to the target's file name)")
	cmd.Flags().BoolVar(&opts.diff, "diff", false, "Print a diff against the existing file instead of writing it")
	bindFlag(cmd, "mode", "generator.mode")
	bindFlag(cmd, "target", "target")

	return cmd
}

func runRender(cmd *cobra.Command, app *AppContext, opts *renderOptions) error {
	ctx, logger := app.CommandContext(cmd, "command.render")

	st := app.NewStore(logger)
	if err := st.ChangeMode(ctx); err != nil {
		return newCommandError("render", "generating palette", err, "Lower generator.min_contrast or raise generator.max_iterations.")
	}
	mapping, err := st.Mapping()
	if err != nil {
		return err
	}

	renderer, err := render.New()
	if err != nil {
		return err
	}
	bundle, err := renderer.Render(st.Target(), mapping)
	if err != nil {
		return newCommandError("render", "rendering theme", err, "Run 'colorterm roles' to check the target's roles.")
	}

	out := opts.out
	if out == "" {
		out = bundle.Filename
	}

	if opts.diff {
		existing, err := os.ReadFile(out)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return newCommandError("render", "reading existing theme", err, "Check the file permissions.")
		}
		fmt.Fprint(cmd.OutOrStdout(), diff.GenerateUnifiedDiff(existing, bundle.Theme, out, out+" (new)"))
		return nil
	}

	if dir := filepath.Dir(out); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return newCommandError("render", "creating output directory", err, "Check the directory permissions.")
		}
	}
	if err := os.WriteFile(out, bundle.Theme, 0o644); err != nil {
		return newCommandError("render", "writing theme", err, "Check the file permissions.")
	}

	logger.Info(ctx, "theme rendered", "target", string(bundle.Target), "path", out)
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}

// Package render turns a role mapping into the theme file a terminal application
// imports, and packs it with install notes into a zip bundle.
package render

import (
	"archive/zip"
	"bytes"
	"embed"
	"fmt"
	"io"
	"strconv"
	"text/template"

	"github.com/alexisbeaulieu97/colorterm/internal/color"
	"github.com/alexisbeaulieu97/colorterm/internal/schema"
	cterrors "github.com/alexisbeaulieu97/colorterm/pkg/errors"
)

//go:embed templates/*.tmpl install/*.txt
var assets embed.FS

// InstallFilename is the name of the notes file inside every bundle.
const InstallFilename = "HowToInstall.txt"

// Bundle is a rendered theme ready to be zipped.
type Bundle struct {
	Target   schema.Target
	Filename string
	Theme    []byte
	Install  []byte
}

// ArchiveName is the attachment name used for the zipped bundle.
func (b *Bundle) ArchiveName() string {
	return "colorterm-" + string(b.Target) + ".zip"
}

// WriteZip writes the install notes and the theme file as a zip archive.
func (b *Bundle) WriteZip(w io.Writer) error {
	zw := zip.NewWriter(w)
	files := []struct {
		name string
		data []byte
	}{
		{InstallFilename, b.Install},
		{b.Filename, b.Theme},
	}
	for _, f := range files {
		fw, err := zw.Create(f.name)
		if err != nil {
			return fmt.Errorf("create zip entry %s: %w", f.name, err)
		}
		if _, err := fw.Write(f.data); err != nil {
			return fmt.Errorf("write zip entry %s: %w", f.name, err)
		}
	}
	return zw.Close()
}

// Zip returns the archive bytes.
func (b *Bundle) Zip() ([]byte, error) {
	var buf bytes.Buffer
	if err := b.WriteZip(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Renderer renders theme files. It is safe for concurrent use.
type Renderer struct {
	tmpl *template.Template
}

// New parses the embedded templates.
func New() (*Renderer, error) {
	tmpl, err := template.New("colorterm").Funcs(template.FuncMap{
		"decimalize": decimalize,
		"alpha":      func(c color.Color) string { return strconv.FormatFloat(c.A, 'f', -1, 64) },
		"rgba":       color.Format,
	}).ParseFS(assets, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse theme templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// decimalize converts a channel to the [0,1] component form used by plists.
func decimalize(v uint8) string {
	return strconv.FormatFloat(float64(v)/255, 'f', -1, 64)
}

// Render validates that colors holds a parseable value for every role of target
// and renders the target's theme file.
func (r *Renderer) Render(target schema.Target, colors map[string]string) (*Bundle, error) {
	s, err := schema.Lookup(target)
	if err != nil {
		return nil, err
	}

	resolved := make(map[string]color.Color, len(s.Roles))
	for _, role := range s.Roles {
		raw, ok := colors[role.Name]
		if !ok {
			return nil, cterrors.NewSchemaError(string(target), fmt.Errorf("%w: %s", schema.ErrRoleNotFound, role.Name))
		}
		c, err := color.Parse(raw)
		if err != nil {
			return nil, err
		}
		resolved[role.Name] = c
	}

	var (
		filename string
		theme    []byte
	)
	switch target {
	case schema.TargetIterm:
		filename = "colorterm.itermcolors"
		theme, err = r.iterm(resolved)
	case schema.TargetWarp:
		filename = "colorterm.yaml"
		theme, err = warp(resolved)
	case schema.TargetHyper:
		filename = "colorterm.hyper.js"
		theme, err = r.hyper(resolved)
	default:
		return nil, cterrors.NewSchemaError(string(target), schema.ErrUnsupportedSchema)
	}
	if err != nil {
		return nil, fmt.Errorf("render %s theme: %w", target, err)
	}

	install, err := assets.ReadFile("install/" + string(target) + ".txt")
	if err != nil {
		return nil, fmt.Errorf("read install notes for %s: %w", target, err)
	}

	return &Bundle{
		Target:   target,
		Filename: filename,
		Theme:    theme,
		Install:  install,
	}, nil
}

func (r *Renderer) execute(name string, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

package emitter

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/flosch/pongo2/v6"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/e-minguez/suse-edge-support-matrix/pkg/domain/model"
)

// HTML renders a Jinja-style template against the release list
type HTML struct {
	templatePath string
	outputPath   string
	now          func() time.Time
}

// NewHTML creates an HTML emitter rendering templatePath into outputPath
func NewHTML(templatePath, outputPath string) *HTML {
	return &HTML{
		templatePath: templatePath,
		outputPath:   outputPath,
		now:          time.Now,
	}
}

// Name implements interfaces.Emitter
func (e *HTML) Name() string { return "html" }

// Emit renders the template and writes the page
func (e *HTML) Emit(ctx context.Context, releases []*model.Release) ([]string, error) {
	logger := ctxlog.From(ctx)

	src, err := os.ReadFile(filepath.Clean(e.templatePath))
	if err != nil {
		logger.Error("Failed to read HTML template", "path", e.templatePath, "error", err)
		return nil, goerr.Wrap(err, "failed to read HTML template",
			goerr.V("path", e.templatePath),
			goerr.T(model.ErrTagIO),
		)
	}

	rendered, err := RenderHTML(string(src), releases, e.now())
	if err != nil {
		logger.Error("Failed to render HTML template", "path", e.templatePath, "error", err)
		return nil, err
	}

	if err := os.WriteFile(e.outputPath, []byte(rendered), 0o644); err != nil {
		logger.Error("Failed to write HTML page", "path", e.outputPath, "error", err)
		return nil, goerr.Wrap(err, "failed to write HTML page",
			goerr.V("path", e.outputPath),
			goerr.T(model.ErrTagIO),
		)
	}

	logger.Info("Saved HTML page", "path", e.outputPath)
	return []string{e.outputPath}, nil
}

// RenderHTML renders src with `data` (the release list, keyed like the JSON
// output) and `generation_time` in its context. Each release also carries
// `Components`, a name-sorted list with identifier-friendly keys.
func RenderHTML(src string, releases []*model.Release, now time.Time) (string, error) {
	tpl, err := pongo2.FromString(src)
	if err != nil {
		return "", goerr.Wrap(err, "failed to parse HTML template", goerr.T(model.ErrTagParse))
	}

	out, err := tpl.Execute(pongo2.Context{
		"data":            templateData(releases),
		"generation_time": now.Format(TimestampLayout),
	})
	if err != nil {
		return "", goerr.Wrap(err, "failed to execute HTML template", goerr.T(model.ErrTagParse))
	}
	return out, nil
}

func templateData(releases []*model.Release) []map[string]any {
	data := make([]map[string]any, 0, len(releases))
	for _, r := range releases {
		components := make(map[string]map[string]string, len(r.Data))
		for name, c := range r.Data {
			components[name] = c
		}

		var date any
		if r.AvailabilityDate != nil {
			date = *r.AvailabilityDate
		}

		data = append(data, map[string]any{
			"Version":          r.Version,
			"URL":              r.URL,
			"AvailabilityDate": date,
			"Data":             components,
			"SectionID":        r.SectionID(),
			"Components":       componentRows(r.Data),
		})
	}
	return data
}

func componentRows(components model.Components) []map[string]string {
	names := make([]string, 0, len(components))
	for name := range components {
		names = append(names, name)
	}
	slices.Sort(names)

	rows := make([]map[string]string, 0, len(names))
	for _, name := range names {
		c := components[name]
		rows = append(rows, map[string]string{
			"Name":             name,
			"Version":          c[model.ColumnVersion],
			"HelmChartVersion": c[model.ColumnHelmChartVersion],
			"ArtifactLocation": c[model.ColumnArtifactLocation],
		})
	}
	return rows
}

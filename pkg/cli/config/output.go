package config

import (
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/e-minguez/suse-edge-support-matrix/pkg/domain/interfaces"
	"github.com/e-minguez/suse-edge-support-matrix/pkg/infra/emitter"
)

// Output holds destinations of the generated files
type Output struct {
	Dir          string
	XMLFile      string
	HTMLTemplate string
	HTMLFile     string
}

// Flags returns CLI flags for output configuration
func (c *Output) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "output-dir",
			Usage:       "Directory for the per-release JSON files",
			Value:       ".",
			Destination: &c.Dir,
			Sources:     cli.EnvVars("EDGE_MATRIX_OUTPUT_DIR"),
		},
		&cli.StringFlag{
			Name:        "xml-file",
			Usage:       "Path of the DocBook article, relative to the output directory",
			Value:       "output.xml",
			Destination: &c.XMLFile,
			Sources:     cli.EnvVars("EDGE_MATRIX_XML_FILE"),
		},
		&cli.StringFlag{
			Name:        "html-template",
			Usage:       "Jinja-style template for the HTML page; empty disables the page",
			Value:       "template.html.j2",
			Destination: &c.HTMLTemplate,
			Sources:     cli.EnvVars("EDGE_MATRIX_HTML_TEMPLATE"),
		},
		&cli.StringFlag{
			Name:        "html-file",
			Usage:       "Path of the rendered HTML page, relative to the output directory",
			Value:       "index.html",
			Destination: &c.HTMLFile,
			Sources:     cli.EnvVars("EDGE_MATRIX_HTML_FILE"),
		},
	}
}

// Path resolves a relative output file against the output directory, so
// the page, the article and the JSON files it links to stay together
func (c *Output) Path(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.Dir, name)
}

// Emitters returns the JSON, DocBook and HTML emitters in run order
func (c *Output) Emitters() []interfaces.Emitter {
	emitters := []interfaces.Emitter{
		emitter.NewJSON(c.Dir),
		emitter.NewDocBook(c.Path(c.XMLFile)),
	}
	if c.HTMLTemplate != "" {
		emitters = append(emitters, emitter.NewHTML(c.HTMLTemplate, c.Path(c.HTMLFile)))
	}
	return emitters
}

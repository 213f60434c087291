package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
)

// File is the optional TOML configuration file. Values in the file replace
// flag defaults; flags given explicitly on the command line or through the
// environment win over the file.
type File struct {
	Path string
}

// FileContent mirrors the TOML document
type FileContent struct {
	Source struct {
		IndexURL      *string `toml:"index_url"`
		ProductFamily *string `toml:"product_family"`
		URLTemplate   *string `toml:"url_template"`
		Timeout       *string `toml:"timeout"`
		FixtureDir    *string `toml:"fixture_dir"`
		Sort          *bool   `toml:"sort"`
	} `toml:"source"`
	Output struct {
		Dir          *string `toml:"dir"`
		XMLFile      *string `toml:"xml_file"`
		HTMLTemplate *string `toml:"html_template"`
		HTMLFile     *string `toml:"html_file"`
	} `toml:"output"`
}

// Flags returns CLI flags for the configuration file
func (c *File) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "TOML configuration file",
			Destination: &c.Path,
			Sources:     cli.EnvVars("EDGE_MATRIX_CONFIG"),
		},
	}
}

// Load reads the file. It returns nil content when no path is set.
func (c *File) Load() (*FileContent, error) {
	if c.Path == "" {
		return nil, nil
	}

	raw, err := os.ReadFile(filepath.Clean(c.Path))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read config file", goerr.V("path", c.Path))
	}

	var content FileContent
	if err := toml.Unmarshal(raw, &content); err != nil {
		return nil, goerr.Wrap(err, "failed to parse config file", goerr.V("path", c.Path))
	}
	return &content, nil
}

// Apply copies file values into src and out, skipping every flag for which
// isSet reports true. Either target may be nil.
func (f *FileContent) Apply(isSet func(name string) bool, src *Source, out *Output) error {
	if f == nil {
		return nil
	}

	if src != nil {
		setString(isSet, "index-url", f.Source.IndexURL, &src.IndexURL)
		setString(isSet, "product-family", f.Source.ProductFamily, &src.ProductFamily)
		setString(isSet, "url-template", f.Source.URLTemplate, &src.URLTemplate)
		setString(isSet, "fixture-dir", f.Source.FixtureDir, &src.FixtureDir)
		if f.Source.Sort != nil && !isSet("sort") {
			src.Sort = *f.Source.Sort
		}
		if f.Source.Timeout != nil && !isSet("timeout") {
			d, err := time.ParseDuration(*f.Source.Timeout)
			if err != nil {
				return goerr.Wrap(err, "invalid timeout in config file", goerr.V("timeout", *f.Source.Timeout))
			}
			src.Timeout = d
		}
	}

	if out != nil {
		setString(isSet, "output-dir", f.Output.Dir, &out.Dir)
		setString(isSet, "xml-file", f.Output.XMLFile, &out.XMLFile)
		setString(isSet, "html-template", f.Output.HTMLTemplate, &out.HTMLTemplate)
		setString(isSet, "html-file", f.Output.HTMLFile, &out.HTMLFile)
	}

	return nil
}

func setString(isSet func(string) bool, flag string, value *string, dst *string) {
	if value != nil && !isSet(flag) {
		*dst = *value
	}
}

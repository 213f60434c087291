package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/urfave/cli/v3"

	"github.com/e-minguez/suse-edge-support-matrix/pkg/cli/config"
)

func flagNames(flags []cli.Flag) []string {
	var names []string
	for _, f := range flags {
		names = append(names, f.Names()[0])
	}
	return names
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "edge-matrix.toml")
	gt.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestFile_Load(t *testing.T) {
	t.Run("no path", func(t *testing.T) {
		content, err := (&config.File{}).Load()
		gt.NoError(t, err)
		gt.Value(t, content).Nil()
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := (&config.File{Path: filepath.Join(t.TempDir(), "none.toml")}).Load()
		gt.Error(t, err)
	})

	t.Run("broken toml", func(t *testing.T) {
		_, err := (&config.File{Path: writeConfig(t, "[source\nindex_url =")}).Load()
		gt.Error(t, err)
	})
}

func TestFileContent_Apply(t *testing.T) {
	path := writeConfig(t, `
[source]
index_url = "http://localhost:8000/index.html"
timeout = "5s"
sort = true

[output]
dir = "out"
html_template = ""
`)

	content, err := (&config.File{Path: path}).Load()
	gt.NoError(t, err)

	t.Run("file replaces defaults", func(t *testing.T) {
		src := config.Source{IndexURL: "default", ProductFamily: "SUSE Edge", Timeout: 30 * time.Second}
		out := config.Output{Dir: ".", HTMLTemplate: "template.html.j2", HTMLFile: "index.html"}

		gt.NoError(t, content.Apply(func(string) bool { return false }, &src, &out))
		gt.Value(t, src.IndexURL).Equal("http://localhost:8000/index.html")
		gt.Value(t, src.ProductFamily).Equal("SUSE Edge")
		gt.Value(t, src.Timeout).Equal(5 * time.Second)
		gt.True(t, src.Sort)
		gt.Value(t, out.Dir).Equal("out")
		gt.Value(t, out.HTMLTemplate).Equal("")
		gt.Value(t, out.HTMLFile).Equal("index.html")
	})

	t.Run("explicit flags win", func(t *testing.T) {
		src := config.Source{IndexURL: "from-flag", Timeout: time.Second}
		isSet := func(name string) bool { return name == "index-url" || name == "timeout" }

		gt.NoError(t, content.Apply(isSet, &src, nil))
		gt.Value(t, src.IndexURL).Equal("from-flag")
		gt.Value(t, src.Timeout).Equal(time.Second)
	})

	t.Run("invalid timeout", func(t *testing.T) {
		bad, err := (&config.File{Path: writeConfig(t, "[source]\ntimeout = \"soon\"\n")}).Load()
		gt.NoError(t, err)
		gt.Error(t, bad.Apply(func(string) bool { return false }, &config.Source{}, nil))
	})

	t.Run("nil content", func(t *testing.T) {
		var none *config.FileContent
		gt.NoError(t, none.Apply(func(string) bool { return false }, &config.Source{}, &config.Output{}))
	})
}

func TestFlags(t *testing.T) {
	gt.Value(t, flagNames((&config.Source{}).Flags())).Equal([]string{
		"index-url", "product-family", "url-template", "timeout", "fixture-dir", "sort",
	})
	gt.Value(t, flagNames((&config.Output{}).Flags())).Equal([]string{
		"output-dir", "xml-file", "html-template", "html-file",
	})
	gt.Value(t, flagNames((&config.Publish{}).Flags())).Equal([]string{
		"gcs-bucket", "gcs-prefix", "gcs-endpoint",
	})
	gt.Value(t, flagNames((&config.Server{}).Flags())).Equal([]string{"addr", "refresh-secret"})
}

func TestPublish_Configure(t *testing.T) {
	store, closer, err := (&config.Publish{}).Configure(t.Context())
	gt.NoError(t, err)
	gt.True(t, store == nil)
	closer()
}

func TestOutput_Emitters(t *testing.T) {
	t.Run("all emitters", func(t *testing.T) {
		out := config.Output{Dir: ".", XMLFile: "output.xml", HTMLTemplate: "template.html.j2", HTMLFile: "index.html"}
		var names []string
		for _, e := range out.Emitters() {
			names = append(names, e.Name())
		}
		gt.Value(t, names).Equal([]string{"json", "docbook", "html"})
	})

	t.Run("html disabled", func(t *testing.T) {
		out := config.Output{Dir: ".", XMLFile: "output.xml"}
		gt.A(t, out.Emitters()).Length(2)
	})
}

func TestOutput_Path(t *testing.T) {
	out := config.Output{Dir: "public"}
	gt.Value(t, out.Path("output.xml")).Equal(filepath.Join("public", "output.xml"))
	gt.Value(t, out.Path(filepath.Join("site", "index.html"))).Equal(filepath.Join("public", "site", "index.html"))

	abs := filepath.Join(t.TempDir(), "index.html")
	gt.Value(t, out.Path(abs)).Equal(abs)
}

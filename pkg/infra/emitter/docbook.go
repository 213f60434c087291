package emitter

import (
	"context"
	"os"
	"slices"
	"time"

	"github.com/beevik/etree"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/e-minguez/suse-edge-support-matrix/pkg/domain/model"
)

// XML namespaces used by the DocBook article
const (
	NamespaceDocBook = "http://docbook.org/ns/docbook"
	NamespaceITS     = "http://www.w3.org/2005/11/its"
	NamespaceXInc    = "http://www.w3.org/2001/XInclude"
	NamespaceXLink   = "http://www.w3.org/1999/xlink"
)

const (
	stylesheetPI = `href="urn:x-suse:xslt:profiling:docbook50-profile.xsl" type="text/xml" title="Profiling step"`
	docsURL      = "https://documentation.suse.com/suse-edge/"
	abstractText = "The following tables describe the individual components that make up the SUSE Edge releases, including the version, the Helm chart version (if applicable), and from where the released artifact can be pulled in the binary format. this information is also provided for processing in JSON format."

	// TimestampLayout formats generation timestamps in every output
	TimestampLayout = "2006-01-02 15:04:05 MST"
)

// DocBook writes the support matrix as a single DocBook 5.2 article
type DocBook struct {
	path string
	now  func() time.Time
}

// NewDocBook creates a DocBook emitter writing to path
func NewDocBook(path string) *DocBook {
	return &DocBook{path: path, now: time.Now}
}

// Name implements interfaces.Emitter
func (e *DocBook) Name() string { return "docbook" }

// Emit builds the article and writes it to the configured path
func (e *DocBook) Emit(ctx context.Context, releases []*model.Release) ([]string, error) {
	logger := ctxlog.From(ctx)

	doc := BuildDocBook(releases, e.now())
	doc.Indent(2)

	data, err := doc.WriteToBytes()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to serialize DocBook article", goerr.T(model.ErrTagIO))
	}

	if err := os.WriteFile(e.path, data, 0o644); err != nil {
		logger.Error("Failed to write DocBook article", "path", e.path, "error", err)
		return nil, goerr.Wrap(err, "failed to write DocBook article",
			goerr.V("path", e.path),
			goerr.T(model.ErrTagIO),
		)
	}

	logger.Info("Saved DocBook article", "path", e.path, "sections", len(releases))
	return []string{e.path}, nil
}

// BuildDocBook assembles the article: header, revision history and one
// sect1 per release
func BuildDocBook(releases []*model.Release, now time.Time) *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="utf-8"`)
	doc.CreateProcInst("xml-stylesheet", stylesheetPI)
	doc.CreateDirective("DOCTYPE article")

	article := doc.CreateElement("article")
	article.CreateAttr("xmlns", NamespaceDocBook)
	article.CreateAttr("xmlns:its", NamespaceITS)
	article.CreateAttr("xmlns:xi", NamespaceXInc)
	article.CreateAttr("xmlns:xlink", NamespaceXLink)
	article.CreateAttr("version", "5.2")
	article.CreateAttr("xml:id", "article-installation")
	article.CreateAttr("xml:lang", "en")

	article.CreateElement("title").SetText("SUSE Edge support matrix")
	buildInfo(article.CreateElement("info"), releases, now)

	for _, release := range releases {
		buildSect1(article, release)
	}

	return doc
}

func buildInfo(info *etree.Element, releases []*model.Release, now time.Time) {
	info.CreateElement("date").SetText(now.Format(TimestampLayout))

	abstract := info.CreateElement("abstract")
	abstract.CreateElement("para").SetText(abstractText)
	link := abstract.CreateElement("para").CreateElement("link")
	link.CreateAttr("xlink:href", docsURL)
	link.SetText(docsURL)

	addMeta(info, "title", "yes", "SUSE Edge support matrix")
	addMeta(info, "series", "no", "Products & Solutions")
	addMeta(info, "description", "yes", "A complete list of components for all SUSE Edge releases")
	addMeta(info, "social-descr", "yes", "List of components for all SUSE Edge releases")
	addMeta(info, "task", "no", "").CreateElement("phrase").SetText("Implementation")

	revhistory := info.CreateElement("revhistory")
	revhistory.CreateAttr("xml:id", "rh-edge-support-matrix")
	for _, release := range releases {
		date, _ := release.AvailabilityISO()
		revision := revhistory.CreateElement("revision")
		revision.CreateElement("date").SetText(date)
		revision.CreateElement("revdescription").
			CreateElement("para").
			SetText("Added SUSE Edge " + release.Version)
	}
}

func addMeta(parent *etree.Element, name, translate, text string) *etree.Element {
	meta := parent.CreateElement("meta")
	meta.CreateAttr("name", name)
	meta.CreateAttr("its:translate", translate)
	if text != "" {
		meta.SetText(text)
	}
	return meta
}

var tableColumns = []struct {
	title string
	width string
}{
	{"Name", "20*"},
	{model.ColumnVersion, "15*"},
	{model.ColumnHelmChartVersion, "15*"},
	{model.ColumnArtifactLocation, "50*"},
}

func buildSect1(article *etree.Element, release *model.Release) {
	sect := article.CreateElement("sect1")
	sect.CreateAttr("xml:id", release.SectionID())
	sect.CreateElement("title").SetText("Release " + release.Version)

	link := sect.CreateElement("para").CreateElement("link")
	link.CreateAttr("xlink:href", release.URL)
	link.SetText("Download as JSON")

	tgroup := sect.CreateElement("informaltable").CreateElement("tgroup")
	tgroup.CreateAttr("cols", "4")
	for i, col := range tableColumns {
		colspec := tgroup.CreateElement("colspec")
		n := string(rune('1' + i))
		colspec.CreateAttr("colnum", n)
		colspec.CreateAttr("colname", n)
		colspec.CreateAttr("colwidth", col.width)
	}

	headRow := tgroup.CreateElement("thead").CreateElement("row")
	for _, col := range tableColumns {
		headRow.CreateElement("entry").CreateElement("para").SetText(col.title)
	}

	tbody := tgroup.CreateElement("tbody")
	names := make([]string, 0, len(release.Data))
	for name := range release.Data {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		buildRow(tbody, name, release.Data[name])
	}
}

func buildRow(tbody *etree.Element, name string, component model.ComponentRecord) {
	row := tbody.CreateElement("row")
	row.CreateElement("entry").CreateElement("para").SetText(name)
	row.CreateElement("entry").CreateElement("para").SetText(valueOr(component, model.ColumnVersion, "N/A"))
	row.CreateElement("entry").CreateElement("para").SetText(valueOr(component, model.ColumnHelmChartVersion, "N/A"))

	entry := row.CreateElement("entry")
	for _, part := range ParseArtifactLocation(component[model.ColumnArtifactLocation]) {
		para := entry.CreateElement("para")
		if part.Href == "" {
			para.SetText(part.Text)
			continue
		}
		link := para.CreateElement("link")
		link.CreateAttr("xlink:href", part.Href)
		link.SetText(part.Text)
	}
}

func valueOr(component model.ComponentRecord, key, fallback string) string {
	if v, ok := component[key]; ok {
		return v
	}
	return fallback
}

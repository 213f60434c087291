package usecase

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/m-mizutani/ctxlog"

	"github.com/e-minguez/suse-edge-support-matrix/pkg/domain/model"
)

const notApplicable = "N/A"

// NormalizeTable converts an HTML table into ordered flat records.
// The first row is the header; cells beyond the header width are ignored.
func NormalizeTable(table *goquery.Selection) []model.Record {
	var header []string
	var records []model.Record

	table.Find("tr").Each(func(i int, row *goquery.Selection) {
		cells := row.ChildrenFiltered("td, th")
		if i == 0 {
			cells.Each(func(_ int, cell *goquery.Selection) {
				header = append(header, strings.TrimSpace(cell.Text()))
			})
			return
		}

		record := model.Record{}
		cells.Each(func(j int, cell *goquery.Selection) {
			if j >= len(header) {
				return
			}
			value := strings.TrimSpace(cell.Text())
			if value == "" || value == notApplicable {
				return
			}
			if header[j] == model.ColumnArtifactLocation {
				// keep embedded links for the DocBook and HTML renderers
				inner, err := cell.Html()
				if err == nil {
					value = inner
				}
			}
			record[header[j]] = value
		})

		if len(record) > 0 {
			records = append(records, record)
		}
	})

	return records
}

// KeyByName re-keys records by their Name column. The Name column is removed
// from the value. On duplicate names the later record wins.
func KeyByName(ctx context.Context, records []model.Record) model.Components {
	logger := ctxlog.From(ctx)
	result := model.Components{}

	for _, record := range records {
		name, ok := record[model.ColumnName]
		if !ok {
			logger.Warn("Record missing Name column, dropped", "record", record)
			continue
		}

		component := make(model.ComponentRecord, len(record)-1)
		for k, v := range record {
			if k != model.ColumnName {
				component[k] = v
			}
		}

		if _, exists := result[name]; exists {
			logger.Warn("Duplicate component name, overwriting previous record", "name", name)
		}
		result[name] = component
	}

	return result
}

package cli

import (
	"context"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/e-minguez/suse-edge-support-matrix/pkg/domain/model"
)

func cmdList() *cli.Command {
	var p pipeline

	return &cli.Command{
		Name:    "list",
		Aliases: []string{"l"},
		Usage:   "Print the discovered releases without writing any file",
		Flags:   p.collectFlags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := p.load(c); err != nil {
				return err
			}

			releases, err := p.matrix().Collect(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to collect releases")
			}

			renderReleases(c.Root().Writer, releases)
			return nil
		},
	}
}

func renderReleases(w io.Writer, releases []*model.Release) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"Release", "Available", "Components", "URL"})
	for _, r := range releases {
		tw.AppendRow(table.Row{r.Version, r.Availability(), len(r.Data), r.URL})
	}
	tw.AppendFooter(table.Row{"", "", len(releases), "releases"})
	tw.Render()
}

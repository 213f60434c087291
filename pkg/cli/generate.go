package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/e-minguez/suse-edge-support-matrix/pkg/domain/model"
)

func cmdGenerate() *cli.Command {
	var p pipeline

	return &cli.Command{
		Name:    "generate",
		Aliases: []string{"g"},
		Usage:   "Scrape release notes and write JSON, DocBook and HTML outputs",
		Flags:   p.generateFlags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := p.load(c); err != nil {
				return err
			}

			logger := ctxlog.From(ctx)
			logger.Info("Generating support matrix",
				"index_url", p.source.IndexURL,
				"product_family", p.source.ProductFamily,
				"output_dir", p.output.Dir,
			)

			uc, closer, err := p.generate(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to set up generation")
			}
			defer closer()

			result, err := uc.Generate(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to generate support matrix")
			}

			printSummary(c.Root().Writer, result, p.publish.Bucket != "")
			return nil
		},
	}
}

func printSummary(w io.Writer, result *model.GenerateResult, publishing bool) {
	ok := color.New(color.FgGreen, color.Bold)
	warn := color.New(color.FgYellow, color.Bold)

	_, _ = ok.Fprintf(w, "%d releases collected\n", len(result.Releases))
	for _, r := range result.Releases {
		_, _ = fmt.Fprintf(w, "  %s %s (%d components)\n", color.CyanString(r.Version), r.Availability(), len(r.Data))
	}
	_, _ = ok.Fprintf(w, "%d files written\n", len(result.Files))

	if publishing {
		c := ok
		if result.Published < len(result.Files) {
			c = warn
		}
		_, _ = c.Fprintf(w, "%d/%d files published\n", result.Published, len(result.Files))
	}
	if result.Failed > 0 {
		_, _ = warn.Fprintf(w, "%d emitters failed, see log for details\n", result.Failed)
	}
}

package cli

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/e-minguez/suse-edge-support-matrix/pkg/cli/config"
	"github.com/e-minguez/suse-edge-support-matrix/pkg/domain/interfaces"
	"github.com/e-minguez/suse-edge-support-matrix/pkg/usecase"
)

// pipeline groups the settings shared by commands that collect releases
type pipeline struct {
	file    config.File
	source  config.Source
	output  config.Output
	publish config.Publish
}

func (p *pipeline) collectFlags() []cli.Flag {
	return append(p.file.Flags(), p.source.Flags()...)
}

func (p *pipeline) generateFlags() []cli.Flag {
	flags := p.collectFlags()
	flags = append(flags, p.output.Flags()...)
	return append(flags, p.publish.Flags()...)
}

// load applies the configuration file underneath explicitly set flags
func (p *pipeline) load(c *cli.Command) error {
	content, err := p.file.Load()
	if err != nil {
		return err
	}
	return content.Apply(c.IsSet, &p.source, &p.output)
}

func (p *pipeline) matrix() interfaces.MatrixUseCase {
	return usecase.NewMatrix(p.source.Configure(), p.source.MatrixOptions()...)
}

// generate wires collection, emitters and the optional object store. The
// returned close function must be called once the use case is no longer used.
func (p *pipeline) generate(ctx context.Context) (interfaces.GenerateUseCase, func(), error) {
	store, closer, err := p.publish.Configure(ctx)
	if err != nil {
		return nil, nil, err
	}
	return usecase.NewGenerate(p.matrix(), p.output.Emitters(), store), closer, nil
}

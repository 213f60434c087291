package usecase_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/e-minguez/suse-edge-support-matrix/pkg/domain/model"
	"github.com/e-minguez/suse-edge-support-matrix/pkg/usecase"
)

func TestMatrix_Collect(t *testing.T) {
	ctx := context.Background()

	t.Run("collects releases from every page", func(t *testing.T) {
		source := newPageSource(t, map[string]string{
			indexURL:   "index.html",
			notes32URL: "release-notes-3.2.html",
			notes31URL: "release-notes-3.1.html",
		})
		uc := usecase.NewMatrix(source)

		releases, err := uc.Collect(ctx)
		gt.NoError(t, err)

		// 3.1.8 has a components section without tables and is dropped
		gt.A(t, releases).Length(3)
		gt.Value(t, releases[0].Version).Equal("3.2.1")
		gt.Value(t, releases[1].Version).Equal("3.2.0")
		gt.Value(t, releases[2].Version).Equal("3.1.0")

		r := releases[0]
		gt.Value(t, len(r.Data)).Equal(5)
		gt.Value(t, r.Data["Metal3"]).Equal(model.ComponentRecord{"Version": "0.8.4"})
		gt.Value(t, r.Data["Elemental"]).Equal(model.ComponentRecord{})
		gt.Value(t, r.Data["Rancher Prime"]).Equal(model.ComponentRecord{
			"Version":                       "2.9.3",
			"Helm Chart Version":            "2.9.3",
			"Artifact Location (URL/Image)": `<a href="https://charts.rancher.com/server-charts/prime/index.yaml">Helm Chart Repository</a>`,
		})

		date, ok := releases[2].AvailabilityISO()
		gt.True(t, ok)
		gt.Value(t, date).Equal("2024-10-11")
	})

	t.Run("failing page is skipped", func(t *testing.T) {
		source := newPageSource(t, map[string]string{
			indexURL:   "index.html",
			notes31URL: "release-notes-3.1.html",
		})
		uc := usecase.NewMatrix(source)

		releases, err := uc.Collect(ctx)
		gt.NoError(t, err)
		gt.A(t, releases).Length(1)
		gt.Value(t, releases[0].Version).Equal("3.1.0")
		gt.A(t, source.calls).Length(3)
	})

	t.Run("discovery failure is returned", func(t *testing.T) {
		uc := usecase.NewMatrix(&MockPageSource{})

		releases, err := uc.Collect(ctx)
		gt.Error(t, err)
		gt.Value(t, releases).Nil()
		gt.True(t, model.HasTag(err, model.ErrTagFetch))
	})

	t.Run("sorted by version", func(t *testing.T) {
		source := newPageSource(t, map[string]string{
			indexURL:   "index.html",
			notes32URL: "release-notes-3.2.html",
			notes31URL: "release-notes-3.1.html",
		})
		uc := usecase.NewMatrix(source, usecase.WithSortByVersion(true))

		releases, err := uc.Collect(ctx)
		gt.NoError(t, err)
		gt.A(t, releases).Length(3)
		gt.Value(t, releases[0].Version).Equal("3.2.1")
		gt.Value(t, releases[2].Version).Equal("3.1.0")
	})
}

func TestSortReleases(t *testing.T) {
	releases := []*model.Release{
		{Version: "3.0.1"},
		{Version: "preview"},
		{Version: "3.10.0"},
		{Version: "beta"},
		{Version: "3.2.0"},
	}

	usecase.SortReleases(releases)

	var got []string
	for _, r := range releases {
		got = append(got, r.Version)
	}
	gt.Value(t, got).Equal([]string{"3.10.0", "3.2.0", "3.0.1", "preview", "beta"})
}

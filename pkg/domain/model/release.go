package model

import (
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/m-mizutani/goerr/v2"
)

// Well-known column headers of the Components Versions tables
const (
	ColumnName             = "Name"
	ColumnVersion          = "Version"
	ColumnHelmChartVersion = "Helm Chart Version"
	ColumnArtifactLocation = "Artifact Location (URL/Image)"
)

// Record is one normalized table row: column header -> cell text.
// Empty and "N/A" cells are absent.
type Record map[string]string

// ComponentRecord is a Record whose Name column has been moved to the map key
type ComponentRecord map[string]string

// Components maps component name to its record
type Components map[string]ComponentRecord

// RawRelease is a release section as extracted from a page, before keying by name
type RawRelease struct {
	Version          string
	URL              string
	AvailabilityDate *string
	Records          []Record
}

// Release represents one SUSE Edge release and its component versions
type Release struct {
	Version          string     `json:"Version"`
	URL              string     `json:"URL"`
	AvailabilityDate *string    `json:"AvailabilityDate"`
	Data             Components `json:"Data"`
}

// SectionID returns the DocBook xml:id used for the release section
func (r *Release) SectionID() string {
	return "edge-" + strings.ReplaceAll(r.Version, ".", "")
}

// SemVer parses the release version as a semantic version
func (r *Release) SemVer() (*semver.Version, error) {
	v, err := semver.NewVersion(r.Version)
	if err != nil {
		return nil, goerr.Wrap(err, "release version is not semver",
			goerr.V("version", r.Version),
			goerr.T(ErrTagParse),
		)
	}
	return v, nil
}

// Availability returns the raw availability date, or empty string if unknown
func (r *Release) Availability() string {
	if r.AvailabilityDate == nil {
		return ""
	}
	return *r.AvailabilityDate
}

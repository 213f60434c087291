package model

import (
	"errors"

	"github.com/m-mizutani/goerr/v2"
)

// Error tags classify pipeline failures so callers can decide between
// skipping one unit of work and aborting.
var (
	ErrTagFetch     = goerr.NewTag("fetch")
	ErrTagParse     = goerr.NewTag("parse")
	ErrTagStructure = goerr.NewTag("structure")
	ErrTagIO        = goerr.NewTag("io")
)

// HasTag reports whether any goerr.Error in the chain of err carries tag
func HasTag(err error, tag goerr.Tag) bool {
	for err != nil {
		var e *goerr.Error
		if !errors.As(err, &e) {
			return false
		}
		if goerr.HasTag(e, tag) {
			return true
		}
		err = e.Unwrap()
	}
	return false
}

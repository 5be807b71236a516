// Package defile is a terminal image gallery that loads pages of photos as
// the user scrolls toward the end of what is already shown.
package defile

import (
	"context"

	nt "defile/entity"
	"defile/fetch"
	"defile/gallery"
	"defile/sensor"
)

// Catalog keeps the full records of loaded photos for the detail screen.
type Catalog interface {
	// Record a page of photos
	Record(ctx context.Context, page int, photos []nt.Photo) (err error)
	// GetPhoto returns the record for a download locator
	GetPhoto(ref string) (data map[string]any, err error)
}

// Fielder is implemented by loggers that carry fields in a context.
type Fielder interface {
	WithFields(ctx context.Context, kv ...any) context.Context
}

// Options are the collaborators and settings of a gallery.
// Zero values select the defaults.
type Options struct {
	// Requester performs page requests; defaults to fetch.HTTP.
	Requester fetch.Requester
	// Observer constructs the visibility sensor; defaults to sensor.NewViewport.
	Observer sensor.Constructor
	// Catalog is optional; without it the detail screen has nothing to show.
	Catalog Catalog
	// Logger is required.
	Logger nt.Logger

	BaseURL     string
	Cells       gallery.Cells
	DetailStyle string
}

// Version is stamped at build time.
var Version = "dev"

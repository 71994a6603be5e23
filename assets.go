package formbuilder

import (
	"io/fs"

	"github.com/goliatone/go-formbuilder/pkg/renderers/preview"
)

// AssetsFS exposes the preview stylesheet so Go applications can serve it
// next to rendered previews.
//
// Typical mount:
//
//	mux.Handle("/assets/",
//	  http.StripPrefix("/assets/",
//	    http.FileServerFS(formbuilder.AssetsFS()),
//	  ),
//	)
func AssetsFS() fs.FS {
	return preview.AssetsFS()
}

package template

import (
	"errors"
	"io/fs"
)

type overlayFS struct {
	layers []fs.FS
}

// Overlay returns a read-only file system that serves each file from the
// first layer holding it. Later layers act as fallbacks, so a directory with
// a single form.tmpl can sit over the embedded bundle. Nil layers are
// skipped.
func Overlay(layers ...fs.FS) fs.FS {
	var kept []fs.FS
	for _, layer := range layers {
		if layer != nil {
			kept = append(kept, layer)
		}
	}
	if len(kept) == 1 {
		return kept[0]
	}
	return overlayFS{layers: kept}
}

func (o overlayFS) Open(name string) (fs.File, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrInvalid}
	}
	for _, layer := range o.layers {
		file, err := layer.Open(name)
		if err == nil {
			return file, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
}

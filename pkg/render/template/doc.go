// Package template holds the seam between the preview renderer and the
// template engine that draws its HTML, plus the file overlay used to let
// users replace individual preview templates. The pongo2-backed engine lives
// in the gotemplate subpackage.
package template

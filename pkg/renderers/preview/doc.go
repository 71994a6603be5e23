// Package preview renders a form tree as a standalone HTML page. Templates
// and the stylesheet are embedded; themes come from go-theme manifests and
// user text is sanitised with bluemonday before it reaches the markup.
package preview

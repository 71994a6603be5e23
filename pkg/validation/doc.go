// Package validation lints builder trees. Findings are advisory: the builder
// accepts every tree they describe.
package validation

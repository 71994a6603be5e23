// Package remote talks to the schema endpoint: a single URL that answers GET
// with the stored form schema and replaces it on POST. The client keeps no
// state between calls and never retries.
package remote

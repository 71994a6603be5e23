// Command formstore runs a development schema endpoint backed by SQLite.
// Point formbuilder at it with --endpoint http://127.0.0.1:8081/schema.
//
// Usage:
//
//	formstore serve              # GET/POST the schema, list revisions
//	formstore history            # table of stored revisions
//	formstore import schema.json # store a payload as a new revision
//	formstore export [id]        # print the latest or a given revision
//	formstore prune --keep 10    # drop old revisions
package main

// Command formbuilder edits, previews, and publishes form schemas held by a
// remote schema endpoint.
//
// Usage:
//
//	formbuilder serve                 # editing API plus live websocket feed
//	formbuilder edit                  # interactive terminal editor
//	formbuilder fill                  # answer the form from the terminal
//	formbuilder show                  # outline of the remote schema
//	formbuilder pull -o schema.json   # download the payload
//	formbuilder push schema.json      # upload a payload
//	formbuilder preview -o form.html  # render an HTML preview
//	formbuilder export                # describe the form as OpenAPI
//	formbuilder lint                  # report schema problems
//	formbuilder palette               # list field types
//	formbuilder config init|validate|show
//
// The remote endpoint comes from remote.endpoint in the configuration file,
// the FORMBUILDER_ENDPOINT environment variable, or --endpoint.
package main

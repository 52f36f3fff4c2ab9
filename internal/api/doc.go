// Package api handles incoming HTTP requests for the paper and user
// resources. Each handler performs a single store operation, classifies the
// result as an Outcome and writes it in the {code, message, body} envelope.
// The package also builds the OpenAPI document served at /api-docs.
package api

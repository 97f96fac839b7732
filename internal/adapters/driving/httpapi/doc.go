// Package httpapi exposes the note store over a small JSON REST API.
//
// Routes:
//
//	GET    /healthz
//	GET    /notes?q=query
//	POST   /notes
//	GET    /notes/:id
//	PUT    /notes/:id
//	DELETE /notes/:id
//
// Errors are returned as {"error": "..."} with 400, 404, 503 or 500.
// The remote storage adapter is the matching client.
package httpapi

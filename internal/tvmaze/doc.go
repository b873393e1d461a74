// Package tvmaze provides the HTTP client for the TVMaze listing API.
//
// A single operation is consumed: the single-search show lookup with the
// episode list embedded. Network errors, non-success responses, and shows
// without episodes all surface as errors so the dispatcher can degrade the
// run to a no-change outcome.
package tvmaze

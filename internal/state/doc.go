// Package state persists the notified-state records between scheduled runs:
// the last aired episode a notification covered and the upcoming episode ids
// from the most recent upcoming notification. Both live as small JSON
// documents that are atomically overwritten only after a successful send.
package state

// Package notify orchestrates one scheduled check: fetch the episode list,
// detect what changed against persisted state, compose and send at most one
// email, and only then overwrite state. A failed send leaves state untouched
// so the next run re-attempts the same notification.
package notify

// Package history keeps a local record of every notification that was
// actually sent. The record is informational: writes are best-effort and a
// failure here never blocks or retries a run. The `airmail history` command
// reads it back for display.
package history

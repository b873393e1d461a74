// Package detect holds the change-detection rules: given freshly split
// episode sets and the persisted notified-state, decide whether a new aired
// episode, a changed upcoming slate, or nothing needs announcing. The
// evaluation is side-effect free.
package detect

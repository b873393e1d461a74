// Package mail wraps SMTP delivery of composed HTML notifications.
//
// The transport is deliberately thin: STARTTLS, PLAIN auth, a fixed
// recipient list from configuration, and a bounded timeout. There is no
// retry; the next scheduled run re-attempts whatever failed to send.
package mail

// Package compose builds notification subjects and HTML bodies.
//
// Rendering is verbatim placeholder substitution with no conditional logic;
// the only formatting rules live in the upcoming-table fragment (truncation
// to five rows happens upstream, TBA substitution here). Site operators can
// override the embedded templates with files in the configured template
// directory.
package compose

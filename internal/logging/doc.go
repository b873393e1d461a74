// Package logging builds the slog logger shared by every component.
//
// Loggers are constructed explicitly and passed down; there is no process
// global. The scheduled default is error-level output to the log file only,
// while verbose runs add info-level console output. Console records render
// as compact single lines; a JSON format is available via configuration.
package logging

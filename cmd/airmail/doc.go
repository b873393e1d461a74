// Command airmail is the CLI for the episode notifier. The `run` subcommand
// is the scheduled entry point; the rest (`status`, `history`, `config`,
// `test-mail`) are operator conveniences.
package main

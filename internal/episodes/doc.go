// Package episodes defines the episode snapshot model and the pure schedule
// calculations shared by the detector, the composer, and the state store:
// splitting a fetched list into aired and upcoming sets relative to a given
// day, selecting the latest aired episode, and truncating the upcoming slate.
package episodes

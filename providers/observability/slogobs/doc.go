// Package slogobs implements observability.Provider on top of log/slog.
// Spans, counters and histograms become structured debug entries; log calls
// map onto slog levels, with TRACE one step below DEBUG. Format and level
// default to SKILLEDU_LOG_FORMAT and SKILLEDU_LOG_LEVEL.
package slogobs

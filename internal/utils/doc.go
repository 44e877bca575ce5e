// Package utils holds the low-level helpers shared by the gateway client and
// its tooling: synchronous HTTP round-trips that hand back the raw body
// ([DoGetSync], [DoPostSync]), lenient JSON decoding of user input
// ([ParseStringAs]), log-safe truncation ([TruncateString]), [Ptr] for
// optional request fields and a small [Timer] for latency measurement.
package utils

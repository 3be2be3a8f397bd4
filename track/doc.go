// Package track holds the per-contestant position history.
//
// The Buffer is append-only and strictly time ordered: out-of-order or
// duplicate fixes are dropped as soft anomalies, and accepted history is
// never rewritten. Ingest optionally fills large temporal gaps with
// synthetic positions spaced at a fixed step along the great circle between
// the two real fixes, so downstream gate tests never evaluate a segment
// whose endpoints are far apart in time.
package track

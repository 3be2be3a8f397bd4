// Package processor runs the per-contestant scoring pipeline.
//
// Each contestant gets one Processor: a dedicated worker goroutine pulling
// positions from an ordered queue and driving the track buffer, gatekeeper,
// and score log. Workers share nothing mutable with each other; route and
// scorecard snapshots are shared read-only. A worker blocks only on its
// queue; the crossing and scoring computation is pure and CPU bound.
//
// The Registry owns the contestant-id to processor mapping and routes
// inbound position events by tracker device id.
package processor

// Package gatekeeper drives the per-contestant gate-crossing state machine.
//
// A Gatekeeper owns the ordered list of outstanding gates for one
// contestant and consumes track segments one at a time. Each segment is
// tested against the first outstanding gate that requires a physical
// crossing, using line-segment intersection in a locally flattened plane;
// the crossing instant is linearly interpolated along the segment, never
// snapped to an endpoint. Gates the contestant approaches and then
// decisively abandons are declared missed. Secret and informational gates
// resolve by proximity and never block the cursor.
//
// The gatekeeper also runs the continuous detectors: backtracking (sustained
// course reversal against the active leg), prohibited/penalty zones,
// corridor excursions, and minimum altitude. All penalties go through the
// scoring engine and land in the contestant's score log.
//
// A Gatekeeper has a single writer. Concurrent reads happen through the
// owning processor's snapshots, never against the gatekeeper itself.
package gatekeeper

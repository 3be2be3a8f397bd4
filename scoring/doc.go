// Package scoring turns resolved gatekeeper events into penalty points and
// keeps the auditable score log.
//
// The Engine is pure rule arithmetic: given a scorecard rule and the
// magnitude of a deviation it returns the point deduction, clamping to grace
// periods and caps. The Log is the append-only event record with the
// running cumulative score; committed events are never revised, and the
// cumulative score never increases.
package scoring

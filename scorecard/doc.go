// Package scorecard holds the rule sets that convert timing and positional
// deviations into penalty points.
//
// A Scorecard carries the route-independent rules (backtracking, prohibited
// and penalty zones, corridor, minimum altitude) plus one GateScore per gate
// type (grace periods, penalty per second, caps, missed penalties, extended
// gate tolerances). Scorecards are immutable once a contestant has started
// evaluating against them and are shared read-only across contestants.
//
// The package ships the default scorecards of the standard competition
// formats and a YAML loader for custom ones.
package scorecard

// Package route models the navigation task a contestant flies: the ordered
// waypoints with their gate geometry, the corridor tolerances, and the
// prohibited/penalty zones.
//
// A Route is built once by the route builder (or loaded from a waypoint CSV)
// and is then a read-only snapshot shared by every contestant flying it.
package route

// Package ingest provides the bundled position sources.
//
// TrackReader replays a recorded track from CSV, which is how stored flights
// are rescored offline and how tests drive the pipeline. FeedPoller consumes
// a live GTFS-RT VehiclePositions feed from a tracker gateway, converting
// feed entities into per-device positions.
//
// Both sources only produce positions; ordering, de-duplication, and gap
// handling belong to the track buffer downstream.
package ingest

// Package geo provides the spherical and locally-flattened planar geometry
// used by the scoring engine.
//
// Great-circle math (haversine distance, initial bearing, spherical
// interpolation, destination points) operates directly on latitude/longitude
// degrees. Gate-crossing tests instead work in a local equirectangular plane
// produced by a Projection anchored near the geometry under test; at route
// scale the flattening error is far below GPS noise, and segment/segment
// intersection becomes a plain 2-D parametric solve.
//
// All distances are nautical miles, all bearings degrees true.
package geo

package gatekeeper

import (
	"fmt"
	"time"

	"github.com/airsports-live/trackscore/geo"
	"github.com/airsports-live/trackscore/route"
	"github.com/airsports-live/trackscore/scoring"
	"github.com/airsports-live/trackscore/track"
)

// confirmSamples is how many consecutive offending fixes a continuous
// detector needs before an episode starts. A single out-of-envelope GPS
// sample never scores.
const confirmSamples = 2

// zoneState accumulates one contestant's relationship with one zone.
type zoneState struct {
	zone        *route.Zone
	insideCount int
	inside      bool
	enteredAt   time.Time
	penalised   bool
	lastInside  time.Time
}

func (g *Gatekeeper) updateZones(cur track.Position) {
	for _, zs := range g.zones {
		g.updateZone(zs, cur)
	}
}

func (g *Gatekeeper) updateZone(zs *zoneState, cur track.Position) {
	if zs.zone.Kind == route.ZoneInformation {
		return
	}
	if zs.zone.Contains(cur.Point()) {
		zs.insideCount++
		if zs.insideCount == confirmSamples {
			zs.inside = true
			zs.enteredAt = cur.Time
		}
		if zs.inside {
			zs.lastInside = cur.Time
			if zs.zone.Kind == route.ZoneProhibited {
				g.scoreProhibited(zs, cur.Time)
			}
		}
		return
	}
	if zs.inside {
		g.closeZoneEpisode(zs, cur.Time)
	}
	zs.insideCount = 0
}

// scoreProhibited applies the flat prohibited-zone penalty once per
// sustained entry, after the grace time.
func (g *Gatekeeper) scoreProhibited(zs *zoneState, now time.Time) {
	if zs.penalised {
		return
	}
	if now.Sub(zs.enteredAt).Seconds() < g.engine.Scorecard.ProhibitedZoneGraceTime {
		return
	}
	accrued := g.log.AccruedFor(scoring.KindProhibited)
	points := g.engine.ProhibitedZonePenalty(accrued)
	zs.penalised = true
	if points <= 0 {
		return
	}
	g.log.Append(scoring.KindProhibited, zs.zone.Name, now,
		now.Sub(zs.enteredAt).Seconds(), points,
		fmt.Sprintf("entered prohibited zone %s", zs.zone.Name))
}

// closeZoneEpisode ends a sustained stay. Penalty zones score the seconds
// spent inside beyond grace; prohibited zones were already scored on entry.
func (g *Gatekeeper) closeZoneEpisode(zs *zoneState, at time.Time) {
	if zs.zone.Kind == route.ZonePenalty {
		seconds := zs.lastInside.Sub(zs.enteredAt).Seconds() - g.engine.Scorecard.PenaltyZoneGraceTime
		accrued := g.log.AccruedFor(scoring.KindPenaltyZone)
		points := g.engine.PenaltyZonePenalty(seconds, accrued)
		if points > 0 {
			g.log.Append(scoring.KindPenaltyZone, zs.zone.Name, at, seconds, points,
				fmt.Sprintf("%.0f s inside penalty zone %s", seconds, zs.zone.Name))
		}
	}
	zs.inside = false
	zs.insideCount = 0
	zs.penalised = false
}

func (g *Gatekeeper) flushZones(at time.Time) {
	for _, zs := range g.zones {
		if zs.inside {
			g.closeZoneEpisode(zs, at)
		}
	}
}

// corridorState accumulates time spent outside the route corridor.
type corridorState struct {
	outsideCount int
	outside      bool
	leftAt       time.Time
	lastOutside  time.Time
}

// updateCorridor scores excursions outside the corridor band around the
// active leg for air-sports-race style tasks.
func (g *Gatekeeper) updateCorridor(cur track.Position) {
	if g.route.CorridorWidthNM <= 0 {
		return
	}
	from, to := g.activeLeg()
	if from == nil || to == nil {
		return
	}
	proj := geo.NewProjection(to.Point())
	crossTrack := geo.CrossTrackNM(proj.ToXY(cur.Point()), proj.ToXY(from.Point()), proj.ToXY(to.Point()))
	if crossTrack > g.route.CorridorWidthNM/2 {
		g.corridor.outsideCount++
		if g.corridor.outsideCount == confirmSamples {
			g.corridor.outside = true
			g.corridor.leftAt = cur.Time
		}
		if g.corridor.outside {
			g.corridor.lastOutside = cur.Time
		}
		return
	}
	if g.corridor.outside {
		g.closeCorridorEpisode(cur.Time)
	}
	g.corridor.outsideCount = 0
}

func (g *Gatekeeper) closeCorridorEpisode(at time.Time) {
	seconds := g.corridor.lastOutside.Sub(g.corridor.leftAt).Seconds() - g.engine.Scorecard.CorridorGraceTime
	accrued := g.log.AccruedFor(scoring.KindCorridor)
	points := g.engine.CorridorPenalty(seconds, accrued)
	if points > 0 {
		g.log.Append(scoring.KindCorridor, g.route.Name, at, seconds, points,
			fmt.Sprintf("%.0f s outside corridor", seconds))
	}
	g.corridor.outside = false
	g.corridor.outsideCount = 0
}

func (g *Gatekeeper) flushCorridor(at time.Time) {
	if g.corridor.outside {
		g.closeCorridorEpisode(at)
	}
}

// altitudeState tracks sustained flight below the route minimum.
type altitudeState struct {
	belowCount int
	below      bool
	penalised  bool
}

const feetPerMetre = 3.28084

func (g *Gatekeeper) updateAltitude(cur track.Position) {
	if g.route.MinimumAltitudeFt <= 0 || !cur.HasAltitude() {
		return
	}
	if cur.Altitude*feetPerMetre < g.route.MinimumAltitudeFt {
		g.altitude.belowCount++
		if g.altitude.belowCount < confirmSamples || g.altitude.penalised {
			return
		}
		g.altitude.below = true
		g.altitude.penalised = true
		accrued := g.log.AccruedFor(scoring.KindAltitude)
		points := g.engine.BelowMinimumAltitudePenalty(accrued)
		if points > 0 {
			g.log.Append(scoring.KindAltitude, g.route.Name, cur.Time, 0, points,
				fmt.Sprintf("below minimum altitude %.0f ft", g.route.MinimumAltitudeFt))
		}
		return
	}
	g.altitude.belowCount = 0
	g.altitude.below = false
	g.altitude.penalised = false
}

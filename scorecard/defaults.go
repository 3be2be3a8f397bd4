package scorecard

// Built-in scorecards for the standard competition formats. These mirror the
// published FAI/NLF rule values and are the usual starting point; custom
// rule sets are loaded from YAML instead.

func cloneForTypes(gs GateScore, types ...GateType) map[GateType]GateScore {
	m := make(map[GateType]GateScore, len(types))
	for _, t := range types {
		m[t] = gs
	}
	return m
}

// FAIPrecision2020 is the FAI precision flying scorecard with procedure
// turns enabled.
func FAIPrecision2020() *Scorecard {
	s := faiPrecisionBase()
	s.Name = "FAI Precision 2020"
	s.ShortcutName = "FAI Precision"
	s.UseProcedureTurns = true
	return s
}

// FAIPrecision2020WithoutProcedureTurns is the same rule set with procedure
// turn scoring disabled.
func FAIPrecision2020WithoutProcedureTurns() *Scorecard {
	s := faiPrecisionBase()
	s.Name = "FAI Precision 2020 (without procedure turns)"
	s.ShortcutName = "FAI Precision no procedure turns"
	s.UseProcedureTurns = false
	return s
}

func faiPrecisionBase() *Scorecard {
	regular := GateScore{
		ExtendedGateWidth:          6,
		GracePeriodBefore:          2,
		GracePeriodAfter:           2,
		MaximumPenalty:             100,
		PenaltyPerSecond:           3,
		MissedPenalty:              100,
		MissedProcedureTurnPenalty: 200,
	}
	gates := cloneForTypes(regular, Turnpoint, SecretPoint, FinishPoint, DummyPoint, UnknownLeg)
	gates[StartingPoint] = GateScore{
		ExtendedGateWidth:              2,
		BadCrossingExtendedGatePenalty: 200,
		GracePeriodBefore:              2,
		GracePeriodAfter:               2,
		MaximumPenalty:                 100,
		PenaltyPerSecond:               3,
		MissedPenalty:                  100,
		MissedProcedureTurnPenalty:     200,
	}
	gates[TakeoffGate] = GateScore{
		GracePeriodAfter: 60,
		MaximumPenalty:   200,
		PenaltyPerSecond: 200,
		MissedPenalty:    200,
	}
	gates[LandingGate] = GateScore{
		GracePeriodBefore: 999999999,
		GracePeriodAfter:  60,
	}
	return &Scorecard{
		BacktrackingPenalty:          200,
		BacktrackingGraceTimeSeconds: 5,
		ProhibitedZoneMaximum:        -1,
		GateScores:                   gates,
	}
}

// FAIAirRally2020 is the FAI air rally scorecard.
func FAIAirRally2020() *Scorecard {
	regular := GateScore{
		ExtendedGateWidth:                      0.3,
		GracePeriodBefore:                      2,
		GracePeriodAfter:                       2,
		MaximumPenalty:                         100,
		PenaltyPerSecond:                       3,
		MissedPenalty:                          100,
		BacktrackingAfterSteepGateGraceSeconds: 45,
	}
	gates := cloneForTypes(regular, Turnpoint, SecretPoint, FinishPoint, StartingPoint, DummyPoint, UnknownLeg)
	gates[TakeoffGate] = GateScore{
		GracePeriodAfter: 60,
		MaximumPenalty:   100,
		PenaltyPerSecond: 3,
	}
	gates[LandingGate] = GateScore{
		GracePeriodAfter: 60,
	}
	return &Scorecard{
		Name:                         "FAI Air Rally 2020",
		ShortcutName:                 "FAI Air Rally",
		BacktrackingPenalty:          100,
		BacktrackingGraceTimeSeconds: 5,
		BacktrackingMaximumPenalty:   1000,
		ProhibitedZoneMaximum:        -1,
		GateScores:                   gates,
	}
}

// NordicAirSportsRace is the Nordic ASR corridor-task scorecard.
func NordicAirSportsRace() *Scorecard {
	regular := GateScore{
		GracePeriodBefore:             2,
		GracePeriodAfter:              2,
		MaximumPenalty:                100,
		PenaltyPerSecond:              3,
		MissedPenalty:                 100,
		BacktrackingBeforeGateGraceNM: 0.5,
		BacktrackingAfterGateGraceNM:  0.5,
	}
	gates := cloneForTypes(regular, Turnpoint, SecretPoint, FinishPoint, StartingPoint, DummyPoint, UnknownLeg)
	gates[TakeoffGate] = GateScore{
		GracePeriodAfter: 60,
		MaximumPenalty:   200,
		PenaltyPerSecond: 200,
		MissedPenalty:    200,
	}
	gates[LandingGate] = GateScore{
		GracePeriodBefore: 999999999,
		GracePeriodAfter:  60,
	}
	return &Scorecard{
		Name:                               "Nordic Air Sports Race",
		ShortcutName:                       "Nordic Air Sports Race",
		BacktrackingPenalty:                200,
		BacktrackingGraceTimeSeconds:       5,
		BacktrackingMaximumPenalty:         200,
		CorridorMaximumPenalty:             100,
		CorridorOutsidePenalty:             1,
		CorridorGraceTime:                  5,
		BelowMinimumAltitudePenalty:        500,
		BelowMinimumAltitudeMaximumPenalty: 500,
		ProhibitedZonePenalty:              50,
		ProhibitedZoneMaximum:              200,
		PenaltyZonePenaltyPerSecond:        3,
		PenaltyZoneMaximum:                 200,
		GateScores:                         gates,
	}
}

// PilotPokerRun scores nothing; the route only sequences card pickups.
func PilotPokerRun() *Scorecard {
	regular := GateScore{
		ExtendedGateWidth: 6,
		GracePeriodBefore: 2,
		GracePeriodAfter:  2,
	}
	gates := cloneForTypes(regular,
		Turnpoint, SecretPoint, FinishPoint, StartingPoint, TakeoffGate, LandingGate, DummyPoint, UnknownLeg)
	return &Scorecard{
		Name:                         "Pilot Poker Run",
		ShortcutName:                 "Pilot Poker Run",
		BacktrackingGraceTimeSeconds: 5,
		ProhibitedZoneMaximum:        -1,
		GateScores:                   gates,
	}
}

// Default returns the built-in scorecard with the given name or shortcut
// name, or nil if none matches.
func Default(name string) *Scorecard {
	for _, f := range []func() *Scorecard{
		FAIPrecision2020,
		FAIPrecision2020WithoutProcedureTurns,
		FAIAirRally2020,
		NordicAirSportsRace,
		PilotPokerRun,
	} {
		s := f()
		if s.Name == name || s.ShortcutName == name {
			return s
		}
	}
	return nil
}

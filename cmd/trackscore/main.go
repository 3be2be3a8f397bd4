package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/airsports-live/trackscore/config"
	"github.com/airsports-live/trackscore/ingest"
	"github.com/airsports-live/trackscore/internal"
	"github.com/airsports-live/trackscore/processor"
	"github.com/airsports-live/trackscore/report"
	"github.com/airsports-live/trackscore/route"
	"github.com/airsports-live/trackscore/scorecard"
	"github.com/airsports-live/trackscore/track"
)

func main() {
	mode := flag.String("mode", "replay", "replay|poll")
	format := flag.String("format", "json", "json|xml")
	configPath := flag.String("config", "config.yml", "task configuration file")
	trackPath := flag.String("track", "", "track CSV to replay (replay mode)")
	contestantID := flag.String("contestant", "", "contestant id the replayed track belongs to (defaults to the only configured contestant)")
	vehiclePositions := flag.String("vehiclePositions", "", "GTFS-RT VehiclePositions URL (overrides config)")
	flag.Parse()

	internal.InitLogging()
	cfg, err := config.LoadAppConfig(*configPath)
	if err != nil {
		panic(err)
	}

	sc, err := loadScorecard(cfg)
	if err != nil {
		panic(err)
	}
	rt, err := loadRoute(cfg, sc)
	if err != nil {
		panic(err)
	}

	reg := processor.NewRegistry()
	for _, cc := range cfg.Contestants {
		c, err := cc.Contestant()
		if err != nil {
			panic(err)
		}
		if _, err := reg.Start(c, rt, sc, cfg.TrackInterpolation()); err != nil {
			panic(err)
		}
	}

	switch *mode {
	case "replay":
		if *trackPath == "" {
			panic("replay mode requires -track")
		}
		id := *contestantID
		if id == "" {
			if len(cfg.Contestants) != 1 {
				panic("-contestant is required when more than one contestant is configured")
			}
			id = cfg.Contestants[0].ID
		}
		p, ok := reg.Get(id)
		if !ok {
			panic(fmt.Sprintf("unknown contestant %q", id))
		}
		reader := &ingest.TrackReader{DeviceID: p.Contestant().TrackerDeviceID}
		positions, err := reader.ReadFile(*trackPath)
		if err != nil {
			panic(err)
		}
		for _, pos := range positions {
			reg.Route(pos.DeviceID, pos)
		}
		reg.TerminateAll()
		printReport(p, cfg, sc.Name, *format)
	case "poll":
		url := cfg.Feed.VehiclePositionsURL
		if *vehiclePositions != "" {
			url = *vehiclePositions
		}
		if url == "" {
			panic("poll mode requires a VehiclePositions URL via config or -vehiclePositions")
		}
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		poller := ingest.NewFeedPoller(url, time.Duration(cfg.Feed.PollIntervalMS)*time.Millisecond)
		if err := poller.Run(ctx, func(pos track.Position) {
			reg.Route(pos.DeviceID, pos)
		}); err != nil && ctx.Err() == nil {
			panic(err)
		}
		reg.TerminateAll()
		for _, cc := range cfg.Contestants {
			if p, ok := reg.Get(cc.ID); ok {
				printReport(p, cfg, sc.Name, *format)
			}
		}
	default:
		panic("unknown mode")
	}
}

func loadScorecard(cfg config.AppConfig) (*scorecard.Scorecard, error) {
	if cfg.Task.ScorecardPath != "" {
		return scorecard.Load(cfg.Task.ScorecardPath)
	}
	name := cfg.Task.ScorecardName
	if name == "" {
		name = "FAI Precision 2020"
	}
	sc := scorecard.Default(name)
	if sc == nil {
		return nil, fmt.Errorf("unknown scorecard %q", name)
	}
	return sc, nil
}

func loadRoute(cfg config.AppConfig, sc *scorecard.Scorecard) (*route.Route, error) {
	rt, err := route.LoadCSV(cfg.Task.RoutePath, cfg.Task.Name, sc)
	if err != nil {
		return nil, err
	}
	if cfg.Task.ZonesPath != "" {
		if err := route.LoadZones(cfg.Task.ZonesPath, rt); err != nil {
			return nil, err
		}
	}
	return rt, nil
}

func printReport(p *processor.Processor, cfg config.AppConfig, scorecardName, format string) {
	r := report.Build(p, cfg.Task.Name, scorecardName)
	rb := report.NewResponseBuilder()
	var buf []byte
	if strings.EqualFold(format, "xml") {
		buf = rb.BuildXML(r)
	} else {
		buf = rb.BuildJSON(r)
	}
	fmt.Fprintln(os.Stdout, string(buf))
}

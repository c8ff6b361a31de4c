package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/image/font/basicfont"
	"golang.org/x/term"

	"marquee/config"
	"marquee/display"
	"marquee/engine"
	"marquee/internal/drivers/oled"
	"marquee/internal/drivers/termsim"
	"marquee/journal"
	"marquee/strip"
)

type closer interface {
	display.Driver
	Close()
}

func main() {
	driverName := flag.String("driver", "term", "display driver: term or oled")
	busName := flag.String("bus", "", "i2c bus for the oled driver (empty = first available)")
	oledW := flag.Int("oled-width", 128, "oled panel width in pixels")
	oledH := flag.Int("oled-height", 64, "oled panel height in pixels")
	snapshotPath := flag.String("snapshot", "", "override snapshot path")
	journalPath := flag.String("journal", "", "enable the stats journal at this path")
	verbose := flag.Bool("verbose", false, "log per-present and per-second metrics")
	flag.Parse()

	logFile, err := os.OpenFile("marqueed.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err == nil {
		defer logFile.Close()
		log.SetOutput(logFile)
	}
	log.Println("marqueed starting")
	if err := config.Err(); err != nil {
		log.Printf("Config: running on defaults: %v", err)
	}

	driver, err := openDriver(*driverName, *busName, *oledW, *oledH)
	if err != nil {
		fmt.Fprintf(os.Stderr, "marqueed: %v\n", err)
		os.Exit(1)
	}
	defer driverClose(driver)

	scroll := config.Scroll(config.System())
	snapshot := config.Snapshot(config.System())
	if *snapshotPath != "" {
		snapshot.Path = *snapshotPath
	}

	scheduler, err := display.NewFrameScheduler(driver, scroll.InactivityTimeout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "marqueed: %v\n", err)
		os.Exit(1)
	}
	scheduler.SetPublisher(display.NewSnapshotPublisher(snapshot.Path, snapshot.MinInterval))

	var statsObs display.StatsObserver
	if *verbose {
		scheduler.SetObserver(display.NewPresentLogger(nil))
		statsObs = display.NewStatsLogger(nil)
	}

	var journ *journal.Journal
	if *journalPath != "" {
		journ, err = journal.Open(*journalPath)
		if err != nil {
			log.Printf("Journal: disabled: %v", err)
		} else {
			defer journ.Close()
		}
	}

	if err := run(scheduler, driver, scroll, journ, statsObs); err != nil {
		driverClose(driver)
		fmt.Fprintf(os.Stderr, "marqueed: %v\n", err)
		os.Exit(1)
	}
	log.Println("marqueed stopped cleanly")
}

func openDriver(name, bus string, w, h int) (display.Driver, error) {
	switch name {
	case "oled":
		return oled.New(bus, w, h)
	case "term":
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return nil, fmt.Errorf("term driver needs a terminal")
		}
		return termsim.New()
	default:
		return nil, fmt.Errorf("unknown driver %q", name)
	}
}

func driverClose(d display.Driver) {
	if c, ok := d.(closer); ok {
		c.Close()
	}
}

func run(scheduler *display.FrameScheduler, driver display.Driver, scroll config.ScrollConfig, journ *journal.Journal, statsObs display.StatsObserver) error {
	w, h := scheduler.Size()

	ticker, err := engine.NewTickerEngine(w, h, engine.TickerConfig{
		Speed:           scroll.Speed,
		Loop:            scroll.Loop,
		RewindThreshold: scroll.RewindThreshold,
	})
	if err != nil {
		return err
	}

	built, err := buildDemoStrip(w, h)
	if err != nil {
		return err
	}
	ticker.SetStrip(built)

	estimate := ticker.EstimateDuration(scroll.Delay, scroll.DurationBuffer, scroll.MinDuration, scroll.MaxDuration)
	log.Printf("Engine: strip width=%d duration=%.1fs clamped=%v", built.Width(), estimate.Seconds, estimate.Clamped)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Secondary producer: a clock redraw requested once a second. While the
	// ticker scrolls these defer; they run during the idle window between
	// scroll sessions.
	clock := newClockProducer(scheduler, w, h)
	go clock.run()
	defer clock.stop()

	delay := time.Duration(scroll.Delay * float64(time.Second))
	tick := time.NewTicker(delay)
	defer tick.Stop()

	statsEvery := time.NewTicker(time.Second)
	defer statsEvery.Stop()

	sessionEnd := time.Now().Add(time.Duration(estimate.Seconds * float64(time.Second)))
	idleUntil := time.Time{}

	for {
		select {
		case <-sigChan:
			scheduler.Clear()
			return nil

		case now := <-tick.C:
			if now.Before(idleUntil) {
				scheduler.DrainDeferred()
				continue
			}
			if !sessionEnd.IsZero() && now.After(sessionEnd) {
				// Hand the display back between sessions so deferred
				// redraws get their idle window.
				scheduler.Clear()
				ticker.Rewind()
				idleUntil = now.Add(3 * time.Second)
				sessionEnd = now.Add(3*time.Second + time.Duration(estimate.Seconds*float64(time.Second)))
				continue
			}

			ticker.RewindIfEndingSoon(time.Until(sessionEnd))
			scheduler.MarkScrollActive()
			frame, cycle := ticker.Tick()
			scheduler.Present(frame)
			if cycle {
				log.Printf("Engine: cycle complete at offset %.1f", ticker.State().Offset)
			}

		case <-statsEvery.C:
			s := scheduler.Stats()
			if journ != nil {
				journ.Record(journal.Sample{At: time.Now(), Stats: s})
			}
			if statsObs != nil {
				statsObs.ObserveStats(s)
			}
			if d, ok := driver.(*termsim.Driver); ok {
				d.SetStatus(fmt.Sprintf(" marquee  presented=%d deferred=%d processed=%d",
					s.FramesPresented, s.UpdatesDeferred, s.UpdatesProcessed))
			}
		}
	}
}

func buildDemoStrip(canvasW, canvasH int) (*strip.CompositeStrip, error) {
	face := strip.NewFaceRenderer(basicfont.Face7x13)
	items := []strip.ItemRenderer{
		&strip.TextItem{Name: "headline-1", Text: "MARQUEE DEMO FEED", Color: color.RGBA{R: 255, G: 229, A: 255}, Metrics: face, Glyphs: face},
		&strip.TextItem{Name: "headline-2", Text: "ALL SYSTEMS NOMINAL", Color: color.White, Metrics: face, Glyphs: face},
		&strip.TextItem{Name: "headline-3", Text: "DEFERRED UPDATES FLUSH WHEN SCROLLING STOPS", Color: color.RGBA{G: 235, R: 70, B: 145, A: 255}, Metrics: face, Glyphs: face},
	}

	builder := strip.Builder{
		Height:   canvasH,
		Gap:      strip.CanvasGap(canvasW),
		MinWidth: canvasW,
	}
	return builder.Build(items)
}

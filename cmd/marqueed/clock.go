package main

import (
	"image"
	"image/color"
	"time"

	"golang.org/x/image/font/basicfont"

	"marquee/display"
	"marquee/strip"
)

// clockProducer is a background producer that wants to repaint a clock once
// a second. It never writes the canvas directly; every redraw goes through
// RequestUpdate so an active scroll is never interrupted.
type clockProducer struct {
	scheduler *display.FrameScheduler
	frame     *image.RGBA
	glyphs    *strip.FaceRenderer
	quit      chan struct{}
}

func newClockProducer(scheduler *display.FrameScheduler, w, h int) *clockProducer {
	return &clockProducer{
		scheduler: scheduler,
		frame:     image.NewRGBA(image.Rect(0, 0, w, h)),
		glyphs:    strip.NewFaceRenderer(basicfont.Face7x13),
		quit:      make(chan struct{}),
	}
}

func (c *clockProducer) run() {
	tick := time.NewTicker(time.Second)
	defer tick.Stop()
	for {
		select {
		case <-c.quit:
			return
		case now := <-tick.C:
			stamp := now.Format("15:04:05")
			c.scheduler.RequestUpdate(1, func() {
				c.draw(stamp)
			})
		}
	}
}

// draw repaints the clock frame. Stale callbacks are harmless: each redraw
// renders the timestamp captured at enqueue time and the next one replaces it.
func (c *clockProducer) draw(stamp string) {
	for i := range c.frame.Pix {
		c.frame.Pix[i] = 0
	}
	baseline := (c.frame.Bounds().Dy() + c.glyphs.LineHeight()) / 2
	c.glyphs.DrawString(c.frame, stamp, 2, baseline, color.RGBA{R: 98, G: 116, B: 130, A: 255})
	c.scheduler.Present(c.frame)
}

func (c *clockProducer) stop() {
	close(c.quit)
}

// Copyright © 2026 Marquee contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/drivers/oled/oled.go
// Summary: ssd1306 OLED adapter behind the display.Driver capability.

package oled

import (
	"fmt"
	"image"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/devices/v3/ssd1306"
	"periph.io/x/host/v3"
)

// Driver drives an ssd1306 panel over I²C.
type Driver struct {
	dev    *ssd1306.Dev
	bus    i2c.BusCloser
	width  int
	height int
}

// New opens the named I²C bus (empty selects the first available) and
// initializes the panel. Construction is the one place driver errors are
// fatal; Swap failures are counted and retried on the next frame.
func New(busName string, width, height int) (*Driver, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("oled: host init: %w", err)
	}
	bus, err := i2creg.Open(busName)
	if err != nil {
		return nil, fmt.Errorf("oled: open i2c bus: %w", err)
	}

	opts := ssd1306.DefaultOpts
	opts.W = width
	opts.H = height
	dev, err := ssd1306.NewI2C(bus, &opts)
	if err != nil {
		bus.Close()
		return nil, fmt.Errorf("oled: init panel: %w", err)
	}

	return &Driver{dev: dev, bus: bus, width: width, height: height}, nil
}

func (d *Driver) Size() (int, int) {
	return d.width, d.height
}

func (d *Driver) Swap(frame *image.RGBA) error {
	return d.dev.Draw(d.dev.Bounds(), frame, image.Point{})
}

func (d *Driver) Close() error {
	return d.bus.Close()
}

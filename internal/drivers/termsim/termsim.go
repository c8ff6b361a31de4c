package termsim

import (
	"errors"
	"image"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

var ErrTooSmall = errors.New("termsim: terminal too small to simulate a panel")

// Driver simulates a low-resolution RGB panel inside a terminal. Each cell
// renders two vertically stacked pixels with the upper-half-block rune, and
// the bottom terminal row is reserved for a status line.
type Driver struct {
	mu     sync.Mutex
	screen tcell.Screen
	cols   int
	rows   int
	status string
	owned  bool
}

// New allocates and initializes a real terminal screen.
func New() (*Driver, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	d, err := NewWithScreen(screen)
	if err != nil {
		screen.Fini()
		return nil, err
	}
	d.owned = true
	return d, nil
}

// NewWithScreen wraps an already-initialized screen. Tests pass a
// tcell.SimulationScreen here.
func NewWithScreen(screen tcell.Screen) (*Driver, error) {
	cols, rows := screen.Size()
	if cols < 1 || rows < 2 {
		return nil, ErrTooSmall
	}
	screen.HideCursor()
	return &Driver{screen: screen, cols: cols, rows: rows}, nil
}

// Size reports the simulated panel dimensions in pixels.
func (d *Driver) Size() (int, int) {
	return d.cols, (d.rows - 1) * 2
}

// SetStatus replaces the status line shown under the panel.
func (d *Driver) SetStatus(status string) {
	d.mu.Lock()
	d.status = status
	d.mu.Unlock()
}

// Swap pushes a frame to the terminal.
func (d *Driver) Swap(frame *image.RGBA) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	for y := 0; y < d.rows-1; y++ {
		for x := 0; x < d.cols; x++ {
			top := frame.RGBAAt(x, y*2)
			bottom := frame.RGBAAt(x, y*2+1)
			style := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(top.R), int32(top.G), int32(top.B))).
				Background(tcell.NewRGBColor(int32(bottom.R), int32(bottom.G), int32(bottom.B)))
			d.screen.SetContent(x, y, '▀', nil, style)
		}
	}
	d.drawStatus()
	d.screen.Show()
	return nil
}

func (d *Driver) drawStatus() {
	style := tcell.StyleDefault.Reverse(true)
	x := 0
	for _, ch := range d.status {
		w := runewidth.RuneWidth(ch)
		if w == 0 {
			continue
		}
		if x+w > d.cols {
			break
		}
		d.screen.SetContent(x, d.rows-1, ch, nil, style)
		x += w
	}
	for ; x < d.cols; x++ {
		d.screen.SetContent(x, d.rows-1, ' ', nil, style)
	}
}

// Close releases the terminal when this driver owns it.
func (d *Driver) Close() {
	if d.owned {
		d.screen.Fini()
	}
}

package hardware

import (
	"fmt"
	"log"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"git.lost.host/meutraa/chase/internal/config"
	"github.com/eiannone/keyboard"
	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
	"golang.org/x/term"
)

const (
	sampleRate = beep.SampleRate(44100)

	// how long a key event holds the line low,
	// real buttons are not released within a single frame
	pressHold = 80 * time.Millisecond

	stripRow = 3
	stripCol = 4
	lcdRow   = 6
	lcdCol   = 4
)

// DefaultHardware renders the cabinet in the terminal: the led strip and the
// 16x2 character display drawn with cursor addressed escapes, the keyboard
// standing in for the button and the speaker for the buzzer.
type DefaultHardware struct {
	buffer       strings.Builder
	restoreState *term.State
	keys         <-chan keyboard.KeyEvent
	start        time.Time
	pressedUntil time.Time
	closed       bool
	leds         [config.NumLeds]bool
	lcd          [2]string
}

func (h *DefaultHardware) Init() error {
	state, err := term.MakeRaw(int(os.Stdout.Fd()))
	if nil != err {
		return fmt.Errorf("unable to set raw mode: %w", err)
	}
	h.restoreState = state

	keys, err := keyboard.GetKeys(128)
	if nil != err {
		return fmt.Errorf("unable to open keyboard: %w", err)
	}
	h.keys = keys

	if !*config.Silent {
		if err := speaker.Init(sampleRate, sampleRate.N(time.Second/60)); nil != err {
			return fmt.Errorf("unable to open speaker: %w", err)
		}
	}

	h.start = time.Now()

	fmt.Printf("%s%s%s",
		"\033[?1049h", // Enable alternate buffer
		"\033[?25l",   // Make the cursor invisible
		"\033[2J",     // Clear the screen
	)
	h.fill(1, stripCol, "light chaser   [any key] button   [esc] quit")
	var marks strings.Builder
	for i := 0; i < config.NumLeds; i++ {
		if i >= config.TargetZoneStart && i <= config.TargetZoneEnd {
			marks.WriteString("v ")
		} else {
			marks.WriteString("  ")
		}
	}
	h.fill(stripRow-1, stripCol, marks.String())
	h.drawStrip()
	h.drawLcd()
	h.flush()
	return nil
}

func (h *DefaultHardware) Deinit() error {
	if err := keyboard.Close(); nil != err {
		log.Println("unable to close keyboard", err)
	}
	fmt.Printf("%s%s",
		"\033[?1049l", // Disable alternate buffer
		"\033[?25h",   // Make the cursor visible
	)
	if nil == h.restoreState {
		return nil
	}
	return term.Restore(int(os.Stdout.Fd()), h.restoreState)
}

// Closed reports that the player quit the simulator.
func (h *DefaultHardware) Closed() bool {
	return h.closed
}

func (h *DefaultHardware) Set(position int, on bool) {
	if position < 0 || position >= config.NumLeds {
		return
	}
	h.leds[position] = on
	h.drawStrip()
	h.flush()
}

func (h *DefaultHardware) Clear() {
	for i := range h.leds {
		h.leds[i] = false
	}
	h.drawStrip()
	h.flush()
}

func (h *DefaultHardware) ShowAttract(high uint16) {
	h.show("Press to Play!", "HiScore: "+strconv.Itoa(int(high)))
}

func (h *DefaultHardware) ShowGame(score, high uint16) {
	h.show("Score:   "+strconv.Itoa(int(score)), "HiScore: "+strconv.Itoa(int(high)))
}

func (h *DefaultHardware) ShowCelebration(score uint16) {
	h.show("NEW HIGH SCORE!", "Score: "+strconv.Itoa(int(score)))
}

func (h *DefaultHardware) Blank() {
	h.show("", "")
}

// Read drains pending key events and reports the line level.
func (h *DefaultHardware) Read() bool {
	for i := 0; i < len(h.keys); i++ {
		key := <-h.keys
		if key.Key == keyboard.KeyEsc || key.Key == keyboard.KeyCtrlC || key.Rune == 'q' {
			h.closed = true
			continue
		}
		h.pressedUntil = time.Now().Add(pressHold)
	}
	return time.Now().After(h.pressedUntil)
}

func (h *DefaultHardware) Millis() uint32 {
	return uint32(time.Since(h.start).Milliseconds())
}

func (h *DefaultHardware) Tone(freq, duration uint16) {
	if *config.Silent || freq == 0 {
		return
	}
	n := sampleRate.N(time.Duration(duration) * time.Millisecond)
	speaker.Play(beep.Take(n, &sine{freq: float64(freq)}))
}

// sine is a fixed frequency streamer for the buzzer tones.
type sine struct {
	freq  float64
	phase float64
}

func (s *sine) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		v := 0.2 * math.Sin(2*math.Pi*s.phase)
		samples[i][0] = v
		samples[i][1] = v
		s.phase += s.freq / float64(sampleRate)
		if s.phase >= 1 {
			s.phase -= 1
		}
	}
	return len(samples), true
}

func (s *sine) Err() error { return nil }

func (h *DefaultHardware) drawStrip() {
	var b strings.Builder
	for _, on := range h.leds {
		if on {
			b.WriteString("O ")
		} else {
			b.WriteString(". ")
		}
	}
	h.fill(stripRow, stripCol, b.String())
}

func (h *DefaultHardware) drawLcd() {
	h.fill(lcdRow-1, lcdCol, "+----------------+")
	for i, line := range h.lcd {
		h.fill(lcdRow+i, lcdCol, "|"+pad(line)+"|")
	}
	h.fill(lcdRow+2, lcdCol, "+----------------+")
}

func (h *DefaultHardware) show(top, bottom string) {
	h.lcd[0], h.lcd[1] = top, bottom
	h.drawLcd()
	h.flush()
}

func pad(s string) string {
	if len(s) > 16 {
		s = s[:16]
	}
	return s + strings.Repeat(" ", 16-len(s))
}

func (h *DefaultHardware) fill(row, column int, message string) {
	h.buffer.WriteString("\033[")
	h.buffer.WriteString(strconv.Itoa(row))
	h.buffer.WriteString(";")
	h.buffer.WriteString(strconv.Itoa(column))
	h.buffer.WriteString("H")
	h.buffer.WriteString(message)
}

func (h *DefaultHardware) flush() {
	os.Stdout.Write([]byte(h.buffer.String()))
	h.buffer.Reset()
}

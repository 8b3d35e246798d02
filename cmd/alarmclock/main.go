// Command alarmclock drives a 4-digit 7-segment alarm clock from a
// rotary encoder, a buzzer and a shift-register display chain.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"

	"github.com/OttoBos/Arduino-Alarmclock/internal/app"
	"github.com/OttoBos/Arduino-Alarmclock/internal/clock"
	"github.com/OttoBos/Arduino-Alarmclock/internal/display"
	"github.com/OttoBos/Arduino-Alarmclock/internal/encoder"
	"github.com/OttoBos/Arduino-Alarmclock/internal/gpio"
	"github.com/OttoBos/Arduino-Alarmclock/internal/melody"
	"github.com/OttoBos/Arduino-Alarmclock/internal/status"
	"github.com/OttoBos/Arduino-Alarmclock/internal/tone"
	"github.com/OttoBos/Arduino-Alarmclock/internal/web"
)

func main() {
	spiDev := flag.String("spi", "/dev/spidev0.0", "SPI device for the display chain (empty to disable)")
	chipName := flag.String("chip", "gpiochip0", "GPIO character device")
	pinA := flag.Int("pin-a", gpio.DefaultPinEncoderA, "BCM pin number for encoder phase A")
	pinB := flag.Int("pin-b", gpio.DefaultPinEncoderB, "BCM pin number for encoder phase B")
	pinBtn := flag.Int("pin-btn", gpio.DefaultPinButton, "BCM pin number for the encoder button")
	pinLatch := flag.Int("pin-latch", gpio.DefaultPinLatch, "BCM pin number for the shift-register latch")
	pinBuzzer := flag.Int("pin-buzzer", gpio.DefaultPinBuzzer, "BCM pin number for the buzzer")
	refresh := flag.Duration("refresh", 500*time.Microsecond, "Display refresh interval (one digit sub-tick)")
	poll := flag.Duration("poll", 5*time.Millisecond, "UI loop interval")
	inactivity := flag.Duration("inactivity", app.DefaultInactivity, "Idle timeout before falling back to the time display")
	maxPlay := flag.Duration("max-play", melody.DefaultMaxPlay, "Melody playback time limit")
	cooldown := flag.Duration("cooldown", encoder.DefaultCooldown, "Button press cooldown")
	intensity := flag.Int("intensity", 7, "Initial display intensity (0-10)")
	alarmAt := flag.String("alarm", "07:00", "Alarm time (HH:MM)")
	alarmOn := flag.Bool("alarm-on", false, "Start with the alarm enabled")
	httpAddr := flag.String("http", "", "HTTP status address (empty to disable)")
	selftest := flag.Bool("selftest", false, "Light every segment, beep, and exit")
	printState := flag.Bool("print-state", false, "Print input line levels and exit")

	flag.Parse()

	alarm, err := parseAlarm(*alarmAt)
	if err != nil {
		log.Fatalf("fatal: %v", err)
	}
	alarm.Enabled = *alarmOn

	cfg := runConfig{
		spiDev:     *spiDev,
		chipName:   *chipName,
		pinA:       *pinA,
		pinB:       *pinB,
		pinBtn:     *pinBtn,
		pinLatch:   *pinLatch,
		pinBuzzer:  *pinBuzzer,
		refresh:    *refresh,
		poll:       *poll,
		inactivity: *inactivity,
		maxPlay:    *maxPlay,
		cooldown:   *cooldown,
		intensity:  *intensity,
		alarm:      alarm,
		httpAddr:   *httpAddr,
		selftest:   *selftest,
		printState: *printState,
	}
	if err := run(cfg); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

type runConfig struct {
	spiDev     string
	chipName   string
	pinA       int
	pinB       int
	pinBtn     int
	pinLatch   int
	pinBuzzer  int
	refresh    time.Duration
	poll       time.Duration
	inactivity time.Duration
	maxPlay    time.Duration
	cooldown   time.Duration
	intensity  int
	alarm      app.AlarmConfig
	httpAddr   string
	selftest   bool
	printState bool
}

func run(cfg runConfig) error {
	chip, err := gpio.OpenChip(cfg.chipName)
	if err != nil {
		return fmt.Errorf("init gpio: %w", err)
	}
	defer chip.Close()

	aIn, err := chip.InputWithEdges(cfg.pinA)
	if err != nil {
		return fmt.Errorf("encoder phase A: %w", err)
	}
	bIn, err := chip.InputWithEdges(cfg.pinB)
	if err != nil {
		return fmt.Errorf("encoder phase B: %w", err)
	}
	btnIn, err := chip.Input(cfg.pinBtn)
	if err != nil {
		return fmt.Errorf("encoder button: %w", err)
	}

	// Print state mode
	if cfg.printState {
		for _, l := range []struct {
			name string
			line gpio.InputLine
		}{{"A", aIn}, {"B", bIn}, {"BTN", btnIn}} {
			v, err := l.line.Value()
			if err != nil {
				return fmt.Errorf("read %s: %w", l.name, err)
			}
			fmt.Printf("%s: %v\n", l.name, v)
		}
		return nil
	}

	// Initialize the display chain
	var bus display.Bus = display.Discard{}
	if cfg.spiDev != "" {
		if _, err := host.Init(); err != nil {
			return fmt.Errorf("init periph host: %w", err)
		}
		port, err := spireg.Open(cfg.spiDev)
		if err != nil {
			return fmt.Errorf("open spi %s: %w", cfg.spiDev, err)
		}
		defer port.Close()

		latch, err := chip.Output(cfg.pinLatch)
		if err != nil {
			return fmt.Errorf("latch line: %w", err)
		}
		bus, err = display.NewSPIBus(port, latch)
		if err != nil {
			return fmt.Errorf("init display bus: %w", err)
		}
	}

	buzzer, err := chip.Output(cfg.pinBuzzer)
	if err != nil {
		return fmt.Errorf("buzzer line: %w", err)
	}
	player := tone.NewLinePlayer(buzzer)
	defer player.Stop()

	frame := &display.Shared{}
	mux := display.NewMultiplexer(frame, bus)

	if cfg.selftest {
		return runSelftest(frame, mux, player)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		if err := mux.Run(ctx, cfg.refresh); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("display refresh error: %v", err)
		}
	}()

	dec := encoder.NewDecoder(aIn, bIn, encoder.DefaultSettle)
	aIn.OnEdge(dec.EdgeA)
	bIn.OnEdge(dec.EdgeB)
	btn := encoder.NewButton(btnIn, cfg.cooldown)

	clk := clock.NewSystemSource()
	seq := melody.NewSequencer(player, cfg.maxPlay)

	ui := app.New(frame, dec, btn, clk, seq, app.Config{
		Inactivity: cfg.inactivity,
		Intensity:  cfg.intensity,
		Alarm:      cfg.alarm,
	})

	tracker := status.NewTracker(time.Now(), status.Config{
		RefreshUs:    cfg.refresh.Microseconds(),
		PollMs:       cfg.poll.Milliseconds(),
		InactivityMs: cfg.inactivity.Milliseconds(),
		SPIDev:       cfg.spiDev,
		HTTPAddr:     cfg.httpAddr,
	})
	tracker.SetAlarm(trackerAlarm(cfg.alarm))

	if cfg.httpAddr != "" {
		srv := web.New(cfg.httpAddr, tracker)
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("http server error: %v", err)
			}
		}()
		defer srv.Shutdown(context.Background())
		log.Printf("http status server listening on %s", cfg.httpAddr)
	}

	log.Printf("started: refresh=%v poll=%v alarm=%02d:%02d enabled=%v",
		cfg.refresh, cfg.poll, cfg.alarm.Hour, cfg.alarm.Minute, cfg.alarm.Enabled)

	ticker := time.NewTicker(cfg.poll)
	defer ticker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	return runLoop(ui, frame, seq, tracker, time.Now, ticker.C, sigCh)
}

func runLoop(ui *app.App, frame *display.Shared, seq *melody.Sequencer, tracker *status.Tracker, now func() time.Time, tick <-chan time.Time, sig <-chan os.Signal) error {
	for {
		select {
		case s := <-sig:
			log.Printf("received %v, shutting down", s)
			seq.Stop()
			return nil

		case <-tick:
			ui.Tick(now())

			if tracker != nil {
				fr := frame.Load()
				tracker.Update(ui.State().String(), ui.Text(), fr.Colon, ui.Intensity())
				tracker.SetAlarm(trackerAlarm(ui.Alarm()))
				tracker.SetMelody(seq.TrackName())
			}
		}
	}
}

// runSelftest lights every segment and overlay at full intensity for a
// couple of seconds and sounds a short beep.
func runSelftest(frame *display.Shared, mux *display.Multiplexer, player tone.Player) error {
	all := display.Frame{Colon: true, Indicator: true, Intensity: display.MaxIntensity}
	for i := range all.Slots {
		all.Slots[i] = display.Slot{Pattern: 0x7F, Dot: true}
	}
	frame.Store(all)

	player.Play(melody.NoteA5, 200*time.Millisecond)

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if err := mux.Tick(); err != nil {
			return fmt.Errorf("selftest refresh: %w", err)
		}
		time.Sleep(500 * time.Microsecond)
	}
	player.Stop()
	return mux.Blank()
}

func trackerAlarm(a app.AlarmConfig) status.Alarm {
	return status.Alarm{Hour: a.Hour, Minute: a.Minute, Enabled: a.Enabled}
}

// parseAlarm parses "HH:MM" into an alarm config with Enabled unset.
func parseAlarm(s string) (app.AlarmConfig, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return app.AlarmConfig{}, fmt.Errorf("alarm %q: want HH:MM", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return app.AlarmConfig{}, fmt.Errorf("alarm hour %q: %w", parts[0], err)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return app.AlarmConfig{}, fmt.Errorf("alarm minute %q: %w", parts[1], err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return app.AlarmConfig{}, fmt.Errorf("alarm %q: out of range", s)
	}
	return app.AlarmConfig{Hour: h, Minute: m}, nil
}

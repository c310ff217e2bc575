package main

import (
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/pkg/errors"

	"github.com/astoeckel/aravir-rtc/i2c"
	"github.com/astoeckel/aravir-rtc/rtc"
)

// App defines application context. It plays both sides of the wire: the
// emulated chip with its 1 Hz pulse source, and a host that sets and polls
// the time over the simulated bus the way a DS323x driver would.
type App struct {
	config *Config
	clock  *rtc.Clock
	bus    *i2c.Bus
	resync chan struct{} // Pulse source restart requests.
	done   chan struct{} // Pulse source shutdown.
}

// NewApp creates a new application instance using the given configuration.
func NewApp(config *Config) *App {
	var a App
	a.config = config
	a.clock = rtc.New(config.SRAMSize)
	a.bus = &i2c.Bus{}
	a.resync = make(chan struct{}, 1)
	a.done = make(chan struct{})
	return &a
}

// Run runs the application and does not return until the configured
// duration elapsed, an interrupt arrived or a bus error occurred.
func (a *App) Run() error {
	log.Println(Version())

	slave := i2c.NewSlave(a.config.BusAddr, a.clock)
	slave.OnAction(a.handleAction)
	if err := a.bus.Connect(slave); err != nil {
		return errors.Wrap(err, "attaching rtc slave")
	}

	if a.config.SetTime {
		if err := a.setTime(time.Now()); err != nil {
			return errors.Wrap(err, "setting time")
		}
	}

	go a.runPulse()
	defer close(a.done)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	defer signal.Stop(sig)

	poll := time.NewTicker(a.config.Poll)
	defer poll.Stop()

	var deadline <-chan time.Time
	if a.config.Duration > 0 {
		deadline = time.After(a.config.Duration)
	}

	for {
		select {
		case <-sig:
			return nil
		case <-deadline:
			return nil
		case <-poll.C:
			if err := a.pollTime(); err != nil {
				return errors.Wrap(err, "polling time")
			}
		}
	}
}

// runPulse is the pulse source: it ticks the clock once per second until
// the application ends. A resync request restarts the period, mirroring a
// hardware timer being reset after a seconds write.
func (a *App) runPulse() {
	t := time.NewTicker(time.Second)
	defer t.Stop()

	for {
		select {
		case <-a.done:
			return
		case <-a.resync:
			t.Reset(time.Second)
		case <-t.C:
			a.clock.Tick()
		}
	}
}

// handleAction reacts to side-effect signals from register writes.
func (a *App) handleAction(action rtc.Action) {
	switch action {
	case rtc.ActionResetTimer:
		select {
		case a.resync <- struct{}{}:
		default:
		}
	case rtc.ActionConvertTemperature:
		// There is no sensor attached; complete the conversion with a
		// fixed 25 degree reading.
		a.clock.FinishTemperatureConversion(0x19, 0x00)
	}
}

// setTime writes the given wall clock time into the chip over the bus.
// Seconds go last so their timer reset marks the end of the update.
func (a *App) setTime(t time.Time) error {
	century := (t.Year() - 1900) / 100

	if err := a.bus.Start(a.config.BusAddr, true); err != nil {
		return err
	}
	for _, v := range []byte{
		rtc.RegMinutes, // Register pointer.
		rtc.EncodeBCD(byte(t.Minute())),
		rtc.EncodeBCD(byte(t.Hour())),
		rtc.EncodeBCD(weekday(t)),
		rtc.EncodeBCD(byte(t.Day())),
		rtc.EncodeBCD(byte(t.Month())) | centuryBits(century),
		rtc.EncodeBCD(byte((t.Year() - 1900) % 100)),
	} {
		if err := a.bus.WriteByte(v); err != nil {
			return err
		}
	}

	// Separate transaction for the seconds register.
	if err := a.bus.Start(a.config.BusAddr, true); err != nil {
		return err
	}
	if err := a.bus.WriteByte(rtc.RegSeconds); err != nil {
		return err
	}
	if err := a.bus.WriteByte(rtc.EncodeBCD(byte(t.Second()))); err != nil {
		return err
	}
	a.bus.Stop()
	return nil
}

// pollTime reads the seven time registers over the bus and logs them,
// decoding the raw bytes host-side the way a chip driver would.
func (a *App) pollTime() error {
	if err := a.bus.Start(a.config.BusAddr, true); err != nil {
		return err
	}
	if err := a.bus.WriteByte(rtc.RegSeconds); err != nil {
		return err
	}
	if err := a.bus.Start(a.config.BusAddr, false); err != nil {
		return err
	}

	var regs [7]byte
	for i := range regs {
		v, err := a.bus.ReadByte()
		if err != nil {
			return err
		}
		regs[i] = v
	}
	a.bus.Stop()

	hours := int(rtc.DecodeBCD(regs[rtc.RegHours] & rtc.MaskHours24))
	if regs[rtc.RegHours]&rtc.BitHour12 != 0 {
		hours = int(rtc.DecodeBCD(regs[rtc.RegHours] & rtc.MaskHours12))
		if regs[rtc.RegHours]&rtc.BitHourPM != 0 {
			if hours != 12 {
				hours += 12
			}
		} else if hours == 12 {
			hours = 0
		}
	}

	year := 1900 + int(rtc.DecodeBCD(regs[rtc.RegYear]))
	if regs[rtc.RegMonth]&rtc.BitMonthCentury0 != 0 {
		year += 100
	}
	if regs[rtc.RegMonth]&rtc.BitMonthCentury1 != 0 {
		year += 200
	}
	if regs[rtc.RegMonth]&rtc.BitMonthCentury2 != 0 {
		year += 400
	}

	log.Printf("%04d-%02d-%02d %02d:%02d:%02d (day %d)",
		year,
		rtc.DecodeBCD(regs[rtc.RegMonth]&rtc.MaskMonth),
		rtc.DecodeBCD(regs[rtc.RegDate]&rtc.MaskDate),
		hours,
		rtc.DecodeBCD(regs[rtc.RegMinutes]&rtc.MaskMinutes),
		rtc.DecodeBCD(regs[rtc.RegSeconds]&rtc.MaskSeconds),
		rtc.DecodeBCD(regs[rtc.RegDay]&rtc.MaskDay))
	return nil
}

// weekday maps Go's Sunday-based weekday to the chip's reset convention of
// Monday as 1.
func weekday(t time.Time) byte {
	return byte((int(t.Weekday())+6)%7) + 1
}

// centuryBits spreads a binary century count over the three century bits of
// the month register.
func centuryBits(c int) byte {
	var b byte
	if c&1 != 0 {
		b |= rtc.BitMonthCentury0
	}
	if c&2 != 0 {
		b |= rtc.BitMonthCentury1
	}
	if c&4 != 0 {
		b |= rtc.BitMonthCentury2
	}
	return b
}

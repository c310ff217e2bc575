// Package rtc emulates the register-level behaviour of the DS323x family of
// battery-backed real time clocks. A host driving the register file over a
// bus observes the same BCD time registers, alarms and control/status
// semantics as with the real chip, so off-the-shelf DS3231/DS3232 drivers
// work against it unchanged.
//
// The clock does not keep time by itself. An external pulse source calls
// Tick once per second; the accumulated seconds are folded into the
// register file by Update, which the transport layer must call only while
// no register access is in flight.
package rtc

import (
	"sync/atomic"
	"time"
)

// Clock holds the register file of one emulated chip.
//
// Tick is safe to call from any goroutine at any point. All other methods
// mutate the register file without synchronisation and must not run
// concurrently with each other; serialising them is the caller's job, just
// as it is with the bus wiring of the real chip.
type Clock struct {
	mem       []byte
	ticks     atomic.Uint32
	dateDirty bool
}

// New creates a clock with the given amount of user SRAM appended to the
// named registers. Use SRAMSizeDS3231 or SRAMSizeDS3232 for the commercial
// variants. The size is clamped to the addressable register space.
func New(sramSize int) *Clock {
	if sramSize < 0 {
		sramSize = 0
	}
	if sramSize > SRAMSizeDS3232 {
		sramSize = SRAMSizeDS3232
	}
	c := &Clock{mem: make([]byte, RegSRAM+sramSize)}
	c.Reset()
	return c
}

// Size returns the size of the register file in bytes, including SRAM.
func (c *Clock) Size() int {
	return len(c.mem)
}

// Reset restores the named registers to their power-on defaults: Tuesday,
// 2019-01-01 00:00:00, oscillator-fail flag set. SRAM contents and the
// pending tick count are left alone.
func (c *Clock) Reset() {
	m := c.mem

	m[RegSeconds] = EncodeBCD(0)
	m[RegMinutes] = EncodeBCD(0)
	m[RegHours] = EncodeBCD(0)
	m[RegDay] = EncodeBCD(2)
	m[RegDate] = EncodeBCD(1)
	m[RegMonth] = EncodeBCD(1) | BitMonthCentury0
	m[RegYear] = EncodeBCD(19)

	m[RegAlarm1Seconds] = EncodeBCD(0)
	m[RegAlarm1Minutes] = EncodeBCD(0)
	m[RegAlarm1Hours] = EncodeBCD(0)
	m[RegAlarm1DayOrDate] = EncodeBCD(1)

	m[RegAlarm2Minutes] = EncodeBCD(0)
	m[RegAlarm2Hours] = EncodeBCD(0)
	m[RegAlarm2DayOrDate] = EncodeBCD(1)

	m[RegCtrl1] = BitCtrl1RS2 | BitCtrl1RS1 | BitCtrl1INTCN
	m[RegCtrl2] = BitCtrl2OSF
	m[RegAgingOffset] = 0
	m[RegTempMSB] = 0
	m[RegTempLSB] = 0
	m[RegCtrl3] = 0

	c.dateDirty = false
}

// Tick queues one elapsed second. It only touches the tick counter and is
// safe to call from an interrupt-style context, including while Update or
// a register access is running. The caller must keep Update running often
// enough that queued seconds are not left to pile up indefinitely.
func (c *Clock) Tick() {
	c.ticks.Add(1)
}

// Update folds all queued seconds into the register file and evaluates the
// alarms once per consumed second. If a date, month or year write left the
// date out of range for its month, the date is clamped first.
//
// Update must only be called while no register access is in flight: when
// the bus is idle, when a transaction is just starting, or when a
// sequential read wraps back to register zero. Returns whether any second
// was consumed, which hosts may use to drive a heartbeat.
func (c *Clock) Update() bool {
	if c.dateDirty {
		n := byte(NumberOfDays(c.Month(), c.Year()))
		c.mem[RegDate] = clampBCD(c.mem[RegDate]&MaskDate, 1, n)
		c.dateDirty = false
	}

	ticks := c.ticks.Swap(0)
	for i := uint32(0); i < ticks; i++ {
		c.advanceSecond()
		c.evaluateAlarms()
	}
	return ticks > 0
}

// advanceSecond moves the time registers forward by one second, rippling
// the carry through minutes, hours, day, date, month, year and century as
// far as it reaches.
func (c *Clock) advanceSecond() {
	m := c.mem

	if !incBCD(&m[RegSeconds], MaskSeconds, 0x59, 0x00) {
		return
	}
	if !incBCD(&m[RegMinutes], MaskMinutes, 0x59, 0x00) {
		return
	}

	if m[RegHours]&BitHour12 != 0 {
		if incBCD(&m[RegHours], MaskHours12, 0x12, 0x01) {
			// 12 -> 1 within the same half-day.
			return
		}
		if m[RegHours]&MaskHours12 != 0x12 {
			return
		}
		m[RegHours] ^= BitHourPM
		if m[RegHours]&BitHourPM != 0 {
			// 11 AM -> 12 PM is noon, not a new day.
			return
		}
		// 11 PM -> 12 AM: midnight.
	} else {
		if !incBCD(&m[RegHours], MaskHours24, 0x23, 0x00) {
			return
		}
	}

	// Day-of-week wraps independently and never gates the date carry.
	incBCD(&m[RegDay], MaskDay, 0x07, 0x01)

	n := byte(NumberOfDays(c.Month(), c.Year()))
	if !incBCD(&m[RegDate], MaskDate, EncodeBCD(n), 0x01) {
		return
	}
	if !incBCD(&m[RegMonth], MaskMonth, 0x12, 0x01) {
		return
	}
	if !incBCD(&m[RegYear], MaskYear, 0x99, 0x00) {
		return
	}

	// Ripple-carry through the century bits. The top bit has no carry
	// target; years past 2699 wrap the century back to zero.
	m[RegMonth] ^= BitMonthCentury0
	if m[RegMonth]&BitMonthCentury0 == 0 {
		m[RegMonth] ^= BitMonthCentury1
		if m[RegMonth]&BitMonthCentury1 == 0 {
			m[RegMonth] ^= BitMonthCentury2
		}
	}
}

// Seconds returns the current time's second (0-59).
func (c *Clock) Seconds() int {
	return int(DecodeBCD(c.mem[RegSeconds] & MaskSeconds))
}

// Minutes returns the current time's minute (0-59).
func (c *Clock) Minutes() int {
	return int(DecodeBCD(c.mem[RegMinutes] & MaskMinutes))
}

// Hours returns the current hour in 24-hour form (0-23) regardless of the
// mode the hour register is kept in.
func (c *Clock) Hours() int {
	h := c.mem[RegHours]
	if h&BitHour12 == 0 {
		return int(DecodeBCD(h & MaskHours24))
	}
	v := int(DecodeBCD(h & MaskHours12))
	if h&BitHourPM != 0 {
		if v == 12 {
			return 12
		}
		return v + 12
	}
	if v == 12 {
		return 0
	}
	return v
}

// Day returns the day of the week (1-7). The chip leaves the mapping to
// weekday names to the user; the reset default treats Monday as 1.
func (c *Clock) Day() int {
	return int(DecodeBCD(c.mem[RegDay] & MaskDay))
}

// Date returns the day of the month (1-31).
func (c *Clock) Date() int {
	return int(DecodeBCD(c.mem[RegDate] & MaskDate))
}

// Month returns the current month (1-12).
func (c *Clock) Month() int {
	return int(DecodeBCD(c.mem[RegMonth] & MaskMonth))
}

// Year returns the full year, combining the two-digit year register with
// the century bits on a 1900 base. The representable range is 1900-2699.
func (c *Clock) Year() int {
	m := c.mem[RegMonth]
	year := 1900 + int(DecodeBCD(c.mem[RegYear]&MaskYear))
	if m&BitMonthCentury0 != 0 {
		year += 100
	}
	if m&BitMonthCentury1 != 0 {
		year += 200
	}
	if m&BitMonthCentury2 != 0 {
		year += 400
	}
	return year
}

// Time returns the register contents as a time.Time in UTC.
func (c *Clock) Time() time.Time {
	return time.Date(c.Year(), time.Month(c.Month()), c.Date(),
		c.Hours(), c.Minutes(), c.Seconds(), 0, time.UTC)
}

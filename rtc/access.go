package rtc

// Action identifies a side effect that a register write asks the host to
// carry out. The engine cannot perform these itself: resynchronising the
// pulse source and measuring temperature belong to the hardware around it.
type Action uint8

const (
	ActionNone Action = iota

	// ActionResetTimer is reported by a write to the seconds register. The
	// pulse source should restart its period so the next tick arrives one
	// full second after the write.
	ActionResetTimer

	// ActionConvertTemperature is reported by a control register 1 write
	// with the CONV bit set. The host should start a temperature
	// measurement and complete it with FinishTemperatureConversion.
	ActionConvertTemperature
)

// Read returns the byte at the given register address. Addresses outside
// the register file read as zero. Read has no side effects.
func (c *Clock) Read(addr int) byte {
	if addr < 0 || addr >= len(c.mem) {
		return 0
	}
	return c.mem[addr]
}

// NextAddr returns the address following addr in bus order, wrapping from
// the end of the register file back to zero. It is what a bus master's
// auto-incrementing address pointer sees.
func (c *Clock) NextAddr(addr int) int {
	addr++
	if addr < 0 || addr >= len(c.mem) {
		return 0
	}
	return addr
}

// Write stores a value at the given register address, applying the chip's
// per-register masking and clamping rules. Out-of-range field values are
// clamped to the nearest bound and invalid addresses are ignored; a write
// never fails.
//
// Mode bits arrive embedded in the written value and are stored as given:
// writing an alarm field with its ignore bit set re-asserts the bit, and
// clearing it requires a write with the bit unset. Hosts that only want to
// change the BCD digits must take care not to carry the old mode bits
// along.
func (c *Clock) Write(addr int, v byte) Action {
	m := c.mem

	switch addr {
	case RegSeconds:
		m[RegSeconds] = clampBCD(v&MaskSeconds, 0, 59)
		// Sub-second drift queued since the last update would now be
		// credited to the freshly written value; discard it.
		c.ticks.Store(0)
		return ActionResetTimer

	case RegMinutes:
		m[RegMinutes] = clampBCD(v&MaskMinutes, 0, 59)

	case RegHours:
		m[RegHours] = clampHours(v)

	case RegDay:
		m[RegDay] = clampBCD(v&MaskDay, 1, 7)

	case RegDate:
		m[RegDate] = clampBCD(v&MaskDate, 1, 31)
		c.dateDirty = true

	case RegMonth:
		century := v & (BitMonthCentury0 | BitMonthCentury1 | BitMonthCentury2)
		m[RegMonth] = century | clampBCD(v&MaskMonth, 1, 12)
		c.dateDirty = true

	case RegYear:
		m[RegYear] = clampBCD(v&MaskYear, 0, 99)
		c.dateDirty = true

	case RegAlarm1Seconds:
		m[addr] = v&BitAlarmIgnore | clampBCD(v&MaskSeconds, 0, 59)

	case RegAlarm1Minutes, RegAlarm2Minutes:
		m[addr] = v&BitAlarmIgnore | clampBCD(v&MaskMinutes, 0, 59)

	case RegAlarm1Hours, RegAlarm2Hours:
		m[addr] = v&BitAlarmIgnore | clampHours(v)

	case RegAlarm1DayOrDate, RegAlarm2DayOrDate:
		if v&BitAlarmIsDay != 0 {
			m[addr] = v&(BitAlarmIgnore|BitAlarmIsDay) | clampBCD(v&MaskAlarmDay, 1, 7)
		} else {
			m[addr] = v&BitAlarmIgnore | clampBCD(v&MaskDate, 1, 31)
		}

	case RegCtrl1:
		// The CONV bit is cleared by the conversion completing, never by a
		// host write.
		m[RegCtrl1] = v | m[RegCtrl1]&BitCtrl1Conv
		if v&BitCtrl1Conv != 0 {
			return ActionConvertTemperature
		}

	case RegCtrl2:
		// The three status flags can be cleared by writing zero but never
		// set from the bus. The busy bit and the remaining control bits
		// pass through.
		const flags = BitCtrl2OSF | BitCtrl2A1F | BitCtrl2A2F
		m[RegCtrl2] = m[RegCtrl2]&v&flags | v&^byte(flags)

	case RegCtrl3:
		m[RegCtrl3] = v & BitCtrl3BBTD

	case RegAgingOffset:
		m[RegAgingOffset] = v

	case RegTempMSB, RegTempLSB:
		// Read only.

	default:
		if addr >= RegSRAM && addr < len(m) {
			m[addr] = v
		}
	}

	return ActionNone
}

// clampHours validates a written hour value. The 12-hour select and AM/PM
// bits of the written byte decide the clamping range and are kept in the
// stored value.
func clampHours(v byte) byte {
	if v&BitHour12 != 0 {
		return v&(BitHour12|BitHourPM) | clampBCD(v&MaskHours12, 1, 12)
	}
	return clampBCD(v&MaskHours24, 0, 23)
}

// FinishTemperatureConversion completes a conversion requested through
// ActionConvertTemperature: it stores the measured value in the (otherwise
// read-only) temperature registers and clears the CONV bit. This is the
// only way that bit ever clears.
func (c *Clock) FinishTemperatureConversion(msb, lsb byte) {
	c.mem[RegTempMSB] = msb
	c.mem[RegTempLSB] = lsb
	c.mem[RegCtrl1] &^= BitCtrl1Conv
}

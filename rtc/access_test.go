package rtc

import (
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestWriteSeconds(t *testing.T) {
	c := qt.New(t)
	clk := New(0)

	c.Assert(clk.Write(RegSeconds, EncodeBCD(42)), qt.Equals, ActionResetTimer)
	c.Assert(clk.Seconds(), qt.Equals, 42)

	c.Assert(clk.Write(RegSeconds, EncodeBCD(0)), qt.Equals, ActionResetTimer)
	c.Assert(clk.Seconds(), qt.Equals, 0)

	c.Assert(clk.Write(RegSeconds, 0xFF), qt.Equals, ActionResetTimer)
	c.Assert(clk.Seconds(), qt.Equals, 59)
}

func TestWriteMinutes(t *testing.T) {
	c := qt.New(t)
	clk := New(0)

	c.Assert(clk.Write(RegMinutes, EncodeBCD(42)), qt.Equals, ActionNone)
	c.Assert(clk.Minutes(), qt.Equals, 42)

	c.Assert(clk.Write(RegMinutes, EncodeBCD(0)), qt.Equals, ActionNone)
	c.Assert(clk.Minutes(), qt.Equals, 0)

	c.Assert(clk.Write(RegMinutes, 0xFF), qt.Equals, ActionNone)
	c.Assert(clk.Minutes(), qt.Equals, 59)
}

func TestWriteHours(t *testing.T) {
	c := qt.New(t)
	clk := New(0)

	// 24-hour mode.
	c.Assert(clk.Write(RegHours, EncodeBCD(23)), qt.Equals, ActionNone)
	c.Assert(clk.Hours(), qt.Equals, 23)

	clk.Write(RegHours, EncodeBCD(24))
	c.Assert(clk.Hours(), qt.Equals, 23)

	clk.Write(RegHours, EncodeBCD(0))
	c.Assert(clk.Hours(), qt.Equals, 0)

	// 12-hour mode.
	clk.Write(RegHours, EncodeBCD(12)|BitHour12) // 12 AM
	c.Assert(clk.Hours(), qt.Equals, 0)

	clk.Write(RegHours, EncodeBCD(13)|BitHour12) // invalid, clamps to 12 AM
	c.Assert(clk.Hours(), qt.Equals, 0)

	clk.Write(RegHours, EncodeBCD(5)|BitHour12) // 5 AM
	c.Assert(clk.Hours(), qt.Equals, 5)

	clk.Write(RegHours, EncodeBCD(12)|BitHour12|BitHourPM) // 12 PM
	c.Assert(clk.Hours(), qt.Equals, 12)

	clk.Write(RegHours, EncodeBCD(13)|BitHour12|BitHourPM) // invalid, clamps to 12 PM
	c.Assert(clk.Hours(), qt.Equals, 12)

	clk.Write(RegHours, EncodeBCD(5)|BitHour12|BitHourPM) // 5 PM
	c.Assert(clk.Hours(), qt.Equals, 17)

	clk.Write(RegHours, EncodeBCD(11)|BitHour12|BitHourPM) // 11 PM
	c.Assert(clk.Hours(), qt.Equals, 23)
}

func TestWriteDay(t *testing.T) {
	c := qt.New(t)
	clk := New(0)

	clk.Write(RegDay, EncodeBCD(0))
	c.Assert(clk.Day(), qt.Equals, 1)

	clk.Write(RegDay, EncodeBCD(7))
	c.Assert(clk.Day(), qt.Equals, 7)

	// Eight encodes as 0x08; the three-bit day mask reduces it to zero
	// before clamping.
	clk.Write(RegDay, EncodeBCD(8))
	c.Assert(clk.Day(), qt.Equals, 1)
}

func TestWriteDate(t *testing.T) {
	c := qt.New(t)
	clk := New(0)

	clk.Write(RegMonth, EncodeBCD(2)|BitMonthCentury0) // February 2019

	clk.Write(RegDate, EncodeBCD(0))
	c.Assert(clk.Date(), qt.Equals, 1)
	clk.Update()
	c.Assert(clk.Date(), qt.Equals, 1)

	// Too large: clamped to 31 at once, to the month length at the next
	// update.
	clk.Write(RegDate, EncodeBCD(32))
	c.Assert(clk.Date(), qt.Equals, 31)
	clk.Update()
	c.Assert(clk.Date(), qt.Equals, 28)

	clk.Write(RegDate, EncodeBCD(12))
	clk.Update()
	c.Assert(clk.Date(), qt.Equals, 12)

	// February 2000 is a leap month.
	clk.Write(RegYear, EncodeBCD(0))
	clk.Write(RegDate, EncodeBCD(31))
	c.Assert(clk.Date(), qt.Equals, 31)
	clk.Update()
	c.Assert(clk.Date(), qt.Equals, 29)
}

func TestWriteMonth(t *testing.T) {
	c := qt.New(t)
	clk := New(0)

	clk.Write(RegDate, EncodeBCD(30))
	clk.Update()
	c.Assert(clk.Date(), qt.Equals, 30)

	// The century bits ride along with the written value.
	clk.Write(RegMonth, EncodeBCD(2)|BitMonthCentury0)
	c.Assert(clk.Month(), qt.Equals, 2)
	c.Assert(clk.Year(), qt.Equals, 2019)

	clk.Write(RegMonth, EncodeBCD(2))
	c.Assert(clk.Month(), qt.Equals, 2)
	c.Assert(clk.Year(), qt.Equals, 1919)

	clk.Update()
	c.Assert(clk.Date(), qt.Equals, 28)

	clk.Write(RegMonth, EncodeBCD(0)|BitMonthCentury0)
	c.Assert(clk.Month(), qt.Equals, 1)

	clk.Write(RegMonth, EncodeBCD(13)|BitMonthCentury0)
	c.Assert(clk.Month(), qt.Equals, 12)
}

func TestWriteYear(t *testing.T) {
	c := qt.New(t)
	clk := New(0)

	c.Assert(clk.Write(RegYear, EncodeBCD(1)), qt.Equals, ActionNone)
	c.Assert(clk.Year(), qt.Equals, 2001)

	clk.Write(RegMonth, EncodeBCD(1)) // clears the century bits
	clk.Write(RegYear, EncodeBCD(1))
	c.Assert(clk.Year(), qt.Equals, 1901)

	clk.Write(RegYear, EncodeBCD(99))
	c.Assert(clk.Year(), qt.Equals, 1999)

	clk.Write(RegYear, 0xFF)
	c.Assert(clk.Year(), qt.Equals, 1999)

	// A year write invalidates the date: 2000-02-29 exists, 2001-02-29
	// does not and heals at the next update.
	clk.Write(RegMonth, EncodeBCD(2)|BitMonthCentury0)
	clk.Write(RegDate, EncodeBCD(29))
	clk.Write(RegYear, EncodeBCD(0))
	clk.Update()
	c.Assert(clk.Year(), qt.Equals, 2000)
	c.Assert(clk.Date(), qt.Equals, 29)

	clk.Write(RegYear, EncodeBCD(1))
	c.Assert(clk.Date(), qt.Equals, 29)
	clk.Update()
	c.Assert(clk.Date(), qt.Equals, 28)
}

func TestCenturyBits(t *testing.T) {
	c := qt.New(t)
	clk := New(0)

	clk.Write(RegYear, EncodeBCD(99))

	tests := []struct {
		bits byte
		want int
	}{
		{0, 1999},
		{BitMonthCentury0, 2099},
		{BitMonthCentury1, 2199},
		{BitMonthCentury2, 2399},
		{BitMonthCentury2 | BitMonthCentury0, 2499},
		{BitMonthCentury2 | BitMonthCentury1, 2599},
		{BitMonthCentury2 | BitMonthCentury1 | BitMonthCentury0, 2699},
	}
	for _, tt := range tests {
		clk.Write(RegMonth, EncodeBCD(2)|tt.bits)
		c.Assert(clk.Year(), qt.Equals, tt.want, qt.Commentf("century bits %#02x", tt.bits))
	}
}

func TestWriteCtrl1(t *testing.T) {
	c := qt.New(t)
	clk := New(0)

	c.Assert(clk.Read(RegCtrl1), qt.Equals, byte(BitCtrl1RS2|BitCtrl1RS1|BitCtrl1INTCN))

	c.Assert(clk.Write(RegCtrl1, 0xFF), qt.Equals, ActionConvertTemperature)
	c.Assert(clk.Read(RegCtrl1), qt.Equals, byte(0xFF))

	// The CONV bit survives any host write.
	c.Assert(clk.Write(RegCtrl1, 0x00), qt.Equals, ActionNone)
	c.Assert(clk.Read(RegCtrl1), qt.Equals, byte(BitCtrl1Conv))
}

func TestWriteCtrl2(t *testing.T) {
	c := qt.New(t)
	clk := New(0)

	c.Assert(clk.Read(RegCtrl2), qt.Equals, byte(BitCtrl2OSF))

	// Flags can be cleared but never set from the bus.
	clk.Write(RegCtrl2, 0x00)
	c.Assert(clk.Read(RegCtrl2), qt.Equals, byte(0))

	clk.Write(RegCtrl2, BitCtrl2OSF|BitCtrl2A1F|BitCtrl2A2F)
	c.Assert(clk.Read(RegCtrl2), qt.Equals, byte(0))

	// Non-flag bits pass through, including the busy bit.
	clk.Write(RegCtrl2, BitCtrl2En32kHz|BitCtrl2Busy)
	c.Assert(clk.Read(RegCtrl2), qt.Equals, byte(BitCtrl2En32kHz|BitCtrl2Busy))
}

func TestWriteCtrl3(t *testing.T) {
	c := qt.New(t)
	clk := New(0)

	c.Assert(clk.Read(RegCtrl3), qt.Equals, byte(0))

	clk.Write(RegCtrl3, 0xFF)
	c.Assert(clk.Read(RegCtrl3), qt.Equals, byte(BitCtrl3BBTD))

	clk.Write(RegCtrl3, 0x00)
	c.Assert(clk.Read(RegCtrl3), qt.Equals, byte(0))
}

func TestWriteAgingOffset(t *testing.T) {
	c := qt.New(t)
	clk := New(0)

	for _, v := range []byte{0xFF, 0x00, 0x88} {
		clk.Write(RegAgingOffset, v)
		c.Assert(clk.Read(RegAgingOffset), qt.Equals, v)
	}
}

func TestWriteTemperature(t *testing.T) {
	c := qt.New(t)
	clk := New(0)

	clk.Write(RegTempMSB, 0xAF)
	clk.Write(RegTempLSB, 0xAF)
	c.Assert(clk.Read(RegTempMSB), qt.Equals, byte(0))
	c.Assert(clk.Read(RegTempLSB), qt.Equals, byte(0))
}

func TestFinishTemperatureConversion(t *testing.T) {
	c := qt.New(t)
	clk := New(0)

	c.Assert(clk.Write(RegCtrl1, BitCtrl1Conv), qt.Equals, ActionConvertTemperature)
	c.Assert(clk.Read(RegCtrl1)&BitCtrl1Conv, qt.Equals, byte(BitCtrl1Conv))

	clk.FinishTemperatureConversion(0x19, 0x40)
	c.Assert(clk.Read(RegTempMSB), qt.Equals, byte(0x19))
	c.Assert(clk.Read(RegTempLSB), qt.Equals, byte(0x40))
	c.Assert(clk.Read(RegCtrl1)&BitCtrl1Conv, qt.Equals, byte(0))
}

func TestWriteSRAM(t *testing.T) {
	c := qt.New(t)
	clk := New(16)

	for addr := RegSRAM; addr < RegSRAM+16; addr++ {
		for _, v := range []byte{0xFF, 0x00, 0x88} {
			clk.Write(addr, v)
			c.Assert(clk.Read(addr), qt.Equals, v, qt.Commentf("address %#02x", addr))
		}
	}

	// Beyond the configured SRAM the register space is void.
	for addr := RegSRAM + 16; addr < 256; addr++ {
		clk.Write(addr, 0xFF)
		c.Assert(clk.Read(addr), qt.Equals, byte(0), qt.Commentf("address %#02x", addr))
	}
}

func TestReadOutOfRange(t *testing.T) {
	c := qt.New(t)
	clk := New(0)

	c.Assert(clk.Read(-1), qt.Equals, byte(0))
	c.Assert(clk.Read(clk.Size()), qt.Equals, byte(0))
	c.Assert(clk.Read(255), qt.Equals, byte(0))
}

func TestNextAddr(t *testing.T) {
	c := qt.New(t)

	clk := New(0)
	c.Assert(clk.NextAddr(0), qt.Equals, 1)
	c.Assert(clk.NextAddr(RegCtrl3), qt.Equals, 0)

	clk = New(16)
	c.Assert(clk.NextAddr(RegCtrl3), qt.Equals, RegSRAM)
	c.Assert(clk.NextAddr(RegSRAM+15), qt.Equals, 0)
}

func TestAlarmModeBitsSticky(t *testing.T) {
	c := qt.New(t)
	clk := New(0)

	// The ignore bit is stored as written and re-asserted by every write
	// that carries it.
	clk.Write(RegAlarm1Seconds, BitAlarmIgnore|EncodeBCD(42))
	c.Assert(clk.Read(RegAlarm1Seconds), qt.Equals, byte(BitAlarmIgnore|0x42))

	clk.Write(RegAlarm1Seconds, BitAlarmIgnore|EncodeBCD(10))
	c.Assert(clk.Read(RegAlarm1Seconds), qt.Equals, byte(BitAlarmIgnore|0x10))

	// Clearing requires a write with the bit unset.
	clk.Write(RegAlarm1Seconds, EncodeBCD(10))
	c.Assert(clk.Read(RegAlarm1Seconds), qt.Equals, byte(0x10))
}

func TestWriteAlarmDayOrDate(t *testing.T) {
	c := qt.New(t)
	clk := New(0)

	// Day-of-week variant clamps to 1-7.
	clk.Write(RegAlarm1DayOrDate, BitAlarmIsDay|EncodeBCD(9))
	c.Assert(clk.Read(RegAlarm1DayOrDate), qt.Equals, byte(BitAlarmIsDay|0x07))

	// Date variant clamps to 1-31.
	clk.Write(RegAlarm2DayOrDate, EncodeBCD(32))
	c.Assert(clk.Read(RegAlarm2DayOrDate), qt.Equals, byte(0x31))

	clk.Write(RegAlarm2DayOrDate, 0x00)
	c.Assert(clk.Read(RegAlarm2DayOrDate), qt.Equals, byte(0x01))
}

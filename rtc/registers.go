package rtc

// Register addresses as seen by the bus master.
const (
	RegSeconds = 0x00
	RegMinutes = 0x01
	RegHours   = 0x02
	RegDay     = 0x03
	RegDate    = 0x04
	RegMonth   = 0x05
	RegYear    = 0x06

	RegAlarm1Seconds   = 0x07
	RegAlarm1Minutes   = 0x08
	RegAlarm1Hours     = 0x09
	RegAlarm1DayOrDate = 0x0A

	RegAlarm2Minutes   = 0x0B
	RegAlarm2Hours     = 0x0C
	RegAlarm2DayOrDate = 0x0D

	RegCtrl1 = 0x0E
	RegCtrl2 = 0x0F

	RegAgingOffset = 0x10
	RegTempMSB     = 0x11
	RegTempLSB     = 0x12

	RegCtrl3 = 0x13

	// RegSRAM is the first address of the user SRAM region.
	RegSRAM = 0x14
)

// SRAM sizes of the two commercial chip variants.
const (
	SRAMSizeDS3231 = 0
	SRAMSizeDS3232 = 236
)

// Field masks. Every time and alarm register keeps its BCD value in the
// low-order bits selected by these masks; the remaining bits carry mode
// flags.
const (
	MaskSeconds  = 0x7F
	MaskMinutes  = 0x7F
	MaskHours12  = 0x1F
	MaskHours24  = 0x3F
	MaskDay      = 0x07
	MaskDate     = 0x3F
	MaskMonth    = 0x1F
	MaskYear     = 0xFF
	MaskAlarmDay = 0x0F
)

// Mode bits of the hour registers.
const (
	BitHour12 = 0x40
	BitHourPM = 0x20
)

// Mode bits of the alarm registers. BitAlarmIgnore excludes the field from
// alarm matching; BitAlarmIsDay selects day-of-week instead of day-of-month
// comparison in the day-or-date registers.
const (
	BitAlarmIgnore = 0x80
	BitAlarmIsDay  = 0x40
)

// Control register 1.
const (
	BitCtrl1EOSC  = 0x80
	BitCtrl1BBSQW = 0x40
	BitCtrl1Conv  = 0x20
	BitCtrl1RS2   = 0x10
	BitCtrl1RS1   = 0x08
	BitCtrl1INTCN = 0x04
	BitCtrl1A2IE  = 0x02
	BitCtrl1A1IE  = 0x01
)

// Control register 2 (status).
const (
	BitCtrl2OSF     = 0x80
	BitCtrl2BB32kHz = 0x40
	BitCtrl2CRate1  = 0x20
	BitCtrl2CRate0  = 0x10
	BitCtrl2En32kHz = 0x08
	BitCtrl2Busy    = 0x04
	BitCtrl2A2F     = 0x02
	BitCtrl2A1F     = 0x01
)

// Control register 3.
const (
	BitCtrl3BBTD = 0x01
)

// Century counter, a 3-bit binary value folded into the unused high bits of
// the month register. BitMonthCentury0 is the least significant bit; the
// full year is 1900 + 100*century + the two-digit year register.
const (
	BitMonthCentury0 = 0x80
	BitMonthCentury1 = 0x40
	BitMonthCentury2 = 0x20
)

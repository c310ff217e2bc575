package rtc

// evaluateAlarms compares both alarms against the freshly advanced time and
// raises their flags in control register 2 on a match. A flag that is
// already raised suppresses further evaluation of its alarm until the host
// clears it, so a "match every second" alarm fires exactly once per second
// rather than flickering.
func (c *Clock) evaluateAlarms() {
	m := c.mem

	if m[RegCtrl2]&BitCtrl2A1F == 0 &&
		alarmMatch(m[RegAlarm1Seconds], m[RegSeconds]&MaskSeconds) &&
		alarmMatch(m[RegAlarm1Minutes], m[RegMinutes]&MaskMinutes) &&
		alarmMatch(m[RegAlarm1Hours], m[RegHours]) &&
		alarmDayMatch(m[RegAlarm1DayOrDate], m[RegDay], m[RegDate]) {
		m[RegCtrl2] |= BitCtrl2A1F
	}

	// Alarm 2 has no seconds register and can only fire on a full minute.
	if m[RegCtrl2]&BitCtrl2A2F == 0 &&
		m[RegSeconds]&MaskSeconds == 0 &&
		alarmMatch(m[RegAlarm2Minutes], m[RegMinutes]&MaskMinutes) &&
		alarmMatch(m[RegAlarm2Hours], m[RegHours]) &&
		alarmDayMatch(m[RegAlarm2DayOrDate], m[RegDay], m[RegDate]) {
		m[RegCtrl2] |= BitCtrl2A2F
	}
}

// alarmMatch reports whether an alarm field matches the corresponding time
// register. A field with its ignore bit set matches anything. Hours compare
// including the 12-hour and AM/PM bits, so an alarm stored in one hour mode
// only matches a clock kept in the same mode, as on the real chip.
func alarmMatch(alarm, cur byte) bool {
	return alarm&BitAlarmIgnore != 0 || alarm&^byte(BitAlarmIgnore) == cur
}

// alarmDayMatch compares a day-or-date alarm register against the current
// day of the week or day of the month, as selected by its mode bit.
func alarmDayMatch(alarm, day, date byte) bool {
	if alarm&BitAlarmIgnore != 0 {
		return true
	}
	if alarm&BitAlarmIsDay != 0 {
		return alarm&MaskAlarmDay == day&MaskDay
	}
	return alarm&MaskDate == date&MaskDate
}

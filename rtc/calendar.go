package rtc

// IsLeapYear reports whether year is a leap year under the proleptic
// Gregorian rule.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// NumberOfDays returns the number of days in the given month (1-12).
// Months outside that range yield 0.
func NumberOfDays(month, year int) int {
	switch month {
	case 1, 3, 5, 7, 8, 10, 12:
		return 31
	case 4, 6, 9, 11:
		return 30
	case 2:
		if IsLeapYear(year) {
			return 29
		}
		return 28
	}
	return 0
}

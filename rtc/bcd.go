package rtc

// EncodeBCD packs a binary value into two BCD digits. The result is only
// valid for inputs up to 99.
func EncodeBCD(v byte) byte {
	return v/10<<4 | v%10
}

// DecodeBCD unpacks two BCD digits into a binary value. The result is only
// valid for encodings of values up to 99.
func DecodeBCD(v byte) byte {
	return v - 6*(v>>4)
}

// clampBCD interprets v as two digits (either of which may exceed nine for
// malformed input) and clamps the represented value to the inclusive binary
// range [min, max]. The digit interpretation matters: 0x0F written as an
// hour means fifteen, even though the raw byte compares below 0x12. The
// result is always canonical BCD.
func clampBCD(v, min, max byte) byte {
	n := v>>4*10 + v&0x0F
	if n < min {
		n = min
	}
	if n > max {
		n = max
	}
	return EncodeBCD(n)
}

// incBCD increments the BCD value stored in the masked bits of *reg. When
// the value already equals maxBCD it wraps to wrapTo instead. Bits outside
// the mask are preserved. Returns whether the value wrapped, which drives
// the carry chain through the time registers.
func incBCD(reg *byte, mask, maxBCD, wrapTo byte) bool {
	bcd := *reg & mask
	wrapped := bcd == maxBCD
	if wrapped {
		bcd = wrapTo
	} else {
		bcd++
		if bcd&0x0F >= 0x0A {
			bcd = bcd&0xF0 + 0x10
		}
	}
	*reg = *reg&^mask | bcd&mask
	return wrapped
}

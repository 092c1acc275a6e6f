package memscan

// byteFrequencies ranks bytes by how common they are in text and source
// code. Lower rank means rarer, which makes a better memchr anchor.
var byteFrequencies = [256]byte{
	// 0x00-0x1F: control characters
	0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 1, 0, 0, 1, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	// 0x20-0x2F: space, punctuation
	255, 60, 140, 50, 40, 35, 30, 160, 130, 130, 80, 55, 200, 140, 210, 100,
	// 0x30-0x3F: digits
	180, 190, 170, 150, 140, 140, 130, 120, 120, 120, 150, 100, 70, 160, 70, 50,
	// 0x40-0x5F: uppercase
	25, 120, 80, 90, 85, 130, 75, 70, 80, 115, 30, 35, 90, 85, 100, 105,
	80, 15, 100, 110, 115, 70, 45, 55, 20, 50, 10, 90, 60, 90, 20, 110,
	// 0x60-0x7F: lowercase
	30, 225, 140, 170, 165, 245, 135, 130, 150, 200, 25, 65, 175, 155, 195, 205,
	145, 15, 195, 200, 215, 150, 75, 95, 45, 120, 20, 85, 40, 85, 15, 0,
	// 0x80-0xBF: UTF-8 continuation bytes, frequent in non-Latin text
	90, 90, 90, 90, 90, 90, 90, 90, 90, 90, 90, 90, 90, 90, 90, 90,
	90, 90, 90, 90, 90, 90, 90, 90, 90, 90, 90, 90, 90, 90, 90, 90,
	90, 90, 90, 90, 90, 90, 90, 90, 90, 90, 90, 90, 90, 90, 90, 90,
	90, 90, 90, 90, 90, 90, 90, 90, 90, 90, 90, 90, 90, 90, 90, 90,
	// 0xC0-0xFF: UTF-8 lead bytes
	5, 5, 60, 60, 60, 60, 60, 60, 60, 60, 60, 60, 60, 60, 60, 60,
	60, 60, 60, 60, 60, 60, 60, 60, 60, 60, 60, 60, 60, 60, 60, 60,
	80, 60, 60, 60, 60, 60, 60, 60, 60, 60, 60, 60, 60, 60, 60, 60,
	20, 20, 20, 20, 20, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5,
}

// rareByte returns the index of the rarest byte in needle. Ties keep the
// later position, since word endings tend to be more distinctive.
func rareByte(needle string) int {
	best := len(needle) - 1
	for i := len(needle) - 2; i >= 0; i-- {
		if byteFrequencies[needle[i]] < byteFrequencies[needle[best]] {
			best = i
		}
	}
	return best
}

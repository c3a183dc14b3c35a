package parallel

// Band is a half-open range of rows [Y0, Y1).
type Band struct {
	Y0, Y1 int
}

// MinBandRows is the smallest band Bands produces unless the image itself
// is shorter.
const MinBandRows = 4

// Bands splits height rows into at most n contiguous bands of near-equal
// size, each at least MinBandRows tall where possible. Earlier bands absorb
// the remainder. height <= 0 yields no bands; n <= 0 is treated as 1.
func Bands(height, n int) []Band {
	if height <= 0 {
		return nil
	}
	n = max(n, 1)
	if limit := max(height/MinBandRows, 1); n > limit {
		n = limit
	}

	bands := make([]Band, 0, n)
	size, extra := height/n, height%n
	y := 0
	for i := range n {
		rows := size
		if i < extra {
			rows++
		}
		bands = append(bands, Band{Y0: y, Y1: y + rows})
		y += rows
	}
	return bands
}

// Chunks splits n items into at most parts contiguous ranges, with the same
// distribution rules as Bands but without a minimum size.
func Chunks(n, parts int) []Band {
	if n <= 0 {
		return nil
	}
	parts = min(max(parts, 1), n)

	chunks := make([]Band, 0, parts)
	size, extra := n/parts, n%parts
	i0 := 0
	for i := range parts {
		k := size
		if i < extra {
			k++
		}
		chunks = append(chunks, Band{Y0: i0, Y1: i0 + k})
		i0 += k
	}
	return chunks
}

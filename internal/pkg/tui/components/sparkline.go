package components

// RenderSparkline creates a simple sparkline from values using Unicode block characters
func RenderSparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}

	blocks := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := values[0], values[0]
	for _, v := range values {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	result := make([]rune, len(values))

	// Flat series render at the lowest block so an idle tool reads as idle.
	if hi == lo {
		for i := range result {
			result[i] = blocks[0]
		}
		return string(result)
	}

	for i, v := range values {
		idx := int((v - lo) / (hi - lo) * float64(len(blocks)-1))
		if idx >= len(blocks) {
			idx = len(blocks) - 1
		}
		result[i] = blocks[idx]
	}

	return string(result)
}

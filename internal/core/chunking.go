package core

import "fmt"

// Units a chunk window can be measured in.
const (
	ChunkUnitChars  = "chars"
	ChunkUnitWords  = "words"
	ChunkUnitTokens = "tokens"
)

// ValidateChunking checks a window configuration: a known unit, a positive
// size and an overlap in [0, size).
func ValidateChunking(unit string, size, overlap int) error {
	switch unit {
	case ChunkUnitChars, ChunkUnitWords, ChunkUnitTokens:
	default:
		return fmt.Errorf("unknown chunk unit: %q", unit)
	}
	if size <= 0 {
		return fmt.Errorf("chunk size must be positive, got %d", size)
	}
	if overlap < 0 || overlap >= size {
		return fmt.Errorf("chunk overlap must be in [0, %d), got %d", size, overlap)
	}
	return nil
}

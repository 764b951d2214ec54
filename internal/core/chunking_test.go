package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateChunking(t *testing.T) {
	for _, unit := range []string{ChunkUnitChars, ChunkUnitWords, ChunkUnitTokens} {
		assert.NoError(t, ValidateChunking(unit, 10, 0), unit)
	}

	tests := []struct {
		name    string
		unit    string
		size    int
		overlap int
		wantErr string
	}{
		{name: "unknown unit", unit: "pages", size: 10, wantErr: "unknown chunk unit"},
		{name: "zero size", unit: ChunkUnitChars, size: 0, wantErr: "chunk size"},
		{name: "overlap equals size", unit: ChunkUnitChars, size: 10, overlap: 10, wantErr: "chunk overlap"},
		{name: "negative overlap", unit: ChunkUnitWords, size: 10, overlap: -1, wantErr: "chunk overlap"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateChunking(tt.unit, tt.size, tt.overlap)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

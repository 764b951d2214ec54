package rag

import (
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/pkoukk/tiktoken-go"

	"github.com/sandevgo/askfolio/internal/core"
)

const (
	UnitChars  = core.ChunkUnitChars
	UnitWords  = core.ChunkUnitWords
	UnitTokens = core.ChunkUnitTokens
)

var (
	tk     *tiktoken.Tiktoken
	tkErr  error
	tkOnce sync.Once

	// tokenizer is swapped in tests to simulate an unavailable encoding.
	tokenizer = getTokenizer
)

type Chunk struct {
	Text string
	// Size is the window length in the configured unit.
	Size  int
	Index int
	// Start is the offset of the window in units.
	Start int
}

type ChunkerConfig struct {
	Unit    string
	Size    int
	Overlap int
}

// DefaultChunkerConfig mirrors a recursive character splitter at 800/100.
func DefaultChunkerConfig() ChunkerConfig {
	return ChunkerConfig{
		Unit:    UnitChars,
		Size:    800,
		Overlap: 100,
	}
}

func (c ChunkerConfig) Validate() error {
	return core.ValidateChunking(c.Unit, c.Size, c.Overlap)
}

// ChunkText cuts text into windows of cfg.Size units, each starting
// cfg.Size-cfg.Overlap units after the previous one. Only the last window may
// be shorter. Blank input and whitespace-only windows produce no chunks.
// Errors wrap core.ErrChunkingFailed.
func ChunkText(text string, cfg ChunkerConfig) ([]Chunk, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrChunkingFailed, err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}

	switch cfg.Unit {
	case UnitWords:
		words := strings.Fields(text)
		return window(len(words), cfg, func(start, end int) string {
			return strings.Join(words[start:end], " ")
		}), nil
	case UnitTokens:
		enc, err := tokenizer()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", core.ErrChunkingFailed, err)
		}
		tokens := enc.Encode(text, nil, nil)
		pieces := make([]string, len(tokens))
		for i, t := range tokens {
			pieces[i] = enc.Decode([]int{t})
		}
		return tokenWindows(pieces, cfg), nil
	default:
		runes := []rune(text)
		return window(len(runes), cfg, func(start, end int) string {
			return string(runes[start:end])
		}), nil
	}
}

// tokenWindows windows over token byte pieces. A token may carry only part of
// a multi-byte character, so both edges of a window move forward to the next
// rune start; adjacent windows still meet exactly.
func tokenWindows(pieces []string, cfg ChunkerConfig) []Chunk {
	text := strings.Join(pieces, "")
	offsets := make([]int, len(pieces)+1)
	for i, p := range pieces {
		offsets[i+1] = offsets[i] + len(p)
	}

	return window(len(pieces), cfg, func(start, end int) string {
		from := runeStart(text, offsets[start])
		to := runeStart(text, offsets[end])
		if from >= to {
			return ""
		}
		return text[from:to]
	})
}

func runeStart(s string, i int) int {
	for i < len(s) && !utf8.RuneStart(s[i]) {
		i++
	}
	return i
}

func window(total int, cfg ChunkerConfig, slice func(start, end int) string) []Chunk {
	step := cfg.Size - cfg.Overlap

	var chunks []Chunk
	for start := 0; start < total; start += step {
		end := min(start+cfg.Size, total)

		if s := slice(start, end); strings.TrimSpace(s) != "" {
			chunks = append(chunks, Chunk{
				Text:  s,
				Size:  end - start,
				Index: len(chunks),
				Start: start,
			})
		}

		if end == total {
			break
		}
	}
	return chunks
}

// ChunkPassages chunks one document into passages tagged with its source.
func ChunkPassages(source, text string, cfg ChunkerConfig) ([]core.Passage, error) {
	chunks, err := ChunkText(text, cfg)
	if err != nil {
		return nil, fmt.Errorf("chunk %s: %w", source, err)
	}
	passages := make([]core.Passage, 0, len(chunks))
	for _, c := range chunks {
		passages = append(passages, core.Passage{
			Content: c.Text,
			Source:  source,
			Index:   c.Index,
		})
	}
	return passages, nil
}

// CountTokens reports the cl100k_base token count of text.
func CountTokens(text string) (int, error) {
	if text == "" {
		return 0, nil
	}
	enc, err := tokenizer()
	if err != nil {
		return 0, err
	}
	return len(enc.Encode(text, nil, nil)), nil
}

func getTokenizer() (*tiktoken.Tiktoken, error) {
	tkOnce.Do(func() {
		tk, tkErr = tiktoken.GetEncoding("cl100k_base")
		if tkErr != nil {
			tkErr = fmt.Errorf("load tiktoken: %w", tkErr)
		}
	})
	return tk, tkErr
}

package core

import "errors"

var (
	// Ingestion-time failures. Fatal to startup.
	ErrDocumentNotFound = errors.New("document not found")
	ErrExtractionFailed = errors.New("text extraction failed")
	ErrEmptyCorpus      = errors.New("no passages to index")
	ErrChunkingFailed   = errors.New("chunking failed")

	// Capability failures.
	ErrEmbeddingFailed  = errors.New("embedding failed")
	ErrGenerationFailed = errors.New("generation failed")

	// ErrAnswerUnavailable is the single category callers see for query-time failures.
	ErrAnswerUnavailable = errors.New("answer unavailable")
	ErrEmptyQuestion     = errors.New("empty question")
)

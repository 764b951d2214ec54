package document

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/inbucket/html2text"
	"github.com/ledongthuc/pdf"

	"github.com/sandevgo/askfolio/internal/core"
	"github.com/sandevgo/askfolio/pkg/log"
)

// maxFileSize caps what a single document may weigh.
const maxFileSize = 32 << 20

const fetchTimeout = 10 * time.Second

// Loader extracts plain text from local files and http(s) URLs. Files are
// typed by extension, URLs by their Content-Type.
type Loader struct {
	client *http.Client
}

func NewLoader() *Loader {
	return &Loader{
		client: &http.Client{
			Timeout: fetchTimeout,
		},
	}
}

func IsURL(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}

func (l *Loader) ExtractText(ctx context.Context, path string) (string, error) {
	if IsURL(path) {
		return l.fetch(ctx, path)
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", core.ErrDocumentNotFound, path)
		}
		return "", fmt.Errorf("%w: %s: %w", core.ErrExtractionFailed, path, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%w: %s is a directory", core.ErrDocumentNotFound, path)
	}
	if info.Size() > maxFileSize {
		return "", fmt.Errorf("%w: %s is larger than %d bytes", core.ErrExtractionFailed, path, maxFileSize)
	}

	log.FromCtx(ctx).Debug().Str("path", path).Int64("size", info.Size()).Msg("extracting document")

	var text string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		text, err = extractPDF(path)
	case ".html", ".htm":
		text, err = extractHTML(path)
	default:
		text, err = extractPlain(path)
	}
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", core.ErrExtractionFailed, path, err)
	}
	return text, nil
}

func (l *Loader) fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", core.ErrExtractionFailed, url, err)
	}
	req.Header.Set("User-Agent", core.AppUserAgent)

	log.FromCtx(ctx).Debug().Str("url", url).Msg("fetching document")

	resp, err := l.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", core.ErrExtractionFailed, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone {
		return "", fmt.Errorf("%w: %s", core.ErrDocumentNotFound, url)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: %s: http %d", core.ErrExtractionFailed, url, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFileSize+1))
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", core.ErrExtractionFailed, url, err)
	}
	if len(body) > maxFileSize {
		return "", fmt.Errorf("%w: %s is larger than %d bytes", core.ErrExtractionFailed, url, maxFileSize)
	}

	mediaType, _, _ := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	var text string
	switch mediaType {
	case "application/pdf":
		text, err = pdfText(bytes.NewReader(body), int64(len(body)))
	case "text/html", "application/xhtml+xml":
		text, err = html2text.FromString(string(body), html2text.Options{TextOnly: true})
	default:
		text, err = plainText(body)
	}
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", core.ErrExtractionFailed, url, err)
	}
	return text, nil
}

// extractPDF joins page texts in page order. The pdf package panics on some
// malformed inputs, so that is reported as an error too.
func extractPDF(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", err
	}
	return pdfText(f, info.Size())
}

func pdfText(ra io.ReaderAt, size int64) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed pdf: %v", r)
		}
	}()

	r, err := pdf.NewReader(ra, size)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("page %d: %w", i, err)
		}
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(content)
	}
	return sb.String(), nil
}

func extractHTML(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	return html2text.FromReader(f, html2text.Options{
		OmitLinks: false,
		TextOnly:  true,
	})
}

func extractPlain(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return plainText(data)
}

func plainText(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", errors.New("unsupported format: not utf-8 text")
	}
	return string(data), nil
}

// Package document turns uploaded resume files into normalized plain text.
package document

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/resumatch/internal/textnorm"
)

// Kind is the declared file kind of an uploaded document.
type Kind string

const (
	KindPDF  Kind = "pdf"
	KindDOCX Kind = "docx"
	KindTXT  Kind = "txt"
)

// ErrUnsupportedKind is wrapped by ExtractionError when the declared kind has no decoder.
var ErrUnsupportedKind = errors.New("unsupported document kind")

// ExtractionError reports an unreadable or unsupported document.
type ExtractionError struct {
	Kind Kind
	Path string
	Err  error
}

func (e *ExtractionError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("could not extract text from %s document %q: %v", e.Kind, e.Path, e.Err)
	}
	return fmt.Sprintf("could not extract text from %s document: %v", e.Kind, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// ParseKind maps a declared tag or a file extension (with or without the dot) to a Kind.
func ParseKind(s string) (Kind, error) {
	tag := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), "."))
	switch Kind(tag) {
	case KindPDF, KindDOCX, KindTXT:
		return Kind(tag), nil
	case "text":
		return KindTXT, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedKind, s)
	}
}

// KindFromPath derives the kind from a file name extension.
func KindFromPath(path string) (Kind, error) {
	return ParseKind(filepath.Ext(path))
}

type decoder func(data []byte) (string, error)

// Loader decodes documents and normalizes the result.
type Loader struct {
	logger   *zap.Logger
	decoders map[Kind]decoder
}

func NewLoader(logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Loader{
		logger: logger,
		decoders: map[Kind]decoder{
			KindPDF:  decodePDF,
			KindDOCX: decodeDOCX,
			KindTXT:  decodeTXT,
		},
	}
}

// LoadFile reads the file at path and extracts its text as the declared kind.
func (l *Loader) LoadFile(path string, kind Kind) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &ExtractionError{Kind: kind, Path: path, Err: err}
	}

	text, err := l.Load(data, kind)
	if err != nil {
		var extractionErr *ExtractionError
		if errors.As(err, &extractionErr) {
			extractionErr.Path = path
		}
		return "", err
	}

	return text, nil
}

// Load extracts normalized text from the document content. Any decoding failure,
// including a panic inside a decoder, is reported as *ExtractionError.
func (l *Loader) Load(data []byte, kind Kind) (text string, err error) {
	decode, ok := l.decoders[kind]
	if !ok {
		return "", &ExtractionError{Kind: kind, Err: fmt.Errorf("%w: %q", ErrUnsupportedKind, kind)}
	}

	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = &ExtractionError{Kind: kind, Err: fmt.Errorf("decoder panic: %v", r)}
		}
	}()

	raw, err := decode(data)
	if err != nil {
		return "", &ExtractionError{Kind: kind, Err: err}
	}

	text = textnorm.Normalize(raw)

	l.logger.Debug("document text extracted",
		zap.String("kind", string(kind)),
		zap.Int("bytes", len(data)),
		zap.Int("raw_length", len(raw)),
		zap.Int("text_length", len(text)),
	)

	return text, nil
}

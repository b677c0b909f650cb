package document

import (
	"archive/zip"
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func buildDOCX(t *testing.T, body string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	w, err := zw.Create("[Content_Types].xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(`<?xml version="1.0"?><Types/>`))
	require.NoError(t, err)

	w, err = zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
		body +
		`</w:body></w:document>`))
	require.NoError(t, err)

	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestParseKind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want Kind
	}{
		{in: "pdf", want: KindPDF},
		{in: ".DOCX", want: KindDOCX},
		{in: " txt ", want: KindTXT},
		{in: "text", want: KindTXT},
	}

	for _, tt := range tests {
		got, err := ParseKind(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseKind("odt")
	require.ErrorIs(t, err, ErrUnsupportedKind)

	kind, err := KindFromPath("/tmp/cv.final.pdf")
	require.NoError(t, err)
	assert.Equal(t, KindPDF, kind)
}

func TestLoadTXT(t *testing.T) {
	t.Parallel()

	loader := NewLoader(nil)

	text, err := loader.Load([]byte("Jane   Doe\r\n\r\n\r\n\r\nEmail: jane@example.com"), KindTXT)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\n\nEmail: jane@example.com", text)
}

func TestLoadTXTReplacesInvalidBytes(t *testing.T) {
	t.Parallel()

	text, err := NewLoader(nil).Load([]byte("Go\xff\xfe Developer"), KindTXT)
	require.NoError(t, err)
	assert.Equal(t, "Go Developer", text)
}

func TestLoadTXTWithBOM(t *testing.T) {
	t.Parallel()

	text, err := NewLoader(nil).Load([]byte("\xef\xbb\xbfSkills: Go"), KindTXT)
	require.NoError(t, err)
	assert.Equal(t, "Skills: Go", text)
}

func TestLoadDOCX(t *testing.T) {
	t.Parallel()

	data := buildDOCX(t,
		`<w:p><w:r><w:t>Jane Doe</w:t></w:r></w:p>`+
			`<w:p></w:p>`+
			`<w:p><w:r><w:t xml:space="preserve">Software </w:t></w:r><w:r><w:t>Engineer</w:t></w:r></w:p>`+
			`<w:p><w:r><w:t>Go</w:t><w:tab/><w:t>SQL</w:t></w:r></w:p>`)

	text, err := NewLoader(nil).Load(data, KindDOCX)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\n\nSoftware Engineer\nGo SQL", text)
}

func TestDecodeDOCXKeepsEmptyParagraphs(t *testing.T) {
	t.Parallel()

	data := buildDOCX(t, `<w:p><w:r><w:t>A</w:t></w:r></w:p><w:p/><w:p/><w:p><w:r><w:t>B</w:t></w:r></w:p>`)

	raw, err := decodeDOCX(data)
	require.NoError(t, err)
	assert.Equal(t, "A\n\n\nB", raw)
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()

	loader := NewLoader(nil)

	tests := []struct {
		name string
		data []byte
		kind Kind
	}{
		{name: "unsupported kind", data: []byte("x"), kind: Kind("rtf")},
		{name: "broken pdf", data: []byte("not a pdf at all"), kind: KindPDF},
		{name: "broken docx", data: []byte("not a zip"), kind: KindDOCX},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			text, err := loader.Load(tt.data, tt.kind)
			require.Error(t, err)
			assert.Empty(t, text)

			var extractionErr *ExtractionError
			require.True(t, errors.As(err, &extractionErr))
			assert.Equal(t, tt.kind, extractionErr.Kind)
		})
	}
}

func TestLoadDOCXWithoutBody(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	_, err := zw.Create("word/styles.xml")
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	_, err = NewLoader(nil).Load(buf.Bytes(), KindDOCX)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "word/document.xml")
}

func TestLoadRecoversDecoderPanic(t *testing.T) {
	t.Parallel()

	loader := NewLoader(nil)
	loader.decoders[KindTXT] = func([]byte) (string, error) {
		panic("boom")
	}

	_, err := loader.Load([]byte("x"), KindTXT)

	var extractionErr *ExtractionError
	require.ErrorAs(t, err, &extractionErr)
	assert.Contains(t, err.Error(), "boom")
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	core, observed := observer.New(zapcore.DebugLevel)
	loader := NewLoader(zap.New(core))

	dir := t.TempDir()
	path := filepath.Join(dir, "resume.txt")
	require.NoError(t, os.WriteFile(path, []byte("Summary\nBackend developer"), 0o600))

	text, err := loader.LoadFile(path, KindTXT)
	require.NoError(t, err)
	assert.Equal(t, "Summary\nBackend developer", text)
	assert.Equal(t, 1, observed.FilterMessage("document text extracted").Len())

	_, err = loader.LoadFile(filepath.Join(dir, "missing.txt"), KindTXT)
	var extractionErr *ExtractionError
	require.ErrorAs(t, err, &extractionErr)
	assert.Equal(t, filepath.Join(dir, "missing.txt"), extractionErr.Path)

	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0o600))
	_, err = loader.LoadFile(path, KindDOCX)
	require.ErrorAs(t, err, &extractionErr)
	assert.Equal(t, path, extractionErr.Path)
}

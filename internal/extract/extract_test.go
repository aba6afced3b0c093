package extract

import (
	"archive/zip"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildZip(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestTextDOCX(t *testing.T) {
	data := buildZip(t, map[string]string{
		"word/document.xml": `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Fotosynteza to proces</w:t></w:r></w:p>
    <w:p><w:r><w:t>zachodzący w roślinach.</w:t></w:r></w:p>
  </w:body>
</w:document>`,
	})

	text, err := Text(MimeDOCX, data)
	require.NoError(t, err)
	assert.Equal(t, "Fotosynteza to proces zachodzący w roślinach.", text)
}

func TestTextPPTX(t *testing.T) {
	data := buildZip(t, map[string]string{
		"ppt/slides/slide1.xml": `<p:sld xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main">
  <a:t>Slajd pierwszy</a:t>
</p:sld>`,
		"ppt/slides/slide2.xml": `<p:sld xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main">
  <a:t>Slajd drugi</a:t>
</p:sld>`,
		"ppt/presentation.xml": `<p:presentation/>`,
	})

	text, err := Text(MimePPTX, data)
	require.NoError(t, err)
	assert.Contains(t, text, "Slajd pierwszy")
	assert.Contains(t, text, "Slajd drugi")
}

func TestTextEmptyFile(t *testing.T) {
	_, err := Text(MimePDF, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pusty")
}

func TestTextUnsupportedMime(t *testing.T) {
	_, err := Text("image/png", []byte("data"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nieobsługiwany typ pliku")
}

func TestTextDOCXMissingDocument(t *testing.T) {
	data := buildZip(t, map[string]string{
		"other/file.xml": "<x/>",
	})
	_, err := Text(MimeDOCX, data)
	require.Error(t, err)
}

func TestSupported(t *testing.T) {
	assert.True(t, Supported(MimePDF))
	assert.True(t, Supported(MimeDOC))
	assert.True(t, Supported(MimePPT))
	assert.False(t, Supported("text/plain"))
}

func TestEstimatePageCount(t *testing.T) {
	tests := []struct {
		name     string
		mimeType string
		textLen  int
		want     int
	}{
		{"empty pdf", MimePDF, 0, 1},
		{"one pdf page", MimePDF, 1500, 1},
		{"two pdf pages", MimePDF, 2001, 2},
		{"docx page", MimeDOCX, 2500, 1},
		{"docx two pages", MimeDOCX, 2501, 2},
		{"pptx slides", MimePPTX, 1600, 4},
		{"cap at fifty", MimePDF, 1_000_000, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text := strings.Repeat("a", tt.textLen)
			assert.Equal(t, tt.want, EstimatePageCount(tt.mimeType, text))
		})
	}
}

package cvtext

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromFile_Text(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cv.txt")
	require.NoError(t, os.WriteFile(path, []byte("Ada Lovelace\r\n\r\n\r\n\r\nGo,   Rust"), 0644))

	text, err := FromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace\n\nGo, Rust", text)
}

func TestFromFile_NotFound(t *testing.T) {
	_, err := FromFile(filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file not found")
}

func TestFromFile_Unsupported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cv.odt")
	require.NoError(t, os.WriteFile(path, []byte("data"), 0644))

	_, err := FromFile(path)
	var formatErr *UnsupportedFormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Equal(t, ".odt", formatErr.Format)
}

func TestFromBytes_EmptyText(t *testing.T) {
	_, err := FromBytes("text/plain", []byte("  \n "))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no text found")
}

func TestFromBytes_CorruptPDF(t *testing.T) {
	_, err := FromBytes(".pdf", []byte("not a pdf"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read pdf")
}

func TestFromBytes_CorruptDOCX(t *testing.T) {
	_, err := FromBytes("DOCX", []byte("not a zip"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse docx")
}

func TestNormalizeFormat(t *testing.T) {
	assert.Equal(t, ExtText, normalizeFormat(".TXT"))
	assert.Equal(t, ExtPDF, normalizeFormat("application/pdf"))
	assert.Equal(t, ExtDOCX, normalizeFormat("docx"))
	assert.Equal(t, "", normalizeFormat(".rtf"))
}

func TestDocumentXMLText(t *testing.T) {
	body := `<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body>
<w:p><w:r><w:t>Ada </w:t></w:r><w:r><w:t>Lovelace</w:t></w:r></w:p>
<w:p><w:r><w:t>Skills:</w:t><w:tab/><w:t>Go</w:t></w:r></w:p>
</w:body>
</w:document>`

	text, err := documentXMLText(body)
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace\nSkills: Go", Clean(text))
}

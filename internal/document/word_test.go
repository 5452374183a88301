package document

import (
	"archive/zip"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDocumentXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
	`<w:p><w:r><w:t>สวัสดี</w:t></w:r><w:r><w:t>ครับ</w:t></w:r></w:p>` +
	`<w:p><w:r><w:t>Hello</w:t></w:r></w:p>` +
	`<w:p/>` +
	`<w:tbl><w:tr><w:tc><w:tcPr/><w:p><w:r><w:t>ขอบคุณ</w:t></w:r></w:p></w:tc>` +
	`<w:tc><w:p><w:r><w:t>42</w:t></w:r></w:p></w:tc></w:tr></w:tbl>` +
	`<w:sectPr/></w:body></w:document>`

func writeDocx(t *testing.T, path string) {
	t.Helper()
	out, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(out)

	doc, err := zw.Create(wordDocumentPart)
	require.NoError(t, err)
	_, err = io.WriteString(doc, testDocumentXML)
	require.NoError(t, err)

	styles, err := zw.Create("word/styles.xml")
	require.NoError(t, err)
	_, err = io.WriteString(styles, `<w:styles xmlns:w="x"/>`)
	require.NoError(t, err)

	require.NoError(t, zw.Close())
	require.NoError(t, out.Close())
}

func readDocxPart(t *testing.T, path, name string) string {
	t.Helper()
	reader, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer reader.Close()

	for _, part := range reader.File {
		if part.Name != name {
			continue
		}
		rc, err := part.Open()
		require.NoError(t, err)
		defer rc.Close()
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		return string(data)
	}
	t.Fatalf("part %s not found in %s", name, path)
	return ""
}

func TestWordAdapter_TranslatesParagraphsAndCells(t *testing.T) {
	tmp := t.TempDir()
	input := filepath.Join(tmp, "in.docx")
	output := filepath.Join(tmp, "out.docx")
	writeDocx(t, input)

	svc, provider := newStubService(t, map[string]string{
		"สวัสดีครับ": "Hello there",
		"ขอบคุณ":     "Thank you",
	})
	require.NoError(t, WordAdapter{}.Translate(context.Background(), input, output, svc))

	doc := readDocxPart(t, output, wordDocumentPart)

	// The Thai paragraph's runs collapse into one translated run.
	assert.Contains(t, doc, `<w:t xml:space="preserve">Hello there</w:t>`)
	assert.Contains(t, doc, `<w:t/>`)
	assert.NotContains(t, doc, "สวัสดี")

	// The Thai table cell is translated; the numeric cell is untouched.
	assert.Contains(t, doc, `<w:t xml:space="preserve">Thank you</w:t>`)
	assert.Contains(t, doc, `<w:t>42</w:t>`)

	// The English paragraph fails the script gate and keeps its runs.
	assert.Contains(t, doc, `<w:t>Hello</w:t>`)

	// Two Thai units, one provider call each.
	assert.Equal(t, 2, provider.callCount())

	// Other archive members are copied through.
	assert.Equal(t, `<w:styles xmlns:w="x"/>`, readDocxPart(t, output, "word/styles.xml"))
}

func TestWordAdapter_MissingDocumentPart(t *testing.T) {
	tmp := t.TempDir()
	input := filepath.Join(tmp, "in.docx")

	out, err := os.Create(input)
	require.NoError(t, err)
	zw := zip.NewWriter(out)
	part, err := zw.Create("word/styles.xml")
	require.NoError(t, err)
	_, err = io.WriteString(part, "<w:styles/>")
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, out.Close())

	svc, _ := newStubService(t, nil)
	err = WordAdapter{}.Translate(context.Background(), input, filepath.Join(tmp, "out.docx"), svc)
	require.Error(t, err)
}

func TestTranslateDocumentXML_UnchangedWhenNothingMatches(t *testing.T) {
	svc, provider := newStubService(t, nil)
	doc := `<w:document><w:body><w:p><w:r><w:t>Plain English</w:t></w:r></w:p></w:body></w:document>`

	got := translateDocumentXML(context.Background(), doc, svc)
	assert.Equal(t, doc, got)
	assert.Equal(t, 0, provider.callCount())
}

func TestFindOutermost_NestedAndSelfClosing(t *testing.T) {
	doc := `<w:tc><w:tcPr/><w:p>a</w:p><w:tbl><w:tc><w:p>b</w:p></w:tc></w:tbl></w:tc><w:p>c</w:p>`

	cells := findOutermost(doc, "w:tc")
	require.Len(t, cells, 1)
	assert.True(t, strings.HasPrefix(doc[cells[0][0]:], "<w:tc>"))

	paras := rangesOutside(findOutermost(doc, "w:p"), cells)
	require.Len(t, paras, 1)
	assert.Equal(t, "<w:p>c</w:p>", doc[paras[0][0]:paras[0][1]])
}

package document

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/nuttapol-k/doctran/internal/translate"
)

const wordDocumentPart = "word/document.xml"

// WordAdapter translates .docx documents by rewriting the main document
// part of the OOXML archive directly. Each body paragraph and each table
// cell is one translation unit; the translated text replaces the unit's
// first text run and the remaining runs are emptied, which collapses
// per-run formatting inside rewritten units but leaves all other document
// structure (styles, images, tables, headers) byte-for-byte intact.
type WordAdapter struct{}

func (WordAdapter) Translate(ctx context.Context, inputPath, outputPath string, svc *translate.Service) error {
	reader, err := zip.OpenReader(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open document: %w", err)
	}
	defer reader.Close()

	var docXML string
	for _, part := range reader.File {
		if part.Name != wordDocumentPart {
			continue
		}
		rc, err := part.Open()
		if err != nil {
			return fmt.Errorf("failed to open document part: %w", err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return fmt.Errorf("failed to read document part: %w", err)
		}
		docXML = string(data)
	}
	if docXML == "" {
		return fmt.Errorf("%s: missing %s part", inputPath, wordDocumentPart)
	}

	translatedXML := translateDocumentXML(ctx, docXML, svc)

	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create document: %w", err)
	}
	defer out.Close()

	writer := zip.NewWriter(out)
	for _, part := range reader.File {
		w, err := writer.CreateHeader(&zip.FileHeader{
			Name:   part.Name,
			Method: part.Method,
		})
		if err != nil {
			return fmt.Errorf("failed to write archive entry %s: %w", part.Name, err)
		}
		if part.Name == wordDocumentPart {
			if _, err := io.WriteString(w, translatedXML); err != nil {
				return fmt.Errorf("failed to write document part: %w", err)
			}
			continue
		}
		rc, err := part.Open()
		if err != nil {
			return fmt.Errorf("failed to copy archive entry %s: %w", part.Name, err)
		}
		_, err = io.Copy(w, rc)
		rc.Close()
		if err != nil {
			return fmt.Errorf("failed to copy archive entry %s: %w", part.Name, err)
		}
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize document: %w", err)
	}
	return out.Close()
}

// unit is one translation unit inside document.xml: a table cell or a
// paragraph outside any table, identified by its byte range.
type unit struct {
	start, end int
	text       string
}

// translateDocumentXML rewrites the text runs of document.xml. Table
// cells and standalone paragraphs each form their own batch, mirroring
// the two extraction passes a reader of the document would make.
func translateDocumentXML(ctx context.Context, doc string, svc *translate.Service) string {
	cellRanges := findOutermost(doc, "w:tc")
	paraRanges := rangesOutside(findOutermost(doc, "w:p"), cellRanges)

	paraBatch := translate.NewBatch(svc)
	var paraUnits []unit
	for _, r := range paraRanges {
		text := runText(doc[r[0]:r[1]])
		if strings.TrimSpace(text) == "" {
			continue
		}
		paraBatch.AddText(text)
		paraUnits = append(paraUnits, unit{start: r[0], end: r[1], text: text})
	}

	cellBatch := translate.NewBatch(svc)
	var cellUnits []unit
	for _, r := range cellRanges {
		text := cellText(doc[r[0]:r[1]])
		if strings.TrimSpace(text) == "" {
			continue
		}
		cellBatch.AddText(text)
		cellUnits = append(cellUnits, unit{start: r[0], end: r[1], text: text})
	}

	paraRes := paraBatch.Resolve(ctx)
	cellRes := cellBatch.Resolve(ctx)

	type rewrite struct {
		start, end int
		xml        string
	}
	var rewrites []rewrite
	for _, u := range paraUnits {
		if translated := paraRes.ApplyText(u.text); translated != u.text {
			rewrites = append(rewrites, rewrite{u.start, u.end, rewriteRuns(doc[u.start:u.end], translated)})
		}
	}
	for _, u := range cellUnits {
		if translated := cellRes.ApplyText(u.text); translated != u.text {
			rewrites = append(rewrites, rewrite{u.start, u.end, rewriteRuns(doc[u.start:u.end], translated)})
		}
	}
	if len(rewrites) == 0 {
		return doc
	}
	sort.Slice(rewrites, func(i, j int) bool { return rewrites[i].start < rewrites[j].start })

	var sb strings.Builder
	pos := 0
	for _, rw := range rewrites {
		sb.WriteString(doc[pos:rw.start])
		sb.WriteString(rw.xml)
		pos = rw.end
	}
	sb.WriteString(doc[pos:])
	return sb.String()
}

// textRunRe matches one <w:t> element, self-closing or with content.
var textRunRe = regexp.MustCompile(`(?s)<w:t(?:\s[^>]*)?(?:/>|>(.*?)</w:t>)`)

// runText concatenates the text runs of a paragraph fragment.
func runText(fragment string) string {
	var sb strings.Builder
	for _, m := range textRunRe.FindAllStringSubmatch(fragment, -1) {
		sb.WriteString(xmlUnescape(m[1]))
	}
	return sb.String()
}

// cellText joins the paragraph texts of a table cell fragment with
// newlines, matching how word processors expose cell content.
func cellText(fragment string) string {
	var parts []string
	for _, r := range findOutermost(fragment, "w:p") {
		parts = append(parts, runText(fragment[r[0]:r[1]]))
	}
	return strings.Join(parts, "\n")
}

// rewriteRuns puts the translated text into the fragment's first text run
// and empties the rest.
func rewriteRuns(fragment, translated string) string {
	first := true
	return textRunRe.ReplaceAllStringFunc(fragment, func(string) string {
		if first {
			first = false
			return "<w:t xml:space=\"preserve\">" + xmlEscape(translated) + "</w:t>"
		}
		return "<w:t/>"
	})
}

// findOutermost returns the outermost byte ranges of <tag ...>...</tag>
// elements, nesting-aware. Self-closing occurrences are reported as empty
// ranges of their own.
func findOutermost(s, tag string) [][2]int {
	openPrefix := "<" + tag
	closeTag := "</" + tag + ">"

	var ranges [][2]int
	depth, start, i := 0, 0, 0
	for i < len(s) {
		if depth == 0 {
			pos := indexOpenTag(s, i, openPrefix)
			if pos < 0 {
				break
			}
			end, selfClosing := openTagEnd(s, pos)
			if end < 0 {
				break
			}
			if selfClosing {
				ranges = append(ranges, [2]int{pos, end})
				i = end
				continue
			}
			depth, start, i = 1, pos, end
			continue
		}

		nextOpen := indexOpenTag(s, i, openPrefix)
		nextClose := strings.Index(s[i:], closeTag)
		if nextClose < 0 {
			break // unbalanced, give up on this element
		}
		closeAt := i + nextClose
		if nextOpen >= 0 && nextOpen < closeAt {
			end, selfClosing := openTagEnd(s, nextOpen)
			if end < 0 {
				break
			}
			if !selfClosing {
				depth++
			}
			i = end
			continue
		}
		depth--
		i = closeAt + len(closeTag)
		if depth == 0 {
			ranges = append(ranges, [2]int{start, i})
		}
	}
	return ranges
}

// indexOpenTag finds the next occurrence of an opening tag with the given
// prefix, rejecting longer tag names that merely share it (w:tcPr vs
// w:tc).
func indexOpenTag(s string, from int, openPrefix string) int {
	for from < len(s) {
		idx := strings.Index(s[from:], openPrefix)
		if idx < 0 {
			return -1
		}
		pos := from + idx
		after := pos + len(openPrefix)
		if after < len(s) && (s[after] == ' ' || s[after] == '>' || s[after] == '/') {
			return pos
		}
		from = after
	}
	return -1
}

// openTagEnd returns the index just past the '>' of the start tag at pos
// and whether the tag is self-closing.
func openTagEnd(s string, pos int) (int, bool) {
	gt := strings.IndexByte(s[pos:], '>')
	if gt < 0 {
		return -1, false
	}
	end := pos + gt + 1
	return end, s[end-2] == '/'
}

// rangesOutside filters ranges that fall inside any of the excluded
// ranges.
func rangesOutside(ranges, excluded [][2]int) [][2]int {
	var kept [][2]int
	for _, r := range ranges {
		inside := false
		for _, ex := range excluded {
			if r[0] >= ex[0] && r[1] <= ex[1] {
				inside = true
				break
			}
		}
		if !inside {
			kept = append(kept, r)
		}
	}
	return kept
}

var (
	xmlEscaper   = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", "\"", "&quot;")
	xmlUnescaper = strings.NewReplacer("&lt;", "<", "&gt;", ">", "&quot;", "\"", "&apos;", "'", "&amp;", "&")
)

func xmlEscape(s string) string   { return xmlEscaper.Replace(s) }
func xmlUnescape(s string) string { return xmlUnescaper.Replace(s) }

// Package preview renders a human-readable before/after view of a text
// edit: the affected line block from the original buffer, the same block
// with the edit applied, and a caret line marking the edited range.
package preview

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"fortio.org/safecast"
	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"mend/internal/diag"
	"mend/internal/source"
)

// Options controls preview output.
type Options struct {
	Color bool
}

type editPreview struct {
	startLine uint32
	before    []string
	after     []string
	caretLine string
}

// RenderEdit writes a preview of one edit to w.
func RenderEdit(w io.Writer, fs *source.FileSet, edit diag.TextEdit, opt Options) error {
	pv, err := buildEditPreview(fs, edit)
	if err != nil {
		return err
	}

	removed := color.New(color.FgRed)
	added := color.New(color.FgGreen)
	dim := color.New(color.Faint)
	if !opt.Color {
		removed.DisableColor()
		added.DisableColor()
		dim.DisableColor()
	}

	file := fs.Get(edit.Span.File)
	start, _ := fs.Resolve(edit.Span)
	fmt.Fprintf(w, "%s:%d:%d\n", file.FormatPath("auto", fs.BaseDir()), start.Line, start.Col)

	gutter := len(fmt.Sprintf("%d", pv.startLine+uint32(len(pv.before))))
	for i, line := range pv.before {
		removed.Fprintf(w, "- %*d | %s\n", gutter, pv.startLine+uint32(i), line)
		if i == 0 && pv.caretLine != "" {
			dim.Fprintf(w, "  %*s | %s\n", gutter, "", pv.caretLine)
		}
	}
	for i, line := range pv.after {
		added.Fprintf(w, "+ %*d | %s\n", gutter, pv.startLine+uint32(i), line)
	}
	return nil
}

// buildEditPreview slices the full-line block covering the edit span out of
// the original buffer and applies the edit to a copy of it.
func buildEditPreview(fs *source.FileSet, edit diag.TextEdit) (editPreview, error) {
	if fs == nil {
		return editPreview{}, fmt.Errorf("nil FileSet")
	}
	file := fs.Get(edit.Span.File)
	if file == nil {
		return editPreview{}, fmt.Errorf("file %d not found in FileSet", edit.Span.File)
	}

	startPos, endPos := fs.Resolve(edit.Span)
	startLine := startPos.Line
	endLine := endPos.Line
	if endLine < startLine {
		endLine = startLine
	}

	blockStart := lineStartOffset(file, startLine)
	blockEnd := max(lineEndOffsetInclusive(file, endLine), blockStart)

	lenFileContent, err := safecast.Conv[uint32](len(file.Content))
	if err != nil {
		return editPreview{}, fmt.Errorf("len file content overflow: %w", err)
	}
	blockEnd = min(blockEnd, lenFileContent)

	original := make([]byte, blockEnd-blockStart)
	copy(original, file.Content[blockStart:blockEnd])

	relStart := int(edit.Span.Start - blockStart)
	relEnd := int(edit.Span.End - blockStart)

	if relStart < 0 || relStart > len(original) {
		return editPreview{}, fmt.Errorf("edit span start %d out of range for preview block", relStart)
	}
	if relEnd < relStart || relEnd > len(original) {
		return editPreview{}, fmt.Errorf("edit span end %d out of range for preview block", relEnd)
	}

	after := make([]byte, 0, len(original)+len(edit.NewText))
	after = append(after, original[:relStart]...)
	after = append(after, edit.NewText...)
	after = append(after, original[relEnd:]...)

	return editPreview{
		startLine: startLine,
		before:    splitPreviewLines(original),
		after:     splitPreviewLines(after),
		caretLine: buildCaretLine(original, relStart, relEnd),
	}, nil
}

// buildCaretLine underlines the edited range on the first affected line.
// Widths are display widths, so wide runes keep the carets aligned.
func buildCaretLine(original []byte, relStart, relEnd int) string {
	firstLine := original
	if idx := bytes.IndexByte(original, '\n'); idx >= 0 {
		firstLine = original[:idx]
	}
	if relStart >= len(firstLine) {
		return ""
	}
	markEnd := min(relEnd, len(firstLine))

	pad := runewidth.StringWidth(string(firstLine[:relStart]))
	span := runewidth.StringWidth(string(firstLine[relStart:markEnd]))
	if span == 0 {
		span = 1
	}
	return strings.Repeat(" ", pad) + "^" + strings.Repeat("~", span-1)
}

func splitPreviewLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}
	return strings.Split(strings.TrimRight(string(content), "\n"), "\n")
}

func lineStartOffset(f *source.File, line uint32) uint32 {
	if line <= 1 {
		return 0
	}
	idx := line - 2
	if int(idx) < len(f.LineIdx) {
		return f.LineIdx[idx] + 1
	}
	lenFileContent, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("len file content overflow: %w", err))
	}
	return lenFileContent
}

func lineEndOffsetInclusive(f *source.File, line uint32) uint32 {
	if line == 0 {
		return 0
	}
	idx := line - 1
	if int(idx) < len(f.LineIdx) {
		return f.LineIdx[idx] + 1
	}
	lenFileContent, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("len file content overflow: %w", err))
	}
	return lenFileContent
}

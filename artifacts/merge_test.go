package artifacts

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// buildOnePagePDF writes a minimal single-page PDF with one line of text,
// enough structure for pdfcpu to validate and stamp.
func buildOnePagePDF(text string) []byte {
	escaped := strings.ReplaceAll(text, `\`, `\\`)
	escaped = strings.ReplaceAll(escaped, "(", `\(`)
	escaped = strings.ReplaceAll(escaped, ")", `\)`)

	stream := "BT\n/F1 12 Tf\n72 720 Td\n(" + escaped + ") Tj\nET"

	var b strings.Builder
	b.WriteString("%PDF-1.4\n")

	offsets := make([]int, 6)

	offsets[1] = b.Len()
	b.WriteString("1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n")

	offsets[2] = b.Len()
	b.WriteString("2 0 obj\n<< /Type /Pages /Kids [3 0 R] /Count 1 >>\nendobj\n")

	offsets[3] = b.Len()
	b.WriteString("3 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents 4 0 R /Resources << /Font << /F1 5 0 R >> >> >>\nendobj\n")

	offsets[4] = b.Len()
	b.WriteString("4 0 obj\n<< /Length ")
	b.WriteString(strconv.Itoa(len(stream)))
	b.WriteString(" >>\nstream\n")
	b.WriteString(stream)
	b.WriteString("\nendstream\nendobj\n")

	offsets[5] = b.Len()
	b.WriteString("5 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>\nendobj\n")

	xrefOffset := b.Len()
	b.WriteString("xref\n0 6\n")
	b.WriteString("0000000000 65535 f \n")
	for i := 1; i <= 5; i++ {
		off := strconv.Itoa(offsets[i])
		b.WriteString(strings.Repeat("0", 10-len(off)) + off)
		b.WriteString(" 00000 n \n")
	}
	b.WriteString("trailer\n<< /Size 6 /Root 1 0 R >>\nstartxref\n")
	b.WriteString(strconv.Itoa(xrefOffset))
	b.WriteString("\n%%EOF\n")

	return []byte(b.String())
}

func writeTestPNG(t *testing.T, path string) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 120, B: 40, A: 255})
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create png: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
}

func TestEmbedScreenshotMergesInPlace(t *testing.T) {
	dir := t.TempDir()
	pdfPath := filepath.Join(dir, "1.pdf")
	pngPath := filepath.Join(dir, "1.png")

	if err := os.WriteFile(pdfPath, buildOnePagePDF("Receipt: order 1"), 0644); err != nil {
		t.Fatalf("seed pdf: %v", err)
	}
	writeTestPNG(t, pngPath)

	if err := EmbedScreenshot(pngPath, pdfPath); err != nil {
		t.Fatalf("EmbedScreenshot: %v", err)
	}

	// Merge mutates the receipt in place: same path, still one valid page.
	if err := api.ValidateFile(pdfPath, nil); err != nil {
		t.Errorf("merged receipt is not a valid PDF: %v", err)
	}
	pages, err := api.PageCountFile(pdfPath)
	if err != nil {
		t.Fatalf("page count: %v", err)
	}
	if pages != 1 {
		t.Errorf("merged receipt page count: got %d, want 1", pages)
	}

	// The screenshot is consumed, not deleted; directory cleanup owns that.
	if _, err := os.Stat(pngPath); err != nil {
		t.Errorf("screenshot missing after merge: %v", err)
	}
}

func TestEmbedScreenshotMissingImageIsError(t *testing.T) {
	dir := t.TempDir()
	pdfPath := filepath.Join(dir, "1.pdf")
	if err := os.WriteFile(pdfPath, buildOnePagePDF("Receipt: order 1"), 0644); err != nil {
		t.Fatalf("seed pdf: %v", err)
	}

	if err := EmbedScreenshot(filepath.Join(dir, "nope.png"), pdfPath); err == nil {
		t.Error("expected error for missing screenshot, got nil")
	}
}

// Package artifacts produces and packages the per-order output files:
// receipt PDFs, preview screenshots, the merged receipt, and the final
// ZIP archive.
package artifacts

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// ReceiptPath returns the receipt PDF path for an order number.
func ReceiptPath(dir, orderNumber string) string {
	return filepath.Join(dir, orderNumber+".pdf")
}

// ScreenshotPath returns the preview screenshot path for an order number.
func ScreenshotPath(dir, orderNumber string) string {
	return filepath.Join(dir, orderNumber+".png")
}

// RenderReceiptPDF prints the receipt markup to a PDF file at path,
// creating the destination directory if absent. browserCtx must hold a
// running browser; the markup is loaded into a fresh tab on it so the
// order page is left untouched and no extra browser is spawned.
func RenderReceiptPDF(browserCtx context.Context, html, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("artifacts: create receipts dir: %w", err)
	}

	tabCtx, cancelTab := chromedp.NewContext(browserCtx)
	defer cancelTab()

	ctx, cancel := context.WithTimeout(tabCtx, 30*time.Second)
	defer cancel()

	var pdf []byte
	err := chromedp.Run(ctx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, html).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			if err != nil {
				return err
			}
			pdf = buf
			return nil
		}),
	)
	if err != nil {
		return fmt.Errorf("artifacts: print receipt to PDF: %w", err)
	}

	if err := os.WriteFile(path, pdf, 0644); err != nil {
		return fmt.Errorf("artifacts: write receipt %q: %w", path, err)
	}
	return nil
}

// WritePNG writes screenshot bytes to path, creating the destination
// directory if absent.
func WritePNG(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("artifacts: create screenshots dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("artifacts: write screenshot %q: %w", path, err)
	}
	return nil
}

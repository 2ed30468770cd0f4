package artifacts

import (
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// EmbedScreenshot stamps the screenshot onto the receipt PDF in place,
// replacing the file at pdfPath. The image is centered and scaled to half
// the page width.
func EmbedScreenshot(screenshotPath, pdfPath string) error {
	const desc = "pos:c, scalefactor:0.5 rel, rot:0"

	err := api.AddImageWatermarksFile(pdfPath, "", nil, true, screenshotPath, desc, nil)
	if err != nil {
		return fmt.Errorf("artifacts: embed %q into %q: %w", screenshotPath, pdfPath, err)
	}
	return nil
}

package robotspare

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/chromedp/chromedp"

	"robot-order-bot/artifacts"
	"robot-order-bot/config"
	"robot-order-bot/models"
	"robot-order-bot/utils"
)

// Selectors on the RobotSpareBin order page.
const (
	selModalOK      = `.modal-dialog .btn-dark`
	selHead         = `#head`
	selLegs         = `input[placeholder="Enter the part number for the legs"]`
	selAddress      = `#address`
	selSubmit       = `#order`
	selOrderAnother = `#order-another`
	selReceipt      = `#receipt`
	selPreview      = `#robot-preview-image`
)

const jsSelectHead = `(function() {
	var sel = document.querySelector('#head');
	if (!sel) return false;
	for (var i = 0; i < sel.options.length; i++) {
		if (sel.options[i].text === %q) {
			sel.value = sel.options[i].value;
			sel.dispatchEvent(new Event('change', { bubbles: true }));
			return true;
		}
	}
	return false;
})()`

const jsSelectBody = `(function() {
	var el = document.querySelector('input[name="body"][value=%q]');
	if (!el) return false;
	el.click();
	return true;
})()`

const jsProbeOutcome = `(function() {
	var alertEl = document.querySelector('#root .alert-danger');
	return {
		ordered: document.querySelector('#order-another') !== null,
		alert: alertEl ? alertEl.textContent.trim() : ''
	};
})()`

// Bot drives the robot order form through a single browser page,
// submitting one order at a time.
type Bot struct {
	cfg    *config.Config
	logger *utils.Logger
	retry  *utils.RetryConfig
	slow   time.Duration
}

// New creates a ready-to-use order Bot.
func New(cfg *config.Config, logger *utils.Logger) *Bot {
	return &Bot{
		cfg:    cfg,
		logger: logger,
		retry: &utils.RetryConfig{
			MaxAttempts: cfg.SubmitMaxAttempts,
			BaseDelay:   time.Duration(cfg.SubmitRetryDelayMs) * time.Millisecond,
			Logger:      logger,
		},
		slow: time.Duration(cfg.SlowMoMs) * time.Millisecond,
	}
}

// Run opens the order page and submits every order in sequence, returning
// one result per order. A failed order is recorded and the run continues
// with the next record; only a bootstrap or unrecoverable page failure
// aborts the run.
func (b *Bot) Run(orderList []*models.Order) ([]*models.OrderResult, error) {
	chromeBin := findChromeBinary(b.cfg.ChromeBin)
	b.logger.Info("[robotspare] Using browser binary: %s", chromeBin)

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", b.cfg.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-setuid-sandbox", true),
	)
	if chromeBin != "" {
		opts = append(opts, chromedp.ExecPath(chromeBin))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), opts...)
	defer cancelAlloc()

	// Suppress chromedp log noise
	pageCtx, cancelPage := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))
	defer cancelPage()

	if err := b.openOrderPage(pageCtx); err != nil {
		return nil, fmt.Errorf("robotspare: open order page: %w", err)
	}

	results := make([]*models.OrderResult, 0, len(orderList))
	for i, o := range orderList {
		b.logger.Info("[robotspare] Order %s (%d/%d)", o.Number, i+1, len(orderList))

		res := b.processOrder(pageCtx, o)
		results = append(results, res)

		if res.Status == models.StatusFailed {
			b.logger.Error("[robotspare] Order %s failed: %s", o.Number, res.Err)
			if err := b.openOrderPage(pageCtx); err != nil {
				return results, fmt.Errorf("robotspare: recover after order %s: %w", o.Number, err)
			}
		}
	}

	return results, nil
}

// openOrderPage navigates to the order page and dismisses the startup modal.
func (b *Bot) openOrderPage(pageCtx context.Context) error {
	ctx, cancel := context.WithTimeout(pageCtx, 60*time.Second)
	defer cancel()

	return chromedp.Run(ctx,
		chromedp.Navigate(b.cfg.OrderPageURL),
		chromedp.WaitVisible(selModalOK, chromedp.ByQuery),
		b.pause(),
		chromedp.Click(selModalOK, chromedp.ByQuery),
		chromedp.WaitVisible(selHead, chromedp.ByQuery),
	)
}

// processOrder fills, submits, and captures artifacts for a single order.
func (b *Bot) processOrder(pageCtx context.Context, o *models.Order) *models.OrderResult {
	headName, known := headOptionName(o.Head)
	if !known {
		b.logger.Warn("[robotspare] Order %s: unknown head value %q — selecting default %q",
			o.Number, o.Head, headName)
	}

	res := &models.OrderResult{Number: o.Number, Head: headName, Status: models.StatusFailed}

	err := b.retry.Do("submit-order-"+o.Number, func() error {
		res.Attempts++
		return b.attemptSubmit(pageCtx, o, headName)
	})
	if err != nil {
		res.Err = err.Error()
		return res
	}

	if err := b.captureArtifacts(pageCtx, res); err != nil {
		res.Err = err.Error()
		return res
	}

	if err := b.resetForNext(pageCtx); err != nil {
		b.logger.Warn("[robotspare] Order %s: reset for next order failed (%v) — reloading page",
			o.Number, err)
		if err := b.openOrderPage(pageCtx); err != nil {
			b.logger.Error("[robotspare] Reload after order %s failed: %v", o.Number, err)
		}
	}

	res.Status = models.StatusCompleted
	res.CompletedAt = time.Now()
	return res
}

type probeResult struct {
	Ordered bool   `json:"ordered"`
	Alert   string `json:"alert"`
}

// attemptSubmit performs one fill-and-submit pass and verifies the success
// indicator. Any error here is retried by the caller's bounded retry.
func (b *Bot) attemptSubmit(pageCtx context.Context, o *models.Order, headName string) error {
	ctx, cancel := context.WithTimeout(pageCtx, 45*time.Second)
	defer cancel()

	var headOK, bodyOK bool
	err := chromedp.Run(ctx,
		chromedp.WaitVisible(selHead, chromedp.ByQuery),
		chromedp.Evaluate(fmt.Sprintf(jsSelectHead, headName), &headOK),
		b.pause(),
		chromedp.Evaluate(fmt.Sprintf(jsSelectBody, o.Body), &bodyOK),
		b.pause(),
		chromedp.Clear(selLegs, chromedp.ByQuery),
		chromedp.SendKeys(selLegs, o.Legs, chromedp.ByQuery),
		b.pause(),
		chromedp.Clear(selAddress, chromedp.ByQuery),
		chromedp.SendKeys(selAddress, o.Address, chromedp.ByQuery),
		b.pause(),
	)
	if err != nil {
		return fmt.Errorf("fill form: %w", err)
	}
	if !headOK {
		return fmt.Errorf("head option %q not present", headName)
	}
	if !bodyOK {
		return fmt.Errorf("body option %q not present", o.Body)
	}

	var probe probeResult
	err = chromedp.Run(ctx,
		chromedp.Click(selSubmit, chromedp.ByQuery),
		chromedp.Sleep(750*time.Millisecond),
		chromedp.Evaluate(jsProbeOutcome, &probe),
	)
	if err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	if !probe.Ordered {
		if probe.Alert != "" {
			return fmt.Errorf("submission rejected: %s", probe.Alert)
		}
		return errors.New("success indicator not present after submit")
	}
	return nil
}

// captureArtifacts saves the receipt PDF and preview screenshot for a
// completed order and embeds the screenshot into the receipt in place.
// The receipt renders in a sibling tab of pageCtx's browser.
func (b *Bot) captureArtifacts(pageCtx context.Context, res *models.OrderResult) error {
	ctx, cancel := context.WithTimeout(pageCtx, 45*time.Second)
	defer cancel()

	var receiptHTML string
	var shot []byte
	err := chromedp.Run(ctx,
		chromedp.OuterHTML(selReceipt, &receiptHTML, chromedp.ByQuery),
		chromedp.Screenshot(selPreview, &shot, chromedp.NodeVisible, chromedp.ByQuery),
	)
	if err != nil {
		return fmt.Errorf("capture receipt: %w", err)
	}

	pdfPath := artifacts.ReceiptPath(b.cfg.ReceiptsDir, res.Number)
	if err := artifacts.RenderReceiptPDF(pageCtx, receiptHTML, pdfPath); err != nil {
		return err
	}

	shotPath := artifacts.ScreenshotPath(b.cfg.ScreenshotsDir, res.Number)
	if err := artifacts.WritePNG(shotPath, shot); err != nil {
		return err
	}

	if err := artifacts.EmbedScreenshot(shotPath, pdfPath); err != nil {
		return err
	}

	res.ReceiptPath = pdfPath
	res.ScreenshotPath = shotPath
	return nil
}

// resetForNext clicks "order another" and dismisses its confirmation modal
// so the form is ready for the next record.
func (b *Bot) resetForNext(pageCtx context.Context) error {
	ctx, cancel := context.WithTimeout(pageCtx, 30*time.Second)
	defer cancel()

	return chromedp.Run(ctx,
		chromedp.Click(selOrderAnother, chromedp.ByQuery),
		chromedp.WaitVisible(selModalOK, chromedp.ByQuery),
		b.pause(),
		chromedp.Click(selModalOK, chromedp.ByQuery),
		chromedp.WaitVisible(selHead, chromedp.ByQuery),
	)
}

// pause returns the slow-mo delay applied between browser actions.
func (b *Bot) pause() chromedp.Action {
	return chromedp.Sleep(b.slow)
}

// findChromeBinary locates a Chrome/Chromium binary, preferring the
// configured path.
func findChromeBinary(configured string) string {
	if configured != "" {
		return configured
	}

	names := []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"}
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	paths := []string{
		"/usr/bin/google-chrome-stable",
		"/usr/bin/google-chrome",
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/snap/bin/chromium",
		"/opt/google/chrome/google-chrome",
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}

package orders

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

var downloadClient = &http.Client{Timeout: 60 * time.Second}

// Download fetches the orders file from url and writes it to path,
// unconditionally overwriting any existing copy. A non-2xx response is an
// error; there is no retry and no partial-download recovery.
func Download(url, path string) error {
	resp, err := downloadClient.Get(url)
	if err != nil {
		return fmt.Errorf("orders: download %q: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("orders: download %q: unexpected status %s", url, resp.Status)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("orders: create dir for %q: %w", path, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("orders: create file %q: %w", path, err)
	}

	if _, err := io.Copy(f, resp.Body); err != nil {
		_ = f.Close()
		return fmt.Errorf("orders: write %q: %w", path, err)
	}

	return f.Close()
}

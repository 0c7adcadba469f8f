package report

import (
	"fmt"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// WriteArtifact writes the machine report to path. Paths ending in .gz are
// gzip-compressed, which keeps large multi-agent reports cheap to attach to
// CI runs.
func WriteArtifact(path string, data []byte) error {
	if !strings.HasSuffix(path, ".gz") {
		return os.WriteFile(path, data, 0644)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating report artifact: %w", err)
	}

	zw := gzip.NewWriter(f)
	if _, err := zw.Write(data); err != nil {
		zw.Close()
		f.Close()
		return fmt.Errorf("compressing report artifact: %w", err)
	}
	if err := zw.Close(); err != nil {
		f.Close()
		return fmt.Errorf("finalizing report artifact: %w", err)
	}
	return f.Close()
}

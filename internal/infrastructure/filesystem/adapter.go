// Package filesystem exports printed documents as files.
package filesystem

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/bnema/startdash/internal/application/port"
	"github.com/bnema/startdash/internal/logging"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// Printer implements port.Printer by writing each job to a dated text file.
type Printer struct {
	dir string
	now func() time.Time
}

// NewPrinter creates a printer writing into dir. The directory is created on
// first use.
func NewPrinter(dir string) *Printer {
	return &Printer{dir: dir, now: time.Now}
}

// Print writes job to <dir>/<slug>-<date>.txt, replacing an export of the same
// document from the same day. A directory that cannot be created or written
// is reported as port.ErrPrintBlocked.
func (p *Printer) Print(ctx context.Context, job port.PrintJob) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(p.dir, dirPerm); err != nil {
		return "", blocked(err)
	}

	name := fmt.Sprintf("%s-%s.txt", slug(job.Title), p.now().Format("2006-01-02"))
	path := filepath.Join(p.dir, name)

	tmp, err := os.CreateTemp(p.dir, "."+name+".*")
	if err != nil {
		return "", blocked(err)
	}
	tmpPath := tmp.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if _, err := tmp.WriteString(job.Body); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", name, err)
	}
	if err := os.Chmod(tmpPath, filePerm); err != nil {
		return "", fmt.Errorf("chmod %s: %w", name, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return "", fmt.Errorf("rename %s: %w", name, err)
	}

	logging.FromContext(ctx).Info().Str("path", path).Str("title", job.Title).Msg("document exported")
	return path, nil
}

func blocked(err error) error {
	return fmt.Errorf("%w: %w", port.ErrPrintBlocked, err)
}

// slug turns a title into a lowercase file name stem.
func slug(title string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	s := strings.TrimSuffix(b.String(), "-")
	if s == "" {
		return "document"
	}
	return s
}

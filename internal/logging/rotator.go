package logging

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// RotatorOptions configures a LogRotator.
type RotatorOptions struct {
	Dir        string
	Name       string // file name inside Dir, default "startdash.log"
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// LogRotator is an io.Writer that rotates its file once it grows past MaxSizeMB.
type LogRotator struct {
	mu          sync.Mutex
	opts        RotatorOptions
	maxSize     int64
	maxAge      time.Duration
	currentFile *os.File
	currentSize int64
}

// NewLogRotator opens (or creates) the log file described by opts.
func NewLogRotator(opts RotatorOptions) (*LogRotator, error) {
	const dirPerm = 0o750
	if opts.Name == "" {
		opts.Name = "startdash.log"
	}
	if opts.MaxSizeMB <= 0 {
		opts.MaxSizeMB = 10
	}
	if err := os.MkdirAll(opts.Dir, dirPerm); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	r := &LogRotator{
		opts:    opts,
		maxSize: int64(opts.MaxSizeMB) * 1024 * 1024,
		maxAge:  time.Duration(opts.MaxAgeDays) * 24 * time.Hour,
	}
	if err := r.open(); err != nil {
		return nil, err
	}
	return r, nil
}

// Path returns the active log file path.
func (r *LogRotator) Path() string {
	return filepath.Join(r.opts.Dir, r.opts.Name)
}

func (r *LogRotator) open() error {
	if info, err := os.Stat(r.Path()); err == nil {
		r.currentSize = info.Size()
	}

	file, err := os.OpenFile(r.Path(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	r.currentFile = file
	return nil
}

// Write implements io.Writer.
func (r *LogRotator) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.currentFile == nil {
		if err := r.open(); err != nil {
			return 0, err
		}
	}
	if r.currentSize+int64(len(p)) > r.maxSize {
		if err := r.rotate(); err != nil {
			return 0, err
		}
	}

	n, err := r.currentFile.Write(p)
	r.currentSize += int64(n)
	return n, err
}

func (r *LogRotator) rotate() error {
	if err := r.currentFile.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to close current log file: %v\n", err)
	}

	backupPath := fmt.Sprintf("%s.%s", r.Path(), time.Now().Format("2006-01-02-15-04-05"))
	if err := os.Rename(r.Path(), backupPath); err != nil {
		return fmt.Errorf("failed to rotate log file: %w", err)
	}

	if r.opts.Compress {
		if err := gzipFile(backupPath); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to compress log file %s: %v\n", backupPath, err)
		} else if err := os.Remove(backupPath); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to remove uncompressed log file %s: %v\n", backupPath, err)
		}
	}

	r.prune()
	r.currentSize = 0
	return r.open()
}

func gzipFile(path string) error {
	in, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := os.Create(path + ".gz")
	if err != nil {
		return err
	}
	defer func() { _ = out.Close() }()

	zw := gzip.NewWriter(out)
	if _, err := io.Copy(zw, in); err != nil {
		_ = zw.Close()
		return err
	}
	return zw.Close()
}

// prune drops backups past MaxAgeDays, then the oldest beyond MaxBackups.
func (r *LogRotator) prune() {
	entries, err := os.ReadDir(r.opts.Dir)
	if err != nil {
		return
	}

	var backups []os.FileInfo
	now := time.Now()
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, r.opts.Name+".") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if r.maxAge > 0 && now.Sub(info.ModTime()) > r.maxAge {
			_ = os.Remove(filepath.Join(r.opts.Dir, name))
			continue
		}
		backups = append(backups, info)
	}

	if r.opts.MaxBackups <= 0 || len(backups) <= r.opts.MaxBackups {
		return
	}
	sort.Slice(backups, func(i, j int) bool {
		return backups[i].ModTime().Before(backups[j].ModTime())
	})
	for _, info := range backups[:len(backups)-r.opts.MaxBackups] {
		_ = os.Remove(filepath.Join(r.opts.Dir, info.Name()))
	}
}

// Close closes the active log file.
func (r *LogRotator) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.currentFile == nil {
		return nil
	}
	err := r.currentFile.Close()
	r.currentFile = nil
	return err
}

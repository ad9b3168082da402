package pagestore

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/icza/backscanner"
)

// logFile is the durable append-only log the log manager's tail is flushed
// into. UpdateLog/GetLog give the log manager its full contract; tailLines
// is a diagnostic convenience that never needs to load the whole file.
type logFile struct {
	mu   sync.Mutex
	file *os.File
}

func openLogFile(path string) (*logFile, error) {
	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return &logFile{file: file}, nil
}

func (l *logFile) append(text string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, err := l.file.WriteString(text); err != nil {
		return fmt.Errorf("append to log file: %w", err)
	}
	return l.file.Sync()
}

func (l *logFile) readAll() (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, err := l.file.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("seek log file: %w", err)
	}
	data, err := io.ReadAll(l.file)
	if err != nil {
		return "", fmt.Errorf("read log file: %w", err)
	}
	return string(data), nil
}

// tailLines scans the log file backward from EOF, without reading it
// entirely into memory, collecting up to n most recent lines. Grounded on
// the pack's recovery managers that backscan their log file hunting for the
// latest checkpoint marker rather than loading the whole log forward.
func (l *logFile) tailLines(n int) ([]string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	info, err := l.file.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat log file: %w", err)
	}

	scanner := backscanner.New(l.file, int(info.Size()))
	var lines []string
	for len(lines) < n {
		line, _, err := scanner.LineBytes()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("backscan log file: %w", err)
		}
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}
		lines = append([]string{string(line)}, lines...)
	}
	return lines, nil
}

func (l *logFile) close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.file.Close()
}

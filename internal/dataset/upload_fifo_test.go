//go:build linux || darwin

package dataset

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"testing"
	"time"
)

// feedFIFO creates a named pipe at dir/name and writes body into it once a
// reader opens it.
func feedFIFO(t *testing.T, name, body string) (string, <-chan struct{}) {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := syscall.Mkfifo(p, 0o600); err != nil {
		t.Skipf("mkfifo unavailable: %v", err)
	}
	done := make(chan struct{})
	go func() {
		defer close(done)
		w, err := os.OpenFile(p, os.O_WRONLY, 0)
		if err != nil {
			return
		}
		_, _ = io.WriteString(w, body)
		w.Close()
	}()
	return p, done
}

func waitWriter(t *testing.T, done <-chan struct{}) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatalf("fifo writer did not finish")
	}
}

func TestLoadFIFOEnforcesLimit(t *testing.T) {
	body := "X,Y\n" + strings.Repeat("1,2\n", 50)
	p, done := feedFIFO(t, "data.csv", body)

	opt := DefaultOptions()
	opt.MaxBytes = 64
	ds, err := Load(p, "", XY, opt)
	waitWriter(t, done)
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationError for oversized pipe, got rows=%v err=%v", ds, err)
	}
}

func TestLoadFIFOWithinLimit(t *testing.T) {
	p, done := feedFIFO(t, "data.csv", "X,Y\n1,2\n3,4\n")

	ds, err := Load(p, "", XY, DefaultOptions())
	waitWriter(t, done)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if rows := ds.Rows(); len(rows) != 2 || rows[1].Y != 4 {
		t.Fatalf("unexpected rows %+v", rows)
	}
}

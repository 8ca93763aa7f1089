package server

import (
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/sovietmap/tileserve.git/internal/httprange"
)

// A resource whose file vanished between Locate and open must fail
// with a clean 500 and no body, for both full and partial responses.
func Test_UnreadableResourceIs500(t *testing.T) {
	res := Resource{
		FilePath:    filepath.Join(t.TempDir(), "vanished.pmtiles"),
		Size:        1000,
		ContentType: defaultContentType,
	}

	rr := httptest.NewRecorder()
	status, written := respondFull(rr, res, true)
	if status != 500 || rr.Code != 500 {
		t.Errorf("full: got status %d (recorded %d), want 500", status, rr.Code)
	}
	if written != 0 || rr.Body.Len() != 0 {
		t.Errorf("full: got %d bytes written, want none", written)
	}

	rr = httptest.NewRecorder()
	status, written = respondPartial(rr, res, httprange.Resolved{Start: 100, End: 199}, true)
	if status != 500 || rr.Code != 500 {
		t.Errorf("partial: got status %d (recorded %d), want 500", status, rr.Code)
	}
	if written != 0 || rr.Body.Len() != 0 {
		t.Errorf("partial: got %d bytes written, want none", written)
	}
	if got := rr.Header().Get("Content-Range"); got != "" {
		t.Errorf("partial: Content-Range emitted on failure: %q", got)
	}
}

func Test_CopyNStopsAtWriteError(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "data.bin")
	if err := os.WriteFile(path, make([]byte, 4096), 0644); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	w := &failingWriter{failAfter: 1024}
	written, err := copyN(w, f, 4096)
	if err == nil {
		t.Fatal("expected a write error")
	}
	if written != 1024 {
		t.Errorf("written: got %d, want 1024", written)
	}
}

type failingWriter struct {
	failAfter int
	written   int
}

func (w *failingWriter) Write(p []byte) (int, error) {
	if w.written >= w.failAfter {
		return 0, io.ErrClosedPipe
	}
	n := len(p)
	if w.written+n > w.failAfter {
		n = w.failAfter - w.written
	}
	w.written += n
	if n < len(p) {
		return n, io.ErrClosedPipe
	}
	return n, nil
}

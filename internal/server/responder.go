package server

import (
	"io"
	"net/http"
	"os"
	"strconv"

	"github.com/sovietmap/tileserve.git/internal/httprange"

	log "github.com/sirupsen/logrus"
)

// respondFull streams the whole resource with a 200. sendBody is false
// for HEAD, which performs the same work but suppresses the body.
func respondFull(w http.ResponseWriter, res Resource, sendBody bool) (int, int64) {
	f, err := os.Open(res.FilePath)
	if err != nil {
		log.Errorf("Failed to open %s: %v", res.FilePath, err)
		w.WriteHeader(http.StatusInternalServerError)
		return http.StatusInternalServerError, 0
	}
	defer f.Close()

	w.Header().Set("Content-Type", res.ContentType)
	w.Header().Set("Content-Length", strconv.FormatInt(res.Size, 10))
	w.WriteHeader(http.StatusOK)
	if !sendBody {
		return http.StatusOK, 0
	}

	written, err := copyN(w, f, res.Size)
	if err != nil {
		// Headers are already out; the short body makes net/http tear
		// down the connection instead of rewriting the response.
		log.Errorf("Error streaming %s after %d bytes: %v", res.FilePath, written, err)
	}
	return http.StatusOK, written
}

// respondPartial serves exactly the bytes in [rng.Start, rng.End] with
// a 206, positioning into the file rather than scanning from the
// start.
func respondPartial(w http.ResponseWriter, res Resource, rng httprange.Resolved, sendBody bool) (int, int64) {
	f, err := os.Open(res.FilePath)
	if err != nil {
		log.Errorf("Failed to open %s: %v", res.FilePath, err)
		w.WriteHeader(http.StatusInternalServerError)
		return http.StatusInternalServerError, 0
	}
	defer f.Close()

	if _, err := f.Seek(rng.Start, io.SeekStart); err != nil {
		log.Errorf("Failed to seek %s to %d: %v", res.FilePath, rng.Start, err)
		w.WriteHeader(http.StatusInternalServerError)
		return http.StatusInternalServerError, 0
	}

	w.Header().Set("Content-Type", res.ContentType)
	w.Header().Set("Content-Length", strconv.FormatInt(rng.Length(), 10))
	w.Header().Set("Content-Range", rng.ContentRange(res.Size))
	w.WriteHeader(http.StatusPartialContent)
	if !sendBody {
		return http.StatusPartialContent, 0
	}

	written, err := copyN(w, f, rng.Length())
	if err != nil {
		log.Errorf("Error streaming %s range %d-%d after %d bytes: %v",
			res.FilePath, rng.Start, rng.End, written, err)
	}
	return http.StatusPartialContent, written
}

// respondUnsatisfiable emits the 416 shape: Content-Range advertising
// the resource size, empty body.
func respondUnsatisfiable(w http.ResponseWriter, res Resource) (int, int64) {
	w.Header().Set("Content-Range", httprange.ContentRangeUnsatisfiable(res.Size))
	w.Header().Set("Content-Length", "0")
	w.WriteHeader(http.StatusRequestedRangeNotSatisfiable)
	return http.StatusRequestedRangeNotSatisfiable, 0
}

func respondNotFound(w http.ResponseWriter) (int, int64) {
	w.Header().Set("Content-Length", "0")
	w.WriteHeader(http.StatusNotFound)
	return http.StatusNotFound, 0
}

func respondMethodNotAllowed(w http.ResponseWriter) (int, int64) {
	w.Header().Set("Allow", "GET, HEAD")
	w.Header().Set("Content-Length", "0")
	w.WriteHeader(http.StatusMethodNotAllowed)
	return http.StatusMethodNotAllowed, 0
}

// copyN copies exactly n bytes in 32KB chunks. It stops at the first
// write error so a disconnected client aborts only its own stream.
func copyN(w io.Writer, f *os.File, n int64) (int64, error) {
	buf := make([]byte, 32*1024) // 32KB buffer
	var total int64
	for total < n {
		chunk := int64(len(buf))
		if remaining := n - total; remaining < chunk {
			chunk = remaining
		}
		read, err := f.Read(buf[:chunk])
		if read > 0 {
			written, werr := w.Write(buf[:read])
			total += int64(written)
			if werr != nil {
				return total, werr
			}
		}
		if err != nil {
			if err == io.EOF && total == n {
				break
			}
			return total, err
		}
	}
	return total, nil
}

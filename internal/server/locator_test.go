package server

import (
	"os"
	"path/filepath"
	"testing"
)

func Test_Locate(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "tiles"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "tiles", "world.pmtiles"), make([]byte, 42), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(filepath.Dir(root), "outside.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	l := Locator{Root: root}

	type testCase struct {
		name    string
		path    string
		wantErr bool
		size    int64
		ct      string
	}

	cases := []testCase{
		{"plain file", "/tiles/world.pmtiles", false, 42, "application/octet-stream"},
		{"no leading slash", "tiles/world.pmtiles", false, 42, "application/octet-stream"},
		{"missing file", "/tiles/mars.pmtiles", true, 0, ""},
		{"directory without index", "/tiles", true, 0, ""},
		{"dot dot escape", "/../outside.txt", true, 0, ""},
		{"nested dot dot escape", "/tiles/../../outside.txt", true, 0, ""},
		{"backslash escape", "\\..\\outside.txt", true, 0, ""},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			res, err := l.Locate(c.path)
			if c.wantErr {
				if err != ErrNotFound {
					t.Fatalf("err: got %v, want ErrNotFound", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if res.Size != c.size {
				t.Errorf("size: got %d, want %d", res.Size, c.size)
			}
			if res.ContentType != c.ct {
				t.Errorf("content type: got %q, want %q", res.ContentType, c.ct)
			}
		})
	}
}

func Test_ContentTypes(t *testing.T) {
	cases := map[string]string{
		"map.html":      "text/html; charset=utf-8",
		"style.css":     "text/css; charset=utf-8",
		"areas.geojson": "application/geo+json",
		"tiles.pmtiles": "application/octet-stream",
		"TILES.PMTILES": "application/octet-stream",
		"tile.pbf":      "application/x-protobuf",
		"unknown.weird": "application/octet-stream",
		"no-extension":  "application/octet-stream",
	}
	for name, want := range cases {
		if got := contentTypeFor(name); got != want {
			t.Errorf("%s: got %q, want %q", name, got, want)
		}
	}
}

package labels

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestPlaceholderString(t *testing.T) {
	cases := []struct {
		id   int
		want string
	}{
		{0, "0 0.5 0.5 1.0 1.0"},
		{1, "1 0.5 0.5 1.0 1.0"},
	}
	for _, tc := range cases {
		if got := Placeholder(tc.id).String(); got != tc.want {
			t.Fatalf("Placeholder(%d) = %q, want %q", tc.id, got, tc.want)
		}
	}
}

func TestParse(t *testing.T) {
	l, err := Parse("1 0.25 0.75 0.5 0.125\n")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := Label{ClassID: 1, XCenter: 0.25, YCenter: 0.75, Width: 0.5, Height: 0.125}
	if l != want {
		t.Fatalf("got %+v want %+v", l, want)
	}
	for _, bad := range []string{"", "0 0.5 0.5 1.0", "x 0.5 0.5 1.0 1.0", "0 a 0.5 1.0 1.0"} {
		if _, err := Parse(bad); err == nil {
			t.Fatalf("expect error for %q", bad)
		}
	}
}

func TestWriteFileNoTrailingNewline(t *testing.T) {
	path := filepath.Join(t.TempDir(), "object_session1_img007.txt")
	if err := WriteFile(path, Placeholder(0)); err != nil {
		t.Fatalf("write: %v", err)
	}
	// 既存ファイルは上書き
	if err := WriteFile(path, Placeholder(0)); err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(b) != "0 0.5 0.5 1.0 1.0" {
		t.Fatalf("content %q", string(b))
	}
}

func TestReadFirstValues(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"c.txt":     "1 0.5 0.5 1.0 1.0",
		"a.txt":     "0 0.5 0.5 1.0 1.0",
		"b.txt":     "",
		"d.txt":     "  0 0.1 0.1 0.2 0.2\n1 0.5 0.5 1.0 1.0\n",
		"image.jpg": "not a label",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	values, err := ReadFirstValues(context.Background(), dir, 3)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	want := []FirstValue{
		{Path: filepath.Join(dir, "a.txt"), Value: "0", Present: true},
		{Path: filepath.Join(dir, "b.txt")},
		{Path: filepath.Join(dir, "c.txt"), Value: "1", Present: true},
		{Path: filepath.Join(dir, "d.txt"), Value: "0", Present: true},
	}
	if len(values) != len(want) {
		t.Fatalf("got %d values: %+v", len(values), values)
	}
	for i := range want {
		if values[i] != want[i] {
			t.Fatalf("values[%d] = %+v, want %+v", i, values[i], want[i])
		}
	}

	counts := CountClasses(values)
	if counts["0"] != 2 || counts["1"] != 1 || len(counts) != 2 {
		t.Fatalf("counts %v", counts)
	}
}

func TestReadFirstValuesCanceled(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.txt"), []byte("0"), 0644); err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := ReadFirstValues(ctx, dir, 1); err == nil {
		t.Fatalf("expect error on canceled context")
	}
}

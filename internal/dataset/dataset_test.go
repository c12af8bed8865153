package dataset

import (
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"testing"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func records(class Class, n int) []ImageRecord {
	out := make([]ImageRecord, n)
	for i := range out {
		out[i] = ImageRecord{
			Path:    fmt.Sprintf("/raw/%s/s/img%03d.jpg", class, i),
			Class:   class,
			SubPath: "s",
			Name:    fmt.Sprintf("img%03d", i),
			Ext:     ".jpg",
		}
	}
	return out
}

func TestClassID(t *testing.T) {
	if got := ClassObject.ID(); got != 0 {
		t.Fatalf("object id = %d", got)
	}
	if got := ClassNoObject.ID(); got != 1 {
		t.Fatalf("no_object id = %d", got)
	}
}

func TestRecordKey(t *testing.T) {
	rec := ImageRecord{Class: ClassObject, SubPath: "session1", Name: "img007", Ext: ".jpg"}
	if got := rec.LabelFileName(); got != "object_session1_img007.txt" {
		t.Fatalf("label name %q", got)
	}
	if got := rec.ImageFileName(); got != "object_session1_img007.jpg" {
		t.Fatalf("image name %q", got)
	}
}

func TestDiscover(t *testing.T) {
	raw := t.TempDir()
	touch(t, filepath.Join(raw, "object", "session1", "img007.jpg"))
	touch(t, filepath.Join(raw, "object", "session2", "deep", "a.b.JPG"))
	touch(t, filepath.Join(raw, "object", "session1", "notes.txt"))
	touch(t, filepath.Join(raw, "object", ".cache", "hidden.jpg"))

	got, err := Discover(raw, ClassObject, []string{".jpg"})
	if err != nil {
		t.Fatalf("discover: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expect 3 records, got %d: %+v", len(got), got)
	}
	// 隠しディレクトリ内の画像も対象
	if got[0].Key() != "object_.cache_hidden" {
		t.Fatalf("first key %q", got[0].Key())
	}
	if got[1].Key() != "object_session1_img007" {
		t.Fatalf("second key %q", got[1].Key())
	}
	// 深い階層では直近の親ディレクトリが sub_path、拡張子は最後のドットだけ除く
	if got[2].SubPath != "deep" || got[2].Name != "a.b" || got[2].Ext != ".jpg" || got[2].Class != ClassObject {
		t.Fatalf("unexpected nested record %+v", got[2])
	}
}

func TestDiscoverErrors(t *testing.T) {
	cases := []struct {
		name  string
		setup func(t *testing.T, raw string)
		kind  ErrorKind
	}{
		{"missing class dir", func(t *testing.T, raw string) {}, KindEmptySourceSet},
		{"empty class dir", func(t *testing.T, raw string) {
			touch(t, filepath.Join(raw, "object", "s", "readme.txt"))
		}, KindEmptySourceSet},
		{"image directly under class", func(t *testing.T, raw string) {
			touch(t, filepath.Join(raw, "object", "img.jpg"))
		}, KindMalformedPath},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			raw := t.TempDir()
			tc.setup(t, raw)
			_, err := Discover(raw, ClassObject, []string{".jpg"})
			if err == nil {
				t.Fatalf("expect error")
			}
			if k := KindOf(err); k != tc.kind {
				t.Fatalf("kind = %s, want %s (%v)", k, tc.kind, err)
			}
		})
	}
}

func TestBalance(t *testing.T) {
	obj := records(ClassObject, 100)
	noObj := records(ClassNoObject, 60)
	a, b := Balance(rand.New(rand.NewSource(42)), obj, noObj)
	if len(a) != 60 || len(b) != 60 {
		t.Fatalf("balanced sizes %d/%d", len(a), len(b))
	}
	seen := make(map[string]bool)
	for _, r := range a {
		if r.Class != ClassObject {
			t.Fatalf("class mixed: %+v", r)
		}
		if seen[r.Path] {
			t.Fatalf("duplicate sample %s", r.Path)
		}
		seen[r.Path] = true
	}
	// 元のスライスは変更しない
	if obj[0].Name != "img000" || obj[99].Name != "img099" {
		t.Fatalf("input mutated")
	}
}

func TestPartition(t *testing.T) {
	cases := []struct {
		total, train, val, test int
		trainRatio, valRatio    float64
	}{
		{120, 84, 18, 18, 0.7, 0.15},
		{160, 112, 24, 24, 0.7, 0.15},
		{10, 8, 2, 0, 0.8, 0.2},
		{3, 2, 0, 1, 0.7, 0.15},
		{0, 0, 0, 0, 0.7, 0.15},
		{10, 9, 1, 0, 0.9, 0.5},
	}
	for _, tc := range cases {
		recs := records(ClassObject, tc.total)
		a := Partition(recs, tc.trainRatio, tc.valRatio)
		if len(a.Train) != tc.train || len(a.Val) != tc.val || len(a.Test) != tc.test {
			t.Fatalf("total=%d: got %d/%d/%d want %d/%d/%d", tc.total,
				len(a.Train), len(a.Val), len(a.Test), tc.train, tc.val, tc.test)
		}
		if a.Total() != tc.total {
			t.Fatalf("total mismatch %d != %d", a.Total(), tc.total)
		}
		seen := make(map[string]bool)
		for _, s := range Splits() {
			for _, r := range a.Records(s) {
				if seen[r.Path] {
					t.Fatalf("%s assigned twice", r.Path)
				}
				seen[r.Path] = true
			}
		}
	}
}

func TestShuffleDeterministic(t *testing.T) {
	a := records(ClassObject, 50)
	b := records(ClassObject, 50)
	Shuffle(rand.New(rand.NewSource(42)), a)
	Shuffle(rand.New(rand.NewSource(42)), b)
	for i := range a {
		if a[i].Path != b[i].Path {
			t.Fatalf("order differs at %d", i)
		}
	}
}

func TestKindOf(t *testing.T) {
	_, statErr := os.Stat(filepath.Join(t.TempDir(), "missing"))
	cases := []struct {
		err  error
		kind ErrorKind
	}{
		{nil, KindUnknown},
		{fmt.Errorf("wrap: %w", ErrInvalidRatio), KindInvalidRatio},
		{fmt.Errorf("%w: %w", ErrIOFailure, statErr), KindIOFailure},
		{statErr, KindIOFailure},
		{fmt.Errorf("%w: x", ErrCorruptImage), KindCorruptImage},
		{errors.New("other"), KindUnknown},
	}
	for _, tc := range cases {
		if k := KindOf(tc.err); k != tc.kind {
			t.Fatalf("KindOf(%v) = %s, want %s", tc.err, k, tc.kind)
		}
	}
}

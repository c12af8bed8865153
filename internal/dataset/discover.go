package dataset

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"thz-dataset-splitter/internal/utils"
)

// Discover は <rawDir>/<class> 以下の画像を再帰的に収集し、ImageRecord に変換する。
// 返す順序はディレクトリ走査の辞書順で、同じ木に対しては常に同じになる。
func Discover(rawDir string, class Class, exts []string) ([]ImageRecord, error) {
	classDir := filepath.Join(rawDir, string(class))

	info, err := os.Stat(classDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: クラスディレクトリ %s が存在しません", ErrEmptySourceSet, classDir)
		}
		return nil, fmt.Errorf("%w: %w", ErrIOFailure, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s はディレクトリではありません", ErrEmptySourceSet, classDir)
	}

	files, err := utils.ListFiles(classDir, exts)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIOFailure, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: クラス '%s' に画像がありません (%s)", ErrEmptySourceSet, class, classDir)
	}

	records := make([]ImageRecord, 0, len(files))
	for _, path := range files {
		rec, err := newRecord(classDir, class, path)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// newRecord はクラスディレクトリからの相対パスを分解する。
// 画像はクラス直下ではなく、少なくとも1つのサブディレクトリの中にある必要がある。
func newRecord(classDir string, class Class, path string) (ImageRecord, error) {
	rel, err := filepath.Rel(classDir, path)
	if err != nil {
		return ImageRecord{}, fmt.Errorf("%w: %s: %v", ErrMalformedPath, path, err)
	}
	parts := strings.Split(filepath.ToSlash(rel), "/")
	if len(parts) < 2 {
		return ImageRecord{}, fmt.Errorf("%w: %s (<class>/<sub_path>/<name> の形式ではありません)", ErrMalformedPath, path)
	}

	base := parts[len(parts)-1]
	ext := filepath.Ext(base)
	name := strings.TrimSuffix(base, ext)
	subPath := parts[len(parts)-2]
	if name == "" || subPath == "" {
		return ImageRecord{}, fmt.Errorf("%w: %s", ErrMalformedPath, path)
	}

	return ImageRecord{
		Path:    path,
		Class:   class,
		SubPath: subPath,
		Name:    name,
		Ext:     strings.ToLower(ext),
	}, nil
}

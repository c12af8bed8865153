package utils

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// EnsureDir はディレクトリが無ければ作成する
func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}

// HasExtension は path の拡張子が exts のいずれかと一致するか (大文字小文字は区別しない)
func HasExtension(path string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range exts {
		e = strings.ToLower(e)
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		if ext == e {
			return true
		}
	}
	return false
}

// ListFiles は dir 以下で拡張子が exts に一致するファイルを再帰的に取得する。
// 隠しディレクトリの中も対象にする。結果は辞書順。
func ListFiles(dir string, exts []string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && HasExtension(path, exts) {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

// Package imagecheck はコピー前に画像がデコードできるかを確認する。
package imagecheck

import (
	"fmt"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"thz-dataset-splitter/internal/dataset"
)

// Verify は path の画像をデコードし、失敗したら ErrCorruptImage を返す
func Verify(path string) error {
	img, err := imaging.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", dataset.ErrCorruptImage, path, err)
	}
	if b := img.Bounds(); b.Dx() == 0 || b.Dy() == 0 {
		return fmt.Errorf("%w: %s: 画像サイズが0です", dataset.ErrCorruptImage, path)
	}
	return nil
}

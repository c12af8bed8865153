package processor

import (
	"context"
	"fmt"
	"io"
	"os"
)

// CopyJob は1ファイル分のコピー指示。
// LabelPath があれば、コピーの直前に Label をそこへ書き込み、2つを対で作る。
type CopyJob struct {
	Src       string
	Dst       string
	LabelPath string
	Label     string
}

// run はラベルを書いてから画像をコピーする。
// コピーに失敗したらラベルを消し、対になっていないラベルを残さない。
func (j CopyJob) run() error {
	if j.LabelPath != "" {
		if err := os.WriteFile(j.LabelPath, []byte(j.Label), 0644); err != nil {
			return fmt.Errorf("ラベルの書き込みに失敗 %s: %w", j.LabelPath, err)
		}
	}
	if err := copyFile(j.Src, j.Dst); err != nil {
		if j.LabelPath != "" {
			_ = os.Remove(j.LabelPath)
		}
		return fmt.Errorf("ファイルのコピーに失敗 %s -> %s: %w", j.Src, j.Dst, err)
	}
	return nil
}

// copyFile は単一ファイルをコピー (既存ファイルは上書き)。途中で失敗したら書きかけを消す
func copyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer srcFile.Close()

	dstFile, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		dstFile.Close()
		_ = os.Remove(dst)
		return err
	}
	if err := dstFile.Close(); err != nil {
		_ = os.Remove(dst)
		return err
	}
	return nil
}

// copyFiles はファイル群を順次コピー。最初の失敗で中断する
func copyFiles(ctx context.Context, jobs []CopyJob) error {
	for _, job := range jobs {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := job.run(); err != nil {
			return err
		}
	}
	return nil
}

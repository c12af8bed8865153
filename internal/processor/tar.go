package processor

import (
	"archive/tar"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
)

// CreateTarArchive は sourceDir 以下を tarPath に tar 形式でまとめる。
// エントリ名は sourceDir からの相対パス。
func CreateTarArchive(sourceDir, tarPath string) (err error) {
	log.Printf("tarファイルの作成を開始: %s", tarPath)

	tarFile, err := os.Create(tarPath)
	if err != nil {
		return fmt.Errorf("tarファイルの作成に失敗: %w", err)
	}
	defer func() {
		if cerr := tarFile.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()

	tarWriter := tar.NewWriter(tarFile)

	// ディレクトリ内のファイルを再帰的にtarに追加
	err = filepath.Walk(sourceDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		// ソースディレクトリ自体はスキップ
		if path == sourceDir {
			return nil
		}

		relPath, err := filepath.Rel(sourceDir, path)
		if err != nil {
			return err
		}

		header, err := tar.FileInfoHeader(info, "")
		if err != nil {
			return err
		}
		header.Name = filepath.ToSlash(relPath)
		if info.IsDir() {
			header.Name += "/"
		}

		if err := tarWriter.WriteHeader(header); err != nil {
			return err
		}

		// ディレクトリの場合はファイル内容を書き込まない
		if info.IsDir() {
			return nil
		}

		return appendFile(tarWriter, path)
	})
	if err != nil {
		return fmt.Errorf("ファイルのtar化に失敗: %w", err)
	}

	if err := tarWriter.Close(); err != nil {
		return fmt.Errorf("tarファイルの書き込みに失敗: %w", err)
	}

	log.Printf("tarファイルが作成されました: %s", tarPath)
	return nil
}

// appendFile はファイルの内容をtarライターにコピー
func appendFile(tw *tar.Writer, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = io.Copy(tw, file)
	return err
}

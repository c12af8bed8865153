package dataset

import (
	"errors"
	"io/fs"
)

// ErrorKind はデータセット準備で発生するエラーの分類
type ErrorKind string

const (
	KindUnknown        ErrorKind = "unknown"
	KindEmptySourceSet ErrorKind = "empty_source_set"
	KindMalformedPath  ErrorKind = "malformed_path"
	KindInvalidRatio   ErrorKind = "invalid_ratio"
	KindIOFailure      ErrorKind = "io_failure"
	KindCorruptImage   ErrorKind = "corrupt_image"
)

// 分類ごとの哨兵エラー。呼び出し側は errors.Is で判定する。
var (
	ErrEmptySourceSet = errors.New("ソース画像が見つかりません")
	ErrMalformedPath  = errors.New("画像パスの階層が不正です")
	ErrInvalidRatio   = errors.New("分割比率が不正です")
	ErrIOFailure      = errors.New("ファイル操作に失敗しました")
	ErrCorruptImage   = errors.New("画像をデコードできません")
)

// KindOf はエラーを分類に変換する。
// 哨兵エラーを優先し、残りの fs.PathError は I/O 失敗として扱う。
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return KindUnknown
	case errors.Is(err, ErrInvalidRatio):
		return KindInvalidRatio
	case errors.Is(err, ErrEmptySourceSet):
		return KindEmptySourceSet
	case errors.Is(err, ErrMalformedPath):
		return KindMalformedPath
	case errors.Is(err, ErrCorruptImage):
		return KindCorruptImage
	case errors.Is(err, ErrIOFailure):
		return KindIOFailure
	}
	var perr *fs.PathError
	if errors.As(err, &perr) {
		return KindIOFailure
	}
	return KindUnknown
}

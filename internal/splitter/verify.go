package splitter

import (
	"context"
	"fmt"
	"path/filepath"

	"thz-dataset-splitter/internal/dataset"
	"thz-dataset-splitter/internal/labels"
)

// LabelReport は分割ごとのクラスID別ラベル数
type LabelReport map[dataset.Split]map[string]int

// VerifyLabels は出力済みのラベルを読み戻し、分割ごとにクラスIDを集計する。
// 分割内のクラス比は保証されないため、偏りの確認に使う。
func VerifyLabels(ctx context.Context, destDir string, workers int) (LabelReport, error) {
	report := make(LabelReport, 3)
	for _, split := range dataset.Splits() {
		dir := filepath.Join(destDir, string(split), labelsDirName)
		values, err := labels.ReadFirstValues(ctx, dir, workers)
		if err != nil {
			return nil, fmt.Errorf("%w: %s のラベル読み込みに失敗: %w", dataset.ErrIOFailure, split, err)
		}
		report[split] = labels.CountClasses(values)
	}
	return report, nil
}

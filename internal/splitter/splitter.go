// Package splitter は生画像を train/val/test に分割し、YOLO 形式のレイアウトで出力する。
//
// 出力:
//
//	<dest>/{train,val,test}/images/{class}_{sub_path}_{name}.jpg
//	<dest>/{train,val,test}/labels/{class}_{sub_path}_{name}.txt
//
// 分割は固定シードの乱数源で決まり、同じ入力からは同じ割り当てが得られる。
package splitter

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"path/filepath"

	"github.com/google/uuid"

	"thz-dataset-splitter/internal/config"
	"thz-dataset-splitter/internal/dataset"
	"thz-dataset-splitter/internal/imagecheck"
	"thz-dataset-splitter/internal/labels"
	"thz-dataset-splitter/internal/processor"
	"thz-dataset-splitter/internal/utils"
)

const (
	imagesDirName = "images"
	labelsDirName = "labels"
)

// Splitter はデータセット分割を実行する
type Splitter struct {
	cfg *config.Config
}

// New は Splitter を作成
func New(cfg *config.Config) *Splitter {
	return &Splitter{cfg: cfg}
}

// Result は1回の実行結果
type Result struct {
	RunID         string
	Seed          int64
	FoundObject   int // 発見した object 画像数
	FoundNoObject int // 発見した no_object 画像数
	ObjectCount   int // 均等化後の object 画像数
	NoObjectCount int // 均等化後の no_object 画像数
	Assignment    dataset.Assignment
}

// Counts は分割ごとの画像数を返す
func (r *Result) Counts() map[dataset.Split]int {
	counts := make(map[dataset.Split]int, 3)
	for _, s := range dataset.Splits() {
		counts[s] = len(r.Assignment.Records(s))
	}
	return counts
}

// Prepare は画像の収集、均等化、シャッフル、分割、出力までを一度に行う。
// 途中で失敗した場合、書き込み済みのファイルはそのまま残る。
func (s *Splitter) Prepare(ctx context.Context) (*Result, error) {
	cfg := s.cfg
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	res := &Result{RunID: uuid.NewString(), Seed: cfg.Seed}
	log.Printf("データセット分割を開始します (run=%s)", res.RunID)

	objectImages, err := dataset.Discover(cfg.RawDir, dataset.ClassObject, cfg.Extensions)
	if err != nil {
		return nil, err
	}
	noObjectImages, err := dataset.Discover(cfg.RawDir, dataset.ClassNoObject, cfg.Extensions)
	if err != nil {
		return nil, err
	}
	res.FoundObject, res.FoundNoObject = len(objectImages), len(noObjectImages)
	log.Printf("object: %d件, no_object: %d件", res.FoundObject, res.FoundNoObject)

	r := rand.New(rand.NewSource(cfg.Seed))
	if cfg.Balance {
		objectImages, noObjectImages = dataset.Balance(r, objectImages, noObjectImages)
		log.Printf("均等化後のデータ数: %d件 (object: %d, no_object: %d)",
			len(objectImages)+len(noObjectImages), len(objectImages), len(noObjectImages))
	}
	res.ObjectCount, res.NoObjectCount = len(objectImages), len(noObjectImages)

	pool := make([]dataset.ImageRecord, 0, len(objectImages)+len(noObjectImages))
	pool = append(pool, objectImages...)
	pool = append(pool, noObjectImages...)
	dataset.Shuffle(r, pool)

	res.Assignment = dataset.Partition(pool, cfg.TrainRatio, cfg.ValRatio)

	// 書き込みを始める前に全画像を確認する
	if cfg.VerifyImages {
		if err := verifyImages(ctx, res.Assignment); err != nil {
			return nil, err
		}
	}

	if err := s.prepareDirs(); err != nil {
		return nil, err
	}
	for _, split := range dataset.Splits() {
		records := res.Assignment.Records(split)
		if err := s.writeSplit(ctx, split, records); err != nil {
			return nil, err
		}
		log.Printf("  %s: %d件", split, len(records))
	}

	if cfg.WriteManifest {
		if err := writeManifest(filepath.Join(cfg.DestDir, manifestFileName), cfg, res); err != nil {
			return nil, fmt.Errorf("%w: manifestの書き込みに失敗: %w", dataset.ErrIOFailure, err)
		}
	}

	log.Printf("データセット分割が完了しました！")
	return res, nil
}

// prepareDirs は {train,val,test}/{images,labels} を作成する
func (s *Splitter) prepareDirs() error {
	for _, split := range dataset.Splits() {
		for _, sub := range []string{imagesDirName, labelsDirName} {
			dir := filepath.Join(s.cfg.DestDir, string(split), sub)
			if err := utils.EnsureDir(dir); err != nil {
				return fmt.Errorf("%w: ディレクトリの作成に失敗: %w", dataset.ErrIOFailure, err)
			}
		}
	}
	return nil
}

// verifyImages は割り当て済みの全画像がデコードできるかを確認する
func verifyImages(ctx context.Context, a dataset.Assignment) error {
	for _, split := range dataset.Splits() {
		for _, rec := range a.Records(split) {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := imagecheck.Verify(rec.Path); err != nil {
				return err
			}
		}
	}
	return nil
}

// writeSplit は画像ごとにラベルの書き込みと画像のコピーを対で行う
func (s *Splitter) writeSplit(ctx context.Context, split dataset.Split, records []dataset.ImageRecord) error {
	imagesDir := filepath.Join(s.cfg.DestDir, string(split), imagesDirName)
	labelsDir := filepath.Join(s.cfg.DestDir, string(split), labelsDirName)

	seen := make(map[string]string, len(records))
	jobs := make([]processor.CopyJob, 0, len(records))
	for _, rec := range records {
		if prev, ok := seen[rec.Key()]; ok {
			log.Printf("警告: 出力名 %s が重複しています (%s を %s で上書き)", rec.Key(), prev, rec.Path)
		}
		seen[rec.Key()] = rec.Path

		jobs = append(jobs, processor.CopyJob{
			Src:       rec.Path,
			Dst:       filepath.Join(imagesDir, rec.ImageFileName()),
			LabelPath: filepath.Join(labelsDir, rec.LabelFileName()),
			Label:     labels.Placeholder(rec.Class.ID()).String(),
		})
	}

	if err := processor.CopyFilesParallel(ctx, jobs, s.cfg.MaxCopyWorkers); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		return fmt.Errorf("%w: %s の書き込みに失敗: %w", dataset.ErrIOFailure, split, err)
	}
	return nil
}

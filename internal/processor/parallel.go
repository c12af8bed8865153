package processor

import (
	"context"
	"errors"
	"log"
	"sync"

	"thz-dataset-splitter/internal/utils"
)

// CopyFilesParallel はファイル群を最大 maxWorkers 並列でコピーする。
// maxWorkers が1以下なら jobs の順に逐次コピーする。
func CopyFilesParallel(ctx context.Context, jobs []CopyJob, maxWorkers int) error {
	if len(jobs) == 0 {
		return nil
	}

	// 並列度が1の場合は順次処理
	if maxWorkers <= 1 {
		return copyFiles(ctx, jobs)
	}

	sem := utils.NewSemaphore(maxWorkers)
	var wg sync.WaitGroup
	errs := make(chan error, len(jobs))

	for _, job := range jobs {
		if err := sem.Acquire(ctx); err != nil {
			errs <- err
			break
		}
		wg.Add(1)
		go func(j CopyJob) {
			defer wg.Done()
			defer sem.Release()

			if err := j.run(); err != nil {
				errs <- err
			}
		}(job)
	}

	wg.Wait()
	close(errs)

	// エラーの確認
	var all []error
	for err := range errs {
		log.Printf("警告: %v", err)
		all = append(all, err)
	}
	return errors.Join(all...)
}

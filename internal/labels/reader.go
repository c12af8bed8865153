package labels

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
)

// FirstValue はラベルファイル1つ分の先頭トークン
type FirstValue struct {
	Path    string
	Value   string
	Present bool // 空ファイルなら false
}

// ReadFirstValues は dir 直下の *.txt を並列に読み、各ファイル先頭行の最初の値を返す。
// 結果の i 番目はファイル名順で i 番目のファイルに対応する。
func ReadFirstValues(ctx context.Context, dir string, workers int) ([]FirstValue, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.txt"))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	if workers < 1 {
		workers = 1
	}
	results := make([]FirstValue, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, p := range paths {
		i, p := i, p
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			v, err := readFirstValue(p)
			if err != nil {
				return err
			}
			results[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func readFirstValue(path string) (FirstValue, error) {
	f, err := os.Open(path)
	if err != nil {
		return FirstValue{}, err
	}
	defer f.Close()

	r := bufio.NewReader(f)
	line, err := r.ReadString('\n')
	if err != nil && line == "" {
		// 空ファイル
		if errors.Is(err, io.EOF) {
			return FirstValue{Path: path}, nil
		}
		return FirstValue{}, err
	}
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return FirstValue{Path: path}, nil
	}
	return FirstValue{Path: path, Value: fields[0], Present: true}, nil
}

// CountClasses は先頭値ごとのファイル数を数える。空ファイルは数えない
func CountClasses(values []FirstValue) map[string]int {
	counts := make(map[string]int)
	for _, v := range values {
		if v.Present {
			counts[v.Value]++
		}
	}
	return counts
}

package splitter

import (
	"encoding/json"
	"os"
	"time"

	"thz-dataset-splitter/internal/config"
	"thz-dataset-splitter/internal/dataset"
)

const manifestFileName = "manifest.json"

// Manifest は分割結果の記録。run_id と created_at 以外は同じ入力で一致する
type Manifest struct {
	RunID      string                    `json:"run_id"`
	CreatedAt  string                    `json:"created_at"`
	Seed       int64                     `json:"seed"`
	Balance    bool                      `json:"balance"`
	TrainRatio float64                   `json:"train_ratio"`
	ValRatio   float64                   `json:"val_ratio"`
	Pool       map[dataset.Class]int     `json:"pool"`
	Splits     map[dataset.Split][]Entry `json:"splits"`
}

// Entry は分割内の1画像
type Entry struct {
	Key    string        `json:"key"`
	Class  dataset.Class `json:"class"`
	Source string        `json:"source"`
}

func newManifest(cfg *config.Config, res *Result) *Manifest {
	m := &Manifest{
		RunID:      res.RunID,
		CreatedAt:  time.Now().UTC().Format(time.RFC3339),
		Seed:       res.Seed,
		Balance:    cfg.Balance,
		TrainRatio: cfg.TrainRatio,
		ValRatio:   cfg.ValRatio,
		Pool: map[dataset.Class]int{
			dataset.ClassObject:   res.ObjectCount,
			dataset.ClassNoObject: res.NoObjectCount,
		},
		Splits: make(map[dataset.Split][]Entry, 3),
	}
	for _, s := range dataset.Splits() {
		records := res.Assignment.Records(s)
		entries := make([]Entry, 0, len(records))
		for _, rec := range records {
			entries = append(entries, Entry{Key: rec.Key(), Class: rec.Class, Source: rec.Path})
		}
		m.Splits[s] = entries
	}
	return m
}

func writeManifest(path string, cfg *config.Config, res *Result) error {
	data, err := json.MarshalIndent(newManifest(cfg, res), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadManifest は manifest.json を読み込む
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

package config

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"thz-dataset-splitter/internal/dataset"
)

// ratioTolerance は比率の合計が1をわずかに超える浮動小数点誤差を許容する
const ratioTolerance = 1e-9

// Config は設定情報を保持
type Config struct {
	RawDir         string   `json:"raw_dir"`          // 生データのルート (object/ と no_object/ を含む)
	DestDir        string   `json:"dest_dir"`         // 分割結果の出力先
	TrainRatio     float64  `json:"train_ratio"`      // 教師データ比率
	ValRatio       float64  `json:"val_ratio"`        // 検証データ比率
	Balance        bool     `json:"balance"`          // クラス数の均等化
	Seed           int64    `json:"seed"`             // 乱数シード
	Extensions     []string `json:"extensions"`       // 対象とする画像の拡張子
	MaxCopyWorkers int      `json:"max_copy_workers"` // 最大コピーワーカー数
	VerifyImages   bool     `json:"verify_images"`    // コピー前に画像をデコードして確認
	VerifyLabels   bool     `json:"verify_labels"`    // 完了後にラベルを読み戻して集計
	TarOutput      bool     `json:"tar_output"`       // tar出力フラグ
	WriteManifest  bool     `json:"write_manifest"`   // manifest.json を出力
}

// NewDefaultConfig はデフォルト設定を返す
func NewDefaultConfig() *Config {
	return &Config{
		RawDir:         "data/raw/thz_images",
		DestDir:        "data/splits",
		TrainRatio:     0.7,
		ValRatio:       0.15,
		Balance:        true,
		Seed:           42,
		Extensions:     []string{".jpg"},
		MaxCopyWorkers: 1,
	}
}

// LoadFromFile は JSON ファイルから設定を読み込む。
// ファイルに無い項目はデフォルト値のまま。
func LoadFromFile(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("設定ファイルの読み込みに失敗: %w", err)
	}

	cfg := NewDefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("設定ファイルの解析に失敗: %w", err)
	}
	return cfg, nil
}

// Validate は設定の妥当性をチェック
func (c *Config) Validate() error {
	if c.RawDir == "" {
		return fmt.Errorf("ソースディレクトリが指定されていません")
	}
	if c.DestDir == "" {
		return fmt.Errorf("出力先ディレクトリが指定されていません")
	}
	if math.IsNaN(c.TrainRatio) || c.TrainRatio <= 0.0 || c.TrainRatio >= 1.0 {
		return fmt.Errorf("%w: 教師データ比率は0.0より大きく1.0より小さい値である必要があります (%v)", dataset.ErrInvalidRatio, c.TrainRatio)
	}
	if math.IsNaN(c.ValRatio) || c.ValRatio <= 0.0 || c.ValRatio >= 1.0 {
		return fmt.Errorf("%w: 検証データ比率は0.0より大きく1.0より小さい値である必要があります (%v)", dataset.ErrInvalidRatio, c.ValRatio)
	}
	if c.TrainRatio+c.ValRatio > 1.0+ratioTolerance {
		return fmt.Errorf("%w: 教師データ比率と検証データ比率の合計が1.0を超えています (%v + %v)", dataset.ErrInvalidRatio, c.TrainRatio, c.ValRatio)
	}
	if len(c.Extensions) == 0 {
		return fmt.Errorf("対象の拡張子が指定されていません")
	}
	if c.MaxCopyWorkers < 1 {
		return fmt.Errorf("最大コピーワーカー数は1以上である必要があります")
	}
	return nil
}

// TestRatio はテストデータ比率を返す (負にはならない)
func (c *Config) TestRatio() float64 {
	r := 1.0 - c.TrainRatio - c.ValRatio
	if r < 0 {
		return 0
	}
	return r
}

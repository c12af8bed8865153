package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"syscall"

	"thz-dataset-splitter/internal/config"
	"thz-dataset-splitter/internal/dataset"
	"thz-dataset-splitter/internal/processor"
	"thz-dataset-splitter/internal/splitter"
)

func main() {
	// コマンドライン引数の解析
	cfg, err := parseFlags(os.Args[1:])
	if err != nil {
		log.Fatalf("設定エラー: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		stop()
		log.Fatalf("データセット分割に失敗しました [%s]: %v", dataset.KindOf(err), err)
	}
	fmt.Println("Dataset prepared successfully.")
}

func run(ctx context.Context, cfg *config.Config) error {
	log.Printf("ソース: %s", cfg.RawDir)
	log.Printf("出力先: %s", cfg.DestDir)
	log.Printf("教師データ比率: %.2f%%", cfg.TrainRatio*100)
	log.Printf("検証データ比率: %.2f%%", cfg.ValRatio*100)
	log.Printf("テストデータ比率: %.2f%%", cfg.TestRatio()*100)
	log.Printf("均等化: %t, シード: %d", cfg.Balance, cfg.Seed)
	log.Printf("並列処理: %dワーカー", cfg.MaxCopyWorkers)

	res, err := splitter.New(cfg).Prepare(ctx)
	if err != nil {
		return err
	}
	counts := res.Counts()
	log.Printf("教師データ: %d件, 検証データ: %d件, テストデータ: %d件",
		counts[dataset.SplitTrain], counts[dataset.SplitVal], counts[dataset.SplitTest])

	if cfg.VerifyLabels {
		report, err := splitter.VerifyLabels(ctx, cfg.DestDir, cfg.MaxCopyWorkers)
		if err != nil {
			return err
		}
		for _, split := range dataset.Splits() {
			log.Printf("ラベル集計 %s: %s", split, formatCounts(report[split]))
		}
	}

	// tarファイル作成オプションが有効な場合
	if cfg.TarOutput {
		tarPath := filepath.Clean(cfg.DestDir) + ".tar"
		if err := processor.CreateTarArchive(cfg.DestDir, tarPath); err != nil {
			log.Printf("警告: tarファイルの作成に失敗: %v", err)
		}
	}
	return nil
}

func parseFlags(args []string) (*config.Config, error) {
	cfg := config.NewDefaultConfig()
	fs := flag.NewFlagSet("thz-dataset-splitter", flag.ContinueOnError)

	var configPath, exts string
	train := ratioValue{&cfg.TrainRatio}
	val := ratioValue{&cfg.ValRatio}

	fs.StringVar(&configPath, "config", "", "設定ファイル (JSON) のパス")
	fs.StringVar(&cfg.RawDir, "source", cfg.RawDir, "生データのディレクトリ (object/ と no_object/ を含む)")
	fs.StringVar(&cfg.DestDir, "dest", cfg.DestDir, "出力先ディレクトリのパス")
	fs.Var(&train, "train", "教師データの比率 (0.0-1.0 または 70%)")
	fs.Var(&val, "val", "検証データの比率 (0.0-1.0 または 15%)")
	fs.BoolVar(&cfg.Balance, "balance", cfg.Balance, "クラスごとの画像数を少ない方に揃える")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "乱数シード")
	fs.StringVar(&exts, "ext", strings.Join(cfg.Extensions, ","), "対象の拡張子 (カンマ区切り)")
	fs.IntVar(&cfg.MaxCopyWorkers, "copy-workers", cfg.MaxCopyWorkers, "ファイルコピーの並列数")
	fs.BoolVar(&cfg.VerifyImages, "verify-images", cfg.VerifyImages, "コピー前に画像をデコードして確認")
	fs.BoolVar(&cfg.VerifyLabels, "verify-labels", cfg.VerifyLabels, "完了後にラベルを読み戻して集計")
	fs.BoolVar(&cfg.TarOutput, "tar", cfg.TarOutput, "出力をtarファイルにまとめる")
	fs.BoolVar(&cfg.WriteManifest, "manifest", cfg.WriteManifest, "manifest.json を出力")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	cfg.Extensions = splitList(exts)

	// 設定ファイルがあればそれを基準にし、明示されたフラグだけ上書きする
	if configPath != "" {
		fileCfg, err := config.LoadFromFile(configPath)
		if err != nil {
			return nil, err
		}
		fs.Visit(func(f *flag.Flag) { overrideFromFlag(fileCfg, cfg, f.Name) })
		cfg = fileCfg
	}

	// 位置引数もサポート
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	rest := fs.Args()
	if len(rest) >= 1 && !set["source"] {
		cfg.RawDir = rest[0]
	}
	if len(rest) >= 2 && !set["dest"] {
		cfg.DestDir = rest[1]
	}
	if len(rest) >= 3 && !set["train"] {
		ratio, err := parseRatio(rest[2])
		if err != nil {
			return nil, fmt.Errorf("教師データ比率を解析できません %q: %w", rest[2], err)
		}
		cfg.TrainRatio = ratio
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// overrideFromFlag は name のフラグで指定された値を dst に写す
func overrideFromFlag(dst, src *config.Config, name string) {
	switch name {
	case "source":
		dst.RawDir = src.RawDir
	case "dest":
		dst.DestDir = src.DestDir
	case "train":
		dst.TrainRatio = src.TrainRatio
	case "val":
		dst.ValRatio = src.ValRatio
	case "balance":
		dst.Balance = src.Balance
	case "seed":
		dst.Seed = src.Seed
	case "ext":
		dst.Extensions = src.Extensions
	case "copy-workers":
		dst.MaxCopyWorkers = src.MaxCopyWorkers
	case "verify-images":
		dst.VerifyImages = src.VerifyImages
	case "verify-labels":
		dst.VerifyLabels = src.VerifyLabels
	case "tar":
		dst.TarOutput = src.TarOutput
	case "manifest":
		dst.WriteManifest = src.WriteManifest
	}
}

// ratioValue は "0.7" と "70%" の両方を受け付けるフラグ値
type ratioValue struct {
	p *float64
}

func (r *ratioValue) String() string {
	if r.p == nil {
		return ""
	}
	return strconv.FormatFloat(*r.p, 'f', -1, 64)
}

func (r *ratioValue) Set(s string) error {
	v, err := parseRatio(s)
	if err != nil {
		return err
	}
	*r.p = v
	return nil
}

func parseRatio(ratioStr string) (float64, error) {
	s := strings.TrimSpace(ratioStr)

	// パーセンテージ表記もサポート
	percent := strings.HasSuffix(s, "%")
	s = strings.TrimSuffix(s, "%")

	ratio, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if percent {
		ratio = ratio / 100.0
	}
	return ratio, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// formatCounts はクラスIDの昇順で "0=12 1=10" の形にする
func formatCounts(counts map[string]int) string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%d", k, counts[k]))
	}
	return strings.Join(parts, " ")
}

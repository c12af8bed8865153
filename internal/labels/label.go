// Package labels は YOLO 形式のラベルファイルを扱う。
//
// 1行の書式: <class_id> <x_center> <y_center> <width> <height>
package labels

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Label は1物体分の YOLO アノテーション
type Label struct {
	ClassID int
	XCenter float64
	YCenter float64
	Width   float64
	Height  float64
}

// Placeholder は画像全体を覆う仮の枠 (0.5 0.5 1.0 1.0) を返す。
// 分類データを検出形式で学習させるための代用アノテーション。
func Placeholder(classID int) Label {
	return Label{ClassID: classID, XCenter: 0.5, YCenter: 0.5, Width: 1.0, Height: 1.0}
}

// String は末尾改行なしの1行を返す
func (l Label) String() string {
	return fmt.Sprintf("%d %s %s %s %s", l.ClassID,
		formatCoord(l.XCenter), formatCoord(l.YCenter), formatCoord(l.Width), formatCoord(l.Height))
}

// formatCoord は 1 を "1.0" のように常に小数点付きで書く
func formatCoord(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}

// Parse は1行のラベルを読み取る
func Parse(line string) (Label, error) {
	fields := strings.Fields(line)
	if len(fields) != 5 {
		return Label{}, fmt.Errorf("ラベルのフィールド数が不正です: %d", len(fields))
	}
	id, err := strconv.Atoi(fields[0])
	if err != nil {
		return Label{}, fmt.Errorf("クラスIDが不正です %q: %w", fields[0], err)
	}
	var coords [4]float64
	for i, f := range fields[1:] {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return Label{}, fmt.Errorf("座標が不正です %q: %w", f, err)
		}
		coords[i] = v
	}
	return Label{ClassID: id, XCenter: coords[0], YCenter: coords[1], Width: coords[2], Height: coords[3]}, nil
}

// WriteFile はラベルを path に書き込む (既存ファイルは上書き)
func WriteFile(path string, l Label) error {
	return os.WriteFile(path, []byte(l.String()), 0644)
}

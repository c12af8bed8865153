package dataset

import "fmt"

// Class は二値分類のクラス
type Class string

const (
	ClassObject   Class = "object"
	ClassNoObject Class = "no_object"
)

// ID はラベルファイルに書くクラスIDを返す (object は 0、それ以外は 1)
func (c Class) ID() int {
	if c == ClassObject {
		return 0
	}
	return 1
}

// ImageRecord は発見時に一度だけ組み立てる画像の情報
type ImageRecord struct {
	Path    string // 元画像のパス
	Class   Class  // クラス
	SubPath string // 画像の親ディレクトリ名
	Name    string // 拡張子を除いたファイル名
	Ext     string // 元の拡張子 (ドット付き)
}

// Key は出力ファイル名の共通部分 {class}_{sub_path}_{name} を返す
func (r ImageRecord) Key() string {
	return fmt.Sprintf("%s_%s_%s", r.Class, r.SubPath, r.Name)
}

// ImageFileName は images 配下のファイル名を返す
func (r ImageRecord) ImageFileName() string {
	return r.Key() + r.Ext
}

// LabelFileName は labels 配下のファイル名を返す
func (r ImageRecord) LabelFileName() string {
	return r.Key() + ".txt"
}

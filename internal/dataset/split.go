package dataset

import "math/rand"

// Split はデータセットの分割種別
type Split string

const (
	SplitTrain Split = "train"
	SplitVal   Split = "val"
	SplitTest  Split = "test"
)

// Splits は分割を出力順に返す
func Splits() []Split {
	return []Split{SplitTrain, SplitVal, SplitTest}
}

// Assignment は各分割に割り当てられた画像
type Assignment struct {
	Train []ImageRecord
	Val   []ImageRecord
	Test  []ImageRecord
}

// Records は指定した分割の画像を返す
func (a Assignment) Records(s Split) []ImageRecord {
	switch s {
	case SplitTrain:
		return a.Train
	case SplitVal:
		return a.Val
	case SplitTest:
		return a.Test
	}
	return nil
}

// Total は全分割の画像数
func (a Assignment) Total() int {
	return len(a.Train) + len(a.Val) + len(a.Test)
}

// Balance は少ない方のクラス数に合わせて、両クラスから重複なしでサンプリングする。
// 多い方のクラスの余りは捨てられる。
func Balance(r *rand.Rand, a, b []ImageRecord) ([]ImageRecord, []ImageRecord) {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	return sample(r, a, n), sample(r, b, n)
}

// sample は records から k 件を重複なしで選ぶ。元のスライスは変更しない。
func sample(r *rand.Rand, records []ImageRecord, k int) []ImageRecord {
	pool := make([]ImageRecord, len(records))
	copy(pool, records)
	for i := 0; i < k; i++ {
		j := i + r.Intn(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:k]
}

// Shuffle は records をその場でシャッフルする
func Shuffle(r *rand.Rand, records []ImageRecord) {
	r.Shuffle(len(records), func(i, j int) {
		records[i], records[j] = records[j], records[i]
	})
}

// Partition は位置で分割する。train と val は切り捨てで件数を決め、
// test は残りすべてを受け取る。
func Partition(records []ImageRecord, trainRatio, valRatio float64) Assignment {
	total := len(records)
	numTrain := clamp(int(float64(total)*trainRatio), 0, total)
	numVal := clamp(int(float64(total)*valRatio), 0, total-numTrain)

	return Assignment{
		Train: records[:numTrain],
		Val:   records[numTrain : numTrain+numVal],
		Test:  records[numTrain+numVal:],
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

package batch

// Tensor is a two dimensional array, rows by columns. *mat.Dense satisfies
// it.
type Tensor interface {
	Dims() (r, c int)
}

// LongTensor is a dense row major int64 matrix.
type LongTensor struct {
	rows, cols int
	data       []int64
}

var _ Tensor = (*LongTensor)(nil)

// NewLongTensor returns a rows × cols tensor filled with fill.
func NewLongTensor(rows, cols int, fill int64) *LongTensor {
	data := make([]int64, rows*cols)
	if fill != 0 {
		for i := range data {
			data[i] = fill
		}
	}
	return &LongTensor{rows: rows, cols: cols, data: data}
}

func (t *LongTensor) Dims() (int, int) {
	return t.rows, t.cols
}

func (t *LongTensor) At(i, j int) int64 {
	return t.data[i*t.cols+j]
}

func (t *LongTensor) Set(i, j int, v int64) {
	t.data[i*t.cols+j] = v
}

// Row returns row i. The slice aliases the tensor.
func (t *LongTensor) Row(i int) []int64 {
	return t.data[i*t.cols : (i+1)*t.cols]
}

// BoolTensor is a dense row major bool matrix.
type BoolTensor struct {
	rows, cols int
	data       []bool
}

var _ Tensor = (*BoolTensor)(nil)

func NewBoolTensor(rows, cols int) *BoolTensor {
	return &BoolTensor{rows: rows, cols: cols, data: make([]bool, rows*cols)}
}

func (t *BoolTensor) Dims() (int, int) {
	return t.rows, t.cols
}

func (t *BoolTensor) At(i, j int) bool {
	return t.data[i*t.cols+j]
}

func (t *BoolTensor) Set(i, j int, v bool) {
	t.data[i*t.cols+j] = v
}

// padded copies variable length sequences into a len(seqs) × maxLen tensor,
// filling the tail of shorter rows with pad.
func padded(seqs [][]int, pad int64) *LongTensor {
	maxLen := 0
	for _, s := range seqs {
		maxLen = max(maxLen, len(s))
	}

	t := NewLongTensor(len(seqs), maxLen, pad)
	for i, s := range seqs {
		row := t.Row(i)
		for j, v := range s {
			row[j] = int64(v)
		}
	}
	return t
}

// equalMask marks the entries of t equal to v.
func equalMask(t *LongTensor, v int64) *BoolTensor {
	m := NewBoolTensor(t.rows, t.cols)
	for i, x := range t.data {
		m.data[i] = x == v
	}
	return m
}

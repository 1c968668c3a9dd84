package domain

import (
	"encoding/binary"
	"encoding/hex"

	"github.com/samber/lo"
	"golang.org/x/crypto/blake2b"
)

// Row is a cleaned message with one binary label per category.
// Labels follow the order of Dataset.Categories.
type Row struct {
	Message
	Labels []int
}

// Dataset is the cleaned table persisted by the ETL stage and read back for training.
type Dataset struct {
	Categories []string
	Rows       []Row
}

func (d Dataset) Len() int {
	return len(d.Rows)
}

// Texts returns the message texts in row order.
func (d Dataset) Texts() []string {
	return lo.Map(d.Rows, func(r Row, _ int) string { return r.Text })
}

// Labels returns the label matrix, one slice per row.
func (d Dataset) Labels() [][]int {
	return lo.Map(d.Rows, func(r Row, _ int) []int { return r.Labels })
}

// Column returns the values of a single category.
func (d Dataset) Column(name string) ([]int, bool) {
	idx := lo.IndexOf(d.Categories, name)
	if idx < 0 {
		return nil, false
	}
	return lo.Map(d.Rows, func(r Row, _ int) int { return r.Labels[idx] }), true
}

// Subset returns a dataset made of the rows at the given indexes.
func (d Dataset) Subset(indexes []int) Dataset {
	return Dataset{
		Categories: d.Categories,
		Rows:       lo.Map(indexes, func(i int, _ int) Row { return d.Rows[i] }),
	}
}

// Fingerprint hashes ids, texts and labels so a model can be traced back to its training data.
func (d Dataset) Fingerprint() string {
	h, _ := blake2b.New256(nil)
	var buf [8]byte
	for _, c := range d.Categories {
		h.Write([]byte(c))
		h.Write([]byte{0})
	}
	for _, r := range d.Rows {
		binary.BigEndian.PutUint64(buf[:], uint64(r.ID))
		h.Write(buf[:])
		h.Write([]byte(r.Text))
		h.Write([]byte{0})
		for _, l := range r.Labels {
			h.Write([]byte{byte(l)})
		}
	}
	return hex.EncodeToString(h.Sum(nil))
}

package ml

import (
	"fmt"
	"math"
	"math/rand"
)

// Fold holds the row indexes of one cross-validation round.
type Fold struct {
	Train []int
	Test  []int
}

// TrainTestSplit shuffles the n row indexes with seed and keeps
// ceil(testSize*n) of them for testing.
func TrainTestSplit(n int, testSize float64, seed int64) (train, test []int, err error) {
	if testSize <= 0 || testSize >= 1 {
		return nil, nil, fmt.Errorf("test size %.3f must be in (0,1)", testSize)
	}
	nTest := int(math.Ceil(testSize * float64(n)))
	if nTest < 1 || n-nTest < 1 {
		return nil, nil, fmt.Errorf("cannot split %d rows with test size %.3f", n, testSize)
	}
	perm := rand.New(rand.NewSource(seed)).Perm(n)
	return perm[nTest:], perm[:nTest], nil
}

// KFold splits n rows into k contiguous folds without shuffling.
// The first n%k folds hold one extra row.
func KFold(n, k int) ([]Fold, error) {
	if k < 2 {
		return nil, fmt.Errorf("at least 2 folds are required, got %d", k)
	}
	if n < k {
		return nil, fmt.Errorf("cannot make %d folds out of %d rows", k, n)
	}
	folds := make([]Fold, 0, k)
	start := 0
	for f := 0; f < k; f++ {
		size := n / k
		if f < n%k {
			size++
		}
		fold := Fold{}
		for i := 0; i < n; i++ {
			if i >= start && i < start+size {
				fold.Test = append(fold.Test, i)
			} else {
				fold.Train = append(fold.Train, i)
			}
		}
		folds = append(folds, fold)
		start += size
	}
	return folds, nil
}

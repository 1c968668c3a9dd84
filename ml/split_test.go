package ml

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTrainTestSplit(t *testing.T) {
	req := require.New(t)

	train, test, err := TrainTestSplit(10, 0.2, 42)
	req.NoError(err)
	req.Len(test, 2)
	req.Len(train, 8)

	all := append(append([]int{}, train...), test...)
	sort.Ints(all)
	req.Equal([]int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, all)

	train2, test2, err := TrainTestSplit(10, 0.2, 42)
	req.NoError(err)
	req.Equal(train, train2)
	req.Equal(test, test2)
}

func TestTrainTestSplit_RoundsTestSizeUp(t *testing.T) {
	_, test, err := TrainTestSplit(10, 0.25, 1)
	require.NoError(t, err)
	require.Len(t, test, 3)
}

func TestTrainTestSplit_Errors(t *testing.T) {
	req := require.New(t)
	for _, size := range []float64{0, 1, -0.5, 1.5} {
		_, _, err := TrainTestSplit(10, size, 1)
		req.Error(err, "test size %v", size)
	}
	_, _, err := TrainTestSplit(1, 0.2, 1)
	req.Error(err)
	_, _, err = TrainTestSplit(0, 0.2, 1)
	req.Error(err)
}

func TestKFold(t *testing.T) {
	req := require.New(t)

	folds, err := KFold(10, 3)
	req.NoError(err)
	req.Len(folds, 3)
	req.Equal([]int{0, 1, 2, 3}, folds[0].Test)
	req.Equal([]int{4, 5, 6}, folds[1].Test)
	req.Equal([]int{7, 8, 9}, folds[2].Test)
	req.Equal([]int{0, 1, 2, 3, 7, 8, 9}, folds[1].Train)

	for _, f := range folds {
		req.Len(f.Train, 10-len(f.Test))
	}
}

func TestKFold_Errors(t *testing.T) {
	_, err := KFold(10, 1)
	require.Error(t, err)
	_, err = KFold(2, 3)
	require.Error(t, err)
}

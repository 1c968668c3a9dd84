package ml

import (
	"math"
	"math/rand"
	"sort"

	"github.com/samber/lo"
)

// TreeParams controls the growth of a single tree.
type TreeParams struct {
	MinSamplesSplit int
	MaxDepth        int // 0 grows until leaves are pure
	MaxFeatures     int // non-constant features evaluated per split
}

// Node is a tree node stored by index. Leaves have Left == -1 and carry
// the class distribution of the samples that reached them.
type Node struct {
	Feature   int
	Threshold float64
	Left      int
	Right     int
	Proba     []float64
}

func (n Node) IsLeaf() bool {
	return n.Left < 0
}

// DecisionTree is a CART classifier grown with the Gini criterion.
type DecisionTree struct {
	Nodes   []Node
	Classes int
}

func (t *DecisionTree) PredictProba(x SparseVector) []float64 {
	i := 0
	for {
		node := t.Nodes[i]
		if node.IsLeaf() {
			return node.Proba
		}
		if x.At(node.Feature) <= node.Threshold {
			i = node.Left
		} else {
			i = node.Right
		}
	}
}

func (t *DecisionTree) Depth() int {
	var walk func(i int) int
	walk = func(i int) int {
		n := t.Nodes[i]
		if n.IsLeaf() {
			return 0
		}
		return 1 + max(walk(n.Left), walk(n.Right))
	}
	return walk(0)
}

type split struct {
	feature   int
	threshold float64
	impurity  float64
}

type valueLabel struct {
	value float64
	label int
}

type treeBuilder struct {
	X       []SparseVector
	y       []int
	classes int
	params  TreeParams
	rng     *rand.Rand
	tree    *DecisionTree
}

// growTree fits a tree on the given sample indexes. Repeated indexes act as weights,
// which is how bootstrap samples are passed in.
func growTree(X []SparseVector, y []int, samples []int, classes int, params TreeParams, rng *rand.Rand) *DecisionTree {
	b := &treeBuilder{
		X:       X,
		y:       y,
		classes: classes,
		params:  params,
		rng:     rng,
		tree:    &DecisionTree{Classes: classes},
	}
	b.build(samples, 0)
	return b.tree
}

func (b *treeBuilder) build(samples []int, depth int) int {
	counts := b.classCounts(samples)
	idx := len(b.tree.Nodes)
	b.tree.Nodes = append(b.tree.Nodes, Node{Left: -1, Right: -1, Proba: proportions(counts, len(samples))})

	// MinSamplesSplit counts distinct rows, bootstrap repeats only weigh in the impurity.
	if len(lo.Uniq(samples)) < b.params.MinSamplesSplit || isPure(counts) ||
		(b.params.MaxDepth > 0 && depth >= b.params.MaxDepth) {
		return idx
	}
	best, ok := b.bestSplit(samples)
	if !ok {
		return idx
	}

	left := make([]int, 0, len(samples))
	right := make([]int, 0, len(samples))
	for _, s := range samples {
		if b.X[s].At(best.feature) <= best.threshold {
			left = append(left, s)
		} else {
			right = append(right, s)
		}
	}

	l := b.build(left, depth+1)
	r := b.build(right, depth+1)
	b.tree.Nodes[idx] = Node{Feature: best.feature, Threshold: best.threshold, Left: l, Right: r}
	return idx
}

// bestSplit draws features in random order until MaxFeatures non-constant
// ones have been evaluated. Features absent from every sample are constant
// at this node and never drawn.
func (b *treeBuilder) bestSplit(samples []int) (split, bool) {
	active := make(map[int]struct{})
	for _, s := range samples {
		for _, f := range b.X[s].Indices {
			active[f] = struct{}{}
		}
	}
	candidates := lo.Keys(active)
	sort.Ints(candidates)
	b.rng.Shuffle(len(candidates), func(i, j int) { candidates[i], candidates[j] = candidates[j], candidates[i] })

	best := split{impurity: math.Inf(1)}
	visited := 0
	for _, f := range candidates {
		if visited >= b.params.MaxFeatures {
			break
		}
		s, ok := b.evaluate(f, samples)
		if !ok {
			continue
		}
		visited++
		if s.impurity < best.impurity {
			best = s
		}
	}
	return best, visited > 0
}

func (b *treeBuilder) evaluate(feature int, samples []int) (split, bool) {
	pairs := make([]valueLabel, len(samples))
	for i, s := range samples {
		pairs[i] = valueLabel{value: b.X[s].At(feature), label: b.y[s]}
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].value < pairs[j].value })
	if pairs[0].value == pairs[len(pairs)-1].value {
		return split{}, false
	}

	left := make([]int, b.classes)
	right := b.classCounts(samples)
	n := float64(len(pairs))
	best := split{feature: feature, impurity: math.Inf(1)}
	for i := 0; i < len(pairs)-1; i++ {
		left[pairs[i].label]++
		right[pairs[i].label]--
		if pairs[i].value == pairs[i+1].value {
			continue
		}
		nl := float64(i + 1)
		nr := n - nl
		impurity := (nl*gini(left, nl) + nr*gini(right, nr)) / n
		if impurity < best.impurity {
			best.impurity = impurity
			best.threshold = (pairs[i].value + pairs[i+1].value) / 2
		}
	}
	return best, true
}

func (b *treeBuilder) classCounts(samples []int) []int {
	counts := make([]int, b.classes)
	for _, s := range samples {
		counts[b.y[s]]++
	}
	return counts
}

func gini(counts []int, total float64) float64 {
	if total == 0 {
		return 0
	}
	sum := 0.0
	for _, c := range counts {
		p := float64(c) / total
		sum += p * p
	}
	return 1 - sum
}

func isPure(counts []int) bool {
	return lo.CountBy(counts, func(c int) bool { return c > 0 }) <= 1
}

func proportions(counts []int, total int) []float64 {
	return lo.Map(counts, func(c int, _ int) float64 {
		if total == 0 {
			return 0
		}
		return float64(c) / float64(total)
	})
}

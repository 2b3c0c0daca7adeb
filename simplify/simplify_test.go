package simplify

import (
	"testing"

	"github.com/cheekybits/is"
)

func TestSingleCoordNOOP(t *testing.T) {
	is := is.New(t)
	segments := [][]int64{{1}}
	is.Equal(Reduce(segments), [][]int64{{1}})
}

func TestMergesLines(t *testing.T) {
	is := is.New(t)
	input := [][]int64{
		{1, 2},
		{2, 3},
	}
	is.Equal(Reduce(input), [][]int64{{1, 2, 3}})
}

func TestPreserveBodies(t *testing.T) {
	is := is.New(t)
	input := [][]int64{
		{1, 2, 3},
		{3, 4, 5},
	}
	is.Equal(Reduce(input), [][]int64{{1, 2, 3, 4, 5}})
}

func TestMergeOrder(t *testing.T) {
	is := is.New(t)
	input := [][]int64{
		{2, 3},
		{3, 4},
		{1, 2},
	}
	is.Equal(Reduce(input), [][]int64{{1, 2, 3, 4}})
}

func TestMergeCircular(t *testing.T) {
	is := is.New(t)
	input := [][]int64{
		{1, 2},
		{2, 3},
		{3, 1},
	}
	is.Equal(Reduce(input), [][]int64{{1, 2, 3, 1}})
}

func TestInvertedBodies(t *testing.T) {
	is := is.New(t)
	input := [][]int64{
		{1, 2, 3},
		{5, 4, 3},
		{5, 6, 7},
	}
	is.Equal(Reduce(input), [][]int64{{1, 2, 3, 4, 5, 6, 7}})
}

func TestSeparate(t *testing.T) {
	is := is.New(t)
	input := [][]int64{
		{1, 2},
		{2, 3},
		{4, 5},
		{5, 6},
	}
	is.Equal(Reduce(input), [][]int64{{1, 2, 3}, {4, 5, 6}})
}

func TestStart(t *testing.T) {
	is := is.New(t)
	input := [][]int64{
		{1, 2, 3},
		{1, 4, 5},
	}
	is.Equal(Reduce(input), [][]int64{{5, 4, 1, 2, 3}})
}

func TestClosedRingsNotExtended(t *testing.T) {
	is := is.New(t)
	input := [][]int64{
		{1, 2, 3, 1},
		{1, 4, 5},
		{5, 6, 1},
	}
	is.Equal(Reduce(input), [][]int64{{1, 2, 3, 1}, {1, 4, 5, 6, 1}})
}

func TestRings(t *testing.T) {
	is := is.New(t)

	type node struct{ x, y int }
	input := [][]node{
		{{0, 0}, {1, 0}},
		{{1, 1}, {1, 0}},
		{{1, 1}, {0, 0}},
		{{5, 5}, {6, 6}},
	}
	rings, open := Rings(input)
	is.Equal(rings, [][]node{{{0, 0}, {1, 0}, {1, 1}, {0, 0}}})
	is.Equal(open, [][]node{{{5, 5}, {6, 6}}})
}

func BenchmarkSimplify(b *testing.B) {
	for n := 0; n < b.N; n++ {
		input := [][]int64{
			{1, 2, 3},
			{3, 4, 5},
		}
		Reduce(input)
	}
}

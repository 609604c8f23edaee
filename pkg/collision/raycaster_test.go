package collision

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/voxelcast/voxelcast/pkg/geometry"
)

func collectBlocks(start, end geometry.Vector3f) []geometry.Vector3f {
	var visited []geometry.Vector3f
	TraverseBlocks(start, end, func(block geometry.Vector3f) bool {
		visited = append(visited, block)
		return false
	})
	return visited
}

func TestTraverseBlocks_StraightLine(t *testing.T) {
	visited := collectBlocks(geometry.NewVector3f(0.5, 0.5, 0.5), geometry.NewVector3f(3.5, 0.5, 0.5))

	require.Equal(t, []geometry.Vector3f{
		geometry.NewVector3f(0, 0, 0),
		geometry.NewVector3f(1, 0, 0),
		geometry.NewVector3f(2, 0, 0),
		geometry.NewVector3f(3, 0, 0),
	}, visited)
}

func TestTraverseBlocks_SingleAxisY(t *testing.T) {
	visited := collectBlocks(geometry.NewVector3f(0.5, 0.5, 0.5), geometry.NewVector3f(0.5, 2.5, 0.5))

	require.Equal(t, []geometry.Vector3f{
		geometry.NewVector3f(0, 0, 0),
		geometry.NewVector3f(0, 1, 0),
		geometry.NewVector3f(0, 2, 0),
	}, visited)
}

func TestTraverseBlocks_DegenerateSegment(t *testing.T) {
	calls := 0
	p := geometry.NewVector3f(1.5, -2.5, 0.25)
	TraverseBlocks(p, p, func(geometry.Vector3f) bool {
		calls++
		return false
	})

	require.Zero(t, calls)
}

func TestTraverseBlocks_StopsOnFirstBlock(t *testing.T) {
	calls := 0
	TraverseBlocks(geometry.NewVector3f(0.5, 0.5, 0.5), geometry.NewVector3f(10.5, 0.5, 0.5), func(geometry.Vector3f) bool {
		calls++
		return true
	})

	require.Equal(t, 1, calls)
}

func TestTraverseBlocks_StopsMidway(t *testing.T) {
	target := geometry.NewVector3f(2, 0, 0)

	var visited []geometry.Vector3f
	TraverseBlocks(geometry.NewVector3f(0.5, 0.5, 0.5), geometry.NewVector3f(9.5, 0.5, 0.5), func(block geometry.Vector3f) bool {
		visited = append(visited, block)
		return block.Equals(target)
	})

	require.Len(t, visited, 3)
	require.Equal(t, target, visited[2])
}

func TestTraverseBlocks_DiagonalTieBreak(t *testing.T) {
	// On an exact diagonal the per-axis boundary distances tie. X only wins
	// a strict comparison, so the first step goes to Y.
	visited := collectBlocks(geometry.NewVector3f(0.5, 0.5, 0.5), geometry.NewVector3f(2.5, 2.5, 0.5))

	require.Equal(t, []geometry.Vector3f{
		geometry.NewVector3f(0, 0, 0),
		geometry.NewVector3f(0, 1, 0),
		geometry.NewVector3f(1, 1, 0),
		geometry.NewVector3f(1, 2, 0),
		geometry.NewVector3f(2, 2, 0),
	}, visited)
}

func TestTraverseBlocks_NegativeDirection(t *testing.T) {
	visited := collectBlocks(geometry.NewVector3f(0.5, 0.5, 0.5), geometry.NewVector3f(-1.5, 0.5, 0.5))

	require.Equal(t, geometry.NewVector3f(0, 0, 0), visited[0])
	for i := 1; i < len(visited); i++ {
		require.Equal(t, visited[i-1].X-1, visited[i].X)
		require.Equal(t, 0.0, visited[i].Y)
		require.Equal(t, 0.0, visited[i].Z)
	}
}

func TestTraverseBlocks_PredicatePanicPropagates(t *testing.T) {
	require.Panics(t, func() {
		TraverseBlocks(geometry.NewVector3f(0.5, 0.5, 0.5), geometry.NewVector3f(3.5, 0.5, 0.5), func(geometry.Vector3f) bool {
			panic("world query failed")
		})
	})
}

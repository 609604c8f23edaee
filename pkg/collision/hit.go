package collision

import "github.com/voxelcast/voxelcast/pkg/geometry"

// HitResult describes the nearest face crossing found by Intercept.
// Distance is the squared length of Position, not the physical distance from
// the segment start.
type HitResult struct {
	Distance float64           `json:"distance"`
	Position geometry.Vector3f `json:"position"`
}

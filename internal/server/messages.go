package server

import (
	"github.com/voxelcast/voxelcast/internal/core/world"
	"github.com/voxelcast/voxelcast/pkg/collision"
	"github.com/voxelcast/voxelcast/pkg/geometry"
)

// QueryType selects the operation a query runs.
type QueryType string

const (
	QueryRaycast   QueryType = "raycast"
	QueryIntercept QueryType = "intercept"
	QuerySweep     QueryType = "sweep"
)

// QueryRequest is one JSON message from a client. Start and End describe
// the segment for raycast and intercept queries; Box is the target of an
// intercept; Segments carries the batch of a sweep.
type QueryRequest struct {
	ID       string            `json:"id"`
	Type     QueryType         `json:"type"`
	Start    geometry.Vector3f `json:"start"`
	End      geometry.Vector3f `json:"end"`
	Box      *collision.AABB   `json:"box,omitempty"`
	Segments []world.Segment   `json:"segments,omitempty"`
}

// QueryResponse answers a single QueryRequest. OK is false for both a
// malformed query (Error is set) and a clean miss (Error is empty).
type QueryResponse struct {
	ID      string               `json:"id"`
	OK      bool                 `json:"ok"`
	Error   string               `json:"error,omitempty"`
	Hit     *collision.HitResult `json:"hit,omitempty"`
	Block   *world.BlockHit      `json:"block,omitempty"`
	Results []world.SweepResult  `json:"results,omitempty"`
}

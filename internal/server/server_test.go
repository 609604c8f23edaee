package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"github.com/voxelcast/voxelcast/internal/core/observability/log"
	"github.com/voxelcast/voxelcast/internal/core/world"
	"github.com/voxelcast/voxelcast/pkg/collision"
	"github.com/voxelcast/voxelcast/pkg/geometry"
)

func testWorld(t *testing.T) *world.World {
	t.Helper()
	palette, err := world.NewPalette([]world.BlockType{
		{ID: 0, Name: "air", Solid: false},
		{ID: 1, Name: "stone", Solid: true},
	})
	require.NoError(t, err)

	w := world.NewWorld(palette, 4, nil)
	w.FillBox(geometry.NewVector3f(5, 0, 0), geometry.NewVector3f(5, 3, 3), 1)
	return w
}

func testServer(t *testing.T) *QueryServer {
	t.Helper()
	s, err := NewQueryServer(Config{Host: "127.0.0.1", Port: 8080}, testWorld(t), log.New(log.LevelError))
	require.NoError(t, err)
	return s
}

func TestConfig_Validate(t *testing.T) {
	require.NoError(t, Config{Port: 8080}.Validate())
	require.ErrorIs(t, Config{Port: 0}.Validate(), ErrInvalidConfig)
	require.ErrorIs(t, Config{Port: 70000}.Validate(), ErrInvalidConfig)
	require.ErrorIs(t, Config{Port: 8080, MaxSessions: -1}.Validate(), ErrInvalidConfig)
}

func TestQueryServer_Dispatch(t *testing.T) {
	s := testServer(t)

	t.Run("Raycast Hit", func(t *testing.T) {
		resp := s.dispatch(QueryRequest{
			ID:    "q1",
			Type:  QueryRaycast,
			Start: geometry.NewVector3f(0.5, 0.5, 0.5),
			End:   geometry.NewVector3f(9.5, 0.5, 0.5),
		})

		require.Equal(t, "q1", resp.ID)
		require.True(t, resp.OK)
		require.NotNil(t, resp.Block)
		require.Equal(t, geometry.NewVector3f(5, 0, 0), resp.Block.Block)
	})

	t.Run("Raycast Miss", func(t *testing.T) {
		resp := s.dispatch(QueryRequest{
			Type:  QueryRaycast,
			Start: geometry.NewVector3f(0.5, 8.5, 0.5),
			End:   geometry.NewVector3f(9.5, 8.5, 0.5),
		})

		require.False(t, resp.OK)
		require.Empty(t, resp.Error)
		require.Nil(t, resp.Block)
	})

	t.Run("Intercept", func(t *testing.T) {
		box := collision.NewAABB(geometry.NewVector3f(0, 0, 0), geometry.NewVector3f(1, 1, 1))
		resp := s.dispatch(QueryRequest{
			Type:  QueryIntercept,
			Start: geometry.NewVector3f(-5, 0.5, 0.5),
			End:   geometry.NewVector3f(5, 0.5, 0.5),
			Box:   &box,
		})

		require.True(t, resp.OK)
		require.NotNil(t, resp.Hit)
		require.Equal(t, geometry.NewVector3f(0, 0.5, 0.5), resp.Hit.Position)
	})

	t.Run("Intercept Without Box", func(t *testing.T) {
		resp := s.dispatch(QueryRequest{Type: QueryIntercept})
		require.False(t, resp.OK)
		require.Equal(t, ErrMissingBox.Error(), resp.Error)
	})

	t.Run("Sweep", func(t *testing.T) {
		resp := s.dispatch(QueryRequest{
			Type: QuerySweep,
			Segments: []world.Segment{
				{Start: geometry.NewVector3f(0.5, 0.5, 0.5), End: geometry.NewVector3f(9.5, 0.5, 0.5)},
				{Start: geometry.NewVector3f(0.5, 8.5, 0.5), End: geometry.NewVector3f(9.5, 8.5, 0.5)},
			},
		})

		require.True(t, resp.OK)
		require.Len(t, resp.Results, 2)
		require.NotNil(t, resp.Results[0].Hit)
		require.Nil(t, resp.Results[1].Hit)
	})

	t.Run("Empty Sweep", func(t *testing.T) {
		resp := s.dispatch(QueryRequest{Type: QuerySweep})
		require.Equal(t, ErrEmptySweep.Error(), resp.Error)
	})

	t.Run("Unknown Type", func(t *testing.T) {
		resp := s.dispatch(QueryRequest{Type: "teleport"})
		require.False(t, resp.OK)
		require.Equal(t, ErrUnknownQueryType.Error(), resp.Error)
	})
}

func TestQueryServer_WebSocket(t *testing.T) {
	srv := testServer(t)

	ts := httptest.NewServer(http.HandlerFunc(srv.handleQuery))
	defer ts.Close()

	u := "ws" + strings.TrimPrefix(ts.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	require.NoError(t, err)
	defer conn.Close()

	req := QueryRequest{
		ID:    "ws1",
		Type:  QueryRaycast,
		Start: geometry.NewVector3f(0.5, 0.5, 0.5),
		End:   geometry.NewVector3f(9.5, 0.5, 0.5),
	}
	require.NoError(t, conn.WriteJSON(req))

	var resp QueryResponse
	require.NoError(t, conn.ReadJSON(&resp))

	require.Equal(t, "ws1", resp.ID)
	require.True(t, resp.OK)
	require.NotNil(t, resp.Block)
}

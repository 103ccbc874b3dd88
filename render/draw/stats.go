package draw

import (
	"fmt"
	"log/slog"
)

// Statistics captures the counts generated during one Execute.
type Statistics struct {
	DrawCalls   int // commands that reached the GPU
	DrawLists   int
	Commands    int // all commands, drawn or rejected
	Rejected    int // commands culled by the clip test
	VertexCount int
	IndexCount  int
}

func (s Statistics) String() string {
	return fmt.Sprintf("%d draw calls (%d rejected of %d cmds), %d lists, %d verts, %d idxs",
		s.DrawCalls, s.Rejected, s.Commands, s.DrawLists, s.VertexCount, s.IndexCount)
}

// LogValue lets Statistics render as a structured group.
func (s Statistics) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("drawCalls", s.DrawCalls),
		slog.Int("drawLists", s.DrawLists),
		slog.Int("commands", s.Commands),
		slog.Int("rejected", s.Rejected),
		slog.Int("vertices", s.VertexCount),
		slog.Int("indices", s.IndexCount),
	)
}

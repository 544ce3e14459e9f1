package meshing

import (
	"github.com/profan/dear-xenko/internal/world"
)

type worldSource struct {
	w *world.World

	baseX, baseY, baseZ int
}

// WorldNeighbors returns a BlockSource for the chunk at coord that reads
// across chunk borders, so faces between two solid chunks are culled.
func WorldNeighbors(w *world.World, coord world.ChunkCoord) BlockSource {
	x, y, z := coord.Origin()
	return worldSource{w: w, baseX: x, baseY: y, baseZ: z}
}

func (s worldSource) GetBlock(x, y, z int) world.BlockType {
	return s.w.BlockAt(s.baseX+x, s.baseY+y, s.baseZ+z)
}

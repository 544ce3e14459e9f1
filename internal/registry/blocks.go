package registry

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/profan/dear-xenko/internal/world"
)

// BlockDefinition defines the properties of a block type. The mesher only
// distinguishes air from everything else, so IsSolid must be false for air
// and true for every other id.
type BlockDefinition struct {
	ID      world.BlockType
	Name    string
	IsSolid bool
}

var (
	mu         sync.RWMutex
	blocks     = make(map[world.BlockType]*BlockDefinition)
	blockNames = make(map[string]world.BlockType)
)

// unknownSolid stands in for values nobody registered. They still occlude.
var unknownSolid = BlockDefinition{
	Name:    "unknown",
	IsSolid: true,
}

func init() {
	RegisterBlock(&BlockDefinition{ID: world.BlockTypeAir, Name: "air"})
	RegisterBlock(&BlockDefinition{ID: world.BlockTypeSolid, Name: "solid", IsSolid: true})
	RegisterBlock(&BlockDefinition{ID: world.BlockTypeStone, Name: "stone", IsSolid: true})
	RegisterBlock(&BlockDefinition{ID: world.BlockTypeDirt, Name: "dirt", IsSolid: true})
	RegisterBlock(&BlockDefinition{ID: world.BlockTypeGrass, Name: "grass", IsSolid: true})
}

// RegisterBlock adds or replaces a block definition. Solidity has to agree
// with the id: air is never solid and any other block always occludes.
func RegisterBlock(def *BlockDefinition) {
	if def.ID.IsAir() && def.IsSolid {
		panic(fmt.Sprintf("registry: block %q uses the air id but is marked solid", def.Name))
	}
	if !def.ID.IsAir() && !def.IsSolid {
		panic(fmt.Sprintf("registry: block %q (id %d) must be solid, only air is see-through", def.Name, def.ID))
	}
	mu.Lock()
	defer mu.Unlock()
	if old, ok := blocks[def.ID]; ok && old.Name != def.Name {
		delete(blockNames, strings.ToLower(old.Name))
	}
	blocks[def.ID] = def
	blockNames[strings.ToLower(def.Name)] = def.ID
}

// Lookup returns the definition for id. Unregistered ids get a generic
// solid definition rather than an error.
func Lookup(id world.BlockType) *BlockDefinition {
	mu.RLock()
	def, ok := blocks[id]
	mu.RUnlock()
	if ok {
		return def
	}
	d := unknownSolid
	d.ID = id
	return &d
}

// ByName resolves a block id from its (case-insensitive) name.
func ByName(name string) (world.BlockType, bool) {
	mu.RLock()
	defer mu.RUnlock()
	id, ok := blockNames[strings.ToLower(name)]
	return id, ok
}

// Name returns the registered name of id, or "unknown".
func Name(id world.BlockType) string {
	return Lookup(id).Name
}

// Names lists every registered block name in id order.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	ids := make([]int, 0, len(blocks))
	for id := range blocks {
		ids = append(ids, int(id))
	}
	sort.Ints(ids)
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = blocks[world.BlockType(id)].Name
	}
	return out
}

// Census counts the blocks of w by registered name. Air is included.
func Census(w *world.World) map[string]int {
	var counts [256]int
	w.ForEachChunk(func(_ world.ChunkCoord, c *world.Chunk) {
		for x := 0; x < world.ChunkSize; x++ {
			for y := 0; y < world.ChunkSize; y++ {
				for z := 0; z < world.ChunkSize; z++ {
					counts[c.GetBlock(x, y, z)]++
				}
			}
		}
	})
	out := make(map[string]int)
	for id, n := range counts {
		if n > 0 {
			out[Name(world.BlockType(id))] += n
		}
	}
	return out
}

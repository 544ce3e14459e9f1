package registry

import (
	"testing"

	"github.com/profan/dear-xenko/internal/world"
)

func TestDefaultBlocks(t *testing.T) {
	for _, name := range []string{"air", "solid", "stone", "dirt", "grass"} {
		id, ok := ByName(name)
		if !ok {
			t.Fatalf("ByName(%q): not registered", name)
		}
		if got := Name(id); got != name {
			t.Fatalf("Name(%d): got %q, want %q", id, got, name)
		}
	}
	if Lookup(world.BlockTypeAir).IsSolid {
		t.Fatalf("air must not be solid")
	}
}

func TestByNameIsCaseInsensitive(t *testing.T) {
	id, ok := ByName("Stone")
	if !ok || id != world.BlockTypeStone {
		t.Fatalf("ByName(Stone): got %d, %v", id, ok)
	}
}

func TestUnknownBlockIsSolid(t *testing.T) {
	def := Lookup(world.BlockType(200))
	if !def.IsSolid {
		t.Fatalf("unknown block should degrade to solid")
	}
	if def.ID != 200 || def.Name != "unknown" {
		t.Fatalf("unknown block: got id=%d name=%q", def.ID, def.Name)
	}
}

func TestRegisterAirAsSolidPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("registering a solid air block did not panic")
		}
	}()
	RegisterBlock(&BlockDefinition{ID: world.BlockTypeAir, Name: "bad", IsSolid: true})
}

func TestNamesSorted(t *testing.T) {
	names := Names()
	if len(names) < 5 || names[0] != "air" || names[1] != "solid" {
		t.Fatalf("Names: got %v", names)
	}
}

func TestRegisterSeeThroughBlockPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("registering a non-solid, non-air block did not panic")
		}
	}()
	RegisterBlock(&BlockDefinition{ID: 9, Name: "glass"})
}

func TestRejectedBlockIsNotRegistered(t *testing.T) {
	func() {
		defer func() { _ = recover() }()
		RegisterBlock(&BlockDefinition{ID: 10, Name: "mist"})
	}()
	if _, ok := ByName("mist"); ok {
		t.Fatalf("rejected block was registered")
	}
}

func TestCensus(t *testing.T) {
	w := world.NewEmpty(2, 1, 1)
	_ = w.SetBlock(0, 0, 0, world.BlockTypeStone)
	_ = w.SetBlock(20, 5, 5, world.BlockTypeStone)
	_ = w.SetBlock(1, 0, 0, world.BlockType(200))

	got := Census(w)
	if got["stone"] != 2 {
		t.Fatalf("stone: got %d, want 2", got["stone"])
	}
	if got["unknown"] != 1 {
		t.Fatalf("unknown: got %d, want 1", got["unknown"])
	}
	if want := 2*world.ChunkVolume - 3; got["air"] != want {
		t.Fatalf("air: got %d, want %d", got["air"], want)
	}
}

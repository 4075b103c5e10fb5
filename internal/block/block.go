package block

import "github.com/go-gl/mathgl/mgl32"

// Type identifies a block. Air is the zero value so freshly allocated
// chunk storage reads as empty.
type Type uint8

const (
	Air Type = iota
	Grass
	Dirt
	Stone
	Sand
	Water
	Wood
	Leaf
	Snow

	typeCount
)

// Face indexes the six cardinal faces of a cube.
type Face uint8

const (
	FaceTop Face = iota
	FaceBottom
	FaceNorth // -Z
	FaceSouth // +Z
	FaceWest  // -X
	FaceEast  // +X
)

// AtlasOffset is a cell position in the texture atlas, in cell units.
type AtlasOffset struct {
	U, V float32
}

// Properties is the static per-type table entry. Side is used for the
// four lateral faces.
type Properties struct {
	Name        string
	Solid       bool
	Transparent bool
	Top         AtlasOffset
	Bottom      AtlasOffset
	Side        AtlasOffset
	ColorAdjust mgl32.Vec4
}

var noAdjust = mgl32.Vec4{0, 0, 0, 0}

// grassAdjust tints the grayscale grass top texture.
var grassAdjust = mgl32.Vec4{0.486, 0.741, 0.419, 1}

var properties = [typeCount]Properties{
	Air:   {Name: "air", Transparent: true, ColorAdjust: noAdjust},
	Grass: {Name: "grass", Solid: true, Top: AtlasOffset{1, 0}, Bottom: AtlasOffset{2, 0}, Side: AtlasOffset{0, 0}, ColorAdjust: grassAdjust},
	Dirt:  {Name: "dirt", Solid: true, Top: AtlasOffset{2, 0}, Bottom: AtlasOffset{2, 0}, Side: AtlasOffset{2, 0}, ColorAdjust: noAdjust},
	Stone: {Name: "stone", Solid: true, Top: AtlasOffset{3, 0}, Bottom: AtlasOffset{3, 0}, Side: AtlasOffset{3, 0}, ColorAdjust: noAdjust},
	Sand:  {Name: "sand", Solid: true, Top: AtlasOffset{0, 1}, Bottom: AtlasOffset{0, 1}, Side: AtlasOffset{0, 1}, ColorAdjust: noAdjust},
	Water: {Name: "water", Transparent: true, Top: AtlasOffset{1, 1}, Bottom: AtlasOffset{1, 1}, Side: AtlasOffset{1, 1}, ColorAdjust: mgl32.Vec4{0, 0, 0, 0.8}},
	Wood:  {Name: "wood", Solid: true, Top: AtlasOffset{3, 1}, Bottom: AtlasOffset{3, 1}, Side: AtlasOffset{2, 1}, ColorAdjust: noAdjust},
	Leaf:  {Name: "leaf", Solid: true, Transparent: true, Top: AtlasOffset{0, 2}, Bottom: AtlasOffset{0, 2}, Side: AtlasOffset{0, 2}, ColorAdjust: grassAdjust},
	Snow:  {Name: "snow", Solid: true, Top: AtlasOffset{1, 2}, Bottom: AtlasOffset{2, 0}, Side: AtlasOffset{2, 2}, ColorAdjust: noAdjust},
}

// Props returns the property table entry for t. Unknown values map to Air.
func Props(t Type) Properties {
	if t >= typeCount {
		return properties[Air]
	}
	return properties[t]
}

func (t Type) Solid() bool       { return Props(t).Solid }
func (t Type) Transparent() bool { return Props(t).Transparent }
func (t Type) String() string    { return Props(t).Name }

// FaceOffset returns the atlas cell for one face of t.
func (t Type) FaceOffset(f Face) AtlasOffset {
	p := Props(t)
	switch f {
	case FaceTop:
		return p.Top
	case FaceBottom:
		return p.Bottom
	default:
		return p.Side
	}
}

// Placeable lists the types the player can cycle through for placement.
var Placeable = []Type{Grass, Dirt, Stone, Sand, Wood, Leaf, Snow}

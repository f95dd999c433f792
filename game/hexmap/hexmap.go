// Package hexmap provides the fixed hexagonal world model: axial
// coordinates, the six-direction adjacency, terrain and resource
// enumerations, and the read-only tile map built once at startup.
package hexmap

// Coordinate is an axial hex coordinate. It is a value type and is
// used directly as a map key; equality is by (Q, R).
type Coordinate struct {
	Q int `json:"q"`
	R int `json:"r"`
}

// S returns the implicit third cube coordinate.
func (c Coordinate) S() int {
	return -c.Q - c.R
}

// Direction names one of the six hex neighbor vectors.
type Direction string

const (
	North     Direction = "n"
	NorthEast Direction = "ne"
	SouthEast Direction = "se"
	South     Direction = "s"
	SouthWest Direction = "sw"
	NorthWest Direction = "nw"
)

// Directions lists all six directions in clockwise order from North.
var Directions = [6]Direction{North, NorthEast, SouthEast, South, SouthWest, NorthWest}

var directionOffsets = map[Direction]Coordinate{
	North:     {Q: 0, R: -1},
	NorthEast: {Q: 1, R: -1},
	SouthEast: {Q: 1, R: 0},
	South:     {Q: 0, R: 1},
	SouthWest: {Q: -1, R: 1},
	NorthWest: {Q: -1, R: 0},
}

// ParseDirection normalizes a direction string. The second return is
// false for anything that is not one of the six direction names.
func ParseDirection(s string) (Direction, bool) {
	switch Direction(s) {
	case North, NorthEast, SouthEast, South, SouthWest, NorthWest:
		return Direction(s), true
	}
	return "", false
}

// Offset returns the (Δq, Δr) vector for the direction. Unknown
// directions return the zero vector.
func (d Direction) Offset() Coordinate {
	return directionOffsets[d]
}

// Neighbor returns the coordinate one step away in direction d. The
// result may or may not exist in a given Map.
func (c Coordinate) Neighbor(d Direction) Coordinate {
	off := d.Offset()
	return Coordinate{Q: c.Q + off.Q, R: c.R + off.R}
}

// Distance returns the hex distance between two coordinates, the max
// of the absolute cube-coordinate differences.
func Distance(a, b Coordinate) int {
	dq := abs(a.Q - b.Q)
	dr := abs(a.R - b.R)
	ds := abs(a.S() - b.S())
	max := dq
	if dr > max {
		max = dr
	}
	if ds > max {
		max = ds
	}
	return max
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Terrain classifies a tile.
type Terrain string

const (
	Home     Terrain = "home"
	Plain    Terrain = "plain"
	Forest   Terrain = "forest"
	Mountain Terrain = "mountain"
	Water    Terrain = "water"
	FarPlain Terrain = "far_plain"
)

// Glyph returns the single-character marker used by text renderers.
// Home, Forest and Water carry meaningful glyphs; the rest are
// color-only terrains and get a neutral dot.
func (t Terrain) Glyph() string {
	switch t {
	case Home:
		return "H"
	case Forest:
		return "A"
	case Water:
		return "~"
	default:
		return "."
	}
}

// Valid reports whether t is a known terrain class.
func (t Terrain) Valid() bool {
	switch t {
	case Home, Plain, Forest, Mountain, Water, FarPlain:
		return true
	}
	return false
}

// Resource names a gatherable resource kind.
type Resource string

const (
	Wood       Resource = "wood"
	Herbs      Resource = "herbs"
	Stone      Resource = "stone"
	Iron       Resource = "iron"
	Fish       Resource = "fish"
	FreshWater Resource = "water"
	Wheat      Resource = "wheat"
)

// Valid reports whether r is a known resource kind.
func (r Resource) Valid() bool {
	switch r {
	case Wood, Herbs, Stone, Iron, Fish, FreshWater, Wheat:
		return true
	}
	return false
}

// Tile is a single authored map tile. Tiles are created once during
// map construction and never mutated afterward.
type Tile struct {
	Coord   Coordinate       `json:"coord"`
	Terrain Terrain          `json:"terrain"`
	Yield   map[Resource]int `json:"yield,omitempty"`
}

// HasYield reports whether the tile has anything to gather.
func (t *Tile) HasYield() bool {
	return len(t.Yield) > 0
}

// Map is the closed, finite set of tiles keyed by coordinate. It is
// read-only for the lifetime of the process; no operation anywhere
// mutates tile data after construction.
type Map struct {
	tiles map[Coordinate]*Tile
	home  Coordinate
}

// New builds a Map from authored tiles. It copies yield tables so the
// caller cannot alias into the map's data.
func New(tiles []Tile) *Map {
	m := &Map{tiles: make(map[Coordinate]*Tile, len(tiles))}
	for _, t := range tiles {
		tile := Tile{Coord: t.Coord, Terrain: t.Terrain}
		if len(t.Yield) > 0 {
			tile.Yield = make(map[Resource]int, len(t.Yield))
			for res, amt := range t.Yield {
				tile.Yield[res] = amt
			}
		}
		m.tiles[t.Coord] = &tile
		if t.Terrain == Home {
			m.home = t.Coord
		}
	}
	return m
}

// TileAt returns the tile at c, or nil if c is outside the map.
func (m *Map) TileAt(c Coordinate) *Tile {
	return m.tiles[c]
}

// Contains reports whether c is a tile of the map.
func (m *Map) Contains(c Coordinate) bool {
	_, ok := m.tiles[c]
	return ok
}

// Home returns the coordinate of the home tile.
func (m *Map) Home() Coordinate {
	return m.home
}

// Size returns the number of tiles.
func (m *Map) Size() int {
	return len(m.tiles)
}

// NeighborsOf applies all six direction offsets to c and filters to
// coordinates present in the map.
func (m *Map) NeighborsOf(c Coordinate) []Coordinate {
	result := make([]Coordinate, 0, 6)
	for _, d := range Directions {
		n := c.Neighbor(d)
		if m.Contains(n) {
			result = append(result, n)
		}
	}
	return result
}

// Coordinates returns every tile coordinate in unspecified order.
func (m *Map) Coordinates() []Coordinate {
	coords := make([]Coordinate, 0, len(m.tiles))
	for c := range m.tiles {
		coords = append(coords, c)
	}
	return coords
}

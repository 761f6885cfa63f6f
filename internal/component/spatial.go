package component

// Position is an entity's location in world units.
// Pure data, zero methods. All mutations happen in systems.
type Position struct {
	X float32 `json:"x" yaml:"x"`
	Y float32 `json:"y" yaml:"y"`
}

// Velocity is an entity's movement per tick. It is stored, never integrated.
type Velocity struct {
	X float32 `json:"x" yaml:"x"`
	Y float32 `json:"y" yaml:"y"`
}

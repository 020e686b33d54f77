// Package components defines ECS components for the demo scene.
package components

// Kind identifies what a prop represents in the scene.
type Kind uint8

const (
	KindGround Kind = iota // Static floor slab
	KindCrate              // Drifting box
	KindPuddle             // Flat standing water
)

var kindNames = [...]string{
	KindGround: "ground",
	KindCrate:  "crate",
	KindPuddle: "puddle",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Prop bundles identity for a scene entity.
type Prop struct {
	ID   uint32
	Kind Kind
}

package effect

import (
	"fmt"
	"strings"
)

// RefKind classifies what a resource reference names.
type RefKind uint8

const (
	RefTarget     RefKind = iota // Named render target ("#deferred")
	RefBackbuffer                // The frame backbuffer ("$backbuffer")
	RefTexture                   // Texture asset path ("textures/wetMap.png")
)

// Backbuffer is the configuration spelling of the frame backbuffer.
const Backbuffer = "$backbuffer"

func (k RefKind) String() string {
	switch k {
	case RefTarget:
		return "target"
	case RefBackbuffer:
		return "backbuffer"
	case RefTexture:
		return "texture"
	default:
		return fmt.Sprintf("RefKind(%d)", uint8(k))
	}
}

// ResourceRef names a resource resolved by the host at execution time.
type ResourceRef struct {
	Kind RefKind
	Name string // Target name without '#', or texture path
}

// ParseRef parses a configuration string into a ResourceRef.
func ParseRef(s string) (ResourceRef, error) {
	s = strings.TrimSpace(s)
	switch {
	case s == "":
		return ResourceRef{}, fmt.Errorf("empty resource reference")
	case s == Backbuffer:
		return ResourceRef{Kind: RefBackbuffer, Name: "backbuffer"}, nil
	case strings.HasPrefix(s, "$"):
		return ResourceRef{}, fmt.Errorf("unknown special resource %q", s)
	case strings.HasPrefix(s, "#"):
		name := s[1:]
		if name == "" {
			return ResourceRef{}, fmt.Errorf("empty render target name")
		}
		return ResourceRef{Kind: RefTarget, Name: name}, nil
	default:
		return ResourceRef{Kind: RefTexture, Name: s}, nil
	}
}

// TargetRef returns a reference to a named render target.
func TargetRef(name string) ResourceRef {
	return ResourceRef{Kind: RefTarget, Name: name}
}

// BackbufferRef returns a reference to the frame backbuffer.
func BackbufferRef() ResourceRef {
	return ResourceRef{Kind: RefBackbuffer, Name: "backbuffer"}
}

// String returns the configuration spelling of the reference.
func (r ResourceRef) String() string {
	switch r.Kind {
	case RefTarget:
		return "#" + r.Name
	case RefBackbuffer:
		return Backbuffer
	default:
		return r.Name
	}
}

// IsFeedback reports whether reading r samples output written earlier in the frame.
func (r ResourceRef) IsFeedback() bool {
	return r.Kind == RefBackbuffer
}

package components

// Body holds a prop's screen-space extent.
type Body struct {
	Width  float32
	Height float32
}

// Material describes how a prop's surface takes water. The values are
// written into the scene buffers the wetness passes sample.
type Material struct {
	Albedo    [3]uint8 // Base color
	Roughness float32  // 0 = mirror, 1 = fully diffuse
	Porosity  float32  // 0 = sheds water, 1 = soaks it up
	Lit       float32  // Direct light reaching the surface, 0-1
}

// Wettable reports whether the surface keeps a visible water film.
func (m Material) Wettable() bool {
	return m.Porosity < 0.9
}

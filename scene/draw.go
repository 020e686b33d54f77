package scene

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/wetfx/components"
	"github.com/pthm-cable/wetfx/renderer"
)

// bufferColors encodes a material into each scene buffer.
type bufferColors struct {
	color          rl.Color // Albedo
	deferred       rl.Color // R = roughness, G = porosity, B = surface height
	directLighting rl.Color // Grey level = direct light
	matinfo        rl.Color // White where a water film can form
}

// encode maps a prop's material onto the scene buffer channels. yNorm is the
// prop's vertical position in [0, 1].
func encode(mat components.Material, yNorm float32) bufferColors {
	unit := func(v float32) uint8 {
		if v < 0 {
			v = 0
		}
		if v > 1 {
			v = 1
		}
		return uint8(v * 255)
	}

	var info rl.Color
	if mat.Wettable() {
		info = rl.White
	}
	lit := unit(mat.Lit)

	return bufferColors{
		color:          rl.Color{R: mat.Albedo[0], G: mat.Albedo[1], B: mat.Albedo[2], A: 255},
		deferred:       rl.Color{R: unit(mat.Roughness), G: unit(mat.Porosity), B: unit(1 - yNorm), A: 255},
		directLighting: rl.Color{R: lit, G: lit, B: lit, A: 255},
		matinfo:        info,
	}
}

// Draw writes every prop into the color, deferred, direct lighting and
// material info buffers, then copies the color buffer to the backbuffer.
func (s *Scene) Draw(targets *renderer.TargetSet) error {
	type layer struct {
		name string
		pick func(bufferColors) rl.Color
	}
	layers := []layer{
		{renderer.TargetColor, func(b bufferColors) rl.Color { return b.color }},
		{renderer.TargetDeferred, func(b bufferColors) rl.Color { return b.deferred }},
		{renderer.TargetDirectLighting, func(b bufferColors) rl.Color { return b.directLighting }},
		{renderer.TargetMatInfo, func(b bufferColors) rl.Color { return b.matinfo }},
	}

	for _, l := range layers {
		rt, err := targets.Target(l.name)
		if err != nil {
			return err
		}
		rl.BeginTextureMode(rt)
		s.Each(func(pos components.Position, body components.Body, mat components.Material, _ components.Prop) {
			c := l.pick(encode(mat, pos.Y/s.height))
			rl.DrawRectangle(int32(pos.X), int32(pos.Y), int32(body.Width), int32(body.Height), c)
		})
		rl.EndTextureMode()
	}

	return targets.Composite(renderer.TargetColor)
}

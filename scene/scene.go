// Package scene holds the props the wetness effect is drawn over and writes
// them into the renderer's scene buffers.
package scene

import (
	"math/rand"

	"github.com/chewxy/math32"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/wetfx/components"
	"github.com/pthm-cable/wetfx/config"
)

// Scene owns an ECS world of props.
type Scene struct {
	world *ecs.World
	rng   *rand.Rand

	propMapper *ecs.Map5[
		components.Position,
		components.Velocity,
		components.Body,
		components.Material,
		components.Prop,
	]
	propFilter *ecs.Filter5[
		components.Position,
		components.Velocity,
		components.Body,
		components.Material,
		components.Prop,
	]

	width, height float32
	maxSpeed      float32
	nextID        uint32
	counts        [3]int
	time          float32
}

// New creates a scene filling a width x height area.
func New(cfg config.SceneConfig, width, height float32, rng *rand.Rand) *Scene {
	world := ecs.NewWorld()

	s := &Scene{
		world:    world,
		rng:      rng,
		width:    width,
		height:   height,
		maxSpeed: float32(cfg.MaxSpeed),
		propMapper: ecs.NewMap5[
			components.Position,
			components.Velocity,
			components.Body,
			components.Material,
			components.Prop,
		](world),
		propFilter: ecs.NewFilter5[
			components.Position,
			components.Velocity,
			components.Body,
			components.Material,
			components.Prop,
		](world),
	}

	s.spawnGround()
	for i := 0; i < cfg.Props; i++ {
		kind := components.KindCrate
		if i%3 == 0 {
			kind = components.KindPuddle
		}
		s.spawnProp(kind)
	}

	return s
}

// spawnGround lays the floor across the lower third of the area.
func (s *Scene) spawnGround() {
	pos := components.Position{X: 0, Y: s.height * 2 / 3}
	vel := components.Velocity{}
	body := components.Body{Width: s.width, Height: s.height / 3}
	mat := components.Material{Albedo: [3]uint8{70, 66, 60}, Roughness: 0.8, Porosity: 0.3, Lit: 0.6}
	s.add(&pos, &vel, &body, &mat, components.KindGround)
}

// spawnProp places a prop at a random position with a random drift.
func (s *Scene) spawnProp(kind components.Kind) ecs.Entity {
	var body components.Body
	var mat components.Material
	switch kind {
	case components.KindPuddle:
		body = components.Body{Width: 40 + s.rng.Float32()*80, Height: 8 + s.rng.Float32()*10}
		mat = components.Material{Albedo: [3]uint8{30, 40, 55}, Roughness: 0.05, Porosity: 0, Lit: 0.9}
	default:
		side := 20 + s.rng.Float32()*40
		body = components.Body{Width: side, Height: side}
		shade := 90 + s.rng.Intn(80)
		mat = components.Material{
			Albedo:    [3]uint8{uint8(shade), uint8(shade * 3 / 4), uint8(shade / 2)},
			Roughness: 0.4 + s.rng.Float32()*0.5,
			Porosity:  s.rng.Float32(),
			Lit:       0.3 + s.rng.Float32()*0.7,
		}
	}

	pos := components.Position{
		X: s.rng.Float32() * (s.width - body.Width),
		Y: s.rng.Float32() * (s.height - body.Height),
	}
	angle := s.rng.Float32() * 2 * math32.Pi
	speed := s.rng.Float32() * s.maxSpeed
	vel := components.Velocity{X: math32.Cos(angle) * speed, Y: math32.Sin(angle) * speed}

	return s.add(&pos, &vel, &body, &mat, kind)
}

func (s *Scene) add(pos *components.Position, vel *components.Velocity, body *components.Body, mat *components.Material, kind components.Kind) ecs.Entity {
	prop := components.Prop{ID: s.nextID, Kind: kind}
	s.nextID++
	s.counts[kind]++
	return s.propMapper.NewEntity(pos, vel, body, mat, &prop)
}

// Update advances props by dt seconds, bouncing them off the area edges.
func (s *Scene) Update(dt float32) {
	s.time += dt

	query := s.propFilter.Query()
	for query.Next() {
		pos, vel, body, _, _ := query.Get()

		pos.X += vel.X * dt
		pos.Y += vel.Y * dt

		maxX := math32.Max(0, s.width-body.Width)
		maxY := math32.Max(0, s.height-body.Height)
		if pos.X < 0 || pos.X > maxX {
			vel.X = -vel.X
			pos.X = math32.Min(math32.Max(pos.X, 0), maxX)
		}
		if pos.Y < 0 || pos.Y > maxY {
			vel.Y = -vel.Y
			pos.Y = math32.Min(math32.Max(pos.Y, 0), maxY)
		}
	}
}

// Resize changes the area bounds and refits the ground. Other props are
// pulled back inside on the next Update.
func (s *Scene) Resize(width, height float32) {
	s.width, s.height = width, height

	query := s.propFilter.Query()
	for query.Next() {
		pos, _, body, _, prop := query.Get()
		if prop.Kind != components.KindGround {
			continue
		}
		pos.X, pos.Y = 0, height*2/3
		body.Width, body.Height = width, height/3
	}
}

// Count returns the number of props of a kind.
func (s *Scene) Count(kind components.Kind) int {
	if int(kind) >= len(s.counts) {
		return 0
	}
	return s.counts[kind]
}

// Len returns the total number of props.
func (s *Scene) Len() int {
	n := 0
	for _, c := range s.counts {
		n += c
	}
	return n
}

// Time returns the accumulated scene time in seconds.
func (s *Scene) Time() float32 {
	return s.time
}

// Each calls fn for every prop.
func (s *Scene) Each(fn func(pos components.Position, body components.Body, mat components.Material, prop components.Prop)) {
	query := s.propFilter.Query()
	for query.Next() {
		pos, _, body, mat, prop := query.Get()
		fn(*pos, *body, *mat, *prop)
	}
}

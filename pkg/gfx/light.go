// pkg/gfx/light.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package gfx

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

type LightType int

const (
	LightDirectional LightType = iota
	LightPoint
	LightSpot
	LightAmbient
)

func (t LightType) String() string {
	return enumString(int(t), "LightType", []string{"Directional", "Point", "Spot", "Ambient"})
}

// Light is a dynamic light. Which fields are meaningful depends on Type:
// Direction for directional and spot lights, Position and Radius for
// point and spot lights, and the angles and SpotRange for spot lights.
type Light struct {
	Type      LightType
	Color     mgl32.Vec4
	Position  mgl32.Vec3
	Direction mgl32.Vec3
	// Radius is the distance at which a point light's influence ends; 0
	// means no attenuation.
	Radius float32
	// Spot cone angles, in radians.
	InnerAngle, OuterAngle float32
	SpotRange              float32
}

func NewAmbientLight(color mgl32.Vec4) Light {
	return Light{Type: LightAmbient, Color: color}
}

func NewDirectionalLight(dir mgl32.Vec3, color mgl32.Vec4) Light {
	return Light{Type: LightDirectional, Direction: dir, Color: color}
}

func NewPointLight(pos mgl32.Vec3, radius float32, color mgl32.Vec4) Light {
	return Light{Type: LightPoint, Position: pos, Radius: radius, Color: color}
}

func NewSpotLight(pos, dir mgl32.Vec3, inner, outer, spotRange float32, color mgl32.Vec4) Light {
	return Light{
		Type:       LightSpot,
		Position:   pos,
		Direction:  dir,
		InnerAngle: inner,
		OuterAngle: outer,
		SpotRange:  spotRange,
		Color:      color,
	}
}

func (l Light) InvRadius() float32 {
	if l.Radius == 0 {
		return 0
	}
	return 1 / l.Radius
}

func (l Light) InvSpotRange() float32 {
	if l.SpotRange == 0 {
		return 0
	}
	return 1 / l.SpotRange
}

func (l Light) String() string {
	switch l.Type {
	case LightAmbient:
		return fmt.Sprintf("Ambient[%v]", l.Color)
	case LightDirectional:
		return fmt.Sprintf("Directional[dir=%v %v]", l.Direction, l.Color)
	case LightPoint:
		return fmt.Sprintf("Point[pos=%v r=%g %v]", l.Position, l.Radius, l.Color)
	default:
		return fmt.Sprintf("Spot[pos=%v dir=%v %g-%g %v]", l.Position, l.Direction, l.InnerAngle,
			l.OuterAngle, l.Color)
	}
}

type LightList []Light

// Split returns the sum of the ambient lights' colors and the remaining
// lights, in order.
func (ll LightList) Split() (mgl32.Vec4, []Light) {
	var ambient mgl32.Vec4
	var rest []Light
	for _, l := range ll {
		if l.Type == LightAmbient {
			ambient = ambient.Add(l.Color)
		} else {
			rest = append(rest, l)
		}
	}
	return ambient, rest
}

// FixedFuncBindings are the material parameters used by the legacy
// fixed-function lighting pipeline.
type FixedFuncBindings struct {
	Ambient        mgl32.Vec4
	Diffuse        mgl32.Vec4
	Specular       mgl32.Vec4
	Shininess      float32
	Color          mgl32.Vec4 // used when lighting is off
	UseVertexColor bool
}

func DefaultFixedFuncBindings() FixedFuncBindings {
	return FixedFuncBindings{
		Ambient:  mgl32.Vec4{0.2, 0.2, 0.2, 1},
		Diffuse:  mgl32.Vec4{0.8, 0.8, 0.8, 1},
		Specular: mgl32.Vec4{0, 0, 0, 1},
		Color:    mgl32.Vec4{1, 1, 1, 1},
	}
}

package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// RotationMatrix returns the matrix rotating by theta about a unit axis,
// built with Rodrigues' formula: R = cosθ·I + sinθ·[k]× + (1−cosθ)·(k⊗k).
func RotationMatrix(theta float64, axis Vec3) mgl64.Mat3 {
	cos, sin := math.Cos(theta), math.Sin(theta)
	k := toMgl(axis)

	// skew-symmetric cross-product matrix of the axis
	skew := mgl64.Mat3FromRows(
		mgl64.Vec3{0, -k[2], k[1]},
		mgl64.Vec3{k[2], 0, -k[0]},
		mgl64.Vec3{-k[1], k[0], 0},
	)

	return mgl64.Ident3().Mul(cos).
		Add(skew.Mul(sin)).
		Add(k.OuterProd3(k).Mul(1 - cos))
}

// Rotate applies a rotation matrix to a vector
func Rotate(m mgl64.Mat3, v Vec3) Vec3 {
	return fromMgl(m.Mul3x1(toMgl(v)))
}

func toMgl(v Vec3) mgl64.Vec3 { return mgl64.Vec3{v.X, v.Y, v.Z} }

func fromMgl(v mgl64.Vec3) Vec3 { return Vec3{v[0], v[1], v[2]} }

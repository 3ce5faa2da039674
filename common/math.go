package common

import "math"

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// NormalizeAngle wraps degrees into (-180, 180].
func NormalizeAngle(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg > 180 {
		deg -= 360
	} else if deg <= -180 {
		deg += 360
	}
	return deg
}

// LerpAngle interpolates degrees along the shorter arc.
func LerpAngle(a, b, t float64) float64 {
	return a + t*NormalizeAngle(b-a)
}

// StepAngle turns from towards to by at most maxStep degrees.
func StepAngle(from, to, maxStep float64) float64 {
	diff := NormalizeAngle(to - from)
	if math.Abs(diff) <= maxStep {
		return to
	}
	return NormalizeAngle(from + math.Copysign(maxStep, diff))
}

package fluid

import V "diesel.com/lattice/vector"

//Q - number of discrete velocities in the D2Q9 scheme
const Q = 9

//Discrete velocities (vx, vy) indexed 0..8. Rest, then clockwise from north.
var directions = [Q]V.Int2{
	{0, 0},
	{0, 1},
	{1, 1},
	{1, 0},
	{1, -1},
	{0, -1},
	{-1, -1},
	{-1, 0},
	{-1, 1},
}

//Quadrature weights, sum = 1
var weights = [Q]float64{
	4.0 / 9,
	1.0 / 9, 1.0 / 36, 1.0 / 9, 1.0 / 36,
	1.0 / 9, 1.0 / 36, 1.0 / 9, 1.0 / 36,
}

//opposite[k] is the direction pointing against k (self-paired rest)
var opposite = [Q]int{0, 5, 6, 7, 8, 1, 2, 3, 4}

//Directions travelling towards +x and -x, used by the absorbing wall
var (
	eastward = [3]int{2, 3, 4}
	westward = [3]int{6, 7, 8}
)

//Directions returns a copy of the discrete velocity set
func Directions() [Q]V.Int2 {
	return directions
}

//Weights returns a copy of the lattice weights
func Weights() [Q]float64 {
	return weights
}

//Opposite returns the reversal permutation used by bounce-back
func Opposite() [Q]int {
	return opposite
}

package bowling

import "gonum.org/v1/gonum/mat"

// Indices of the ball centre in an observation
const (
	ballX = 0
	ballY = 1
)

// pinSlot returns the indices of the x and y centre coordinates of pin
// i in an observation
func pinSlot(i int) (x, y int) {
	return 2 + 2*i, 3 + 2*i
}

// encode builds a fixed-length observation from the scene:
//
//	[ball x, ball y, pin 0 x, pin 0 y, ..., pin N-1 x, pin N-1 y]
//
// All coordinates are rectangle centres. A pin keeps its slot for the
// lifetime of the environment; once knocked down its slot holds
// (Sentinel, Sentinel).
func encode(ball Rect, pins []Rect, down []bool) *mat.VecDense {
	obs := make([]float64, 2+2*len(pins))
	obs[ballX] = ball.Center.X
	obs[ballY] = ball.Center.Y

	for i, pin := range pins {
		x, y := pinSlot(i)
		if down[i] {
			obs[x], obs[y] = Sentinel, Sentinel
		} else {
			obs[x], obs[y] = pin.Center.X, pin.Center.Y
		}
	}

	return mat.NewVecDense(len(obs), obs)
}

// PinStanding returns whether pin i is standing in an observation
func PinStanding(obs mat.Vector, i int) bool {
	x, y := pinSlot(i)
	return obs.AtVec(x) != Sentinel || obs.AtVec(y) != Sentinel
}

// PinsStanding returns the number of standing pins in an observation
func PinsStanding(obs mat.Vector) int {
	standing := 0
	for i := 0; i < (obs.Len()-2)/2; i++ {
		if PinStanding(obs, i) {
			standing++
		}
	}
	return standing
}

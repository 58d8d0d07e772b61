package fire

import "ignis/internal/core"

const (
	smokeSpawnOdds      = 10
	smokeSpawnCeiling   = 15
	smokeSeedMin        = 50
	smokeSeedSpan       = 50
	smokeOverwriteBelow = 100
	smokeDecay          = 2
)

// AdvanceColumn propagates fire one row upward for column x. Row y is read
// before row y-1 is written, for every y from 1 to H-1, so the column never
// re-reads a cell it wrote in the same pass. The source row H-1 is only read.
func (g *Grid) AdvanceColumn(x int, rng core.Rand) {
	w, h := g.W, g.H
	fire := g.fire.Cells()
	var smoke []uint8
	if g.smoke != nil {
		smoke = g.smoke.Cells()
	}

	for y := 1; y < h; y++ {
		v := int(fire[y*w+x])
		if v == 0 {
			fire[(y-1)*w+x] = 0
			continue
		}

		// The mask cannot change a draw from [0,3); decay stays uniform over {0,1,2}.
		decay := rng.IntN(3) & 3
		dstX := x - decay + 1
		if dstX >= w {
			dstX -= w
		} else if dstX < 0 {
			dstX += w
		}

		dst := (y-1)*w + dstX
		next := v - (decay & 1)
		if next < 0 {
			next = 0
		}
		fire[dst] = uint8(next)

		if smoke != nil && next > 0 && next < smokeSpawnCeiling && rng.IntN(smokeSpawnOdds) == 0 {
			if smoke[dst] < smokeOverwriteBelow {
				smoke[dst] = uint8(smokeSeedMin + rng.IntN(smokeSeedSpan))
			}
		}
	}
}

// AdvanceSmokeColumn drifts smoke in column x one row upward with a random
// sideways step. Drift clamps at the side edges instead of wrapping. It is a
// no-op outside enhanced mode.
func (g *Grid) AdvanceSmokeColumn(x int, rng core.Rand) {
	if g.smoke == nil {
		return
	}
	w, h := g.W, g.H
	smoke := g.smoke.Cells()

	for y := 1; y < h; y++ {
		density := int(smoke[y*w+x])
		if density <= 0 {
			continue
		}
		wind := rng.IntN(3) - 1
		dstX := g.smoke.ClampX(x + wind)
		dstY := y - 1
		if dstY < 0 {
			dstY = 0
		}
		next := density - smokeDecay
		if next < 0 {
			next = 0
		}
		smoke[dstY*w+dstX] = uint8(next)
	}
}

// AdvanceColumns runs the fire rule over columns [from, to) and then, in
// enhanced mode, the smoke rule over the same range.
func (g *Grid) AdvanceColumns(from, to int, rng core.Rand) {
	for x := from; x < to; x++ {
		g.AdvanceColumn(x, rng)
	}
	if g.smoke == nil {
		return
	}
	for x := from; x < to; x++ {
		g.AdvanceSmokeColumn(x, rng)
	}
}

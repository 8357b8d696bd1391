package game

import "math"

// SpawnExplosion bursts debris, fire, glow and smoke at (x, y). The burst is
// a deterministic function of the system seed and the impact point.
func (ps *ParticleSystem) SpawnExplosion(x, y float64, baseCol RGB, intensity float64) {
	if intensity <= 0 {
		return
	}

	r := NewRand(hash2D(ps.seed^0xA5A5A5A5, int(x), int(y)))

	// Debris takes the colour of what was hit.
	for range int(40 * intensity) {
		ang := r.RangeF(0, math.Pi*2)
		spd := r.RangeF(60, 220) * intensity
		ps.Add(Particle{
			X: x + r.RangeF(-4, 4), Y: y + r.RangeF(-4, 4),
			VX: math.Cos(ang) * spd, VY: math.Sin(ang) * spd,
			Size: r.RangeF(2, 5), Spin: r.RangeF(0, math.Pi*2),
			MaxLife: r.RangeF(0.8, 1.6),
			Col:     baseCol.Add(r.Range(-20, 20), r.Range(-20, 20), r.Range(-20, 20)),
			Kind:    ParticleDebris,
		})
	}

	for range int(60 * intensity) {
		ang := r.RangeF(0, math.Pi*2)
		spd := r.RangeF(20, 90)
		ps.Add(Particle{
			X: x + r.RangeF(-3, 3), Y: y + r.RangeF(-3, 3),
			VX: math.Cos(ang) * spd, VY: math.Sin(ang) * spd,
			Size: r.RangeF(6, 12), MaxLife: r.RangeF(0.25, 0.6),
			Col: Palette.FireHot, Kind: ParticleFire,
		})
	}

	for range int(12 * intensity) {
		ang := r.RangeF(0, math.Pi*2)
		spd := r.RangeF(120, 320) * intensity
		ps.Add(Particle{
			X: x, Y: y,
			VX: math.Cos(ang) * spd, VY: math.Sin(ang) * spd,
			Size: r.RangeF(4, 8), MaxLife: r.RangeF(0.15, 0.35),
			Col: Palette.Glow, Kind: ParticleGlow,
		})
	}

	// Smoke starts late so it trails the flash.
	for range int(30*intensity) + 8 {
		ang := r.RangeF(0, math.Pi*2)
		spd := r.RangeF(8, 30)
		ps.Add(Particle{
			X: x + r.RangeF(-6, 6), Y: y + r.RangeF(-6, 6),
			VX: math.Cos(ang) * spd, VY: math.Sin(ang) * spd,
			Size: r.RangeF(8, 14), Life: -r.RangeF(0, 0.2), MaxLife: r.RangeF(0.8, 1.8),
			Col: Palette.Smoke, Kind: ParticleSmoke,
		})
	}
}

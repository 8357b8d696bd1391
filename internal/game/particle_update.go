package game

import "math"

// particleDecays holds exponential drag factors precomputed once per frame.
type particleDecays struct {
	debris float64 // exp(-1.4 * dt)
	smoke  float64 // exp(-1.2 * dt)
	fire   float64 // exp(-2.2 * dt)
}

func computeDecays(dt float64) particleDecays {
	return particleDecays{
		debris: math.Exp(-1.4 * dt),
		smoke:  math.Exp(-1.2 * dt),
		fire:   math.Exp(-2.2 * dt),
	}
}

// Update ages and moves every particle, swap-removing the expired ones.
func (ps *ParticleSystem) Update(dt float64) {
	if dt <= 0 {
		return
	}

	d := computeDecays(dt)

	for i := 0; i < len(ps.P); {
		p := &ps.P[i]

		p.Life += dt
		if p.Life >= p.MaxLife {
			ps.P[i] = ps.P[len(ps.P)-1]
			ps.P = ps.P[:len(ps.P)-1]
			continue
		}
		if p.Life < 0 {
			i++
			continue
		}

		switch p.Kind {
		case ParticleDebris:
			p.VX *= d.debris
			p.VY *= d.debris
			p.Spin += 4.0 * dt
		case ParticleSmoke:
			p.VX *= d.smoke
			p.VY *= d.smoke
		case ParticleFire:
			p.VX *= d.fire
			p.VY *= d.fire
			// Sideways jitter.
			j := float64(int(hash2D(ps.seed^0xF17E, int(p.X), int(p.Y))>>56)-128) / 128.0
			p.VY += j * 18.0 * dt
		}
		p.X += p.VX * dt
		p.Y += p.VY * dt

		i++
	}
}

// Alive reports whether any particle is still animating.
func (ps *ParticleSystem) Alive() bool {
	return len(ps.P) > 0
}

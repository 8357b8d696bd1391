package game

import "math"

type ParticleKind uint8

const (
	ParticleDebris ParticleKind = iota
	ParticleFire
	ParticleGlow
	ParticleSmoke
)

type Particle struct {
	X, Y   float64
	VX, VY float64

	Size float64
	Spin float64 // radians

	Life    float64 // negative = delayed start
	MaxLife float64

	Col  RGB
	Kind ParticleKind
}

// ParticleSystem animates the collision explosion. It is purely visual and
// never feeds back into the simulation.
type ParticleSystem struct {
	Max    int
	P      []Particle
	seed   uint64
	ovrIdx int // circular overwrite index when full
}

func NewParticleSystem(maxParticles int, seed uint64) *ParticleSystem {
	if maxParticles <= 0 {
		maxParticles = MaxParticles
	}
	if seed == 0 {
		seed = 1
	}
	return &ParticleSystem{
		Max:  maxParticles,
		P:    make([]Particle, 0, maxParticles),
		seed: seed,
	}
}

func (ps *ParticleSystem) Clear() {
	ps.P = ps.P[:0]
	ps.ovrIdx = 0
}

func (ps *ParticleSystem) Add(p Particle) {
	if len(ps.P) < ps.Max {
		ps.P = append(ps.P, p)
		return
	}
	if ps.ovrIdx >= ps.Max {
		ps.ovrIdx = 0
	}
	ps.P[ps.ovrIdx] = p
	ps.ovrIdx++
}

// RenderData splits live particles into glow (additive) and normal (alpha
// blend) buffers. Format: [x, y, size, r, g, b, a, rotation] * N.
func (ps *ParticleSystem) RenderData(glowBuf, normBuf []float32) ([]float32, []float32) {
	glowBuf = glowBuf[:0]
	normBuf = normBuf[:0]

	for _, p := range ps.P {
		if p.Life < 0 || p.MaxLife <= 0 {
			continue
		}
		t := clampF(p.Life/p.MaxLife, 0, 1)

		col := p.Col
		a := 1.0 - t
		size := p.Size

		switch p.Kind {
		case ParticleDebris:
			a = 1.0 - t*t
		case ParticleSmoke:
			a = (1.0 - t) * math.Min(1, t/0.18) * 0.7
			size *= 1.0 + t*1.6
		case ParticleGlow:
			a = (1.0 - t) * 1.15
		case ParticleFire:
			a = (1.0 - t) * math.Min(1, t/0.08) * 1.25
			if t < 0.5 {
				col = lerpRGB(Palette.FireHot, Palette.FireMid, t*2.0)
			} else {
				col = lerpRGB(Palette.FireMid, Palette.FireCool, (t-0.5)*2.0)
			}
		}
		if len(glowBuf)+len(normBuf) >= MaxParticleRender*8 {
			break
		}
		if a <= 0 {
			continue
		}
		ac := float32(clampF(a, 0, 1))
		rc, gc, bc := col.Float()

		additive := p.Kind == ParticleGlow || p.Kind == ParticleFire
		if additive {
			rc *= ac
			gc *= ac
			bc *= ac
		}

		if additive {
			glowBuf = append(glowBuf, float32(p.X), float32(p.Y), float32(size), rc, gc, bc, ac, float32(p.Spin))
		} else {
			normBuf = append(normBuf, float32(p.X), float32(p.Y), float32(size), rc, gc, bc, ac, float32(p.Spin))
		}
	}
	return glowBuf, normBuf
}

package game

// RGB is an 8-bit per channel colour.
type RGB struct {
	R, G, B uint8
}

func (c RGB) Mul(k uint8) RGB {
	return RGB{
		R: uint8((uint16(c.R) * uint16(k)) / 255),
		G: uint8((uint16(c.G) * uint16(k)) / 255),
		B: uint8((uint16(c.B) * uint16(k)) / 255),
	}
}

func (c RGB) Add(dr, dg, db int) RGB {
	r := int(c.R) + dr
	g := int(c.G) + dg
	b := int(c.B) + db
	if r < 0 {
		r = 0
	} else if r > 255 {
		r = 255
	}
	if g < 0 {
		g = 0
	} else if g > 255 {
		g = 255
	}
	if b < 0 {
		b = 0
	} else if b > 255 {
		b = 255
	}
	return RGB{R: uint8(r), G: uint8(g), B: uint8(b)}
}

var Palette = struct {
	Space      RGB
	Star       RGB
	Ship       RGB
	ShipFlame  RGB
	Meteor     RGB
	MeteorDark RGB
	Enemy      RGB
	EnemyLight RGB
	InTune     RGB
	OffTune    RGB
	Meter      RGB
	Smoke      RGB
	Glow       RGB
	FireHot    RGB
	FireMid    RGB
	FireCool   RGB
}{
	Space:      RGB{R: 8, G: 10, B: 24},
	Star:       RGB{R: 200, G: 205, B: 230},
	Ship:       RGB{R: 90, G: 170, B: 255},
	ShipFlame:  RGB{R: 255, G: 170, B: 60},
	Meteor:     RGB{R: 140, G: 110, B: 90},
	MeteorDark: RGB{R: 90, G: 70, B: 58},
	Enemy:      RGB{R: 220, G: 60, B: 70},
	EnemyLight: RGB{R: 255, G: 210, B: 120},
	InTune:     RGB{R: 60, G: 220, B: 110},
	OffTune:    RGB{R: 240, G: 210, B: 60},
	Meter:      RGB{R: 60, G: 64, B: 90},
	Smoke:      RGB{R: 120, G: 120, B: 125},
	Glow:       RGB{R: 255, G: 200, B: 90},
	FireHot:    RGB{R: 255, G: 210, B: 110},
	FireMid:    RGB{R: 255, G: 150, B: 70},
	FireCool:   RGB{R: 190, G: 70, B: 45},
}

// Float returns the colour as normalized components.
func (c RGB) Float() (r, g, b float32) {
	return float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255
}

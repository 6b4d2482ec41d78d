package dossier

// Fade palettes. Index 0 is the normal palette; 1..3 step down to black.
// Values are 200-line EGA palette register values (bits 0-2 BGR, bit 4
// intensity). The 17th entry is the overscan colour.
var palettes = [4][17]uint8{
	{0, 1, 2, 3, 4, 5, 6, 7, 16, 17, 18, 19, 20, 21, 22, 23, 0},
	{0, 1, 2, 3, 4, 5, 6, 16, 0, 1, 2, 3, 4, 5, 6, 7, 0},
	{0, 0, 1, 1, 1, 1, 1, 0, 0, 0, 1, 1, 1, 1, 1, 16, 0},
	{},
}

const fadeDelay = 1

// rgbi decodes a 200-line palette register value into RGB, including the
// monitor's brown fix for colour 6.
func rgbi(v uint8) [3]uint8 {
	i := uint8(0)
	if v&0x10 != 0 {
		i = 0x55
	}
	var c [3]uint8
	if v&4 != 0 {
		c[0] = 0xAA
	}
	if v&2 != 0 {
		c[1] = 0xAA
	}
	if v&1 != 0 {
		c[2] = 0xAA
	}
	if v&0x17 == 6 {
		c[1] = 0x55
		return c
	}
	c[0] += i
	c[1] += i
	c[2] += i
	return c
}

// SetPalette installs fade palette n (0 normal .. 3 black).
func (d *Display) SetPalette(n int) {
	d.mu.Lock()
	d.palette = palettes[n]
	d.mu.Unlock()
}

// Palette returns the current palette register values.
func (d *Display) Palette() [17]uint8 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.palette
}

// FadeOut steps from the normal palette to black.
func (d *Display) FadeOut(w Waiter) {
	for s := 1; s < len(palettes); s++ {
		d.SetPalette(s)
		w.Delay(fadeDelay)
	}
}

// FadeIn steps back from black to the normal palette.
func (d *Display) FadeIn(w Waiter) {
	for s := len(palettes) - 2; s > 0; s-- {
		d.SetPalette(s)
		w.Delay(fadeDelay)
	}
	d.SetPalette(0)
}

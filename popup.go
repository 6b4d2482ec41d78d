package dossier

// popupColors picks foreground, background and edge colours of a text
// popup.
func popupColors(v *View) (fg, bg, eg uint8) {
	if v.Kind == ViewInventory {
		return invFG, invBG, invEG
	}
	switch v.Popup.Style {
	case StyleHand, StyleJagged:
		return popupHandFG, popupHandBG, popupHandEG
	case StylePrint:
		return popupPrintFG, popupPrintBG, popupPrintEG
	}
	return popupFG, popupBG, popupEG
}

// renderPopup saves the area under v's popup to the scratch store and
// draws the popup on the front page.
func (g *SceneGraph) renderPopup(v *View) {
	p := &v.Popup
	d := g.d

	if p.Filename != "" {
		if p.data == nil {
			fatal("Popup not loaded!")
		}
		if p.Style.Borderless() {
			g.scratch.Push(p.X, p.Y, p.W, p.H)
		} else {
			g.scratch.Push(p.X-16, p.Y-LineHeight, p.W+32, p.H+2*LineHeight)
			d.DrawEdge(PageFront, p.X-16, p.Y-LineHeight, p.W+32, p.H+2*LineHeight, 7, 8, StyleHand)
			d.Fill(PageFront, p.X-8, p.Y, 8, p.H, 8, 8)
			d.Fill(PageFront, p.X+p.W, p.Y, 8, p.H, 8, 8)
		}
		d.PutBitmap(p.data, PageFront, p.X, p.Y)
		return
	}

	fg, bg, eg := popupColors(v)
	jagged := p.Style == StyleJagged
	if jagged {
		g.scratch.Push(p.X-8, p.Y-LineHeight, p.W+16, p.H+2*LineHeight)
	} else {
		g.scratch.Push(p.X, p.Y, p.W, p.H)
	}

	if p.W > 0 && !p.Style.Borderless() {
		d.Fill(PageFront, p.X+8, p.Y+LineHeight, p.W-16, p.H-2*LineHeight, bg, bg)
		d.DrawEdge(PageFront, p.X, p.Y, p.W, p.H, eg, bg, p.Style)
	} else {
		d.Fill(PageFront, p.X, p.Y, p.W, p.H, bg, bg)
	}
	if jagged {
		d.DrawEdge(PageFront, p.X-8, p.Y-LineHeight, p.W+16, p.H+2*LineHeight, 7, 8, StyleHand)
	}

	margin := 0
	if v.Kind == ViewInventory {
		margin = InvMargin
	}
	d.Text(PageFront, p.Message, p.X+16+margin, p.Y+LineHeight, fg, bg)
	for c := p.clues; c != nil; c = c.next {
		if c.W == 0 || c.W%8 != 0 || c.X%8 != 0 {
			continue
		}
		d.Fill(PageFront, c.X, c.Y+LineHeight, c.W, 1, underline, bg)
		d.Fill(PageFront, c.X, c.Y+LineHeight+1, c.W, 1, bg, underline)
	}
}

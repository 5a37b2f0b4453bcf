package tui

// updateLayout fits the grid to the terminal: as many columns as the
// configured count allows at the configured card width, at least one.
func (m *Model) updateLayout() {
	if m.Width <= 0 {
		return
	}
	outer := m.CardWidth + cardChrome
	cols := m.Width / outer
	if cols > m.wantColumns {
		cols = m.wantColumns
	}
	if cols < 1 {
		cols = 1
	}
	m.Columns = cols
	m.ensureCursorVisible()
}

// visibleRows is how many card rows fit below the header
func (m *Model) visibleRows(cardHeight int) int {
	if m.Height <= 0 || cardHeight <= 0 {
		return 1
	}
	avail := m.Height - headerHeight - footerHeight
	rows := avail / cardHeight
	if rows < 1 {
		rows = 1
	}
	return rows
}

func (m *Model) moveCursor(delta int) {
	n := len(m.ctrl.Displayed())
	if n == 0 {
		m.Cursor = 0
		return
	}
	next := m.Cursor + delta
	if next < 0 || next >= n {
		return
	}
	m.Cursor = next
	m.ensureCursorVisible()
}

func (m *Model) clampCursor() {
	n := len(m.ctrl.Displayed())
	if m.Cursor >= n {
		m.Cursor = n - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
	m.ensureCursorVisible()
}

// ensureCursorVisible scrolls by whole rows so the cursor's row is shown
func (m *Model) ensureCursorVisible() {
	row := m.Cursor / m.Columns
	if row < m.RowOffset {
		m.RowOffset = row
	}
	rows := m.visibleRows(m.cardHeight())
	if row >= m.RowOffset+rows {
		m.RowOffset = row - rows + 1
	}
	if m.RowOffset < 0 {
		m.RowOffset = 0
	}
}

// cardHeight estimates one rendered card row: label, discount, title,
// rating, cuisines, area and image lines plus the border.
func (m *Model) cardHeight() int {
	h := 7
	if m.imageBaseURL != "" {
		h++
	}
	return h + 2
}

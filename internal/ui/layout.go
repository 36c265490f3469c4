package ui

// Layout places the background regions. The drawer itself always spans the
// full terminal height and is not part of it.
type Layout struct {
	Mode    LayoutMode
	RowsY   int
	RowsH   int
	DetailY int
	DetailH int
	HelpY   int
	StatusY int
}

func DetermineLayoutMode(cols, rows int) LayoutMode {
	if cols < 30 || rows < 8 {
		return LayoutTooSmall
	}
	if rows >= 24 {
		return LayoutWide
	}
	return LayoutCompact
}

func DetermineLayout(cols, rows int, hasDetail bool) Layout {
	l := Layout{Mode: DetermineLayoutMode(cols, rows)}
	if l.Mode == LayoutTooSmall {
		return l
	}
	l.StatusY = rows - 1
	l.HelpY = rows - 2
	l.RowsY = 1
	body := rows - 3
	if hasDetail {
		l.DetailH = body / 3
		if l.Mode == LayoutWide {
			l.DetailH = min(10, body/2)
		}
	}
	l.RowsH = body - l.DetailH
	l.DetailY = l.RowsY + l.RowsH
	return l
}

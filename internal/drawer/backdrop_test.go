package drawer

import "testing"

func TestExpandedContainsLeadingMargin(t *testing.T) {
	frame := Rect{X: 40, Y: 0, Width: 60, Height: 30}
	if !ExpandedContains(frame, Point{X: 39, Y: 5}, 2) {
		t.Fatalf("expected point inside leading margin to hit")
	}
	if ExpandedContains(frame, Point{X: 37, Y: 5}, 2) {
		t.Fatalf("expected point past margin to miss")
	}
	if ExpandedContains(frame, Point{X: 100, Y: 5}, 2) {
		t.Fatalf("expected trailing edge not to be expanded")
	}
	if ExpandedContains(frame, Point{X: 50, Y: 30}, 2) {
		t.Fatalf("expected bottom edge to be exclusive")
	}
}

func TestDismissedMenuStillOffersEdgeSwipe(t *testing.T) {
	size := Size{Width: 100, Height: 30}
	frame := MenuFrame(0, size)
	if !ExpandedContains(frame, Point{X: 99, Y: 10}, 2) {
		t.Fatalf("expected right edge of screen to grab a dismissed menu")
	}
}

func TestBackdropHitTestForwardsOnlyUnabsorbedTouches(t *testing.T) {
	b := NewBackdrop(2)
	calls := 0
	b.SetHandler(func() { calls++ })
	frame := Rect{X: 40, Y: 0, Width: 60, Height: 30}

	if !b.HitTest(Point{X: 50, Y: 3}, frame) {
		t.Fatalf("expected foreground to absorb touch")
	}
	if calls != 0 {
		t.Fatalf("expected no passthrough signal for absorbed touch")
	}
	if b.HitTest(Point{X: 5, Y: 3}, frame) {
		t.Fatalf("expected backdrop touch not to be absorbed")
	}
	if calls != 1 {
		t.Fatalf("expected exactly one passthrough signal, got %d", calls)
	}
}

func TestBackdropWithoutHandler(t *testing.T) {
	b := NewBackdrop(-5)
	if b.Margin() != 0 {
		t.Fatalf("expected negative margin to clamp to 0")
	}
	if b.HitTest(Point{X: 1, Y: 1}, Rect{X: 10, Width: 5, Height: 5}) {
		t.Fatalf("expected miss")
	}
}

package field

import (
	"testing"

	. "github.com/onsi/gomega"
	"github.com/san-kum/cosmoviz/internal/params"
)

func TestTimelineLayout(t *testing.T) {
	g := NewWithT(t)

	tl := NewTimeline(params.DefaultStages())
	tl.Seed(620, 256)
	xs, radii, y := tl.Layout()

	n := len(params.DefaultStages().Stages)
	g.Expect(xs).To(HaveLen(n))
	g.Expect(radii).To(HaveLen(n))
	g.Expect(xs[0]).To(Equal(timelinePadding))
	g.Expect(xs[n-1]).To(BeNumerically("~", 620-timelinePadding, 1e-9))
	g.Expect(y).To(BeNumerically("~", 256/2.2, 1e-9))

	for i := 1; i < n; i++ {
		g.Expect(xs[i]).To(BeNumerically(">", xs[i-1]))
	}
	for _, r := range radii {
		g.Expect(r).To(BeNumerically(">=", timelineBase))
		g.Expect(r).To(BeNumerically("<=", timelineBase+timelineSpan))
	}
}

func TestTimelineShortViewportScales(t *testing.T) {
	tl := NewTimeline(params.DefaultStages())
	tl.Seed(620, 256)
	_, full, _ := tl.Layout()

	tl.Seed(620, 128)
	_, half, _ := tl.Layout()
	for i := range full {
		if half[i] != full[i]/2 {
			t.Errorf("stage %d: expected %v, got %v", i, full[i]/2, half[i])
		}
	}
}

func TestTimelineSingleStage(t *testing.T) {
	tl := NewTimeline(params.StageSequence{Stages: []params.Stage{{Name: "Only", Color: "#FFFFFF", RelativeSize: 1}}})
	tl.Seed(300, 300)
	xs, radii, _ := tl.Layout()
	if len(xs) != 1 || xs[0] != timelinePadding {
		t.Fatalf("unexpected layout %v", xs)
	}
	if radii[0] != timelineBase+timelineSpan {
		t.Errorf("expected full radius, got %v", radii[0])
	}
}

func TestTimelineDraw(t *testing.T) {
	tl := NewTimeline(params.DefaultStages())
	tl.Seed(620, 256)
	tl.Step()
	rec := newRecorder(620, 256)
	tl.Draw(rec)

	n := len(params.DefaultStages().Stages)
	if rec.count("line") != 1 {
		t.Errorf("expected one rail, got %d", rec.count("line"))
	}
	if rec.count("circle") != n || rec.count("radial") != n {
		t.Errorf("expected %d bodies and glows", n)
	}
	if rec.count("text") != 2*n {
		t.Errorf("expected name and duration per stage, got %d labels", rec.count("text"))
	}
}

func TestTimelineEmpty(t *testing.T) {
	tl := NewTimeline(params.StageSequence{})
	tl.Seed(100, 100)
	rec := newRecorder(100, 100)
	tl.Draw(rec)
	if len(rec.calls) != 1 {
		t.Errorf("expected only a clear, got %d calls", len(rec.calls))
	}
}

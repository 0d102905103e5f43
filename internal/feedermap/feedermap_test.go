package feedermap

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/good-yellow-bee/powerconnect/internal/models"
)

const eps = 1e-9

func near(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func sampleFeeders() []Feeder {
	return []Feeder{
		{ID: "OUT-7823", Label: "Main-F12", Status: models.StatusOutage},
		{ID: "OUT-7824", Label: "Industrial-F3", Status: models.StatusOutage},
		{ID: "OUT-7825", Label: "Residential-F7", Status: models.StatusMaintenance},
		{ID: "OUT-7826", Label: "Commercial-F5", Status: models.StatusOnline},
	}
}

func TestEndpoint_Formula(t *testing.T) {
	sizes := [][2]float64{{800, 400}, {300, 600}, {500, 500}}
	for _, size := range sizes {
		w, h := size[0], size[1]
		for n := 1; n <= 12; n++ {
			for i := 0; i < n; i++ {
				angle := 2 * math.Pi * float64(i) / float64(n)
				length := 0.4 * math.Min(w, h)
				wantX := w/2 + math.Cos(angle)*length
				wantY := h/2 + math.Sin(angle)*length

				got := Endpoint(i, n, w, h)
				if !near(got.X, wantX) || !near(got.Y, wantY) {
					t.Fatalf("Endpoint(%d, %d, %v, %v) = %+v, want (%v, %v)", i, n, w, h, got, wantX, wantY)
				}
			}
		}
	}
}

func TestLabelPoint_IsFurtherAlongRay(t *testing.T) {
	w, h := 800.0, 400.0
	c := Center(w, h)
	for i := 0; i < 4; i++ {
		e := Endpoint(i, 4, w, h)
		l := LabelPoint(i, 4, w, h)
		de := math.Hypot(e.X-c.X, e.Y-c.Y)
		dl := math.Hypot(l.X-c.X, l.Y-c.Y)
		if !near(dl-de, LabelOffset) {
			t.Errorf("label offset = %v, want %v", dl-de, LabelOffset)
		}
	}
}

func TestLayout_FirstFeederOnPositiveX(t *testing.T) {
	p := Layout(sampleFeeders(), 800, 400)
	if len(p) != 4 {
		t.Fatalf("len = %d, want 4", len(p))
	}
	if !near(p[0].Endpoint.X, 400+160) || !near(p[0].Endpoint.Y, 200) {
		t.Errorf("first endpoint = %+v, want (560, 200)", p[0].Endpoint)
	}
	if !near(p[1].Endpoint.X, 400) || !near(p[1].Endpoint.Y, 360) {
		t.Errorf("second endpoint = %+v, want (400, 360)", p[1].Endpoint)
	}
}

func TestHitTest(t *testing.T) {
	feeders := sampleFeeders()
	w, h := 800.0, 400.0

	for i, f := range feeders {
		p := Endpoint(i, len(feeders), w, h)
		got, ok := HitTest(feeders, w, h, p.X, p.Y)
		if !ok {
			t.Fatalf("click at endpoint of %s selected nothing", f.ID)
		}
		if got.ID != f.ID {
			t.Errorf("selected %s, want %s", got.ID, f.ID)
		}
	}

	tests := []struct {
		name   string
		x, y   float64
		wantOK bool
	}{
		{"within radius", 565, 203, true},
		{"exactly on radius", 570, 200, false},
		{"center", 400, 200, false},
		{"corner", 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := HitTest(feeders, w, h, tt.x, tt.y)
			if ok != tt.wantOK {
				t.Errorf("HitTest(%v, %v) ok = %v, want %v", tt.x, tt.y, ok, tt.wantOK)
			}
		})
	}
}

func TestHitTest_Empty(t *testing.T) {
	if _, ok := HitTest(nil, 800, 400, 400, 200); ok {
		t.Error("empty feeder list should never hit")
	}
}

type call struct {
	op    string
	color string
	width float64
	text  string
}

type recorder struct {
	w, h  float64
	calls []call
}

func (r *recorder) Size() (float64, float64) { return r.w, r.h }
func (r *recorder) Clear()                    { r.calls = append(r.calls, call{op: "clear"}) }
func (r *recorder) Line(x1, y1, x2, y2 float64, color string, width float64) {
	r.calls = append(r.calls, call{op: "line", color: color, width: width})
}
func (r *recorder) Circle(cx, cy, rad float64, color string) {
	r.calls = append(r.calls, call{op: "circle", color: color})
}
func (r *recorder) Text(x, y float64, text, color string, size float64) {
	r.calls = append(r.calls, call{op: "text", color: color, text: text})
}

func TestRender_ColorsAndEmphasis(t *testing.T) {
	rec := &recorder{w: 90, h: 60}
	Render(rec, sampleFeeders(), "OUT-7825")

	if rec.calls[0].op != "clear" {
		t.Fatalf("first op = %s, want clear", rec.calls[0].op)
	}

	var feederLines []call
	var labels []string
	for _, c := range rec.calls {
		if c.op == "line" && c.color != GridColor {
			feederLines = append(feederLines, c)
		}
		if c.op == "text" {
			labels = append(labels, c.text)
		}
	}

	if len(feederLines) != 4 {
		t.Fatalf("feeder lines = %d, want 4", len(feederLines))
	}
	wantColors := []string{"#ef4444", "#ef4444", "#f59e0b", "#22c55e"}
	wantWidths := []float64{2, 2, 3, 2}
	for i, l := range feederLines {
		if l.color != wantColors[i] {
			t.Errorf("line %d color = %s, want %s", i, l.color, wantColors[i])
		}
		if l.width != wantWidths[i] {
			t.Errorf("line %d width = %v, want %v", i, l.width, wantWidths[i])
		}
	}
	if strings.Join(labels, ",") != "Main-F12,Industrial-F3,Residential-F7,Commercial-F5" {
		t.Errorf("labels = %v", labels)
	}
}

func TestRender_GridLines(t *testing.T) {
	rec := &recorder{w: 90, h: 60}
	Render(rec, nil, "")

	grid := 0
	for _, c := range rec.calls {
		if c.op == "line" && c.color == GridColor {
			grid++
		}
	}
	// y = 0, 30 and x = 0, 30, 60
	if grid != 5 {
		t.Errorf("grid lines = %d, want 5", grid)
	}
}

func TestRender_NilSurface(t *testing.T) {
	Render(nil, sampleFeeders(), "")
}

func TestRender_ZeroSize(t *testing.T) {
	rec := &recorder{}
	Render(rec, sampleFeeders(), "")
	if len(rec.calls) != 0 {
		t.Errorf("zero-size surface drew %d ops", len(rec.calls))
	}
}

func TestSVG_EscapesLabels(t *testing.T) {
	svg := NewSVG(200, 100)
	Render(svg, []Feeder{{ID: "x", Label: "A&B <F1>", Status: models.StatusOnline}}, "")

	var buf bytes.Buffer
	if _, err := svg.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, `<svg xmlns="http://www.w3.org/2000/svg" width="200" height="100"`) {
		t.Errorf("unexpected header: %.80s", out)
	}
	if !strings.Contains(out, "A&amp;B &lt;F1&gt;") {
		t.Error("label not escaped")
	}
	if !strings.Contains(out, `fill="#22c55e"`) {
		t.Error("missing online node colour")
	}
}

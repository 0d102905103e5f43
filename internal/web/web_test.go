package web

import (
	"regexp"
	"strings"
	"testing"
)

func cssRule(t *testing.T, css, selector string) string {
	t.Helper()
	re := regexp.MustCompile(`(?m)^` + regexp.QuoteMeta(selector) + `\s*\{([^}]*)\}`)
	m := re.FindStringSubmatch(css)
	if m == nil {
		t.Fatalf("no rule for %s", selector)
	}
	return m[1]
}

func TestStylesheet_FeederMapIsNotScaled(t *testing.T) {
	data, err := staticFS.ReadFile("static/app.css")
	if err != nil {
		t.Fatalf("read app.css: %v", err)
	}
	css := string(data)

	img := cssRule(t, css, `.feeder-map input[type="image"]`)
	if !strings.Contains(img, "max-width: none") {
		t.Errorf("map image rule = %q, want max-width: none", img)
	}
	for _, bad := range []string{"100%", "width: auto", "height: auto"} {
		if strings.Contains(img, bad) {
			t.Errorf("map image rule contains %q and would scale the image", bad)
		}
	}

	frame := cssRule(t, css, ".map-frame")
	if !strings.Contains(frame, "overflow: auto") {
		t.Errorf("map frame rule = %q, want overflow: auto", frame)
	}
}

package classify

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		title string
		block string
		want  Category
	}{
		{"figure drawing in title", "Figure Drawing Long Pose", "", FigureDrawing},
		{"life drawing in block", "Thursday Session", "life drawing, all levels", FigureDrawing},
		{"compound figure terms", "Figure study: drawing the gesture", "", FigureDrawing},
		{"drink and draw compound", "Drink & Draw", "", DrinkAndDraw},
		{"madrone implies drink and draw", "Sketch Night", "at Madrone Art Bar", DrinkAndDraw},
		{"drink alone is not enough", "Drinks with the curators", "", Workshop},
		{"zine", "Zine Making 101", "", Zine},
		{"signing", "Graphic Novel Signing with the author", "", Signing},
		{"opening reception", "Spring Show Opening Reception", "", Opening},
		{"exhibition", "New exhibit: Magic Latitudes", "", Exhibition},
		{"market", "Holiday Art Market", "", Market},
		{"workshop terms", "Intro to Linocut", "", Workshop},
		{"fallback", "Hobby Hang", "", "Syzygy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fallback := tt.want
			if tt.want != "Syzygy" {
				fallback = Workshop
			}
			if got := Classify(tt.title, tt.block, fallback); got != tt.want {
				t.Errorf("Classify(%q, %q) = %q, want %q", tt.title, tt.block, got, tt.want)
			}
		})
	}
}

// A title carrying both Figure Drawing and Drink & Draw keywords resolves to
// Figure Drawing, the higher-precedence category.
func TestClassifyPrecedence(t *testing.T) {
	got := Classify("Drink and Draw: figure drawing edition", "", Workshop)
	if got != FigureDrawing {
		t.Errorf("Classify = %q, want %q", got, FigureDrawing)
	}
}

func TestClassifyIsCaseInsensitive(t *testing.T) {
	if got := Classify("FIGURE DRAWING", "", Workshop); got != FigureDrawing {
		t.Errorf("Classify = %q, want %q", got, FigureDrawing)
	}
}

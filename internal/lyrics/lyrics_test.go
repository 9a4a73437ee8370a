package lyrics

import (
	"strings"
	"testing"
)

func TestLyricsFor(t *testing.T) {
	t.Run("every style has lyrics", func(t *testing.T) {
		for _, style := range Styles() {
			text, ok := LyricsFor(style)
			if !ok {
				t.Errorf("missing lyrics for %q", style)
			}
			if lines := strings.Count(text, "\n") + 1; lines != 4 {
				t.Errorf("expected 4 lines for %q, got %d", style, lines)
			}
		}
	})

	t.Run("unknown style", func(t *testing.T) {
		if _, ok := LyricsFor("Norwegian black metal"); ok {
			t.Error("expected no lyrics for unknown style")
		}
	})

	t.Run("Styles returns a copy", func(t *testing.T) {
		got := Styles()
		got[0] = "mutated"
		if Styles()[0] != EmotionalBallad {
			t.Error("Styles should not expose the internal slice")
		}
	})
}

func TestField(t *testing.T) {
	t.Run("selecting a known style replaces the text exactly", func(t *testing.T) {
		f := NewField("my own words")

		if !f.Select("Turkish folk song, traditional instruments, emotional vocals") {
			t.Fatal("expected text to be replaced")
		}

		want := "Dağlar yüksek, yollar taşlı,\nGurbet elde gönül yaşlı.\nAnadolu'nun türküsü,\nYüreğimde yankısı."
		if f.Text() != want {
			t.Errorf("unexpected text %q", f.Text())
		}
	})

	t.Run("selecting an unknown style keeps prior text", func(t *testing.T) {
		f := NewField("")
		f.Select(PopBallad)
		before := f.Text()

		if f.Select("unknown") {
			t.Error("expected no replacement")
		}
		if f.Text() != before {
			t.Errorf("text changed to %q", f.Text())
		}
		if f.SelectedStyle() != "unknown" {
			t.Errorf("expected selection to be recorded, got %q", f.SelectedStyle())
		}
	})
}

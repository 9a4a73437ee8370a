// Package lyrics maps a musical style label to a pre-written sample lyric block.
package lyrics

// Style labels, in the order the style picker lists them.
const (
	EmotionalBallad = "Turkish emotional ballad, acoustic guitar, soft piano"
	FolkSong        = "Turkish folk song, traditional instruments, emotional vocals"
	PopBallad       = "Turkish pop ballad, contemporary, heartfelt vocals"
	AcousticSong    = "Turkish acoustic song, guitar, intimate, emotional"
	RomanticBallad  = "Turkish romantic ballad, soft melody, love song"
)

var styles = []string{EmotionalBallad, FolkSong, PopBallad, AcousticSong, RomanticBallad}

var samples = map[string]string{
	EmotionalBallad: `Gece iner, başın yastıkta ağır,
Düşünceler döner, kalbinde bir çağrı.
Uyku kaçar, gözlerin dalar,
Endişe sarar, ruhunu yorar.`,

	FolkSong: `Dağlar yüksek, yollar taşlı,
Gurbet elde gönül yaşlı.
Anadolu'nun türküsü,
Yüreğimde yankısı.`,

	PopBallad: `Şehrin ışıkları yanıyor,
Gecenin sessizliğinde.
Hayallerim uçuyor,
Müziğin ritmiyle.`,

	AcousticSong: `Gitar telleri titriyor,
Sessizlikte yankılanıyor.
Kalbimin şarkısı,
Sevdanın melodisi.`,

	RomanticBallad: `Sevda gelir, kalbe sığmaz,
Gözlerin güneş, her şey aydınlanır.
Ellerim titrer, sözler bulanır,
Aşkın rüzgarı, içimi kanatır.`,
}

// LyricsFor returns the sample lyrics for style, or false when the style has none.
func LyricsFor(style string) (string, bool) {
	text, ok := samples[style]
	return text, ok
}

// Styles returns the known style labels in display order.
func Styles() []string {
	out := make([]string, len(styles))
	copy(out, styles)
	return out
}

// Field is the editable lyrics text box.
type Field struct {
	text  string
	style string
}

// NewField creates a [Field] with initial text.
func NewField(text string) *Field {
	return &Field{text: text}
}

func (f *Field) Text() string          { return f.text }
func (f *Field) SetText(text string)   { f.text = text }
func (f *Field) SelectedStyle() string { return f.style }

// Select records style as the current selection and, when it has sample lyrics, replaces the text with them.
// It reports whether the text was replaced; unknown styles leave the text untouched.
func (f *Field) Select(style string) bool {
	f.style = style
	text, ok := LyricsFor(style)
	if !ok {
		return false
	}
	f.text = text
	return true
}

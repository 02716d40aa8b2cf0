package chart

// Colors are the series colours, assigned by selection index and cycling.
var Colors = []string{
	"#8884d8", "#82ca9d", "#ffc658", "#ff7300",
	"#665191", "#d45087", "#2f4b7c", "#f95d6a",
}

// ColorAt returns the colour of the i-th selected series.
func ColorAt(i int) string {
	if i < 0 {
		i = -i
	}
	return Colors[i%len(Colors)]
}

// Palette maps a series key to its colour.
type Palette map[string]string

// NewPalette assigns colours to keys in order.
func NewPalette(keys []string) Palette {
	p := make(Palette, len(keys))
	for i, k := range keys {
		if _, ok := p[k]; !ok {
			p[k] = ColorAt(i)
		}
	}
	return p
}

// Color returns the colour of key, or the first palette colour when unknown.
func (p Palette) Color(key string) string {
	if c, ok := p[key]; ok {
		return c
	}
	return Colors[0]
}

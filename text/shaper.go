package text

import (
	"sync"

	"github.com/go-text/typesetting/di"
	gtfont "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"
)

// cluster is a run of source text that shaping placed as one unit.
type cluster struct {
	start, end int // rune range in the shaped text
	x          fixed.Int26_6
}

// shaperPool pools HarfbuzzShaper instances; a shaper keeps an internal
// buffer and is not safe for concurrent use.
var shaperPool = sync.Pool{
	New: func() any {
		return &shaping.HarfbuzzShaper{}
	},
}

// shape lays out runes left to right at size pixels and returns the clusters
// in text order together with the total advance.
func shape(f *gtfont.Font, runes []rune, size float64) ([]cluster, fixed.Int26_6) {
	if len(runes) == 0 {
		return nil, 0
	}
	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      gtfont.NewFace(f),
		Size:      fixed.Int26_6(size * 64),
		Script:    detectScript(runes),
		Language:  language.NewLanguage("en"),
	}

	hb := shaperPool.Get().(*shaping.HarfbuzzShaper)
	out := hb.Shape(input)
	shaperPool.Put(hb)

	var (
		clusters []cluster
		pen      fixed.Int26_6
	)
	for _, g := range out.Glyphs {
		idx := g.TextIndex()
		if n := len(clusters); n == 0 || idx > clusters[n-1].start {
			clusters = append(clusters, cluster{start: idx, x: pen + g.XOffset})
		}
		pen += g.Advance
	}
	for i := range clusters {
		if i+1 < len(clusters) {
			clusters[i].end = clusters[i+1].start
		} else {
			clusters[i].end = len(runes)
		}
	}
	return clusters, pen
}

// detectScript returns the script of the first non-space rune.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}

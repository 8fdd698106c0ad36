package prefilter

import (
	"github.com/coregx/ahocorasick"

	"github.com/Dophin2009/regexp2/literal"
)

// ahoCorasickPrefilter searches for any of a set of literals with an
// Aho-Corasick automaton. The automaton reports the occurrence that ends
// first; New only builds it over literals of one length, where that is also
// the occurrence that starts first.
type ahoCorasickPrefilter struct {
	auto     *ahocorasick.Automaton
	complete bool
	litLen   int
}

func newAhoCorasickPrefilter(seq *literal.Seq, complete bool) (Prefilter, error) {
	builder := ahocorasick.NewBuilder()
	for i := 0; i < seq.Len(); i++ {
		builder.AddPattern(seq.Get(i).Bytes)
	}
	auto, err := builder.Build()
	if err != nil {
		return nil, err
	}
	p := &ahoCorasickPrefilter{auto: auto, complete: complete}
	if complete {
		p.litLen = sameLen(seq)
	}
	return p, nil
}

func (p *ahoCorasickPrefilter) Find(haystack []byte, start int) int {
	if start >= len(haystack) {
		return -1
	}
	m := p.auto.Find(haystack, start)
	if m == nil {
		return -1
	}
	return m.Start
}

func (p *ahoCorasickPrefilter) IsComplete() bool {
	return p.complete
}

func (p *ahoCorasickPrefilter) LiteralLen() int {
	return p.litLen
}

// Package charreader implements the UTF-8 safe single-character source
// stream consumed by the lexer. It buffers the whole source in memory (HDL
// sources are small) and exposes one rune of lookahead plus an unget of the
// most recently read rune, the two operations the lexer needs to tokenize
// without its own backtracking buffer.
package charreader

import "unicode/utf8"

// EOF is returned by Reader.Cur once the source is exhausted.
const EOF rune = -1

// Reader is a lazy sequence of runes over a byte source, positioned so that
// Cur always holds the "current" rune (EOF past the end). Advance moves to
// the next rune; Peek looks one byte ahead without moving.
type Reader struct {
	src []byte
	cur rune
	off int // byte offset of cur
	roff int // byte offset following cur

	prevOff, prevROff int
	prevCur           rune
	ungotten          bool
}

// New creates a Reader over src and positions it on the first rune.
func New(src []byte) *Reader {
	r := &Reader{src: src}
	r.Advance()
	return r
}

// Cur returns the current rune, or EOF if the source is exhausted.
func (r *Reader) Cur() rune { return r.cur }

// Offset returns the byte offset of the current rune in the source.
func (r *Reader) Offset() int { return r.off }

// Peek returns the byte following the current rune without advancing, or 0
// at end of source. It is a byte rather than a rune peek because every
// caller only ever tests it against ASCII punctuation.
func (r *Reader) Peek() byte {
	if r.roff < len(r.src) {
		return r.src[r.roff]
	}
	return 0
}

// Advance reads the next rune into Cur.
func (r *Reader) Advance() {
	r.prevOff, r.prevROff, r.prevCur = r.off, r.roff, r.cur
	r.ungotten = false

	if r.roff >= len(r.src) {
		r.off = len(r.src)
		r.cur = EOF
		return
	}

	r.off = r.roff
	c, w := rune(r.src[r.roff]), 1
	if c >= utf8.RuneSelf {
		c, w = utf8.DecodeRune(r.src[r.roff:])
	}
	r.roff += w
	r.cur = c
}

// Unget restores the previous rune and position. Calling it twice in a row
// without an intervening Advance is a programmer error: it panics rather
// than silently corrupting the stream.
func (r *Reader) Unget() {
	if r.ungotten {
		panic("charreader: Unget called twice consecutively")
	}
	r.off, r.roff, r.cur = r.prevOff, r.prevROff, r.prevCur
	r.ungotten = true
}

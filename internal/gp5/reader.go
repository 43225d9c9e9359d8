package gp5

import (
	"encoding/binary"
	"errors"
	"io"
)

// reader is the mirror image of writer: it exists only so this
// package can round-trip its own output in tests. There is no
// independent third-party GP5 parser anywhere in the example pool to
// validate against, so self-consistency is the strongest check
// available here.
type reader struct {
	buf []byte
	pos int
}

func newReader(b []byte) *reader { return &reader{buf: b} }

func (r *reader) u8() (byte, error) {
	if r.pos >= len(r.buf) {
		return 0, io.ErrUnexpectedEOF
	}
	v := r.buf[r.pos]
	r.pos++
	return v, nil
}

func (r *reader) i32() (int32, error) {
	if r.pos+4 > len(r.buf) {
		return 0, io.ErrUnexpectedEOF
	}
	v := int32(binary.LittleEndian.Uint32(r.buf[r.pos:]))
	r.pos += 4
	return v, nil
}

func (r *reader) skip(n int) error {
	if r.pos+n > len(r.buf) {
		return io.ErrUnexpectedEOF
	}
	r.pos += n
	return nil
}

func (r *reader) gpString() (string, error) {
	n, err := r.i32()
	if err != nil {
		return "", err
	}
	length, err := r.u8()
	if err != nil {
		return "", err
	}
	if r.pos+int(length) > len(r.buf) {
		return "", io.ErrUnexpectedEOF
	}
	s := string(r.buf[r.pos : r.pos+int(length)])
	r.pos += int(length)
	_ = n
	return s, nil
}

func (r *reader) fixedString(width int) (string, error) {
	length, err := r.u8()
	if err != nil {
		return "", err
	}
	if int(length) > width || r.pos+width > len(r.buf) {
		return "", io.ErrUnexpectedEOF
	}
	s := string(r.buf[r.pos : r.pos+int(length)])
	r.pos += width
	return s, nil
}

// ReadNote is a flattened (string, fret, velocity, measure, duration)
// record recovered from a parsed document, used by round-trip tests.
type ReadNote struct {
	String   int
	Fret     int
	Velocity int
	Measure  int
	Duration int8
}

// Document is the minimal parsed shape this reader recovers: tempo and
// the flattened note list across all measures.
type Document struct {
	TempoBPM  int
	NumMeasures int
	Notes     []ReadNote
}

// Parse reads back a document written by Build. It understands exactly
// the subset of the format Build emits and is not a general GP5 parser.
func Parse(data []byte) (Document, error) {
	r := newReader(data)
	var doc Document

	if _, err := r.gpString(); err != nil { // version
		return doc, err
	}

	for i := 0; i < 9; i++ { // title,subtitle,artist,album,lyricsAuthor,musicAuthor,copyright,tabAuthor,instructions
		if _, err := r.gpString(); err != nil {
			return doc, err
		}
	}
	if _, err := r.i32(); err != nil { // notice line count
		return doc, err
	}
	if _, err := r.u8(); err != nil { // triplet feel
		return doc, err
	}
	if _, err := r.u8(); err != nil { // lyrics track
		return doc, err
	}
	if _, err := r.gpString(); err != nil { // lyrics text
		return doc, err
	}
	if _, err := r.i32(); err != nil { // page layout
		return doc, err
	}
	tempo, err := r.i32()
	if err != nil {
		return doc, err
	}
	doc.TempoBPM = int(tempo)
	if _, err := r.i32(); err != nil { // key signature
		return doc, err
	}
	if _, err := r.i32(); err != nil { // octave
		return doc, err
	}

	trackCount, err := r.i32()
	if err != nil {
		return doc, err
	}
	if trackCount != 1 {
		return doc, errors.New("gp5: unexpected track count")
	}
	if _, err := r.u8(); err != nil { // flags
		return doc, err
	}
	if _, err := r.fixedString(40); err != nil { // name
		return doc, err
	}
	if _, err := r.i32(); err != nil { // string count
		return doc, err
	}
	for s := 0; s < 7; s++ {
		if _, err := r.i32(); err != nil {
			return doc, err
		}
	}
	for i := 0; i < 7; i++ { // port,program,channel,channel-fx,frets,capo,color
		if _, err := r.i32(); err != nil {
			return doc, err
		}
	}

	numMeasures, err := r.i32()
	if err != nil {
		return doc, err
	}
	doc.NumMeasures = int(numMeasures)
	for m := 0; m < int(numMeasures); m++ {
		if _, err := r.u8(); err != nil {
			return doc, err
		}
		if _, err := r.u8(); err != nil {
			return doc, err
		}
		if _, err := r.u8(); err != nil {
			return doc, err
		}
	}

	for m := 0; m < int(numMeasures); m++ {
		if _, err := r.i32(); err != nil { // voice count
			return doc, err
		}
		beatCount, err := r.i32()
		if err != nil {
			return doc, err
		}
		for b := 0; b < int(beatCount); b++ {
			flags, err := r.u8()
			if err != nil {
				return doc, err
			}
			dur, err := r.i32()
			if err != nil {
				return doc, err
			}
			noteCount, err := r.i32()
			if err != nil {
				return doc, err
			}
			if flags&0x40 != 0 {
				continue // rest beat, no note payload
			}
			for n := 0; n < int(noteCount); n++ {
				str, err := r.i32()
				if err != nil {
					return doc, err
				}
				fret, err := r.i32()
				if err != nil {
					return doc, err
				}
				vel, err := r.i32()
				if err != nil {
					return doc, err
				}
				doc.Notes = append(doc.Notes, ReadNote{
					String: int(str), Fret: int(fret), Velocity: int(vel),
					Measure: m, Duration: int8(dur),
				})
			}
		}
	}

	return doc, nil
}

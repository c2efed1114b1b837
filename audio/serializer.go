package audio

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Decoder turns a serialized parameter blob into Params. Fields the blob
// does not carry keep their value from defaults.
type Decoder interface {
	Decode(b []byte, defaults Params) (Params, error)
}

// BlobVersion is the only binary layout BinaryCodec reads and writes.
const BlobVersion = 1

const blobHeaderSize = 2

// BlobSize is the length of a complete blob.
const BlobSize = blobHeaderSize + numFloatFields*4

// BinaryCodec reads and writes the compact binary layout: a version byte, a
// wave shape byte, then the float fields as little-endian float32 in
// settings-string order.
type BinaryCodec struct{}

var _ Decoder = BinaryCodec{}

// Decode implements Decoder. Short blobs are accepted as long as they end on
// a field boundary.
func (BinaryCodec) Decode(b []byte, defaults Params) (Params, error) {
	p := defaults
	if len(b) < blobHeaderSize {
		return p, fmt.Errorf("%w: %d bytes", ErrBadBlob, len(b))
	}
	if b[0] != BlobVersion {
		return p, fmt.Errorf("%w: unknown version %d", ErrBadBlob, b[0])
	}
	if len(b) > BlobSize {
		return p, fmt.Errorf("%w: %d bytes, want at most %d", ErrBadBlob, len(b), BlobSize)
	}
	body := b[blobHeaderSize:]
	if len(body)%4 != 0 {
		return p, fmt.Errorf("%w: truncated field at byte %d", ErrBadBlob, blobHeaderSize+len(body)/4*4)
	}

	p.WaveType = WaveType(b[1])
	if !p.WaveType.Valid() {
		return p, invalidWaveType(p.WaveType)
	}

	fields := p.floatFields()
	for i := 0; i*4 < len(body); i++ {
		bits := binary.LittleEndian.Uint32(body[i*4:])
		*fields[i] = float64(math.Float32frombits(bits))
	}
	return p, nil
}

// Encode writes p as a complete blob. Values are narrowed to float32.
func (BinaryCodec) Encode(p Params) []byte {
	b := make([]byte, BlobSize)
	b[0] = BlobVersion
	b[1] = byte(p.WaveType)
	for i, f := range p.floatFields() {
		binary.LittleEndian.PutUint32(b[blobHeaderSize+i*4:], math.Float32bits(float32(*f)))
	}
	return b
}

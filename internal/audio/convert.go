package audio

import (
	"encoding/binary"
	"math"
)

const float32ByteSize = 4

// BytesToFloat32 reinterprets a little-endian f32le byte slice as
// samples. Returns nil if the input length isn't a multiple of 4.
func BytesToFloat32(b []byte) []float32 {
	if len(b)%float32ByteSize != 0 {
		return nil
	}
	samples := make([]float32, len(b)/float32ByteSize)
	for i := range samples {
		bits := binary.LittleEndian.Uint32(b[i*float32ByteSize:])
		samples[i] = math.Float32frombits(bits)
	}
	return samples
}

// Float32ToBytes encodes samples as little-endian f32le bytes.
func Float32ToBytes(samples []float32) []byte {
	buf := make([]byte, len(samples)*float32ByteSize)
	for i, s := range samples {
		binary.LittleEndian.PutUint32(buf[i*float32ByteSize:], math.Float32bits(s))
	}
	return buf
}

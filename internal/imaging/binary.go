package imaging

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

var binaryMagic = [4]byte{'G', 'B', 'I', 'M'}

const headerSize = 16

// MarshalBinary encodes the image as magic, width, height, channels and the
// raw little-endian float32 buffer.
func (im *Image) MarshalBinary() ([]byte, error) {
	buf := make([]byte, headerSize+4*len(im.Data))
	copy(buf, binaryMagic[:])
	binary.LittleEndian.PutUint32(buf[4:], uint32(im.W))
	binary.LittleEndian.PutUint32(buf[8:], uint32(im.H))
	binary.LittleEndian.PutUint32(buf[12:], uint32(im.C))
	for i, v := range im.Data {
		binary.LittleEndian.PutUint32(buf[headerSize+4*i:], math.Float32bits(v))
	}
	return buf, nil
}

// UnmarshalBinary decodes data produced by MarshalBinary
func (im *Image) UnmarshalBinary(data []byte) error {
	if len(data) < headerSize || !bytes.Equal(data[:4], binaryMagic[:]) {
		return errors.New("invalid image header")
	}
	w := int(binary.LittleEndian.Uint32(data[4:]))
	h := int(binary.LittleEndian.Uint32(data[8:]))
	c := int(binary.LittleEndian.Uint32(data[12:]))
	if want := headerSize + 4*w*h*c; len(data) != want {
		return fmt.Errorf("invalid image payload: expected %d bytes, got %d", want, len(data))
	}

	im.W, im.H, im.C = w, h, c
	im.Data = make([]float32, w*h*c)
	for i := range im.Data {
		im.Data[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[headerSize+4*i:]))
	}
	return nil
}

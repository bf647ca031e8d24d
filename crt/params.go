package crt

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"reflect"
)

// ParamsByteSize is the packed size of the uniform block: four float32s.
const ParamsByteSize = 16

// Bytes packs the block for the uniform buffer: little-endian scalars in
// declared field order, matching the WGSL struct layout bit-exactly.
func (p Params) Bytes() []byte {
	buf := new(bytes.Buffer)
	readUniformBytes(reflect.ValueOf(p), buf)
	return buf.Bytes()
}

func readUniformBytes(field reflect.Value, buf *bytes.Buffer) {
	switch field.Kind() {
	case reflect.Struct:
		for i := 0; i < field.NumField(); i++ {
			readUniformBytes(field.Field(i), buf)
		}

	case reflect.Array, reflect.Slice:
		for i := 0; i < field.Len(); i++ {
			readUniformBytes(field.Index(i), buf)
		}

	case reflect.Float32, reflect.Uint32, reflect.Int32:
		if err := binary.Write(buf, binary.LittleEndian, field.Interface()); err != nil {
			panic(fmt.Errorf("failed to write uniform field: %w", err))
		}

	default:
		panic(fmt.Errorf("unsupported uniform type: %v", field.Kind()))
	}
}

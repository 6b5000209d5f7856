package render

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/sdfui/compile"
)

// CommandStride is the size of one encoded command in bytes. The WGSL
// evaluator reads the program as an array of structs with 16-byte
// alignment, so the 92 bytes of payload pad to 96.
const CommandStride = 96

// UniformStride is the size of the encoded frame uniforms in bytes.
const UniformStride = 32

// EncodeCommands serializes a command program into the little-endian
// layout the evaluator shader reads from its storage buffer.
func EncodeCommands(cmds []compile.Command) []byte {
	out := make([]byte, len(cmds)*CommandStride)
	for i, cmd := range cmds {
		encodeCommand(out[i*CommandStride:(i+1)*CommandStride], cmd)
	}
	return out
}

func encodeCommand(dst []byte, cmd compile.Command) {
	le := binary.LittleEndian
	le.PutUint32(dst[0:], uint32(cmd.Opcode))
	le.PutUint32(dst[4:], math.Float32bits(cmd.StrokeWidth))
	le.PutUint32(dst[8:], math.Float32bits(cmd.Param))
	le.PutUint32(dst[12:], cmd.SmoothFunc)
	off := 16
	for _, row := range cmd.Slots {
		for _, v := range row {
			le.PutUint32(dst[off:], math.Float32bits(v))
			off += 4
		}
	}
	le.PutUint32(dst[80:], uint32(cmd.Operation))
	le.PutUint32(dst[84:], math.Float32bits(cmd.SmoothParam))
	le.PutUint32(dst[88:], cmd.Target)
	// Bytes 92..96 stay zero padding.
}

// EncodeUniforms serializes the per-dispatch uniforms: the redraw
// rectangle in pixels followed by the command count and register depth.
// A program with no redraw rectangle encodes an empty rectangle.
func EncodeUniforms(p compile.Program, dst []byte) []byte {
	if dst == nil {
		dst = make([]byte, 0, UniformStride)
	}
	le := binary.LittleEndian

	var rect [4]float32
	if p.Redraw != nil {
		rect = [4]float32{p.Redraw.X, p.Redraw.Y, p.Redraw.W, p.Redraw.H}
	}
	for _, v := range rect {
		dst = le.AppendUint32(dst, math.Float32bits(v))
	}
	dst = le.AppendUint32(dst, uint32(len(p.Commands)))
	dst = le.AppendUint32(dst, p.RegisterDepth)
	// Pad to 16-byte alignment.
	dst = le.AppendUint32(dst, 0)
	dst = le.AppendUint32(dst, 0)
	return dst
}

package compile

import (
	"testing"

	sdfui "github.com/gogpu/sdfui"
	"github.com/gogpu/sdfui/paint"
	"github.com/gogpu/sdfui/shape"
)

func solidRect(l, t, r, b float32) shape.Shape {
	return shape.From(shape.Rectangle{LT: sdfui.Pt(l, t), RB: sdfui.Pt(r, b)})
}

func layer(s shape.Shape) paint.ShapeToDraw {
	return paint.ShapeToDraw{
		Shape: s,
		Fill:  shape.Solid{Color: sdfui.Black},
		Blend: shape.DefaultBlend,
		Clip:  sdfui.WindowRect(),
	}
}

func TestCompileSingleShape(t *testing.T) {
	cmds, scratch, ok := compileShape(layer(solidRect(0, 0, 10, 10)), nil)
	if !ok {
		t.Fatal("compile failed")
	}
	if scratch != 1 {
		t.Errorf("scratch = %d, want 1", scratch)
	}

	// Draw into 1, clip AND into 1, composite into 0, blend, fill.
	wantOps := []Opcode{OpDrawRectangle, OpDrawRectangle, OpLoad, OpSetBlendMode, OpFill}
	if len(cmds) != len(wantOps) {
		t.Fatalf("command count = %d, want %d", len(cmds), len(wantOps))
	}
	for i, want := range wantOps {
		if cmds[i].Opcode != want {
			t.Errorf("cmd %d opcode = %v, want %v", i, cmds[i].Opcode, want)
		}
	}

	if cmds[0].Operation != OperationReplace || cmds[0].Target != 1 {
		t.Errorf("draw = %v into %d, want Replace into 1", cmds[0].Operation, cmds[0].Target)
	}
	if cmds[1].Operation != OperationAnd || cmds[1].Target != 1 {
		t.Errorf("clip = %v into %d, want And into 1", cmds[1].Operation, cmds[1].Target)
	}
	if cmds[2].Operation != OperationOr || cmds[2].Target != 0 || cmds[2].Slots[0][0] != 1 {
		t.Errorf("composite = %+v, want Load 1 Or into 0", cmds[2])
	}
	if cmds[3].Slots[0][0] != float32(shape.BlendAlphaAdd) {
		t.Errorf("blend slot = %v, want AlphaAdd", cmds[3].Slots[0][0])
	}
}

func TestCompileUnionUsesOneScratchRegister(t *testing.T) {
	s := solidRect(0, 0, 10, 10).Union(solidRect(20, 0, 30, 10))
	cmds, scratch, ok := compileShape(layer(s), nil)
	if !ok {
		t.Fatal("compile failed")
	}
	if scratch != 1 {
		t.Errorf("scratch = %d, want 1", scratch)
	}

	if cmds[0].Operation != OperationReplace || cmds[0].Target != 1 {
		t.Errorf("lhs = %v into %d, want Replace into 1", cmds[0].Operation, cmds[0].Target)
	}
	if cmds[1].Operation != OperationOr || cmds[1].Target != 1 {
		t.Errorf("rhs = %v into %d, want Or into 1", cmds[1].Operation, cmds[1].Target)
	}
}

func TestCompileChainStaysInPlace(t *testing.T) {
	// A strictly left-folded chain accumulates into one register: the
	// committed left operand absorbs each uncommitted right operand.
	s := solidRect(0, 0, 10, 10)
	for i := 0; i < 5; i++ {
		s = s.Intersection(solidRect(float32(i), 0, float32(i)+10, 10))
	}
	cmds, scratch, ok := compileShape(layer(s), nil)
	if !ok {
		t.Fatal("compile failed")
	}
	if scratch != 1 {
		t.Errorf("scratch = %d, want 1", scratch)
	}
	for _, cmd := range cmds {
		if cmd.Opcode == OpLoad && cmd.Operation != OperationOr {
			t.Errorf("chain emitted a register reload: %+v", cmd)
		}
	}
}

func TestCompileRegisterCollapse(t *testing.T) {
	// (A|B) & (C|D) commits both sides, then merges into the lower
	// register and frees the higher.
	lhs := solidRect(0, 0, 10, 10).Union(solidRect(20, 0, 30, 10))
	rhs := solidRect(0, 20, 10, 30).Union(solidRect(20, 20, 30, 30))
	s := lhs.Intersection(rhs)

	cmds, scratch, ok := compileShape(layer(s), nil)
	if !ok {
		t.Fatal("compile failed")
	}
	if scratch != 2 {
		t.Errorf("scratch = %d, want 2", scratch)
	}

	var merge *Command
	for i := range cmds {
		if cmds[i].Opcode == OpLoad && cmds[i].Operation == OperationAnd {
			merge = &cmds[i]
			break
		}
	}
	if merge == nil {
		t.Fatal("no register merge command found")
	}
	if merge.Target != 1 || merge.Slots[0][0] != 2 {
		t.Errorf("merge = load %v into %d, want load 2 into 1", merge.Slots[0][0], merge.Target)
	}
}

func TestCompileNotInPlace(t *testing.T) {
	// Complement of a committed register negates that register in place.
	s := solidRect(0, 0, 10, 10).Union(solidRect(20, 0, 30, 10)).Complement()
	cmds, scratch, ok := compileShape(layer(s), nil)
	if !ok {
		t.Fatal("compile failed")
	}
	if scratch != 1 {
		t.Errorf("scratch = %d, want 1", scratch)
	}

	found := false
	for _, cmd := range cmds {
		if cmd.Opcode == OpLoad && cmd.Operation == OperationNeg {
			found = true
			if cmd.Target != 1 || cmd.Slots[0][0] != 1 {
				t.Errorf("negate = load %v into %d, want load 1 into 1", cmd.Slots[0][0], cmd.Target)
			}
		}
	}
	if !found {
		t.Error("no in-place negation emitted")
	}
}

func TestCompileNotOnLeaf(t *testing.T) {
	s := solidRect(0, 0, 10, 10).Complement()
	cmds, scratch, ok := compileShape(layer(s), nil)
	if !ok {
		t.Fatal("compile failed")
	}
	if scratch != 1 {
		t.Errorf("scratch = %d, want 1", scratch)
	}
	if cmds[0].Operation != OperationNeg || cmds[0].Target != 1 {
		t.Errorf("draw = %v into %d, want Neg into 1", cmds[0].Operation, cmds[0].Target)
	}
}

func TestCompileTransformDeduplication(t *testing.T) {
	m := sdfui.Rotate(0.5)
	s := shape.New(shape.NewBasic(shape.Rectangle{LT: sdfui.Pt(0, 0), RB: sdfui.Pt(10, 10)}).Transformed(m)).
		Union(shape.New(shape.NewBasic(shape.Circle{Center: sdfui.Pt(5, 5), Radius: 3}).Transformed(m)))

	cmds, _, ok := compileShape(layer(s), nil)
	if !ok {
		t.Fatal("compile failed")
	}

	var transforms int
	for _, cmd := range cmds {
		if cmd.Opcode == OpSetTransform {
			transforms++
		}
	}
	// One switch to m for both leaves, one reset to identity before the
	// clip rectangle.
	if transforms != 2 {
		t.Errorf("transform commands = %d, want 2", transforms)
	}

	// Tail order: identity reset, clip, composite, blend, fill.
	reset := cmds[len(cmds)-5]
	if reset.Opcode != OpSetTransform || reset.Slots[0] != [4]float32{1, 0, 0, 0} {
		t.Errorf("identity reset missing before clip: %+v", reset)
	}
}

func TestCompileNoTransformForIdentity(t *testing.T) {
	cmds, _, ok := compileShape(layer(solidRect(0, 0, 10, 10)), nil)
	if !ok {
		t.Fatal("compile failed")
	}
	for _, cmd := range cmds {
		if cmd.Opcode == OpSetTransform {
			t.Errorf("identity-only shape emitted a transform: %+v", cmd)
		}
	}
}

func TestCompileMalformedProgramDropped(t *testing.T) {
	// Two leaves and no operator cannot reduce to one value.
	s := append(solidRect(0, 0, 10, 10), solidRect(20, 0, 30, 10)...)
	if _, _, ok := compileShape(layer(s), nil); ok {
		t.Error("malformed program compiled")
	}
}

func TestCompileInvisibleFillDropped(t *testing.T) {
	l := layer(solidRect(0, 0, 10, 10))
	l.Fill = shape.Solid{}
	if _, _, ok := compileShape(l, nil); ok {
		t.Error("transparent fill compiled")
	}
}

// fixedAtlas resolves only the glyphs it was given.
type fixedAtlas map[rune]uint32

func (a fixedAtlas) GlyphSlot(font uint32, ch rune) (uint32, bool) {
	slot, ok := a[ch]
	return slot, ok
}

func TestCompileGlyph(t *testing.T) {
	glyph := shape.From(shape.Glyph{Pos: sdfui.Pt(5, 5), Font: 0, Size: 16, Char: 'a'})
	cmds, _, ok := compileShape(layer(glyph), fixedAtlas{'a': 42})
	if !ok {
		t.Fatal("compile failed")
	}
	if cmds[0].Opcode != OpDrawChar {
		t.Fatalf("opcode = %v, want DrawChar", cmds[0].Opcode)
	}
	if cmds[0].Slots[0] != [4]float32{5, 5, 16, 42} {
		t.Errorf("slots = %v", cmds[0].Slots[0])
	}
}

func TestCompileMissingGlyphSoftFails(t *testing.T) {
	// A glyph not in the atlas yet makes the whole shape compile to
	// nothing for this frame, not a partial command sequence.
	s := solidRect(0, 0, 10, 10).
		Union(shape.From(shape.Glyph{Pos: sdfui.Pt(5, 5), Font: 0, Size: 16, Char: 'z'}))
	cmds, _, ok := compileShape(layer(s), fixedAtlas{'a': 42})
	if ok || len(cmds) != 0 {
		t.Errorf("missing glyph produced %d commands, ok=%v", len(cmds), ok)
	}
}

func TestCompileStrokePropagates(t *testing.T) {
	s := shape.New(shape.NewBasic(shape.Circle{Center: sdfui.Pt(0, 0), Radius: 5}).Stroked(2))
	cmds, _, ok := compileShape(layer(s), nil)
	if !ok {
		t.Fatal("compile failed")
	}
	if cmds[0].StrokeWidth != 2 {
		t.Errorf("stroke = %v, want 2", cmds[0].StrokeWidth)
	}
	if cmds[1].StrokeWidth != -1 {
		t.Errorf("clip stroke = %v, want -1", cmds[1].StrokeWidth)
	}
}

func TestCompileFillEncodings(t *testing.T) {
	tests := []struct {
		name   string
		fill   shape.FillMode
		opcode Opcode
		check  func(t *testing.T, cmd Command)
	}{
		{
			name:   "solid premultiplies",
			fill:   shape.Solid{Color: sdfui.RGBA{R: 1, G: 0.5, B: 0, A: 0.5}},
			opcode: OpFill,
			check: func(t *testing.T, cmd Command) {
				if cmd.Slots[0] != [4]float32{0.5, 0.25, 0, 0.5} {
					t.Errorf("slots = %v", cmd.Slots[0])
				}
			},
		},
		{
			name: "linear gradient",
			fill: shape.LinearGradient{
				From:  sdfui.Black,
				To:    sdfui.White,
				Start: sdfui.Pt(0, 0),
				End:   sdfui.Pt(10, 0),
			},
			opcode: OpFillLinearGradient,
			check: func(t *testing.T, cmd Command) {
				if cmd.Slots[2] != [4]float32{0, 0, 10, 0} {
					t.Errorf("anchor slots = %v", cmd.Slots[2])
				}
			},
		},
		{
			name: "radial gradient",
			fill: shape.RadialGradient{
				Inner:  sdfui.White,
				Center: sdfui.Pt(3, 4),
				Radius: 7,
			},
			opcode: OpFillRadialGradient,
			check: func(t *testing.T, cmd Command) {
				if cmd.Slots[2] != [4]float32{3, 4, 7, 0} {
					t.Errorf("center slots = %v", cmd.Slots[2])
				}
			},
		},
		{
			name: "texture",
			fill: shape.Texture{
				Texture: 9,
				LT:      sdfui.Pt(0, 0),
				RB:      sdfui.Pt(10, 10),
				TexLT:   sdfui.Pt(0, 0),
				TexRB:   sdfui.Pt(1, 1),
			},
			opcode: OpFillTexture,
			check: func(t *testing.T, cmd Command) {
				if cmd.Slots[2][0] != 9 {
					t.Errorf("texture id slot = %v, want 9", cmd.Slots[2][0])
				}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := layer(solidRect(0, 0, 10, 10))
			l.Fill = tt.fill
			cmds, _, ok := compileShape(l, nil)
			if !ok {
				t.Fatal("compile failed")
			}
			fill := cmds[len(cmds)-1]
			if fill.Opcode != tt.opcode {
				t.Fatalf("fill opcode = %v, want %v", fill.Opcode, tt.opcode)
			}
			tt.check(t, fill)
		})
	}
}

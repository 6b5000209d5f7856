//go:build !nogpu

// Package wgpu evaluates compiled shape programs on the GPU via WebGPU.
package wgpu

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"
	types "github.com/gogpu/gputypes"

	"github.com/gogpu/sdfui/compile"
	"github.com/gogpu/sdfui/render"
)

//go:embed shaders/evaluate.wgsl
var evaluateShaderWGSL string

// workgroupSize is the compute workgroup edge. Must match the
// @workgroup_size attributes in evaluate.wgsl.
const workgroupSize = 8

// FramePlan is the GPU work for one frame: the encoded buffers and the
// dispatch dimensions covering the redraw region.
type FramePlan struct {
	Uniforms []byte // render.UniformStride bytes
	Commands []byte // render.CommandStride bytes per command

	WorkgroupsX uint32
	WorkgroupsY uint32
}

// Empty reports whether the plan dispatches no work.
func (p FramePlan) Empty() bool {
	return p.WorkgroupsX == 0 || p.WorkgroupsY == 0
}

// Evaluator runs the per-pixel command interpreter shader. It owns the
// compute pipelines and layouts; buffers and textures are bound by the
// host through the layouts it exposes.
type Evaluator struct {
	mu sync.Mutex

	device hal.Device
	queue  hal.Queue

	// Compute pipelines
	evalPipeline  hal.ComputePipeline
	clearPipeline hal.ComputePipeline

	// Shader module (cached)
	shaderModule hal.ShaderModule

	// Pipeline layout and bind group layouts
	pipelineLayout    hal.PipelineLayout
	frameBindLayout   hal.BindGroupLayout
	textureBindLayout hal.BindGroupLayout

	// Compiled SPIR-V (cached for verification)
	spirvCode []uint32

	// State
	initialized bool
	shaderReady bool
}

// NewEvaluator creates an evaluator on the given device and queue.
// Returns an error if GPU compute is not supported.
func NewEvaluator(device hal.Device, queue hal.Queue) (*Evaluator, error) {
	if device == nil || queue == nil {
		return nil, fmt.Errorf("evaluator: device and queue are required")
	}

	e := &Evaluator{
		device: device,
		queue:  queue,
	}

	if err := e.init(); err != nil {
		e.Destroy()
		return nil, err
	}

	return e, nil
}

// init initializes GPU resources (pipelines, layouts).
func (e *Evaluator) init() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	spirvBytes, err := naga.Compile(evaluateShaderWGSL)
	if err != nil {
		return fmt.Errorf("evaluator: failed to compile shader: %w", err)
	}

	e.spirvCode = make([]uint32, len(spirvBytes)/4)
	for i := range e.spirvCode {
		e.spirvCode[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}

	e.shaderReady = true

	shaderModule, err := e.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label: "evaluate_shader",
		Source: hal.ShaderSource{
			SPIRV: e.spirvCode,
		},
	})
	if err != nil {
		return fmt.Errorf("evaluator: failed to create shader module: %w", err)
	}
	e.shaderModule = shaderModule

	if err := e.createBindGroupLayouts(); err != nil {
		return err
	}

	if err := e.createPipelineLayout(); err != nil {
		return err
	}

	if err := e.createPipelines(); err != nil {
		return err
	}

	e.initialized = true
	return nil
}

// createBindGroupLayouts creates the bind group layouts for the pipeline.
func (e *Evaluator) createBindGroupLayouts() error {
	// Frame bind group layout (group 0): uniforms and command stream.
	frameLayout, err := e.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "evaluate_frame_layout",
		Entries: []types.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: types.ShaderStageCompute,
				Buffer: &types.BufferBindingLayout{
					Type:           types.BufferBindingTypeUniform,
					MinBindingSize: render.UniformStride,
				},
			},
			{
				Binding:    1,
				Visibility: types.ShaderStageCompute,
				Buffer: &types.BufferBindingLayout{
					Type: types.BufferBindingTypeReadOnlyStorage,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("evaluator: failed to create frame bind group layout: %w", err)
	}
	e.frameBindLayout = frameLayout

	// Texture bind group layout (group 1): frame target, glyph atlas and
	// the user SDF texture.
	textureLayout, err := e.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "evaluate_texture_layout",
		Entries: []types.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: types.ShaderStageCompute,
				StorageTexture: &types.StorageTextureBindingLayout{
					Access:        types.StorageTextureAccessReadWrite,
					Format:        types.TextureFormatRGBA8Unorm,
					ViewDimension: types.TextureViewDimension2D,
				},
			},
			{
				Binding:    1,
				Visibility: types.ShaderStageCompute,
				Texture: &types.TextureBindingLayout{
					SampleType:    types.TextureSampleTypeFloat,
					ViewDimension: types.TextureViewDimension2D,
				},
			},
			{
				Binding:    2,
				Visibility: types.ShaderStageCompute,
				Texture: &types.TextureBindingLayout{
					SampleType:    types.TextureSampleTypeFloat,
					ViewDimension: types.TextureViewDimension2D,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("evaluator: failed to create texture bind group layout: %w", err)
	}
	e.textureBindLayout = textureLayout

	return nil
}

// createPipelineLayout creates the pipeline layout.
func (e *Evaluator) createPipelineLayout() error {
	layout, err := e.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "evaluate_pipeline_layout",
		BindGroupLayouts: []hal.BindGroupLayout{e.frameBindLayout, e.textureBindLayout},
	})
	if err != nil {
		return fmt.Errorf("evaluator: failed to create pipeline layout: %w", err)
	}
	e.pipelineLayout = layout
	return nil
}

// createPipelines creates the compute pipelines.
func (e *Evaluator) createPipelines() error {
	evalPipeline, err := e.device.CreateComputePipeline(&hal.ComputePipelineDescriptor{
		Label:  "evaluate_pipeline",
		Layout: e.pipelineLayout,
		Compute: hal.ComputeState{
			Module:     e.shaderModule,
			EntryPoint: "cs_evaluate",
		},
	})
	if err != nil {
		return fmt.Errorf("evaluator: failed to create evaluate pipeline: %w", err)
	}
	e.evalPipeline = evalPipeline

	clearPipeline, err := e.device.CreateComputePipeline(&hal.ComputePipelineDescriptor{
		Label:  "evaluate_clear_pipeline",
		Layout: e.pipelineLayout,
		Compute: hal.ComputeState{
			Module:     e.shaderModule,
			EntryPoint: "cs_clear",
		},
	})
	if err != nil {
		return fmt.Errorf("evaluator: failed to create clear pipeline: %w", err)
	}
	e.clearPipeline = clearPipeline

	return nil
}

// Prepare encodes a compiled program into the buffers the shader reads
// and sizes the dispatch to the redraw region. A program without a
// redraw region yields an empty plan.
func (e *Evaluator) Prepare(program compile.Program) FramePlan {
	if program.Redraw == nil {
		return FramePlan{}
	}

	plan := FramePlan{
		Uniforms: render.EncodeUniforms(program, nil),
		Commands: render.EncodeCommands(program.Commands),
	}
	plan.WorkgroupsX = dispatchGroups(program.Redraw.W)
	plan.WorkgroupsY = dispatchGroups(program.Redraw.H)
	return plan
}

// dispatchGroups returns the workgroup count covering extent pixels.
func dispatchGroups(extent float32) uint32 {
	if extent <= 0 {
		return 0
	}
	pixels := uint32(extent)
	if float32(pixels) < extent {
		pixels++
	}
	return (pixels + workgroupSize - 1) / workgroupSize
}

// IsInitialized returns whether the evaluator is initialized.
func (e *Evaluator) IsInitialized() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.initialized
}

// IsShaderReady returns whether the shader compiled successfully.
func (e *Evaluator) IsShaderReady() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.shaderReady
}

// SPIRVCode returns the compiled SPIR-V code (for debugging/verification).
func (e *Evaluator) SPIRVCode() []uint32 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.spirvCode
}

// Destroy releases all GPU resources.
func (e *Evaluator) Destroy() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.device == nil {
		return
	}

	if e.evalPipeline != nil {
		e.device.DestroyComputePipeline(e.evalPipeline)
		e.evalPipeline = nil
	}
	if e.clearPipeline != nil {
		e.device.DestroyComputePipeline(e.clearPipeline)
		e.clearPipeline = nil
	}

	if e.pipelineLayout != nil {
		e.device.DestroyPipelineLayout(e.pipelineLayout)
		e.pipelineLayout = nil
	}

	if e.frameBindLayout != nil {
		e.device.DestroyBindGroupLayout(e.frameBindLayout)
		e.frameBindLayout = nil
	}
	if e.textureBindLayout != nil {
		e.device.DestroyBindGroupLayout(e.textureBindLayout)
		e.textureBindLayout = nil
	}

	if e.shaderModule != nil {
		e.device.DestroyShaderModule(e.shaderModule)
		e.shaderModule = nil
	}

	e.initialized = false
}

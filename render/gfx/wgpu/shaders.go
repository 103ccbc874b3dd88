package wgpubackend

// Embedded WGSL. The two variants share the vertex stage; the srgb variant
// converts the blended output from sRGB to linear for swapchains that do the
// gamma conversion themselves.

const shaderCommon = `
struct Uniforms {
    proj: mat4x4<f32>,
};
@group(0) @binding(0) var<uniform> uniforms: Uniforms;

struct VertexOutput {
    @builtin(position) position: vec4<f32>,
    @location(0) uv: vec2<f32>,
    @location(1) color: vec4<f32>,
};

@vertex
fn vs_main(
    @location(0) pos: vec2<f32>,
    @location(1) uv: vec2<f32>,
    @location(2) color: vec4<f32>,
) -> VertexOutput {
    var out: VertexOutput;
    out.position = uniforms.proj * vec4<f32>(pos, 0.0, 1.0);
    out.uv = uv;
    out.color = color;
    return out;
}

@group(1) @binding(0) var tex: texture_2d<f32>;
@group(1) @binding(1) var samp: sampler;
`

const shaderLinearWGSL = shaderCommon + `
@fragment
fn fs_main(in: VertexOutput) -> @location(0) vec4<f32> {
    return in.color * textureSample(tex, samp, in.uv);
}
`

const shaderSRGBWGSL = shaderCommon + `
@fragment
fn fs_main(in: VertexOutput) -> @location(0) vec4<f32> {
    let c = in.color * textureSample(tex, samp, in.uv);
    return vec4<f32>(pow(c.rgb, vec3<f32>(2.2)), c.a);
}
`

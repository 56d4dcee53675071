package webgpu

// WGSL kernels for device-side repacking. The host codec in
// internal/texture covers uploads and downloads; these kernels cover the
// reshape shuffle without a CPU round trip once dispatch plumbing lands.
// They are compiled through the public CompileShader/LinkProgram path.

// PackKernelWGSL gathers a row-major scalar surface into 2x2 RGBA texels.
// Bindings: 0 = source scalars, 1 = destination texels, 2 = params
// (rows, cols as u32).
const PackKernelWGSL = `
struct Params {
    rows: u32,
    cols: u32,
}

@group(0) @binding(0) var<storage, read> src: array<f32>;
@group(0) @binding(1) var<storage, read_write> dst: array<vec4<f32>>;
@group(0) @binding(2) var<uniform> params: Params;

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) gid: vec3<u32>) {
    let tex_cols = (params.cols + 1u) / 2u;
    let tex_rows = (params.rows + 1u) / 2u;
    let idx = gid.x;
    if (idx >= tex_rows * tex_cols) {
        return;
    }
    let tr = idx / tex_cols;
    let tc = idx % tex_cols;
    var texel = vec4<f32>(0.0);
    for (var dr = 0u; dr < 2u; dr = dr + 1u) {
        for (var dc = 0u; dc < 2u; dc = dc + 1u) {
            let r = 2u * tr + dr;
            let c = 2u * tc + dc;
            if (r < params.rows && c < params.cols) {
                texel[dr * 2u + dc] = src[r * params.cols + c];
            }
        }
    }
    dst[idx] = texel;
}
`

// UnpackKernelWGSL scatters 2x2 RGBA texels back into row-major scalars.
// Bindings mirror PackKernelWGSL with source and destination swapped.
const UnpackKernelWGSL = `
struct Params {
    rows: u32,
    cols: u32,
}

@group(0) @binding(0) var<storage, read> src: array<vec4<f32>>;
@group(0) @binding(1) var<storage, read_write> dst: array<f32>;
@group(0) @binding(2) var<uniform> params: Params;

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) gid: vec3<u32>) {
    let tex_cols = (params.cols + 1u) / 2u;
    let tex_rows = (params.rows + 1u) / 2u;
    let idx = gid.x;
    if (idx >= tex_rows * tex_cols) {
        return;
    }
    let tr = idx / tex_cols;
    let tc = idx % tex_cols;
    let texel = src[idx];
    for (var dr = 0u; dr < 2u; dr = dr + 1u) {
        for (var dc = 0u; dc < 2u; dc = dc + 1u) {
            let r = 2u * tr + dr;
            let c = 2u * tc + dc;
            if (r < params.rows && c < params.cols) {
                dst[r * params.cols + c] = texel[dr * 2u + dc];
            }
        }
    }
}
`

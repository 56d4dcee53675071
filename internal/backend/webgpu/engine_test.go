package webgpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/texel-ml/texel/internal/device"
	"github.com/texel-ml/texel/internal/layout"
	"github.com/texel-ml/texel/internal/storage"
	"github.com/texel-ml/texel/internal/texture"
)

// newEngine skips the test when no GPU (or wgpu_native library) is
// available, so the suite passes on CI hosts without one.
func newEngine(t *testing.T) *Engine {
	t.Helper()
	if !IsAvailable() {
		t.Skip("WebGPU not available on this system")
	}
	e, err := New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = e.Close() })
	return e
}

func TestEngineTextureRoundTrip(t *testing.T) {
	e := newEngine(t)

	id, err := e.CreateTexture(layout.TexShape{Rows: 4, Cols: 4}, texture.R32F)
	require.NoError(t, err)

	data := make([]float32, 16)
	for i := range data {
		data[i] = float32(i) * 0.5
	}
	require.NoError(t, e.WriteTexture(id, data))

	back, err := e.ReadTexture(id)
	require.NoError(t, err)
	assert.Equal(t, data, back)

	require.NoError(t, e.DestroyTexture(id))
}

func TestEngineStoreIntegration(t *testing.T) {
	e := newEngine(t)

	cfg := device.Config{Packed: true, Limits: e.Limits()}
	store := storage.NewStore(e, cfg)

	data := []float32{1, 2, 3, 4, 5, 6, 7, 8, 9}
	tex, err := store.Upload(data, layout.Shape{3, 3})
	require.NoError(t, err)

	back, err := store.Download(tex)
	require.NoError(t, err)
	assert.Equal(t, data, back)

	require.NoError(t, store.Release(tex))
}

func TestEngineShaderCompileAndLink(t *testing.T) {
	e := newEngine(t)

	_, err := e.CompileShader("")
	require.Error(t, err)
	assert.ErrorIs(t, err, storage.ErrCompileFailed)

	sid, err := e.CompileShader(PackKernelWGSL)
	require.NoError(t, err)

	_, err = e.LinkProgram()
	assert.ErrorIs(t, err, storage.ErrLinkFailed)

	pid, err := e.LinkProgram(sid)
	require.NoError(t, err)

	usid, err := e.CompileShader(UnpackKernelWGSL)
	require.NoError(t, err)
	upid, err := e.LinkProgram(usid)
	require.NoError(t, err)

	require.NoError(t, e.DestroyProgram(pid))
	require.NoError(t, e.DestroyProgram(upid))
	require.NoError(t, e.DestroyShader(sid))
	require.NoError(t, e.DestroyShader(usid))
}

func TestEngineCreateTextureValidation(t *testing.T) {
	e := newEngine(t)

	_, err := e.CreateTexture(layout.TexShape{Rows: 0, Cols: 4}, texture.R32F)
	assert.ErrorIs(t, err, storage.ErrCreateFailed)

	max := e.Limits().MaxTextureDim
	_, err = e.CreateTexture(layout.TexShape{Rows: max + 1, Cols: 1}, texture.R32F)
	assert.ErrorIs(t, err, storage.ErrCreateFailed)
}

func TestEncodeDecodeChannels(t *testing.T) {
	data := []float32{0, 1.5, -2.25, 3.75}

	raw := encodeChannels(data, texture.R32F)
	assert.Len(t, raw, 16)
	assert.Equal(t, data, decodeChannels(raw, len(data), texture.R32F))

	raw = encodeChannels(data, texture.R16F)
	assert.Len(t, raw, 8)
	assert.Equal(t, data, decodeChannels(raw, len(data), texture.R16F),
		"values exactly representable in half precision must survive")
}

package bind_group_provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBindGroupProviderLabel(t *testing.T) {
	p := NewBindGroupProvider("cube")

	assert.Equal(t, "cube", p.Label())
	assert.False(t, p.Initialized())
	assert.Nil(t, p.BindGroup())
	assert.Empty(t, p.Buffers())
}

func TestBufferSizeOverride(t *testing.T) {
	p := NewBindGroupProvider("stars", WithBufferSize(2, 2000*16), WithVertexCount(2000*6))

	size, ok := p.BufferSize(2)
	require.True(t, ok)
	assert.Equal(t, uint64(32000), size)
	assert.Equal(t, 12000, p.VertexCount())

	_, ok = p.BufferSize(0)
	assert.False(t, ok)

	p.SetBufferSize(0, 128)
	size, _ = p.BufferSize(0)
	assert.Equal(t, uint64(128), size)
}

func TestSharedBindings(t *testing.T) {
	p := NewBindGroupProvider("shadow", WithSharedBuffer(0, nil))
	assert.True(t, p.IsShared(0))
	assert.False(t, p.IsShared(1))

	// owning a binding again clears the shared flag
	p.SetBuffer(0, nil)
	assert.False(t, p.IsShared(0))

	p.ShareTextureView(2, nil)
	assert.True(t, p.IsShared(2))

	// an owned sampler never shares its binding
	p.SetSampler(3, nil)
	assert.False(t, p.IsShared(3))
}

func TestReleaseClearsBindings(t *testing.T) {
	p := NewBindGroupProvider("lights")
	p.ShareTextureView(2, nil)
	p.SetBuffer(0, nil)
	p.SetIndexCount(36)

	p.Release()

	assert.Empty(t, p.Buffers())
	assert.Nil(t, p.TextureView(2))
	assert.False(t, p.IsShared(2))
	assert.Equal(t, 36, p.IndexCount())
}

package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlobStore_LoadMissing(t *testing.T) {
	s := NewBlobStore()

	val, err := s.Load(context.Background(), "academia_users")
	require.NoError(t, err)
	assert.Nil(t, val)
}

func TestBlobStore_SaveCopiesValue(t *testing.T) {
	s := NewBlobStore()
	ctx := context.Background()

	buf := []byte(`{"OPENAI_API_KEY":"sk-1"}`)
	require.NoError(t, s.Save(ctx, "academia_api_keys", buf))
	buf[2] = 'X'

	val, err := s.Load(ctx, "academia_api_keys")
	require.NoError(t, err)
	assert.Equal(t, `{"OPENAI_API_KEY":"sk-1"}`, string(val))

	val[2] = 'Y'
	again, err := s.Load(ctx, "academia_api_keys")
	require.NoError(t, err)
	assert.Equal(t, `{"OPENAI_API_KEY":"sk-1"}`, string(again))
}

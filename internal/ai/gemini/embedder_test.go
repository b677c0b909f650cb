package gemini

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

type fakeEmbedClient struct {
	calls [][]string
	err   error
}

func (f *fakeEmbedClient) EmbedContent(_ context.Context, model string, contents []*genai.Content, _ *genai.EmbedContentConfig) (*genai.EmbedContentResponse, error) {
	if f.err != nil {
		return nil, f.err
	}

	texts := make([]string, 0, len(contents))
	resp := &genai.EmbedContentResponse{}
	for _, c := range contents {
		text := c.Parts[0].Text
		texts = append(texts, text)
		resp.Embeddings = append(resp.Embeddings, &genai.ContentEmbedding{
			Values: []float32{float32(len(text)), 1},
		})
	}
	f.calls = append(f.calls, texts)

	return resp, nil
}

func TestEmbedderCachesVectors(t *testing.T) {
	client := &fakeEmbedClient{}
	e := newEmbedder(client, "", nil, zap.NewNop())
	assert.Equal(t, defaultEmbeddingModel, e.model)

	first, err := e.Embed(context.Background(), []string{"go", "python"})
	require.NoError(t, err)
	assert.Equal(t, [][]float32{{2, 1}, {6, 1}}, first)

	second, err := e.Embed(context.Background(), []string{"python", "rust", "go"})
	require.NoError(t, err)
	assert.Equal(t, [][]float32{{6, 1}, {4, 1}, {2, 1}}, second)

	assert.Equal(t, [][]string{{"go", "python"}, {"rust"}}, client.calls)

	_, err = e.Embed(context.Background(), []string{"go"})
	require.NoError(t, err)
	assert.Len(t, client.calls, 2)
}

func TestEmbedderPropagatesErrors(t *testing.T) {
	client := &fakeEmbedClient{err: errors.New("unavailable")}
	e := newEmbedder(client, "text-embedding-004", nil, nil)

	_, err := e.Embed(context.Background(), []string{"go"})
	require.Error(t, err)
	assert.ErrorContains(t, err, "unavailable")
	assert.Empty(t, e.cache)
}

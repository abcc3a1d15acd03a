package embedding

import "context"

// Provider defines the interface for generating text embeddings.
// Vector dimensionality is fixed per model.
type Provider interface {
	// Model returns the model identifier, used as part of cache keys.
	Model() string

	// Generate converts one text into a vector.
	Generate(ctx context.Context, text string) ([]float32, error)

	// GenerateBatch converts several texts in one round trip where the
	// backend supports it.
	GenerateBatch(ctx context.Context, texts []string) ([][]float32, error)
}

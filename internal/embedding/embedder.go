// Package embedding provides a deterministic pseudo-embedder. It is
// explicitly not a semantic model: the vector is derived from a cryptographic
// hash so identical text always yields a bit-identical unit vector, giving
// the classifier a stable pseudo-semantic signal.
package embedding

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"
	"strconv"
)

// maxDim is bounded by the SHA-256 hex digest: 64 hex chars yield at most
// eight 8-char chunks.
const maxDim = 8

// Embedder converts text into a fixed-length vector.
type Embedder interface {
	Embed(text string) []float64
	Dim() int
}

// HashEmbedder maps text to a unit vector of N components by partitioning a
// SHA-256 hex digest into 32-bit chunks.
type HashEmbedder struct {
	dim int
}

// NewHashEmbedder creates an embedder producing vectors of the given
// dimensionality. The dimensionality is a property of the catalog being
// scored against, not a constant of the embedder.
func NewHashEmbedder(dim int) (*HashEmbedder, error) {
	if dim < 1 || dim > maxDim {
		return nil, fmt.Errorf("embedding dimension must be in [1,%d], got %d", maxDim, dim)
	}
	return &HashEmbedder{dim: dim}, nil
}

// Dim returns the vector dimensionality.
func (e *HashEmbedder) Dim() int {
	return e.dim
}

// Embed hashes the UTF-8 bytes of text, converts each consecutive 8-hex-char
// chunk to a value in [0,1), and L2-normalizes the result. An all-zero vector
// falls back to a fixed default unit vector so the output is always unit
// length.
func (e *HashEmbedder) Embed(text string) []float64 {
	sum := sha256.Sum256([]byte(text))
	digest := hex.EncodeToString(sum[:])

	vec := make([]float64, e.dim)
	for i := 0; i < e.dim; i++ {
		chunk := digest[i*8 : (i+1)*8]
		// Chunks are 8 hex chars from a fixed-size digest; ParseUint cannot fail.
		n, _ := strconv.ParseUint(chunk, 16, 64)
		vec[i] = float64(n) / float64(1<<32)
	}

	if !normalize(vec) {
		vec[e.dim-1] = 1.0
	}
	return vec
}

// normalize scales vec to unit length in place. It reports false when the
// magnitude is zero and the vector was left untouched.
func normalize(vec []float64) bool {
	var sum float64
	for _, v := range vec {
		sum += v * v
	}
	if sum == 0 {
		return false
	}
	mag := math.Sqrt(sum)
	for i := range vec {
		vec[i] /= mag
	}
	return true
}

// Cosine returns the cosine similarity of two vectors: dot(u,v)/(|u||v|).
// Mismatched lengths or a zero-magnitude operand score 0 rather than
// erroring. The raw value may be negative; clamping is the caller's policy.
func Cosine(u, v []float64) float64 {
	if len(u) != len(v) || len(u) == 0 {
		return 0
	}
	var dot, magU, magV float64
	for i := range u {
		dot += u[i] * v[i]
		magU += u[i] * u[i]
		magV += v[i] * v[i]
	}
	if magU == 0 || magV == 0 {
		return 0
	}
	return dot / (math.Sqrt(magU) * math.Sqrt(magV))
}

package repo

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ Repository = (*PostgresRepository)(nil)
var _ Repository = (*MemoryRepository)(nil)

func TestWithSSLMode(t *testing.T) {
	tests := []struct {
		dsn  string
		want string
	}{
		{"postgres://u:p@db/orthos", "postgres://u:p@db/orthos?sslmode=require"},
		{"postgresql://db/orthos?connect_timeout=5", "postgresql://db/orthos?connect_timeout=5&sslmode=require"},
		{"user=postgres dbname=orthos", "user=postgres dbname=orthos sslmode=require"},
		{"postgres://db/orthos?sslmode=disable", "postgres://db/orthos?sslmode=disable"},
	}

	for _, tt := range tests {
		t.Run(tt.dsn, func(t *testing.T) {
			assert.Equal(t, tt.want, withSSLMode(tt.dsn))
		})
	}
}

func TestMemory_Users(t *testing.T) {
	ctx := context.Background()
	r := NewMemory()

	id, err := r.CreateUser(ctx, "ada", "ada@example.com", "hash")
	require.NoError(t, err)
	assert.Equal(t, 1, id)

	_, err = r.CreateUser(ctx, "ada", "other@example.com", "hash2")
	assert.ErrorIs(t, err, ErrUserExists)

	gotID, hash, err := r.GetByLogin(ctx, "ada")
	require.NoError(t, err)
	assert.Equal(t, id, gotID)
	assert.Equal(t, "hash", hash)

	_, _, err = r.GetByLogin(ctx, "bob")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemory_Analyses(t *testing.T) {
	ctx := context.Background()
	r := NewMemory()

	for i := 0; i < 3; i++ {
		_, err := r.SaveAnalysis(ctx, Analysis{
			UserID: 1,
			Kind:   "plate/bending",
			Input:  json.RawMessage(`{"length":1}`),
			Result: json.RawMessage(`{"max_deflection":0.001}`),
		})
		require.NoError(t, err)
	}
	otherID, err := r.SaveAnalysis(ctx, Analysis{UserID: 2, Kind: "plate/buckling"})
	require.NoError(t, err)

	list, err := r.ListAnalyses(ctx, 1, 2)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, 3, list[0].ID, "newest first")
	assert.Equal(t, 2, list[1].ID)

	a, err := r.GetAnalysis(ctx, 1, 1)
	require.NoError(t, err)
	assert.JSONEq(t, `{"length":1}`, string(a.Input))
	assert.False(t, a.CreatedAt.IsZero())

	_, err = r.GetAnalysis(ctx, 1, otherID)
	assert.ErrorIs(t, err, ErrNotFound, "analyses of other users are hidden")
}

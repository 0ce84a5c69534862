package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/spec-kit/auth-gateway/internal/domain"
	"github.com/spec-kit/auth-gateway/internal/provider"
)

func TestNormalizeFullNameFromMetadataMapping(t *testing.T) {
	n := NewNormalizer(zap.NewNop())
	created := time.Now().UTC()

	user := &provider.RawUser{
		ID:        "user-1",
		Email:     "a@x.com",
		CreatedAt: &created,
		Metadata:  provider.MappingMetadata(map[string]any{"full_name": "Ann"}),
	}

	result := n.Normalize(user, nil)
	assert.Equal(t, "user-1", result.User.ID)
	assert.Equal(t, "a@x.com", result.User.Email)
	assert.Equal(t, "Ann", result.User.FullName)
	assert.Equal(t, &created, result.User.CreatedAt)
	assert.Equal(t, domain.EmptySessionTokens(), result.Token)
}

func TestNormalizePrefersTopLevelFullName(t *testing.T) {
	n := NewNormalizer(zap.NewNop())

	user := &provider.RawUser{
		ID:       "user-1",
		FullName: "Top Level",
		Metadata: provider.MappingMetadata(map[string]any{"full_name": "From Metadata"}),
	}

	result := n.Normalize(user, nil)
	assert.Equal(t, "Top Level", result.User.FullName)
}

func TestNormalizeStringMetadataDegradesToEmpty(t *testing.T) {
	n := NewNormalizer(zap.NewNop())

	user := &provider.RawUser{
		ID:       "user-1",
		Metadata: provider.StringMetadata("corrupted"),
	}

	result := n.Normalize(user, nil)
	assert.Empty(t, result.User.FullName)
}

func TestNormalizeAbsentMetadataDegradesToEmpty(t *testing.T) {
	n := NewNormalizer(zap.NewNop())

	result := n.Normalize(&provider.RawUser{ID: "user-1"}, nil)
	assert.Empty(t, result.User.FullName)
}

func TestNormalizeSessionVariants(t *testing.T) {
	n := NewNormalizer(zap.NewNop())
	user := &provider.RawUser{ID: "user-1", Email: "a@x.com"}

	t.Run("absent session yields empty bearer block", func(t *testing.T) {
		result := n.Normalize(user, nil)
		assert.Empty(t, result.Token.AccessToken)
		assert.Empty(t, result.Token.RefreshToken)
		assert.Equal(t, domain.TokenTypeBearer, result.Token.TokenType)
	})

	t.Run("session without access token yields empty bearer block", func(t *testing.T) {
		result := n.Normalize(user, &provider.RawSession{RefreshToken: "refresh"})
		assert.Empty(t, result.Token.AccessToken)
		assert.Empty(t, result.Token.RefreshToken)
		assert.Equal(t, domain.TokenTypeBearer, result.Token.TokenType)
	})

	t.Run("session with access token is carried through", func(t *testing.T) {
		result := n.Normalize(user, &provider.RawSession{
			AccessToken:  "access",
			RefreshToken: "refresh",
		})
		assert.Equal(t, "access", result.Token.AccessToken)
		assert.Equal(t, "refresh", result.Token.RefreshToken)
		assert.Equal(t, domain.TokenTypeBearer, result.Token.TokenType)
	})
}

// Every metadata shape crossed with every session shape must yield a
// structurally complete result without panicking.
func TestNormalizeIsTotal(t *testing.T) {
	n := NewNormalizer(zap.NewNop())

	metadatas := []provider.RawMetadata{
		{},
		provider.MappingMetadata(map[string]any{"full_name": "Ann"}),
		provider.StringMetadata("oops"),
	}
	sessions := []*provider.RawSession{
		nil,
		{AccessToken: "access", RefreshToken: "refresh"},
		{RefreshToken: "refresh"},
	}

	for _, md := range metadatas {
		for _, sess := range sessions {
			result := n.Normalize(&provider.RawUser{ID: "u", Metadata: md}, sess)
			assert.Equal(t, "u", result.User.ID)
			assert.Equal(t, domain.TokenTypeBearer, result.Token.TokenType)
		}
	}
}

func TestNormalizeNilUser(t *testing.T) {
	n := NewNormalizer(zap.NewNop())

	result := n.Normalize(nil, nil)
	assert.Empty(t, result.User.ID)
	assert.Equal(t, domain.EmptySessionTokens(), result.Token)
}

func TestNormalizeIdempotent(t *testing.T) {
	n := NewNormalizer(zap.NewNop())
	user := &provider.RawUser{
		ID:       "user-1",
		Email:    "a@x.com",
		Metadata: provider.MappingMetadata(map[string]any{"full_name": "Ann"}),
	}
	session := &provider.RawSession{AccessToken: "access", RefreshToken: "refresh"}

	first := n.Normalize(user, session)
	second := n.Normalize(user, session)
	assert.Equal(t, first, second)
}

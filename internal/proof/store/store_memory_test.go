package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"haven/internal/proof/models"
	"haven/pkg/domain"
	dErrors "haven/pkg/domain-errors"
)

func testRecord(owner domain.Principal, hashByte byte) *models.Record {
	var h domain.Hash
	h[0] = hashByte
	h[31] = 0x01
	return &models.Record{
		Owner:    owner,
		Hash:     h,
		Type:     models.ProofTypeEducation,
		IssuedAt: 10,
		Verifier: "verifier-1",
	}
}

func TestInsertAssignsMonotonicIDs(t *testing.T) {
	s := NewInMemoryStore()
	ctx := context.Background()

	id0, err := s.Insert(ctx, testRecord("owner-a", 0x01))
	require.NoError(t, err)
	id1, err := s.Insert(ctx, testRecord("owner-b", 0x02))
	require.NoError(t, err)

	assert.Equal(t, domain.ProofID(0), id0)
	assert.Equal(t, domain.ProofID(1), id1)
}

func TestInsertRejectsDuplicateHash(t *testing.T) {
	s := NewInMemoryStore()
	ctx := context.Background()

	_, err := s.Insert(ctx, testRecord("owner-a", 0x01))
	require.NoError(t, err)

	// Same hash, different owner and type: still rejected.
	dup := testRecord("owner-b", 0x01)
	dup.Type = models.ProofTypeSkill
	_, err = s.Insert(ctx, dup)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeAlreadyExists))

	// The failed insert must not have consumed an id.
	id, err := s.Insert(ctx, testRecord("owner-c", 0x03))
	require.NoError(t, err)
	assert.Equal(t, domain.ProofID(1), id)
}

func TestInsertEnforcesOwnerCeiling(t *testing.T) {
	s := NewInMemoryStore()
	ctx := context.Background()

	for i := 0; i < MaxProofsPerOwner; i++ {
		rec := testRecord("hoarder", byte(i))
		rec.Hash[1] = byte(i >> 8)
		_, err := s.Insert(ctx, rec)
		require.NoError(t, err)
	}

	over := testRecord("hoarder", 0xFF)
	over.Hash[2] = 0xFF
	_, err := s.Insert(ctx, over)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeCapacityExceeded))

	// Hash index must not have been touched by the failed insert: the same
	// hash is issuable to a different owner.
	other := testRecord("other", 0xFF)
	other.Hash[2] = 0xFF
	_, err = s.Insert(ctx, other)
	assert.NoError(t, err)
}

func TestFindByID(t *testing.T) {
	s := NewInMemoryStore()
	ctx := context.Background()

	id, err := s.Insert(ctx, testRecord("owner-a", 0x01))
	require.NoError(t, err)

	rec, err := s.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.Principal("owner-a"), rec.Owner)
	assert.Equal(t, id, rec.ID)

	_, err = s.FindByID(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFindByIDReturnsCopy(t *testing.T) {
	s := NewInMemoryStore()
	ctx := context.Background()

	id, err := s.Insert(ctx, testRecord("owner-a", 0x01))
	require.NoError(t, err)

	rec, err := s.FindByID(ctx, id)
	require.NoError(t, err)
	rec.Revoked = true

	fresh, err := s.FindByID(ctx, id)
	require.NoError(t, err)
	assert.False(t, fresh.Revoked, "caller mutations must not reach the store")
}

func TestListByOwner(t *testing.T) {
	s := NewInMemoryStore()
	ctx := context.Background()

	_, err := s.Insert(ctx, testRecord("owner-a", 0x01))
	require.NoError(t, err)
	_, err = s.Insert(ctx, testRecord("owner-b", 0x02))
	require.NoError(t, err)
	_, err = s.Insert(ctx, testRecord("owner-a", 0x03))
	require.NoError(t, err)

	recs, err := s.ListByOwner(ctx, "owner-a")
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, domain.ProofID(0), recs[0].ID)
	assert.Equal(t, domain.ProofID(2), recs[1].ID)

	empty, err := s.ListByOwner(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestMarkRevoked(t *testing.T) {
	s := NewInMemoryStore()
	ctx := context.Background()

	id, err := s.Insert(ctx, testRecord("owner-a", 0x01))
	require.NoError(t, err)

	require.NoError(t, s.MarkRevoked(ctx, id))
	rec, err := s.FindByID(ctx, id)
	require.NoError(t, err)
	assert.True(t, rec.Revoked)

	// Double revoke is a no-op success.
	require.NoError(t, s.MarkRevoked(ctx, id))

	assert.ErrorIs(t, s.MarkRevoked(ctx, 42), ErrNotFound)
}

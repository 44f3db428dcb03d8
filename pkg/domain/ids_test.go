package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "docket/pkg/domain-errors"
)

// TestParseUUID_Invariants validates the parsing invariant:
// "IDs must be valid, non-empty, non-nil UUIDs"
func TestParseUUID_Invariants(t *testing.T) {
	t.Run("rejects empty string", func(t *testing.T) {
		_, err := ParsePersonID("")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects invalid format", func(t *testing.T) {
		_, err := ParsePersonID("not-a-uuid")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects nil UUID", func(t *testing.T) {
		_, err := ParsePersonID(uuid.Nil.String())
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("accepts valid UUID", func(t *testing.T) {
		validUUID := uuid.New()
		id, err := ParsePersonID(validUUID.String())
		require.NoError(t, err)
		assert.Equal(t, PersonID(validUUID), id)
	})

	t.Run("same rules apply to case and run IDs", func(t *testing.T) {
		_, err := ParseCaseID("")
		require.Error(t, err)
		_, err = ParseRunID(uuid.Nil.String())
		require.Error(t, err)
	})
}

// TestTypeDistinction verifies the compiler enforces type safety.
// This is a compile-time check - if this compiles, the invariant holds.
func TestTypeDistinction(t *testing.T) {
	personID := PersonID(uuid.New())
	caseID := CaseID(uuid.New())

	// These would fail to compile if types were interchangeable:
	// var _ PersonID = caseID   // compile error
	// var _ CaseID = personID   // compile error

	// Verify they're distinct at runtime too
	assert.NotEqual(t, uuid.UUID(personID), uuid.UUID(caseID))
}

func TestIsNil(t *testing.T) {
	assert.True(t, PersonID{}.IsNil())
	assert.False(t, NewPersonID().IsNil())
	assert.True(t, RunID{}.IsNil())
	assert.False(t, NewRunID().IsNil())
}

package httperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsBusiness(t *testing.T) {
	err := ErrBusiness("slot_conflict")

	assert.True(t, IsBusiness(err, "slot_conflict"))
	assert.False(t, IsBusiness(err, "invalid_transition"))
	assert.False(t, IsBusiness(errors.New("boom"), "slot_conflict"))
	assert.False(t, IsBusiness(nil, "slot_conflict"))

	// funciona através de wrap
	wrapped := fmt.Errorf("create: %w", err)
	assert.True(t, IsBusiness(wrapped, "slot_conflict"))
}

func TestIsExclusionConflict(t *testing.T) {
	assert.True(t, IsExclusionConflict(&pgconn.PgError{Code: "23P01"}))
	assert.True(t, IsExclusionConflict(&pgconn.PgError{Code: "23505"}))
	assert.False(t, IsExclusionConflict(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsExclusionConflict(errors.New("boom")))
	assert.False(t, IsExclusionConflict(nil))

	wrapped := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23P01"})
	assert.True(t, IsExclusionConflict(wrapped))
}

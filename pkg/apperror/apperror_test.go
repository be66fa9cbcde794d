package apperror

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindForbidden, KindOf(Forbidden()))
	assert.Equal(t, KindNotFound, KindOf(NotFound("appointment")))
	assert.Equal(t, KindConflict, KindOf(Conflict("slot taken")))
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
}

func TestKindOfWrapped(t *testing.T) {
	err := fmt.Errorf("booking failed: %w", NotFound("time slot"))
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestFromDBNoRows(t *testing.T) {
	err := FromDB(sql.ErrNoRows, "appointment")
	assert.Equal(t, KindNotFound, KindOf(err))
	assert.Equal(t, "appointment not found", err.Error())
}

func TestFromDBUniqueViolation(t *testing.T) {
	pqErr := &pq.Error{Code: "23505"}
	err := FromDB(pqErr, "appointment")
	assert.Equal(t, KindConflict, KindOf(err))
}

func TestFromDBExclusionViolation(t *testing.T) {
	pqErr := &pq.Error{Code: "23P01"}
	assert.Equal(t, KindConflict, KindOf(FromDB(pqErr, "appointment")))
}

func TestFromDBUnknownError(t *testing.T) {
	err := FromDB(errors.New("connection reset"), "appointment")
	assert.Equal(t, KindInternal, KindOf(err))
}

func TestFromDBNil(t *testing.T) {
	assert.NoError(t, FromDB(nil, "appointment"))
}

func TestInternalHidesCause(t *testing.T) {
	cause := errors.New("dsn=postgres://admin:hunter2@db")
	err := Internal(cause)
	assert.Equal(t, "internal server error", err.Message)
	assert.ErrorIs(t, err, cause)
}

package apierror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/alimarchal/maharat-sub001/internal/query"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want Kind
	}{
		{"typed", Conflict("taken"), KindConflict},
		{"wrapped typed", fmt.Errorf("ctx: %w", Validation("bad")), KindValidation},
		{"record not found", gorm.ErrRecordNotFound, KindNotFound},
		{"duplicate key", fmt.Errorf("insert: %w", gorm.ErrDuplicatedKey), KindConflict},
		{"foreign key", gorm.ErrForeignKeyViolated, KindConflict},
		{"invalid query", fmt.Errorf("list: %w", query.ErrInvalidQueryParameter), KindInvalidQuery},
		{"anything else", errors.New("boom"), KindInternal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Classify(tc.err))
		})
	}
}

func TestBody(t *testing.T) {
	status, body := Body(NotFound("Brand not found"))
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Brand not found", body.Message)

	status, body = Body(gorm.ErrRecordNotFound)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Record not found", body.Message)

	status, body = Body(gorm.ErrDuplicatedKey)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "Conflicting record", body.Message)

	status, body = Body(fmt.Errorf("parse: %w", query.ErrInvalidQueryParameter))
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Invalid query parameter", body.Message)
	assert.NotEmpty(t, body.Error)
}

func TestBody_HidesInternalDetail(t *testing.T) {
	for _, err := range []error{
		errors.New(`pq: relation "users" does not exist`),
		Storage("Failed to store file", errors.New("disk full")),
	} {
		status, body := Body(err)
		assert.Equal(t, http.StatusInternalServerError, status)
		assert.Equal(t, "Internal server error", body.Message)
		assert.Empty(t, body.Error)
	}
}

func TestKindStatus(t *testing.T) {
	assert.Equal(t, http.StatusUnprocessableEntity, KindValidation.Status())
	assert.Equal(t, http.StatusUnauthorized, KindUnauthorized.Status())
	assert.Equal(t, http.StatusForbidden, KindForbidden.Status())
	assert.Equal(t, http.StatusInternalServerError, KindStorage.Status())
	assert.Equal(t, "not_found", KindNotFound.String())
}

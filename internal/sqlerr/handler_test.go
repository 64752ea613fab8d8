package sqlerr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/deppfellow/catalog-api/internal/errs"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func asHTTPError(t *testing.T, err error) *errs.HTTPError {
	t.Helper()

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr), "expected *errs.HTTPError, got %T", err)
	return httpErr
}

func TestMapCode(t *testing.T) {
	assert.Equal(t, UniqueViolation, MapCode("23505"))
	assert.Equal(t, ForeignKeyViolation, MapCode("23503"))
	assert.Equal(t, NotNullViolation, MapCode("23502"))
	assert.Equal(t, Other, MapCode("XX000"))
}

func TestHandleErrorUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:           "23505",
		Severity:       "ERROR",
		TableName:      "tags",
		ConstraintName: "tags_tag_name_key",
	}

	httpErr := asHTTPError(t, HandleError(fmt.Errorf("insert: %w", pgErr), "tag"))

	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "TAG_ALREADY_EXISTS", httpErr.Code)
	assert.Equal(t, "A Tag with this Name already exists", httpErr.Message)
}

func TestHandleErrorForeignKeyViolation(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:       "23503",
		TableName:  "product_tags",
		ColumnName: "product_id",
	}

	httpErr := asHTTPError(t, HandleWriteError(pgErr, "create", "tag"))

	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "PRODUCT_TAG_NOT_FOUND", httpErr.Code)
	assert.Equal(t, "The referenced Product does not exist", httpErr.Message)
}

func TestHandleErrorNotNullHasFieldError(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:       "23502",
		TableName:  "categories",
		ColumnName: "category_name",
	}

	httpErr := asHTTPError(t, HandleWriteError(pgErr, "create", "category"))

	assert.Equal(t, "CATEGORY_REQUIRED", httpErr.Code)
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "category_name", httpErr.Errors[0].Field)
}

func TestHandleErrorNotFound(t *testing.T) {
	httpErr := asHTTPError(t, HandleError(gorm.ErrRecordNotFound, "category"))

	assert.Equal(t, http.StatusNotFound, httpErr.Status)
	assert.Equal(t, "Category not found", httpErr.Message)

	httpErr = asHTTPError(t, HandleError(gorm.ErrRecordNotFound, ""))
	assert.Equal(t, "Resource not found", httpErr.Message)
}

func TestHandleErrorUnknownIsInternal(t *testing.T) {
	httpErr := asHTTPError(t, HandleError(errors.New("connection reset"), "tag"))

	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
	assert.NotContains(t, httpErr.Message, "connection reset")
}

func TestHandleWriteErrorFallback(t *testing.T) {
	httpErr := asHTTPError(t, HandleWriteError(errors.New("disk full"), "update", "Category"))

	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "BAD_REQUEST", httpErr.Code)
	assert.Equal(t, "Could not update category", httpErr.Message)
}

func TestHandleErrorPassesHTTPErrorThrough(t *testing.T) {
	original := errs.NewNotFoundError("Tag not found", true, nil)

	assert.Same(t, original, HandleError(original, "tag"))
	assert.Same(t, original, HandleWriteError(original, "delete", "tag"))
}

func TestSingular(t *testing.T) {
	assert.Equal(t, "category", singular("categories"))
	assert.Equal(t, "CATEGORY", singular("CATEGORIES"))
	assert.Equal(t, "tag", singular("tags"))
	assert.Equal(t, "x", singular("x"))
}

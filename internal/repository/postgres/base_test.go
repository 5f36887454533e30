package postgres

import (
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/healthml/healthdata-api/pkg/errors"
)

func TestParseID(t *testing.T) {
	n, err := parseID("patient", "42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), n)

	for _, bad := range []string{"abc", "0", "-3", "1.5", ""} {
		_, err := parseID("patient", bad)
		require.Error(t, err, "input %q", bad)
		assert.Equal(t, apperrors.ErrBadRequest, apperrors.Code(err))
	}
}

func TestSetClauseDeterministicOrder(t *testing.T) {
	clause, args := setClause(map[string]interface{}{
		"Sex": true,
		"Age": 9,
	})

	assert.Equal(t, `"Age" = $1, "Sex" = $2`, clause)
	assert.Equal(t, []interface{}{9, true}, args)
}

func TestWrapWriteErrForeignKey(t *testing.T) {
	fk := &pq.Error{Code: "23503"}
	assert.Equal(t, apperrors.ErrReferential, apperrors.Code(wrapWriteErr(fk)))

	other := errors.New("connection reset")
	assert.Equal(t, apperrors.ErrStore, apperrors.Code(wrapWriteErr(other)))
}

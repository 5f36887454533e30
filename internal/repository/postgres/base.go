package postgres

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/lib/pq"

	apperrors "github.com/healthml/healthdata-api/pkg/errors"
)

// parseID parses a decimal serial identifier from its string form.
func parseID(resource, id string) (int64, error) {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil || n < 1 {
		return 0, apperrors.BadRequest(fmt.Sprintf("invalid %s ID", resource), err)
	}
	return n, nil
}

// setClause renders a partial-update SET clause from a field map. Keys are
// sorted so the statement text is deterministic. Placeholders start at $1;
// the caller appends its own arguments after the returned ones.
func setClause(fields map[string]interface{}) (string, []interface{}) {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	clause := ""
	args := make([]interface{}, 0, len(fields))
	for i, k := range keys {
		if i > 0 {
			clause += ", "
		}
		clause += fmt.Sprintf(`"%s" = $%d`, k, i+1)
		args = append(args, fields[k])
	}
	return clause, args
}

// wrapWriteErr converts driver errors on writes into the application
// taxonomy. Foreign-key violations become referential errors so a bad
// PatientID reference is reported as a client mistake, not a server fault.
func wrapWriteErr(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23503" {
		return apperrors.Referential("referenced patient does not exist", err)
	}
	return apperrors.Store(err)
}

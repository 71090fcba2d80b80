package rentalrepo

import (
	"strings"
	"testing"
)

func TestMarkLateQueryShape(t *testing.T) {
	if !strings.Contains(markLateQuery, `status = 'ACTIVE'`) {
		t.Fatal("sweep must be guarded to ACTIVE rentals")
	}
	// Without the cast Postgres rejects the statement with
	// "operator is not unique: date + unknown".
	if !strings.Contains(markLateQuery, `($2::int)`) {
		t.Fatal("term-days parameter must carry an explicit int cast")
	}
	if !strings.Contains(markLateQuery, `$1::date`) {
		t.Fatal("cutoff must compare as a date")
	}
}

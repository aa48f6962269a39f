package postgres

import (
	"encoding/json"

	"github.com/jackc/pgx/v5/pgtype"
)

func stringPtrToPgText(s *string) pgtype.Text {
	if s == nil {
		return pgtype.Text{}
	}
	return pgtype.Text{String: *s, Valid: true}
}

func pgTextToStringPtr(t pgtype.Text) *string {
	if !t.Valid {
		return nil
	}
	s := t.String
	return &s
}

// unmarshalSection decodes a jsonb column into the given destination,
// leaving it nil when the column was NULL.
func unmarshalSection(data []byte, dst interface{}) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, dst)
}

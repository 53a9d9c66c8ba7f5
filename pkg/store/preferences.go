package store

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"

	"github.com/arborhq/arbor/pkg/coaching"
)

// DefaultUserID is the single-tenant profile row, matching the
// one-user-per-installation deployment model.
const DefaultUserID = "default"

// GetPreferences retrieves stored preferences for a user. A missing row
// is not an error: personalization is an enhancement, so absent
// preferences come back as unknown/unknown.
func (s *Store) GetPreferences(ctx context.Context, userID string) (coaching.Preferences, error) {
	var row struct {
		Experience string `db:"experience"`
		Tone       string `db:"tone"`
	}
	err := s.db.GetContext(ctx, &row, `SELECT experience, tone FROM preferences WHERE user_id = ?`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return coaching.Preferences{
			Experience: coaching.ExperienceUnknown,
			Tone:       coaching.ToneUnknown,
		}, nil
	}
	if err != nil {
		return coaching.Preferences{}, errors.Wrap(err, "querying preferences")
	}
	return coaching.Preferences{
		Experience: coaching.ExperienceLevel(row.Experience),
		Tone:       coaching.TonePreference(row.Tone),
	}, nil
}

// UpsertPreferences stores the user's preferences, overwriting any
// previous values.
func (s *Store) UpsertPreferences(ctx context.Context, userID string, prefs coaching.Preferences) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO preferences (user_id, experience, tone, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(user_id) DO UPDATE SET
			experience = excluded.experience,
			tone = excluded.tone,
			updated_at = CURRENT_TIMESTAMP
	`, userID, string(prefs.Experience), string(prefs.Tone))
	return errors.Wrap(err, "upserting preferences")
}

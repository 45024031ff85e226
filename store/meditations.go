// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"fmt"

	"github.com/danielhkuo/habitpair/models"
)

// ListMeditations returns the legacy meditation rows ordered by date
func (s *Store) ListMeditations(ctx context.Context) ([]models.Meditation, error) {
	return listMeditations(ctx, s.db)
}

func listMeditations(ctx context.Context, q queryer) ([]models.Meditation, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, date, person1, person2
		FROM meditation
		ORDER BY date ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query meditations: %w", err)
	}
	defer rows.Close()

	meditations := []models.Meditation{}
	for rows.Next() {
		var m models.Meditation
		if err := rows.Scan(&m.ID, &m.Date, &m.Person1, &m.Person2); err != nil {
			return nil, fmt.Errorf("failed to scan meditation: %w", err)
		}
		meditations = append(meditations, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read meditations: %w", err)
	}

	return meditations, nil
}

// ToggleMeditation flips one person's flag in the legacy table. Unlike
// ToggleEntry, a new row sets both flags explicitly.
func (s *Store) ToggleMeditation(ctx context.Context, date string, person models.Person) (models.Meditation, error) {
	if err := ValidateDate(date); err != nil {
		return models.Meditation{}, err
	}

	var set string
	switch person {
	case models.Person1:
		set = "person1 = NOT meditation.person1"
	case models.Person2:
		set = "person2 = NOT meditation.person2"
	default:
		return models.Meditation{}, ErrInvalidPerson
	}

	var m models.Meditation
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO meditation (id, date, person1, person2)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (date) DO UPDATE
		SET `+set+`
		RETURNING id, date, person1, person2
	`, newID(), date, person == models.Person1, person == models.Person2).Scan(&m.ID, &m.Date, &m.Person1, &m.Person2)
	if err != nil {
		return models.Meditation{}, fmt.Errorf("failed to toggle meditation: %w", err)
	}

	return m, nil
}

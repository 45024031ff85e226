// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/danielhkuo/habitpair/models"
)

// ListHabits returns all habits ordered by display order
func (s *Store) ListHabits(ctx context.Context) ([]models.Habit, error) {
	return listHabits(ctx, s.db)
}

func listHabits(ctx context.Context, q queryer) ([]models.Habit, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT `+habitColumns+`
		FROM habit
		ORDER BY sort_order ASC, created_at ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query habits: %w", err)
	}
	defer rows.Close()

	habits := []models.Habit{}
	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan habit: %w", err)
		}
		habits = append(habits, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read habits: %w", err)
	}

	return habits, nil
}

// GetHabit returns a single habit or ErrHabitNotFound
func (s *Store) GetHabit(ctx context.Context, id string) (models.Habit, error) {
	return getHabit(ctx, s.db, id)
}

func getHabit(ctx context.Context, q queryer, id string) (models.Habit, error) {
	h, err := scanHabit(q.QueryRowContext(ctx, `
		SELECT `+habitColumns+`
		FROM habit
		WHERE id = $1
	`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Habit{}, ErrHabitNotFound
	}
	if err != nil {
		return models.Habit{}, fmt.Errorf("failed to query habit: %w", err)
	}
	return h, nil
}

// CreateHabit validates the input and inserts a habit at the end of the
// display order (max existing order + 1, or 0 for the first habit).
func (s *Store) CreateHabit(ctx context.Context, in NewHabit) (models.Habit, error) {
	in, err := in.Normalize()
	if err != nil {
		return models.Habit{}, err
	}

	h := models.Habit{
		ID:          newID(),
		Name:        in.Name,
		Person1Name: in.Person1Name,
		Mode:        models.ModeFor(in.Person2Name),
		Icon:        in.Icon,
		CreatedAt:   s.now().UTC().Truncate(time.Millisecond),
	}

	// The order is computed in the same statement as the insert
	err = s.db.QueryRowContext(ctx, `
		INSERT INTO habit (id, name, person1_name, person2_name, icon, sort_order, created_at)
		VALUES ($1, $2, $3, $4, $5, (SELECT COALESCE(MAX(sort_order), -1) + 1 FROM habit), $6)
		RETURNING sort_order
	`, h.ID, h.Name, h.Person1Name, nullableName(h.Mode), h.Icon, h.CreatedAt.UnixMilli()).Scan(&h.Order)
	if err != nil {
		return models.Habit{}, fmt.Errorf("failed to insert habit: %w", err)
	}

	return h, nil
}

// DeleteHabit removes every entry of the habit and then the habit itself,
// in one transaction.
func (s *Store) DeleteHabit(ctx context.Context, id string) (deletedEntries int64, err error) {
	err = s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM habit_entry WHERE habit_id = $1`, id)
		if err != nil {
			return fmt.Errorf("failed to delete entries: %w", err)
		}
		deletedEntries, err = res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to count deleted entries: %w", err)
		}

		res, err = tx.ExecContext(ctx, `DELETE FROM habit WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("failed to delete habit: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to count deleted habits: %w", err)
		}
		if n == 0 {
			return ErrHabitNotFound
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return deletedEntries, nil
}

// InitializeDefaultHabit creates the default duo "Meditation" habit and copies
// every legacy meditation row into it. It does nothing when any habit exists,
// so it is safe to call on every cold start and from concurrent callers.
func (s *Store) InitializeDefaultHabit(ctx context.Context, def DefaultHabit) (models.InitResult, error) {
	var result models.InitResult
	def = def.withDefaults()

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		// Writing the lock row first serializes concurrent initializers on
		// PostgreSQL (row lock) and SQLite (write lock). The count below then
		// sees any habit committed by the caller that held the lock.
		_, err := tx.ExecContext(ctx, `
			INSERT INTO habit_init (id, locked_at)
			VALUES (1, $1)
			ON CONFLICT (id) DO UPDATE
			SET locked_at = excluded.locked_at
		`, s.now().UnixMilli())
		if err != nil {
			return fmt.Errorf("failed to lock default habit initialization: %w", err)
		}

		var count int
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM habit`).Scan(&count); err != nil {
			return fmt.Errorf("failed to count habits: %w", err)
		}
		if count > 0 {
			result = models.InitResult{Message: models.MessageAlreadyInitialized}
			return nil
		}

		habitID := newID()
		_, err = tx.ExecContext(ctx, `
			INSERT INTO habit (id, name, person1_name, person2_name, icon, sort_order, created_at)
			VALUES ($1, $2, $3, $4, $5, 0, $6)
		`, habitID, models.DefaultHabitName, def.Person1Name, nullableName(models.ModeFor(def.Person2Name)),
			models.DefaultHabitIcon, s.now().UnixMilli())
		if err != nil {
			return fmt.Errorf("failed to insert default habit: %w", err)
		}

		legacy, err := listMeditations(ctx, tx)
		if err != nil {
			return err
		}

		for _, m := range legacy {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO habit_entry (id, habit_id, date, person1, person2)
				VALUES ($1, $2, $3, $4, $5)
			`, newID(), habitID, m.Date, m.Person1, m.Person2)
			if err != nil {
				return fmt.Errorf("failed to migrate meditation %s: %w", m.Date, err)
			}
		}

		result = models.InitResult{
			Initialized:     true,
			Message:         models.MessageInitialized,
			HabitID:         habitID,
			MigratedEntries: len(legacy),
		}
		return nil
	})
	if err != nil {
		return models.InitResult{}, err
	}

	return result, nil
}

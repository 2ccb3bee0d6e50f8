package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/the-moog/trac-ticketreminder/internal/models"
	"github.com/the-moog/trac-ticketreminder/internal/storage"
	"github.com/the-moog/trac-ticketreminder/internal/utils"
)

func (s *Store) ListPending(ticket int64) ([]models.Reminder, error) {
	rows, err := s.db.Query(`
		SELECT id, ticket, time, author, origin, reminded, description
		FROM ticketreminder
		WHERE ticket = $1 AND reminded = 0
		ORDER BY time ASC
	`, ticket)
	if err != nil {
		return nil, fmt.Errorf("failed to query reminders: %w", err)
	}
	defer rows.Close()

	var reminders []models.Reminder
	for rows.Next() {
		reminder, err := scanReminder(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reminder: %w", err)
		}
		reminders = append(reminders, reminder)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reminders: %w", err)
	}

	return reminders, nil
}

func (s *Store) InsertReminder(reminder models.Reminder) (models.Reminder, error) {
	if err := reminder.Validate(); err != nil {
		return models.Reminder{}, err
	}

	err := s.db.QueryRow(`
		INSERT INTO ticketreminder (ticket, time, author, origin, reminded, description)
		VALUES ($1, $2, $3, $4, 0, $5)
		RETURNING id
	`,
		reminder.Ticket,
		utils.ToUTimestamp(reminder.Time),
		nullable(reminder.Author),
		utils.ToUTimestamp(reminder.Origin),
		nullable(reminder.Description),
	).Scan(&reminder.ID)
	if err != nil {
		return models.Reminder{}, fmt.Errorf("failed to insert reminder: %w", err)
	}

	reminder.Reminded = false
	return reminder, nil
}

func (s *Store) GetReminder(id int64) (models.Reminder, error) {
	row := s.db.QueryRow(`
		SELECT id, ticket, time, author, origin, reminded, description
		FROM ticketreminder
		WHERE id = $1
	`, id)

	reminder, err := scanReminder(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Reminder{}, storage.ErrNotFound
	}
	if err != nil {
		return models.Reminder{}, fmt.Errorf("failed to get reminder: %w", err)
	}

	return reminder, nil
}

func (s *Store) DeleteReminder(id int64) error {
	result, err := s.db.Exec(`DELETE FROM ticketreminder WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete reminder: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return storage.ErrNotFound
	}

	return nil
}

func scanReminder(scan func(dest ...any) error) (models.Reminder, error) {
	var (
		reminder    models.Reminder
		due         int64
		origin      int64
		reminded    int
		author      sql.NullString
		description sql.NullString
	)

	if err := scan(&reminder.ID, &reminder.Ticket, &due, &author, &origin, &reminded, &description); err != nil {
		return models.Reminder{}, err
	}

	reminder.Time = utils.FromUTimestamp(due)
	reminder.Origin = utils.FromUTimestamp(origin)
	reminder.Reminded = reminded != 0
	reminder.Author = author.String
	reminder.Description = description.String

	return reminder, nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

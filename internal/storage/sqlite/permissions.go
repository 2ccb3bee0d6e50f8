package sqlite

import "fmt"

func (s *Store) GrantPermission(username, action string) error {
	_, err := s.db.Exec(`
		INSERT INTO permission (username, action) VALUES (?, ?)
		ON CONFLICT (username, action) DO NOTHING
	`, username, action)
	if err != nil {
		return fmt.Errorf("failed to grant permission: %w", err)
	}
	return nil
}

func (s *Store) RevokePermission(username, action string) error {
	_, err := s.db.Exec(`DELETE FROM permission WHERE username = ? AND action = ?`, username, action)
	if err != nil {
		return fmt.Errorf("failed to revoke permission: %w", err)
	}
	return nil
}

func (s *Store) PermissionsFor(username string) ([]string, error) {
	rows, err := s.db.Query(`SELECT action FROM permission WHERE username = ? ORDER BY action`, username)
	if err != nil {
		return nil, fmt.Errorf("failed to query permissions: %w", err)
	}
	defer rows.Close()

	var actions []string
	for rows.Next() {
		var action string
		if err := rows.Scan(&action); err != nil {
			return nil, fmt.Errorf("failed to scan permission: %w", err)
		}
		actions = append(actions, action)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating permissions: %w", err)
	}

	return actions, nil
}

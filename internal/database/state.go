package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/nao1215/effbatt/internal/model"
)

// LoadState returns the saved application state, or a new empty state when
// nothing has been saved yet.
func (s *Store) LoadState(ctx context.Context) (*model.State, error) {
	var stateJSON string
	err := s.db.QueryRowContext(ctx, `SELECT state_json FROM app_state WHERE id = 1`).Scan(&stateJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return model.NewState(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load state: %w", err)
	}

	state := model.NewState()
	if err := json.Unmarshal([]byte(stateJSON), state); err != nil {
		return nil, fmt.Errorf("failed to parse state: %w", err)
	}
	if state.Sites == nil {
		state.Sites = make([]model.Site, 0)
	}
	return state, nil
}

// SaveState replaces the saved application state.
func (s *Store) SaveState(ctx context.Context, state *model.State) error {
	stateJSON, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to serialize state: %w", err)
	}

	query := `
	INSERT INTO app_state (id, state_json, updated_at)
	VALUES (1, ?, CURRENT_TIMESTAMP)
	ON CONFLICT(id) DO UPDATE SET
		state_json = excluded.state_json,
		updated_at = CURRENT_TIMESTAMP
	`
	if _, err := s.db.ExecContext(ctx, query, string(stateJSON)); err != nil {
		return fmt.Errorf("failed to save state: %w", err)
	}
	return nil
}

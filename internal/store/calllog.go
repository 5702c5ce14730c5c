package store

import (
	"context"
	"fmt"
)

type CallLog struct {
	ID            int64  `db:"id"`
	UserPhone     string `db:"user_phone"`
	UserInput     string `db:"user_input"`
	AgentResponse string `db:"agent_response"`
}

const sqlInsertCallLog = `
INSERT INTO call_logs (user_phone, user_input, agent_response)
VALUES ($1, $2, $3)`

// LogConversation appends one audit row for a completed call turn.
func (s *Store) LogConversation(ctx context.Context, userPhone, userInput, agentResponse string) error {
	if _, err := s.db.ExecContext(ctx, sqlInsertCallLog, userPhone, userInput, agentResponse); err != nil {
		s.logger.Error(ctx, "failed to log conversation", err)
		return fmt.Errorf("failed to log conversation: %w", err)
	}
	return nil
}

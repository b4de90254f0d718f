package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/folio-hub/folio-server/internal/models"
)

type sqliteMessageRepo struct {
	db *sql.DB
}

func (r *sqliteMessageRepo) Create(ctx context.Context, msg *models.ContactMessage) error {
	query := `
		INSERT INTO contact_messages (id, name, email, subject, message, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		msg.ID, msg.Name, msg.Email, msg.Subject, msg.Message, msg.Status, msg.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert contact message: %w", err)
	}
	return nil
}

func (r *sqliteMessageRepo) GetByID(ctx context.Context, id string) (*models.ContactMessage, error) {
	query := `
		SELECT id, name, email, subject, message, status, created_at
		FROM contact_messages WHERE id = ?
	`
	msg := &models.ContactMessage{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&msg.ID, &msg.Name, &msg.Email, &msg.Subject, &msg.Message, &msg.Status, &msg.CreatedAt,
	)
	if err == sql.ErrNoRows {
		//nolint:nilnil
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get contact message by id: %w", err)
	}
	return msg, nil
}

func (r *sqliteMessageRepo) List(ctx context.Context) ([]*models.ContactMessage, error) {
	query := `
		SELECT id, name, email, subject, message, status, created_at
		FROM contact_messages ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list contact messages: %w", err)
	}
	defer rows.Close()

	var messages []*models.ContactMessage
	for rows.Next() {
		msg := &models.ContactMessage{}
		err := rows.Scan(
			&msg.ID, &msg.Name, &msg.Email, &msg.Subject, &msg.Message, &msg.Status, &msg.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan contact message: %w", err)
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}

func (r *sqliteMessageRepo) UpdateStatus(ctx context.Context, id string, status models.MessageStatus) (*models.ContactMessage, error) {
	result, err := r.db.ExecContext(ctx,
		"UPDATE contact_messages SET status = ? WHERE id = ?", status, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update message status: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		//nolint:nilnil
		return nil, nil
	}
	return r.GetByID(ctx, id)
}

func (r *sqliteMessageRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM contact_messages").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count contact messages: %w", err)
	}
	return count, nil
}

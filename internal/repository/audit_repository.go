package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/studyhive-api/internal/models"
)

// AuditRepository persists the admin action and partial-write journal in PostgreSQL.
type AuditRepository struct {
	db *sqlx.DB
}

// NewAuditRepository creates the repository.
func NewAuditRepository(db *sqlx.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// Create inserts an audit log entry.
func (r *AuditRepository) Create(ctx context.Context, log *models.AuditLog) error {
	const query = `INSERT INTO audit_logs (id, actor_email, action, resource, resource_id, payload, ip_address, user_agent, created_at) VALUES (:id, :actor_email, :action, :resource, :resource_id, :payload, :ip_address, :user_agent, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, log); err != nil {
		return fmt.Errorf("create audit log: %w", err)
	}
	return nil
}

// List returns the newest entries matching filter.
func (r *AuditRepository) List(ctx context.Context, filter models.AuditFilter) ([]models.AuditLog, error) {
	query := `SELECT id, actor_email, action, resource, resource_id, payload, ip_address, user_agent, created_at FROM audit_logs WHERE 1=1`
	var args []interface{}
	if filter.Action != "" {
		args = append(args, filter.Action)
		query += fmt.Sprintf(" AND action = $%d", len(args))
	}
	if filter.Resource != "" {
		args = append(args, filter.Resource)
		query += fmt.Sprintf(" AND resource = $%d", len(args))
	}

	limit := filter.Limit
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT %d", limit)

	var logs []models.AuditLog
	if err := r.db.SelectContext(ctx, &logs, query, args...); err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	return logs, nil
}

// EnsureSchema creates the journal table when missing.
func (r *AuditRepository) EnsureSchema(ctx context.Context, ddl string) error {
	if _, err := r.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("ensure audit schema: %w", err)
	}
	return nil
}

package service

import (
	"context"

	"github.com/asset-tracking-api/internal/domain"
	"github.com/asset-tracking-api/internal/repository"
	"github.com/go-playground/validator/v10"
)

// AuditWriter добавляет записи в журнал аудита.
// Чистая вставка без чтения и без обновлений; вызывается только с
// репозиторием, привязанным к объемлющей транзакции, поэтому запись
// существует тогда и только тогда, когда изменение зафиксировано
type AuditWriter struct {
	validate *validator.Validate
}

// NewAuditWriter создаёт новый экземпляр писателя аудита
func NewAuditWriter() *AuditWriter {
	return &AuditWriter{validate: validator.New()}
}

// Append валидирует закрытую форму деталей и вставляет запись
func (w *AuditWriter) Append(ctx context.Context, logs repository.RequestLogRepository, entry *domain.RequestLog) error {
	if err := w.validate.Struct(&entry.Details); err != nil {
		return err
	}
	return logs.Append(ctx, entry)
}

package ports

import "context"

// Notifier - пользовательские уведомления (toast). Fire-and-forget.
type Notifier interface {
	NotifySuccess(ctx context.Context, message string)
	NotifyError(ctx context.Context, message string)
}

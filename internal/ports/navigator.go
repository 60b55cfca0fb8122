package ports

import "context"

// Navigator - императивный переход на другую страницу.
type Navigator interface {
	NavigateTo(ctx context.Context, path string)
}

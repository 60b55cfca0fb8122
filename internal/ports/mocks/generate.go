//go:generate mockgen -source=../kv_store.go     -destination=./mock_kv_store.go     -package=mocks
//go:generate mockgen -source=../api_client.go   -destination=./mock_api_client.go   -package=mocks
//go:generate mockgen -source=../notifier.go     -destination=./mock_notifier.go     -package=mocks
//go:generate mockgen -source=../navigator.go    -destination=./mock_navigator.go    -package=mocks
//go:generate mockgen -source=../menu_cache.go   -destination=./mock_menu_cache.go   -package=mocks
//go:generate mockgen -source=../activity.go     -destination=./mock_activity.go     -package=mocks

package mocks

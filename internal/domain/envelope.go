package domain

import (
	"encoding/json"
	"fmt"
	"reflect"
)

// Envelope - единый формат ответа удалённого API.
type Envelope struct {
	StatusCode int             `json:"statusCode"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data,omitempty"`
}

// OK - операция считается успешной только при statusCode == 200.
func (e Envelope) OK() bool { return e.StatusCode == 200 }

// Decode - раскладывает data в dst.
// Пустой data допустим для списков и словарей (dst обнуляется); для объектов это ошибка.
func (e Envelope) Decode(dst any) error {
	if len(e.Data) == 0 || string(e.Data) == "null" {
		if zeroCollection(dst) {
			return nil
		}
		return fmt.Errorf("%w: empty data", ErrOperationFailed)
	}
	if err := json.Unmarshal(e.Data, dst); err != nil {
		return fmt.Errorf("%w: decode data: %v", ErrOperationFailed, err)
	}
	return nil
}

func zeroCollection(dst any) bool {
	v := reflect.ValueOf(dst)
	if v.Kind() != reflect.Pointer || v.IsNil() {
		return false
	}
	elem := v.Elem()
	switch elem.Kind() {
	case reflect.Slice, reflect.Map:
		elem.Set(reflect.Zero(elem.Type()))
		return true
	default:
		return false
	}
}

package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/Gunvolt24/foodorder/internal/domain"
	"github.com/stretchr/testify/require"
)

func TestEnvelopeDecode_NullData(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		data json.RawMessage
	}{
		{"null", json.RawMessage("null")},
		{"missing", nil},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			env := domain.Envelope{StatusCode: 200, Data: tc.data}

			orders := []domain.Order{{ID: "stale"}}
			require.NoError(t, env.Decode(&orders))
			require.Empty(t, orders)

			var attrs map[string]any
			require.NoError(t, env.Decode(&attrs))
			require.Nil(t, attrs)

			var res domain.LoginResult
			require.ErrorIs(t, env.Decode(&res), domain.ErrOperationFailed)
		})
	}
}

func TestEnvelopeDecode_BadData(t *testing.T) {
	t.Parallel()
	env := domain.Envelope{StatusCode: 200, Data: json.RawMessage(`{"_id":1}`)}

	var items []domain.MenuItem
	require.ErrorIs(t, env.Decode(&items), domain.ErrOperationFailed)
}

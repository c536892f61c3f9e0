package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanMapUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		want      PlanMap
		wantError bool
	}{
		{
			name:  "Успех: порядок ключей сохраняется",
			input: `{"Премиум": "999", "Базовый": "599", "Стандарт": "799"}`,
			want: PlanMap{
				{Name: "Премиум", Price: "999"},
				{Name: "Базовый", Price: "599"},
				{Name: "Стандарт", Price: "799"},
			},
		},
		{
			name:  "Успех: пустой объект",
			input: `{}`,
			want:  PlanMap{},
		},
		{
			name:  "Успех: null даёт nil каталог",
			input: `null`,
			want:  nil,
		},
		{
			name:      "Ошибка: повторяющийся ключ",
			input:     `{"Базовый": "599", "Базовый": "799"}`,
			wantError: true,
		},
		{
			name:      "Ошибка: не-строковая цена",
			input:     `{"Базовый": 599}`,
			wantError: true,
		},
		{
			name:      "Ошибка: не объект",
			input:     `["Базовый", "599"]`,
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got PlanMap
			err := json.Unmarshal([]byte(tt.input), &got)
			if tt.wantError {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPlanMapMarshalJSON(t *testing.T) {
	catalog := PlanMap{
		{Name: "Премиум", Price: "999"},
		{Name: "Базовый", Price: "599"},
	}

	data, err := json.Marshal(catalog)
	require.NoError(t, err)
	assert.Equal(t, `{"Премиум":"999","Базовый":"599"}`, string(data))

	var roundtrip PlanMap
	require.NoError(t, json.Unmarshal(data, &roundtrip))
	assert.Equal(t, catalog, roundtrip)
}

func TestPlanMapGetAndNames(t *testing.T) {
	catalog := PlanMap{
		{Name: "Базовый", Price: "599"},
		{Name: "Премиум", Price: "999"},
	}

	price, ok := catalog.Get("Премиум")
	assert.True(t, ok)
	assert.Equal(t, "999", price)

	_, ok = catalog.Get("Семейный")
	assert.False(t, ok)

	assert.Equal(t, []string{"Базовый", "Премиум"}, catalog.Names())
	assert.Equal(t, 2, catalog.Len())
}

func TestPlanMapValueAndScan(t *testing.T) {
	catalog := PlanMap{
		{Name: "Базовый", Price: "599"},
		{Name: "Премиум", Price: "999"},
	}

	value, err := catalog.Value()
	require.NoError(t, err)

	var fromString PlanMap
	require.NoError(t, fromString.Scan(value))
	assert.Equal(t, catalog, fromString)

	var fromBytes PlanMap
	require.NoError(t, fromBytes.Scan([]byte(`{"Плюс":"299"}`)))
	assert.Equal(t, PlanMap{{Name: "Плюс", Price: "299"}}, fromBytes)

	var fromNil PlanMap
	require.NoError(t, fromNil.Scan(nil))
	assert.Nil(t, fromNil)

	var unsupported PlanMap
	assert.Error(t, unsupported.Scan(42))
}

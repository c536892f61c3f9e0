package models

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// PlanPrice одна позиция каталога планов компании: название плана и цена.
// Цена хранится строкой, арифметика над ней на этом уровне не выполняется.
type PlanPrice struct {
	Name  string
	Price string
}

// PlanMap упорядоченный каталог планов компании (название плана -> цена).
// В JSON сериализуется как объект с сохранением порядка ключей.
// Каталог носит справочный характер и не синхронизируется с подписками.
type PlanMap []PlanPrice

// Len возвращает количество планов в каталоге.
func (m PlanMap) Len() int { return len(m) }

// Get возвращает цену плана по его названию.
func (m PlanMap) Get(name string) (string, bool) {
	for _, p := range m {
		if p.Name == name {
			return p.Price, true
		}
	}
	return "", false
}

// Names возвращает названия планов в порядке их объявления.
func (m PlanMap) Names() []string {
	names := make([]string, 0, len(m))
	for _, p := range m {
		names = append(names, p.Name)
	}
	return names
}

// UnmarshalJSON разбирает JSON-объект вида {"Базовая": "990", ...},
// сохраняя порядок ключей. Не-объект, не-строковые значения и
// повторяющиеся ключи отклоняются как ошибка валидации.
func (m *PlanMap) UnmarshalJSON(data []byte) error {
	const op = "models.PlanMap.UnmarshalJSON"

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tok == nil {
		*m = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("%s: subscription_plans must be a JSON object", op)
	}

	seen := make(map[string]struct{})
	result := PlanMap{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		key := keyTok.(string)
		if _, dup := seen[key]; dup {
			return fmt.Errorf("%s: duplicate plan name %q", op, key)
		}
		seen[key] = struct{}{}

		valTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		val, ok := valTok.(string)
		if !ok {
			return fmt.Errorf("%s: price for plan %q must be a string", op, key)
		}
		result = append(result, PlanPrice{Name: key, Price: val})
	}
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	*m = result
	return nil
}

// MarshalJSON сериализует каталог в JSON-объект, сохраняя порядок планов.
func (m PlanMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, p := range m {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(p.Name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(p.Price)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Value сериализует каталог для записи в колонку JSONB.
func (m PlanMap) Value() (driver.Value, error) {
	data, err := m.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan читает каталог из колонки JSONB.
func (m *PlanMap) Scan(src any) error {
	const op = "models.PlanMap.Scan"
	switch v := src.(type) {
	case nil:
		*m = nil
		return nil
	case []byte:
		return m.UnmarshalJSON(v)
	case string:
		return m.UnmarshalJSON([]byte(v))
	default:
		return fmt.Errorf("%s: unsupported source type %T", op, src)
	}
}

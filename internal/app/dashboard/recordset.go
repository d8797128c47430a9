package dashboard

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Record - одна запись ответа. Контроллер не знает схему и не заглядывает в поля.
type Record map[string]any

// RecordSet - записи в порядке ответа сервера и колонки: объединение ключей в порядке первого появления
type RecordSet struct {
	Columns []string `json:"columns"`
	Records []Record `json:"records"`
}

func (rs RecordSet) Len() int {
	return len(rs.Records)
}

func (rs RecordSet) Empty() bool {
	return len(rs.Records) == 0
}

// ParseRecordSet разбирает JSON-массив объектов, сохраняя порядок полей для колонок.
// null и [] дают пустой набор. Числа остаются json.Number в исходной записи.
func ParseRecordSet(data []byte) (RecordSet, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return RecordSet{}, &ParseError{Err: err}
	}

	var rs RecordSet
	switch tok {
	case nil:
	case json.Delim('['):
		seen := make(map[string]struct{})
		for dec.More() {
			rec, keys, err := decodeObject(dec)
			if err != nil {
				return RecordSet{}, &ParseError{Err: fmt.Errorf("record %d: %w", len(rs.Records), err)}
			}
			for _, k := range keys {
				if _, ok := seen[k]; !ok {
					seen[k] = struct{}{}
					rs.Columns = append(rs.Columns, k)
				}
			}
			rs.Records = append(rs.Records, rec)
		}
		if _, err := dec.Token(); err != nil {
			return RecordSet{}, &ParseError{Err: err}
		}
	default:
		return RecordSet{}, &ParseError{Err: ErrNotArray}
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return RecordSet{}, &ParseError{Err: errors.New("unexpected data after JSON value")}
	}

	return rs, nil
}

func decodeObject(dec *json.Decoder) (Record, []string, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, nil, err
	}
	if tok != json.Delim('{') {
		return nil, nil, ErrNotArray
	}

	rec := make(Record)
	var keys []string
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, nil, fmt.Errorf("unexpected object key %v", keyTok)
		}

		var value any
		if err := dec.Decode(&value); err != nil {
			return nil, nil, err
		}
		if _, dup := rec[key]; !dup {
			keys = append(keys, key)
		}
		rec[key] = value
	}

	if _, err := dec.Token(); err != nil {
		return nil, nil, err
	}

	return rec, keys, nil
}

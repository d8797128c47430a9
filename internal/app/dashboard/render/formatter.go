package render

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
	"logindash/internal/app/dashboard"
)

const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatCSV   = "csv"
	FormatYAML  = "yaml"
)

// Formatter печатает набор записей в одном из форматов вывода
type Formatter interface {
	Format(rs dashboard.RecordSet) ([]byte, error)
}

// New возвращает форматтер по имени. width используется только таблицей.
func New(format string, width int) (Formatter, error) {
	switch strings.ToLower(format) {
	case FormatTable, "":
		return &tableFormatter{width: width}, nil
	case FormatJSON:
		return &jsonFormatter{}, nil
	case FormatCSV:
		return &csvFormatter{}, nil
	case FormatYAML, "yml":
		return &yamlFormatter{}, nil
	default:
		return nil, fmt.Errorf("unknown format %q: expected table, json, csv or yaml", format)
	}
}

type tableFormatter struct {
	width int
}

func (f *tableFormatter) Format(rs dashboard.RecordSet) ([]byte, error) {
	return []byte(Table(rs, f.width) + "\n"), nil
}

// jsonFormatter сохраняет порядок колонок внутри каждого объекта
type jsonFormatter struct{}

func (f *jsonFormatter) Format(rs dashboard.RecordSet) ([]byte, error) {
	var b bytes.Buffer
	b.WriteString("[")
	for i, rec := range rs.Records {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString("\n  {")
		first := true
		for _, col := range rs.Columns {
			v, ok := rec[col]
			if !ok {
				continue
			}
			key, err := json.Marshal(col)
			if err != nil {
				return nil, fmt.Errorf("failed to encode key %q: %w", col, err)
			}
			val, err := json.Marshal(v)
			if err != nil {
				return nil, fmt.Errorf("failed to encode field %q: %w", col, err)
			}
			if !first {
				b.WriteString(",")
			}
			first = false
			b.WriteString("\n    ")
			b.Write(key)
			b.WriteString(": ")
			b.Write(val)
		}
		if !first {
			b.WriteString("\n  ")
		}
		b.WriteString("}")
	}
	if len(rs.Records) > 0 {
		b.WriteString("\n")
	}
	b.WriteString("]\n")
	return b.Bytes(), nil
}

type csvFormatter struct{}

func (f *csvFormatter) Format(rs dashboard.RecordSet) ([]byte, error) {
	var b bytes.Buffer
	writer := csv.NewWriter(&b)

	if len(rs.Columns) > 0 {
		if err := writer.Write(rs.Columns); err != nil {
			return nil, fmt.Errorf("failed to write CSV headers: %w", err)
		}
	}
	for _, row := range Rows(rs) {
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV: %w", err)
	}
	return b.Bytes(), nil
}

// yamlFormatter строит дерево узлов вручную, иначе yaml.v3 отсортирует ключи map
type yamlFormatter struct{}

func (f *yamlFormatter) Format(rs dashboard.RecordSet) ([]byte, error) {
	doc := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	if len(rs.Records) == 0 {
		doc.Style = yaml.FlowStyle
	}

	for _, rec := range rs.Records {
		item := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, col := range rs.Columns {
			v, ok := rec[col]
			if !ok {
				continue
			}
			val, err := yamlValue(v)
			if err != nil {
				return nil, fmt.Errorf("failed to encode field %q: %w", col, err)
			}
			item.Content = append(item.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: col},
				val,
			)
		}
		doc.Content = append(doc.Content, item)
	}

	var b bytes.Buffer
	enc := yaml.NewEncoder(&b)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("failed to encode YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode YAML: %w", err)
	}
	return b.Bytes(), nil
}

// yamlValue печатает json.Number как есть: !!int или !!float без округления до float64
func yamlValue(v any) (*yaml.Node, error) {
	switch val := v.(type) {
	case json.Number:
		tag := "!!int"
		if strings.ContainsAny(val.String(), ".eE") {
			tag = "!!float"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: val.String()}, nil
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, k := range keys {
			child, err := yamlValue(val[k])
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}, child)
		}
		return node, nil
	case []any:
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range val {
			child, err := yamlValue(item)
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, child)
		}
		return node, nil
	default:
		node := &yaml.Node{}
		if err := node.Encode(v); err != nil {
			return nil, err
		}
		return node, nil
	}
}

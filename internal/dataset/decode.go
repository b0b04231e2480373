package dataset

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Decode parses raw file content into a Dataset. The caller supplies the
// format explicitly; file I/O, size limits and transport are its problem.
func Decode(fileName, content string, format Format) (*Dataset, error) {
	switch format {
	case FormatCSV:
		return decodeCSV(fileName, content)
	case FormatJSON:
		return decodeJSON(fileName, content)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

func decodeCSV(fileName, content string) (*Dataset, error) {
	reader := csv.NewReader(strings.NewReader(content))
	reader.FieldsPerRecord = -1 // short rows become missing values, not errors

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV headers: %w", err)
	}

	ds := &Dataset{
		FileName: fileName,
		Columns:  headers,
		Rows:     make([]Record, 0),
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV record: %w", err)
		}

		row := make(Record, len(headers))
		for i, header := range headers {
			if i < len(record) {
				row[header] = record[i]
			} else {
				row[header] = nil
			}
		}
		ds.Rows = append(ds.Rows, row)
	}

	return ds, nil
}

func decodeJSON(fileName, content string) (*Dataset, error) {
	trimmed := strings.TrimSpace(content)

	var rows []map[string]any
	if strings.HasPrefix(trimmed, "[") {
		if err := json.Unmarshal([]byte(trimmed), &rows); err != nil {
			return nil, fmt.Errorf("failed to decode JSON array: %w", err)
		}
	} else {
		// A single top-level object is coerced to a one-element array.
		var single map[string]any
		if err := json.Unmarshal([]byte(trimmed), &single); err != nil {
			return nil, fmt.Errorf("failed to decode JSON object: %w", err)
		}
		rows = []map[string]any{single}
	}

	ds := &Dataset{
		FileName: fileName,
		Columns:  []string{},
		Rows:     make([]Record, 0, len(rows)),
	}
	for _, r := range rows {
		ds.Rows = append(ds.Rows, Record(r))
	}

	if len(rows) > 0 {
		columns, err := firstObjectKeys(trimmed)
		if err != nil {
			return nil, fmt.Errorf("failed to recover column order: %w", err)
		}
		ds.Columns = columns
	}

	return ds, nil
}

// firstObjectKeys token-scans the first object in the JSON input and returns
// its keys in document order. json.Unmarshal into a map loses that order, and
// column order must follow the first record.
func firstObjectKeys(content string) ([]string, error) {
	dec := json.NewDecoder(strings.NewReader(content))

	// Walk to the opening brace of the first object.
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		if delim, ok := tok.(json.Delim); ok && delim == '{' {
			break
		}
	}

	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v in object position", tok)
		}
		keys = append(keys, key)

		// Skip the value, whatever shape it has.
		if err := skipValue(dec); err != nil {
			return nil, err
		}
	}
	return keys, nil
}

func skipValue(dec *json.Decoder) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	delim, ok := tok.(json.Delim)
	if !ok || (delim != '{' && delim != '[') {
		return nil
	}
	depth := 1
	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		if d, ok := tok.(json.Delim); ok {
			switch d {
			case '{', '[':
				depth++
			case '}', ']':
				depth--
			}
		}
	}
	return nil
}

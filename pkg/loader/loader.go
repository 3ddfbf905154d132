// Package loader decodes structured input files, auto-detecting JSON,
// newline-delimited JSON, YAML (single or multi-document) and TOML.
package loader

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"regexp"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format is a detected input format.
type Format int

const (
	FormatJSON Format = iota
	FormatNDJSON
	FormatYAML
	FormatMultiYAML
	FormatTOML
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatNDJSON:
		return "ndjson"
	case FormatYAML:
		return "yaml"
	case FormatMultiYAML:
		return "yaml (multi-document)"
	case FormatTOML:
		return "toml"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

var (
	// TOML section headers: [server], [[items]], ["table name"], [database.credentials].
	// JSON arrays like [1, 2, 3] do not match.
	tomlSectionPattern = regexp.MustCompile(`^\s*\[{1,2}(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+')+(?:\.(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+'))*\]{1,2}\s*$`)
	// TOML key = value (YAML uses key: value).
	tomlKeyValuePattern = regexp.MustCompile(`^\s*(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+')+(?:\.(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+'))*\s*=\s*.+$`)
)

// DetectFormat guesses the format of input. Anything not recognised as one
// of the stricter formats is treated as YAML.
func DetectFormat(input string) Format {
	input = strings.TrimSpace(input)

	if strings.Contains(input, "\n---") || strings.HasPrefix(input, "---") {
		return FormatMultiYAML
	}

	lines := strings.Split(input, "\n")
	if len(lines) > 1 && isLikelyNDJSON(lines) {
		return FormatNDJSON
	}

	// TOML [section] headers look like JSON arrays, so check TOML first.
	if isLikelyTOML(lines) {
		return FormatTOML
	}

	if strings.HasPrefix(input, "{") || strings.HasPrefix(input, "[") {
		return FormatJSON
	}

	return FormatYAML
}

// DecodeDocuments parses input into one T per document. Single-document
// formats yield one element; multi-document YAML and NDJSON yield one per
// document or line.
func DecodeDocuments[T any](input string) ([]T, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, fmt.Errorf("empty input")
	}

	switch DetectFormat(input) {
	case FormatMultiYAML:
		return decodeMultiYAML[T](input)
	case FormatNDJSON:
		return decodeNDJSON[T](input)
	case FormatTOML:
		var doc T
		if err := toml.Unmarshal([]byte(input), &doc); err != nil {
			return nil, fmt.Errorf("invalid TOML: %w", err)
		}
		return []T{doc}, nil
	case FormatJSON:
		var doc T
		if err := json.Unmarshal([]byte(input), &doc); err != nil {
			return nil, fmt.Errorf("invalid JSON: %w", err)
		}
		return []T{doc}, nil
	default:
		var doc T
		if err := yaml.Unmarshal([]byte(input), &doc); err != nil {
			return nil, fmt.Errorf("invalid YAML: %w", err)
		}
		return []T{doc}, nil
	}
}

// DecodeFile reads path and decodes it with DecodeDocuments.
func DecodeFile[T any](path string) ([]T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	docs, err := DecodeDocuments[T](string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return docs, nil
}

func decodeMultiYAML[T any](input string) ([]T, error) {
	var results []T
	decoder := yaml.NewDecoder(strings.NewReader(input))

	for {
		var node yaml.Node
		if err := decoder.Decode(&node); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("invalid multi-document YAML: %w", err)
		}
		if len(node.Content) == 0 || isNullNode(node.Content[0]) {
			continue
		}
		var doc T
		if err := node.Decode(&doc); err != nil {
			return nil, fmt.Errorf("document %d: %w", len(results)+1, err)
		}
		results = append(results, doc)
	}

	if len(results) == 0 {
		return nil, fmt.Errorf("no documents found in multi-document YAML")
	}
	return results, nil
}

func isNullNode(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.Tag == "!!null"
}

func decodeNDJSON[T any](input string) ([]T, error) {
	lines := strings.Split(input, "\n")
	results := make([]T, 0, len(lines))

	for i, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var doc T
		dec := json.NewDecoder(bytes.NewReader([]byte(line)))
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		results = append(results, doc)
	}

	if len(results) == 0 {
		return nil, fmt.Errorf("no data found in input")
	}
	return results, nil
}

// isLikelyNDJSON requires several non-empty lines, most of which start like
// a JSON object or array.
func isLikelyNDJSON(lines []string) bool {
	jsonCount := 0
	nonEmptyCount := 0

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		nonEmptyCount++
		if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
			jsonCount++
		}
	}

	return nonEmptyCount > 1 && jsonCount > nonEmptyCount/2
}

// isLikelyTOML reports TOML when any section header is present or most
// lines are key = value pairs.
func isLikelyTOML(lines []string) bool {
	sectionCount := 0
	keyValueCount := 0
	nonEmptyCount := 0

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		nonEmptyCount++

		if tomlSectionPattern.MatchString(line) {
			sectionCount++
		}
		if tomlKeyValuePattern.MatchString(line) {
			keyValueCount++
		}
	}

	if sectionCount > 0 {
		return true
	}
	return nonEmptyCount > 0 && keyValueCount > nonEmptyCount/2
}

// Normalize converts value into plain maps, slices and scalars via its JSON
// form so expression engines can walk it. Struct tags are honoured.
func Normalize(value any) (any, error) {
	if value == nil {
		return nil, nil
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Slice, reflect.Map, reflect.Interface:
		if rv.IsNil() {
			return nil, nil
		}
	}

	data, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("cannot marshal %T to JSON: %w", value, err)
	}
	var result any
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("cannot unmarshal to standard types: %w", err)
	}
	return result, nil
}

// Package jsonpath selects parts of JSON documents with simple JSONPath
// expressions ($.data.items[0].name), evaluated by gjson.
package jsonpath

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/tidwall/gjson"
)

var (
	ErrEmptyDocument = errors.New("empty JSON document")
	ErrEmptyPath     = errors.New("empty JSONPath expression")
)

// Select returns the raw JSON found at path.
func Select(data []byte, path string) ([]byte, error) {
	result, err := lookup(data, path)
	if err != nil {
		return nil, err
	}
	return []byte(result.Raw), nil
}

// Extract returns the value at path as a string. JSON null becomes "null";
// objects and arrays are returned as raw JSON.
func Extract(data []byte, path string) (string, error) {
	result, err := lookup(data, path)
	if err != nil {
		return "", err
	}
	if result.Type == gjson.Null {
		return "null", nil
	}
	return result.String(), nil
}

// ExtractMultiple extracts one value per named path. Values that could be
// extracted are returned even when others fail.
func ExtractMultiple(data []byte, paths map[string]string) (map[string]string, error) {
	if len(paths) == 0 {
		return nil, errors.New("no JSONPath expressions provided")
	}

	results := make(map[string]string, len(paths))
	var failures []string

	for name, path := range paths {
		value, err := Extract(data, path)
		if err != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", name, err))
			continue
		}
		results[name] = value
	}

	if len(failures) > 0 {
		return results, fmt.Errorf("extraction errors: %s", strings.Join(failures, "; "))
	}
	return results, nil
}

func lookup(data []byte, path string) (gjson.Result, error) {
	if len(data) == 0 {
		return gjson.Result{}, ErrEmptyDocument
	}
	if path == "" {
		return gjson.Result{}, ErrEmptyPath
	}
	if !gjson.ValidBytes(data) {
		return gjson.Result{}, errors.New("invalid JSON document")
	}

	result := gjson.GetBytes(data, toGjsonPath(path))
	if !result.Exists() {
		return gjson.Result{}, fmt.Errorf("path not found: %s", path)
	}
	return result, nil
}

var (
	quotedKey = regexp.MustCompile(`\[['"]([^'"]*)['"]\]`)
	indexKey  = regexp.MustCompile(`\[(\d+)\]`)
)

// toGjsonPath converts "$.users[0]['name']" into "users.0.name".
// Paths without a leading "$" are assumed to be gjson syntax already.
func toGjsonPath(path string) string {
	if !strings.HasPrefix(path, "$") {
		return path
	}

	path = strings.TrimPrefix(path, "$")
	path = quotedKey.ReplaceAllString(path, ".$1")
	path = indexKey.ReplaceAllString(path, ".$1")
	path = strings.TrimPrefix(path, ".")

	if path == "" {
		return "@this"
	}
	return path
}

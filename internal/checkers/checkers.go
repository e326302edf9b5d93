// Package checkers provides quicktest checkers for JSON tool and CLI output.
package checkers

import (
	"encoding/json"
	"errors"
	"fmt"

	qt "github.com/frankban/quicktest"
	"github.com/yalp/jsonpath"
)

type jsonPathChecker struct {
	path  string
	inner qt.Checker
}

// JSONPathEquals returns a checker that parses got (a string or []byte) as
// JSON, reads path from it and compares the value with want using
// qt.DeepEquals. JSON numbers decode as float64.
//
//	c.Assert(out, checkers.JSONPathEquals("$.total"), float64(1))
func JSONPathEquals(path string) qt.Checker {
	return &jsonPathChecker{path: path, inner: qt.DeepEquals}
}

// JSONPathContains is like JSONPathEquals but checks that the value at path
// contains want, as qt.Contains does.
func JSONPathContains(path string) qt.Checker {
	return &jsonPathChecker{path: path, inner: qt.Contains}
}

func (c *jsonPathChecker) ArgNames() []string { return c.inner.ArgNames() }

func (c *jsonPathChecker) Check(got any, args []any, note func(key string, value any)) error {
	var data []byte
	switch v := got.(type) {
	case string:
		data = []byte(v)
	case []byte:
		data = v
	default:
		return qt.BadCheckf("expected string or []byte, got %T", got)
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		note("error", err)
		return errors.New("got is not valid JSON")
	}
	note("path", c.path)
	val, err := jsonpath.Read(doc, c.path)
	if err != nil {
		return fmt.Errorf("cannot read path: %w", err)
	}
	return c.inner.Check(val, args, note)
}

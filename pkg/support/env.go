package support

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/tidwall/gjson"

	pkgerrors "skeleton/pkg/errors"
)

// EnvExplode splits the variable key on delimiter into at most limit parts
// (limit <= 0 means no limit). Unset variables return def.
func EnvExplode(key string, def []string, delimiter string, limit int) []string {
	v, ok := os.LookupEnv(key)
	if !ok {
		return def
	}
	if limit <= 0 {
		limit = -1
	}
	return strings.SplitN(v, delimiter, limit)
}

// EnvGetCSV parses the variable key as one CSV record, honouring quoted
// fields. Unset variables return def.
func EnvGetCSV(key string, def []string, delimiter rune) ([]string, error) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return def, nil
	}

	r := csv.NewReader(strings.NewReader(v))
	r.Comma = delimiter
	r.LazyQuotes = true
	r.TrimLeadingSpace = true

	record, err := r.Read()
	if errors.Is(err, io.EOF) {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}
	return record, nil
}

// EnvJSONDecode decodes the variable key as JSON into maps, slices, float64,
// string, bool or nil. Unset variables return def.
func EnvJSONDecode(key string, def any) (any, error) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return def, nil
	}
	if !gjson.Valid(v) {
		return nil, pkgerrors.ErrInvalidJSON.WithDetail("key", key)
	}
	return gjson.Parse(v).Value(), nil
}

func IsJSON(s string) bool {
	return gjson.Valid(s)
}

// ErrorChain returns err followed by every cause it wraps.
func ErrorChain(err error) []error {
	var chain []error
	for err != nil {
		chain = append(chain, err)
		err = errors.Unwrap(err)
	}
	return chain
}

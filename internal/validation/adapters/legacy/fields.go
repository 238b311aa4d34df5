package legacy

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"govledger/internal/budget"
	dErrors "govledger/pkg/domain-errors"
	strs "govledger/pkg/platform/strings"
)

// fields is a decoded JSON object with folded keys. The original spelling of
// each key is kept for error messages.
type fields struct {
	values map[string]json.RawMessage
	names  map[string]string
	order  []string
}

var nullJSON = []byte("null")

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, nullJSON)
}

// parseObject decodes raw into fields. Null or empty input yields an empty
// object; any other non-object is an error.
func parseObject(raw json.RawMessage) (fields, error) {
	f := fields{values: map[string]json.RawMessage{}, names: map[string]string{}}
	if isNull(raw) {
		return f, nil
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(raw, &m); err != nil {
		return f, dErrors.Wrap(err, dErrors.CodeInvalidInput, "expected a JSON object")
	}
	for name, v := range m {
		if isNull(v) {
			continue
		}
		key := strs.Fold(name)
		if _, dup := f.values[key]; !dup {
			f.order = append(f.order, key)
		}
		f.values[key] = v
		f.names[key] = name
	}
	sort.Strings(f.order)
	return f, nil
}

// get returns the first present value among names.
func (f fields) get(names ...string) (json.RawMessage, string, bool) {
	for _, n := range names {
		key := strs.Fold(n)
		if v, ok := f.values[key]; ok {
			return v, f.names[key], true
		}
	}
	return nil, "", false
}

func (f fields) object(names ...string) (fields, string, bool, error) {
	raw, name, ok := f.get(names...)
	if !ok {
		return fields{}, "", false, nil
	}
	obj, err := parseObject(raw)
	if err != nil {
		return fields{}, name, true, err
	}
	return obj, name, true, nil
}

// text returns a string value. Numbers are accepted verbatim so that
// identifiers sent as JSON numbers keep their digits.
func (f fields) text(names ...string) (string, string, bool) {
	raw, name, ok := f.get(names...)
	if !ok {
		return "", "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, name, true
	}
	return string(bytes.TrimSpace(raw)), name, true
}

// parseAmount accepts a JSON number or a numeric string.
func parseAmount(raw json.RawMessage) (decimal.Decimal, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return budget.ParseAmount(s)
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || !(trimmed[0] == '-' || (trimmed[0] >= '0' && trimmed[0] <= '9')) {
		return decimal.Zero, dErrors.New(dErrors.CodeMalformedAmount, "amount is neither a number nor a numeric string")
	}
	return budget.ParseAmount(string(trimmed))
}

func parseInt(raw json.RawMessage) (int, error) {
	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		return n, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, fmt.Errorf("not an integer: %s", raw)
	}
	return strconv.Atoi(strings.TrimSpace(s))
}

package repository

import (
	"bytes"
	"encoding/json"
	"errors"
)

var errNotAList = errors.New("seen users payload is not a list")

// encodeSeenUsers renders the list as a 4-space indented JSON array with
// non-ASCII and HTML characters left as-is.
func encodeSeenUsers(users []string) ([]byte, error) {
	if users == nil {
		users = []string{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(users); err != nil {
		return nil, err
	}
	return unescapeLineSeparators(bytes.TrimSuffix(buf.Bytes(), []byte("\n"))), nil
}

// unescapeLineSeparators turns the \u2028 and \u2029 escapes encoding/json
// always emits back into raw runes. Other escapes are copied untouched.
func unescapeLineSeparators(data []byte) []byte {
	out := make([]byte, 0, len(data))
	for i := 0; i < len(data); i++ {
		if data[i] != '\\' || i+1 >= len(data) {
			out = append(out, data[i])
			continue
		}
		if data[i+1] == 'u' && i+6 <= len(data) {
			switch string(data[i+2 : i+6]) {
			case "2028":
				out = append(out, "\u2028"...)
				i += 5
				continue
			case "2029":
				out = append(out, "\u2029"...)
				i += 5
				continue
			}
		}
		out = append(out, data[i], data[i+1])
		i++
	}
	return out
}

func decodeSeenUsers(data []byte) ([]string, error) {
	var users []string
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, err
	}
	if users == nil {
		return nil, errNotAList
	}
	return users, nil
}

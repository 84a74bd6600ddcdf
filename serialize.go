// SPDX-License-Identifier: MIT
package dbusconsole

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Serialization errors.
var (
	ErrUnquotable       = errors.New("string holds both quote characters")
	ErrUnsupportedValue = errors.New("unsupported value")
)

// Serialize transforms Args into argument text accepted by Deserialize.
//
// Values are separated by ", " & dict entries use ": ". Strings are double quoted unless
// they contain a `"`. Floats always carry a fraction so they decode as float64.
//
// Deserialize yields int64 for integers, so an int is accepted as its int64 equivalent
// & comes back as an int64.
func Serialize(ctx context.Context, args Args) (output string, err error) {
	select {
	case <-ctx.Done():
		err = ctx.Err()
		return
	default:
		var buffer strings.Builder
		if err = writeList(&buffer, args); err != nil {
			return
		}

		output = buffer.String()
	}

	return
}

func writeList(buffer *strings.Builder, values []any) (err error) {
	for index := range values {
		if index > 0 {
			buffer.WriteString(", ")
		}

		if err = writeValue(buffer, values[index]); err != nil {
			return
		}
	}

	return
}

func writeValue(buffer *strings.Builder, value any) (err error) {
	switch v := value.(type) {
	case string:
		return writeString(buffer, v)
	case int:
		return writeValue(buffer, int64(v))
	case int64:
		buffer.WriteString(strconv.FormatInt(v, 10))
	case float64:
		return writeFloat(buffer, v)
	case Struct:
		return writeGroup(buffer, '(', v, ')')
	case Array:
		return writeGroup(buffer, '[', v, ']')
	case []any:
		return writeGroup(buffer, '[', v, ']')
	case Dict:
		return writeDict(buffer, v)
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedValue, value)
	}

	return
}

func writeString(buffer *strings.Builder, s string) error {
	quote := byte('"')
	if strings.IndexByte(s, '"') >= 0 {
		if strings.IndexByte(s, '\'') >= 0 {
			return fmt.Errorf("%w: %s", ErrUnquotable, s)
		}
		quote = '\''
	}

	buffer.WriteByte(quote)
	buffer.WriteString(s)
	buffer.WriteByte(quote)

	return nil
}

func writeFloat(buffer *strings.Builder, f float64) error {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("%w: %v", ErrUnsupportedValue, f)
	}

	s := strconv.FormatFloat(f, 'f', -1, 64)
	if strings.IndexByte(s, '.') < 0 {
		s += ".0"
	}
	buffer.WriteString(s)

	return nil
}

func writeGroup(buffer *strings.Builder, open byte, values []any, closer byte) (err error) {
	buffer.WriteByte(open)
	if err = writeList(buffer, values); err != nil {
		return
	}
	buffer.WriteByte(closer)

	return
}

func writeDict(buffer *strings.Builder, dict Dict) (err error) {
	buffer.WriteByte('{')
	for index := range dict {
		if index > 0 {
			buffer.WriteString(", ")
		}

		switch dict[index].Key.(type) {
		case string, int, int64, float64:
		default:
			return fmt.Errorf("%w: %T", ErrInvalidDictKey, dict[index].Key)
		}

		if err = writeValue(buffer, dict[index].Key); err != nil {
			return
		}
		buffer.WriteString(": ")
		if err = writeValue(buffer, dict[index].Value); err != nil {
			return
		}
	}
	buffer.WriteByte('}')

	return
}

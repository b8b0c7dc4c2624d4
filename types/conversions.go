package types

import (
	"encoding"
	"errors"
	"math/big"
	"reflect"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/inf.v0"
)

type fromStringFn func(value interface{}) (interface{}, error)

// DateLayout is the accepted layout for date-only filter values
const DateLayout = "2006-01-02"

var (
	timeType    = reflect.TypeOf(time.Time{})
	decimalType = reflect.TypeOf(inf.Dec{})
	bigIntType  = reflect.TypeOf(big.Int{})
)

// TruncateToDate drops the time of day, keeping the location of the value
func TruncateToDate(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// StringToTime parses RFC 3339 timestamps and date-only values ("2006-01-02")
func StringToTime(value interface{}) (interface{}, error) {
	switch value := value.(type) {
	case string:
		value = strings.TrimSpace(value)
		if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
			return t, nil
		}
		t, err := time.Parse(DateLayout, value)
		if err != nil {
			return nil, errors.New("time has wrong format, expected RFC 3339 or " + DateLayout)
		}
		return t, nil
	default:
		return value, nil
	}
}

func FloatToInt(value interface{}) (interface{}, error) {
	if f, ok := value.(float64); ok {
		return int(f), nil
	}

	return nil, errors.New("wrong value provided for int type")
}

func unmarshallerToText(factory func() encoding.TextUnmarshaler) fromStringFn {
	return func(value interface{}) (interface{}, error) {
		switch value := value.(type) {
		case string:
			t := factory()
			err := t.UnmarshalText([]byte(value))
			if err != nil {
				return nil, err
			}

			return t, nil
		default:
			return value, nil
		}
	}
}

var StringToDecimal = unmarshallerToText(func() encoding.TextUnmarshaler {
	return &inf.Dec{}
})

var StringToBigInt = unmarshallerToText(func() encoding.TextUnmarshaler {
	return &big.Int{}
})

// DecodeHook converts string input into the time, decimal and big integer
// fields of a decoded filter model
func DecodeHook() mapstructure.DecodeHookFunc {
	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if from.Kind() != reflect.String {
			return data, nil
		}

		var (
			converted interface{}
			err       error
		)
		switch to {
		case timeType:
			converted, err = StringToTime(data)
		case decimalType:
			converted, err = StringToDecimal(data)
		case bigIntType:
			converted, err = StringToBigInt(data)
		default:
			return data, nil
		}
		if err != nil {
			return nil, err
		}

		// mapstructure expects the struct value, the converters return pointers for text unmarshalers
		if v := reflect.ValueOf(converted); v.Kind() == reflect.Ptr {
			return v.Elem().Interface(), nil
		}
		return converted, nil
	}
}

package versionedConstants

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"reflect"

	"github.com/mitchellh/mapstructure"

	"github.com/starkfoundry/sn-exec-go/process"
)

const unboundedLimitValue = "unbounded"

// parseRawDocument decodes a declarative constants document into a generic
// map, keeping numbers as json.Number so integer and rational values survive
// without floating point loss. Unknown top-level keys stay in the map and are
// simply never read.
func parseRawDocument(rawDocument []byte) (map[string]interface{}, error) {
	decoder := json.NewDecoder(bytes.NewReader(rawDocument))
	decoder.UseNumber()

	document := make(map[string]interface{})
	err := decoder.Decode(&document)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", process.ErrMalformedConstantsDocument, err.Error())
	}

	return document, nil
}

// decodeSection decodes one section of the raw document into a typed struct,
// converting json.Number values to the target integer kinds and accepting the
// "unbounded" sentinel for limit fields
func decodeSection(rawSection interface{}, target interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			jsonNumberHookFunc(),
			unboundedLimitHookFunc(),
		),
		Result: target,
	})
	if err != nil {
		return err
	}

	return decoder.Decode(rawSection)
}

// jsonNumberHookFunc converts json.Number sources into integer targets
func jsonNumberHookFunc() mapstructure.DecodeHookFuncType {
	return func(from reflect.Type, to reflect.Type, value interface{}) (interface{}, error) {
		number, isNumber := value.(json.Number)
		if !isNumber {
			return value, nil
		}

		switch to.Kind() {
		case reflect.Uint64, reflect.Uint32, reflect.Uint16, reflect.Uint8, reflect.Uint:
			return parseUint64(number)
		case reflect.Int64, reflect.Int32, reflect.Int16, reflect.Int8, reflect.Int:
			return number.Int64()
		default:
			return value, nil
		}
	}
}

// unboundedLimitHookFunc maps the "unbounded" sentinel to the maximum value
// of the target unsigned integer field
func unboundedLimitHookFunc() mapstructure.DecodeHookFuncType {
	return func(from reflect.Type, to reflect.Type, value interface{}) (interface{}, error) {
		text, isString := value.(string)
		if !isString || text != unboundedLimitValue {
			return value, nil
		}
		if to.Kind() != reflect.Uint64 {
			return value, nil
		}

		return uint64(math.MaxUint64), nil
	}
}

// parseRatio converts a decimal json.Number into an exact rational
func parseRatio(rawValue interface{}, fieldName string) (*big.Rat, error) {
	number, isNumber := rawValue.(json.Number)
	if !isNumber {
		return nil, fmt.Errorf("%w: field '%s' is not a number", process.ErrMalformedConstantsDocument, fieldName)
	}

	ratio, ok := new(big.Rat).SetString(number.String())
	if !ok {
		return nil, fmt.Errorf("%w: field '%s' is not a valid ratio", process.ErrMalformedConstantsDocument, fieldName)
	}

	return ratio, nil
}

// getSection returns a nested object section of the document
func getSection(document map[string]interface{}, key string) (map[string]interface{}, error) {
	rawSection, hasSection := document[key]
	if !hasSection {
		return nil, fmt.Errorf("%w: missing section '%s'", process.ErrMalformedConstantsDocument, key)
	}

	section, isObject := rawSection.(map[string]interface{})
	if !isObject {
		return nil, fmt.Errorf("%w: section '%s' is not an object", process.ErrMalformedConstantsDocument, key)
	}

	return section, nil
}

// getUint32Field returns a scalar unsigned field that must fit 32 bits
func getUint32Field(document map[string]interface{}, key string) (uint32, error) {
	value, err := getUint64Field(document, key)
	if err != nil {
		return 0, err
	}
	if value > math.MaxUint32 {
		return 0, fmt.Errorf("%w: field '%s' does not fit uint32", process.ErrGasCostValueOutOfRange, key)
	}

	return uint32(value), nil
}

// getUint64Field returns a scalar unsigned field of the document
func getUint64Field(document map[string]interface{}, key string) (uint64, error) {
	rawValue, hasValue := document[key]
	if !hasValue {
		return 0, fmt.Errorf("%w: missing field '%s'", process.ErrMalformedConstantsDocument, key)
	}

	number, isNumber := rawValue.(json.Number)
	if !isNumber {
		return 0, fmt.Errorf("%w: field '%s' is not a number", process.ErrMalformedConstantsDocument, key)
	}

	value, err := parseUint64(number)
	if err != nil {
		return 0, fmt.Errorf("%w: field '%s'", process.ErrGasCostValueOutOfRange, key)
	}

	return value, nil
}

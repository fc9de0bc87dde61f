package resolvers

import (
	"fmt"
	"reflect"
	"time"

	"github.com/mitchellh/mapstructure"

	gqlmodels "stockledger.GO/graphql/models"
)

func numberToStringHook() mapstructure.DecodeHookFunc {
	return func(f, t reflect.Type, data interface{}) (interface{}, error) {
		if t.Kind() != reflect.String {
			return data, nil
		}
		switch f.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
			reflect.Float32, reflect.Float64:
			return fmt.Sprint(data), nil
		}
		return data, nil
	}
}

func timeToStringHook() mapstructure.DecodeHookFunc {
	timeType := reflect.TypeOf(time.Time{})
	return func(f, t reflect.Type, data interface{}) (interface{}, error) {
		if f != timeType || t.Kind() != reflect.String {
			return data, nil
		}
		return data.(time.Time).UTC().Format(time.RFC3339), nil
	}
}

var flatDecodeHook = mapstructure.ComposeDecodeHookFunc(
	numberToStringHook(),
	timeToStringHook(),
)

func decodeFlat(row map[string]interface{}, out interface{}) error {
	cfg := &mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		DecodeHook:       flatDecodeHook,
		Result:           out,
		TagName:          "mapstructure",
		ZeroFields:       true,
	}
	dec, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return err
	}
	return dec.Decode(row)
}

func flatToItem(row map[string]interface{}) *gqlmodels.Item {
	var item gqlmodels.Item
	if err := decodeFlat(row, &item); err != nil {
		return &gqlmodels.Item{}
	}
	return &item
}

func flatToMutation(row map[string]interface{}) *gqlmodels.StockMutation {
	var m gqlmodels.StockMutation
	if err := decodeFlat(row, &m); err != nil {
		return &gqlmodels.StockMutation{}
	}
	return &m
}

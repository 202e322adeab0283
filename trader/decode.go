package trader

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

const (
	kindAccount  = "account"
	kindEntrust  = "entrust"
	kindPosition = "position"
	kindPayload  = "payload"
)

// DecodeError 表示 payload 字段缺失或无法解析。它从不被本层消化，
// 而是沿调用链交给派发核心统一收容。
type DecodeError struct {
	Kind string // 记录类型: account/entrust/position/payload
	Key  string // 出错字段，整体解析失败时为空
	Err  error
}

func (e *DecodeError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("decode %s: missing required field %q", e.Kind, e.Key)
	}
	return fmt.Sprintf("decode %s: %v", e.Kind, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

var (
	entrustSchema  = mustSchema(map[string]any{
		"type": "object",
		"properties": map[string]any{
			"entrust_id":        map[string]any{"type": "string"},
			"name":              map[string]any{"type": "string"},
			"code":              map[string]any{"type": "string"},
			"volume_deal":       map[string]any{"type": "number"},
			"volume_cancel":     map[string]any{"type": "number"},
			"volume":            map[string]any{"type": "number"},
			"price":             map[string]any{"type": "number"},
			"status":            map[string]any{"type": "string"},
			"entrust_type":      map[string]any{"type": "string"},
			"desc":              map[string]any{"type": "string"},
			"broker_entrust_id": map[string]any{"type": []any{"string", "null"}},
			"time":              map[string]any{"type": []any{"string", "null"}},
		},
	})
	positionSchema = mustSchema(map[string]any{
		"type": "object",
		"properties": map[string]any{
			"position_id":      map[string]any{"type": "string"},
			"name":             map[string]any{"type": "string"},
			"code":             map[string]any{"type": "string"},
			"volume":           map[string]any{"type": "number"},
			"volume_available": map[string]any{"type": "number"},
			"fee":              map[string]any{"type": "number"},
			"price":            map[string]any{"type": "number"},
			"profit_rate":      map[string]any{"type": "number"},
			"max_profit_rate":  map[string]any{"type": "number"},
			"min_profit_rate":  map[string]any{"type": "number"},
			"profit":           map[string]any{"type": "number"},
			"max_profit":       map[string]any{"type": "number"},
			"min_profit":       map[string]any{"type": "number"},
			"now_price":        map[string]any{"type": "number"},
			"max_price":        map[string]any{"type": "number"},
			"min_price":        map[string]any{"type": "number"},
			"max_profit_time":  map[string]any{"type": []any{"string", "null"}},
			"min_profit_time":  map[string]any{"type": []any{"string", "null"}},
		},
	})
)

func mustSchema(data map[string]any) *jsonschema.Schema {
	raw, err := json.Marshal(data)
	if err != nil {
		panic(err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", strings.NewReader(string(raw))); err != nil {
		panic(err)
	}
	return compiler.MustCompile("schema.json")
}

// decodeRecord 校验必填键与字段类型，再把字典水合进目标结构。
// 必填键可以为 null（如 time），但必须在场。
func decodeRecord(kind string, src map[string]any, required []string, schema *jsonschema.Schema, dst any) error {
	for _, key := range required {
		if _, ok := src[key]; !ok {
			return &DecodeError{Kind: kind, Key: key}
		}
	}
	if schema != nil {
		if err := schema.Validate(normalizeForSchema(src)); err != nil {
			return &DecodeError{Kind: kind, Err: err}
		}
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           dst,
		WeaklyTypedInput: true,
		DecodeHook:       timeDecodeHook,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(src); err != nil {
		return &DecodeError{Kind: kind, Err: err}
	}
	return nil
}

// normalizeForSchema widens Go-native numbers to float64 so hand-built
// maps validate the same as json.Unmarshal output.
func normalizeForSchema(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, child := range val {
			out[k] = normalizeForSchema(child)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, child := range val {
			out[i] = normalizeForSchema(child)
		}
		return out
	case int:
		return float64(val)
	case int32:
		return float64(val)
	case int64:
		return float64(val)
	case float32:
		return float64(val)
	default:
		return v
	}
}

func timeDecodeHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to != reflect.TypeOf(Time{}) || from.Kind() != reflect.String {
		return data, nil
	}
	parsed, err := ParseTime(data.(string))
	if err != nil {
		return nil, err
	}
	if parsed == nil {
		return nil, fmt.Errorf("empty timestamp")
	}
	return *parsed, nil
}

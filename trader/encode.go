package trader

import (
	"encoding/json"
	"errors"
	"reflect"
)

// ErrResultShape marks a handler return value that has no canonical
// wire form. Callers demote it to "no body" rather than failing.
var ErrResultShape = errors.New("unsupported result shape")

// EncodeResults 把处理器返回值收敛为统一的 JSON 数组：
// 单个 Signal 或订阅代码字符串包装成单元素数组，切片原样成列，
// nil 表示本轮无结果。其余形状返回 ErrResultShape。
func EncodeResults(v any) ([]byte, error) {
	if v == nil {
		return nil, nil
	}
	switch rv := v.(type) {
	case string:
		return json.Marshal([]any{rv})
	case Signal:
		return json.Marshal([]any{rv})
	case *Signal:
		if rv == nil {
			return nil, nil
		}
		return json.Marshal([]any{rv})
	}
	val := reflect.ValueOf(v)
	if val.Kind() == reflect.Slice {
		if val.IsNil() {
			return nil, nil
		}
		items := make([]any, val.Len())
		for i := range items {
			items[i] = val.Index(i).Interface()
		}
		return json.Marshal(items)
	}
	return nil, ErrResultShape
}

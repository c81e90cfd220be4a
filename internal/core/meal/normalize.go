package meal

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Normalize 將偏好或過敏原輸入轉為字串清單
//
// 字串輸入：看起來像 JSON 陣列時嘗試解析，失敗則以原字串作為單一元素；
// 含逗號時切割並去除空白與空值；其餘非空字串成為單一元素。
// 已是清單的輸入原樣回傳。nil 或無法辨識的型別回傳空清單，永不報錯。
func Normalize(raw any) []string {
	switch v := raw.(type) {
	case nil:
		return []string{}
	case string:
		return normalizeString(v)
	case []string:
		if v == nil {
			return []string{}
		}
		return v
	case StringList:
		if v == nil {
			return []string{}
		}
		return []string(v)
	case []any:
		return fromAnySlice(v)
	default:
		return []string{}
	}
}

func normalizeString(s string) []string {
	trimmed := strings.TrimSpace(s)
	if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
		var items []any
		if err := json.Unmarshal([]byte(trimmed), &items); err != nil {
			return []string{s}
		}
		return fromAnySlice(items)
	}

	if strings.Contains(s, ",") {
		parts := strings.Split(s, ",")
		out := make([]string, 0, len(parts))
		for _, part := range parts {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		return out
	}

	if trimmed == "" {
		return []string{}
	}
	return []string{trimmed}
}

func fromAnySlice(items []any) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		switch v := item.(type) {
		case string:
			out = append(out, v)
		case nil:
		default:
			out = append(out, fmt.Sprint(v))
		}
	}
	return out
}

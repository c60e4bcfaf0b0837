// backend/internal/adapters/out/firestore/helper_repository_fs.go
package firestore

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// Defensive decoders over snap.Data() maps.
// Firestore の数値は環境によって int64 / float64 の揺れがあるため、
// DataTo ではなく自前パースで吸収する。

func mapGetString(data map[string]any, keys ...string) string {
	for _, k := range keys {
		v, ok := data[k]
		if !ok || v == nil {
			continue
		}
		if s, ok := v.(string); ok {
			s = strings.TrimSpace(s)
			if s != "" {
				return s
			}
		}
	}
	return ""
}

func mapGetInt(data map[string]any, key string) int {
	switch v := data[key].(type) {
	case int64:
		return int(v)
	case int:
		return v
	case float64:
		return int(v)
	}
	return 0
}

func mapGetDecimal(data map[string]any, key string) decimal.Decimal {
	switch v := data[key].(type) {
	case float64:
		return decimal.NewFromFloat(v)
	case int64:
		return decimal.NewFromInt(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case string:
		if d, err := decimal.NewFromString(strings.TrimSpace(v)); err == nil {
			return d
		}
	}
	return decimal.Zero
}

func mapGetTime(data map[string]any, key string) time.Time {
	if v, ok := data[key].(time.Time); ok && !v.IsZero() {
		return v.UTC()
	}
	// 念のため protobuf Timestamp も受ける（環境差の吸収）
	if ts, ok := data[key].(*timestamppb.Timestamp); ok && ts != nil {
		t := ts.AsTime()
		if !t.IsZero() {
			return t.UTC()
		}
	}
	return time.Time{}
}

func mapGetMap(data map[string]any, key string) map[string]any {
	if m, ok := data[key].(map[string]any); ok {
		return m
	}
	return nil
}

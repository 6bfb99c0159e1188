package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// NutrientKind は栄養成分値の種別です
type NutrientKind int

const (
	NutrientNumber NutrientKind = iota + 1
	NutrientText
)

// NutrientValue は数値または文字列のいずれかを保持するタグ付き共用体です
// 数値はJSONリテラルのまま保持し、テキスト表現を保存時と一致させます
type NutrientValue struct {
	kind   NutrientKind
	number json.Number
	text   string
}

// Number は数値の栄養成分値を作成します
func Number(literal json.Number) NutrientValue {
	return NutrientValue{kind: NutrientNumber, number: literal}
}

// Text は文字列の栄養成分値を作成します
func Text(s string) NutrientValue {
	return NutrientValue{kind: NutrientText, text: s}
}

// Kind は値の種別を返します
func (v NutrientValue) Kind() NutrientKind {
	return v.kind
}

// Float は数値として解釈できる場合にその値を返します
func (v NutrientValue) Float() (float64, bool) {
	if v.kind != NutrientNumber {
		return 0, false
	}
	f, err := v.number.Float64()
	if err != nil {
		return 0, false
	}
	return f, true
}

// String は表示用の文字列を返します
func (v NutrientValue) String() string {
	switch v.kind {
	case NutrientNumber:
		return v.number.String()
	case NutrientText:
		return v.text
	default:
		return ""
	}
}

// MarshalJSON は値をJSONの数値または文字列として出力します
func (v NutrientValue) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case NutrientNumber:
		return []byte(v.number.String()), nil
	case NutrientText:
		return json.Marshal(v.text)
	default:
		return nil, fmt.Errorf("%w: empty nutrient value", ErrInvalidNutritionFacts)
	}
}

// UnmarshalJSON はJSONの数値または文字列を受け付けます
func (v *NutrientValue) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidNutritionFacts, err)
	}

	switch val := raw.(type) {
	case json.Number:
		*v = Number(val)
	case string:
		*v = Text(val)
	default:
		return fmt.Errorf("%w: unsupported value %s", ErrInvalidNutritionFacts, string(data))
	}
	return nil
}

// NutritionFacts は栄養成分名から値へのマップです
type NutritionFacts map[string]NutrientValue

// ParseNutritionFacts はJSONオブジェクトを NutritionFacts に変換します
// null または空入力は nil を返します
func ParseNutritionFacts(data []byte) (NutritionFacts, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}

	var facts NutritionFacts
	if err := json.Unmarshal(trimmed, &facts); err != nil {
		if errors.Is(err, ErrInvalidNutritionFacts) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidNutritionFacts, err)
	}
	return facts, nil
}

// CanonicalText は部分一致検索に使うテキスト表現を返します
//
// 出力は PostgreSQL の jsonb::text と同一です。キーはバイト長、次にバイト順で
// 並べ、要素は ", "、キーと値は ": " で区切ります。
func (f NutritionFacts) CanonicalText() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, k := range f.Keys() {
		if i > 0 {
			b.WriteString(", ")
		}
		writeJSONBString(&b, k)
		b.WriteString(": ")

		v := f[k]
		switch v.kind {
		case NutrientNumber:
			b.WriteString(v.number.String())
		case NutrientText:
			writeJSONBString(&b, v.text)
		default:
			b.WriteString("null")
		}
	}
	b.WriteByte('}')
	return b.String()
}

// Keys はキーを jsonb と同じ順序（バイト長、次にバイト順）で返します
func (f NutritionFacts) Keys() []string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) < len(keys[j])
		}
		return keys[i] < keys[j]
	})
	return keys
}

// writeJSONBString は jsonb の escape_json と同じ規則で文字列を書き出します
func writeJSONBString(b *strings.Builder, s string) {
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if r < 0x20 {
				fmt.Fprintf(b, `\u%04x`, r)
			} else {
				b.WriteRune(r)
			}
		}
	}
	b.WriteByte('"')
}

package memory

import (
	"strings"
	"unicode"
)

// Trigrams は pg_trgm と同じ規則で文字列のトライグラム集合を抽出します
//
// 小文字化した後、英数字以外で単語に分割し、各単語の前に空白2つ、後ろに空白1つを
// 付けてから3文字ずつ切り出します。
func Trigrams(s string) map[string]struct{} {
	set := make(map[string]struct{})
	words := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	for _, word := range words {
		padded := []rune("  " + word + " ")
		for i := 0; i+3 <= len(padded); i++ {
			set[string(padded[i:i+3])] = struct{}{}
		}
	}
	return set
}

// Similarity は pg_trgm の similarity() と同じく、共通トライグラム数を和集合の
// 要素数で割った値を返します。いずれかが空の場合は0です。
// PostgreSQL と同様に real (float32) 精度で計算します。
func Similarity(a, b string) float32 {
	return similarity(Trigrams(a), Trigrams(b))
}

func similarity(ta, tb map[string]struct{}) float32 {
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}

	common := 0
	for t := range ta {
		if _, ok := tb[t]; ok {
			common++
		}
	}
	return float32(common) / float32(len(ta)+len(tb)-common)
}

package application

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/samber/mo"

	"github.com/jinford/catalog/internal/module/catalog/domain"
)

// PageInfo はページ番号付きページネーションのメタ情報です
type PageInfo struct {
	Number   int
	Size     int
	Count    int
	NumPages int
}

// HasNext は次のページがあるかどうかを返します
func (p PageInfo) HasNext() bool {
	return p.Number < p.NumPages
}

// HasPrevious は前のページがあるかどうかを返します
func (p PageInfo) HasPrevious() bool {
	return p.Number > 1
}

// lastPage は最終ページを指す page の値です
const lastPage = "last"

// pageRequest は検証済みのページ指定です
type pageRequest struct {
	Number int
	// Last は page=last の指定で、Number は全件数が分かるまで1です
	Last bool
}

// parsePageNumber はページ番号の文字列を検証します
// 未指定の場合は1ページ目です。オフセットが int に収まらない番号は範囲外です
func parsePageNumber(raw mo.Option[string], size int) (pageRequest, error) {
	value, ok := raw.Get()
	if !ok || value == "" {
		return pageRequest{Number: 1}, nil
	}
	if value == lastPage {
		return pageRequest{Number: 1, Last: true}, nil
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) && !strings.HasPrefix(value, "-") {
			return pageRequest{}, fmt.Errorf("%w: page %s", domain.ErrPageOutOfRange, value)
		}
		return pageRequest{}, fmt.Errorf("%w: page must be an integer: %q", domain.ErrInvalidRequest, value)
	}
	if n < 1 {
		return pageRequest{}, fmt.Errorf("%w: page must be >= 1: %d", domain.ErrInvalidRequest, n)
	}
	if n > math.MaxInt/size+1 {
		return pageRequest{}, fmt.Errorf("%w: page %d", domain.ErrPageOutOfRange, n)
	}
	return pageRequest{Number: n}, nil
}

// pageWindow はページ番号から取得範囲を求めます
func pageWindow(number, size int) domain.Window {
	return domain.Window{
		Offset: (number - 1) * size,
		Limit:  size,
	}
}

// newPageInfo は全件数からページ情報を作成し、ページ番号が範囲内か検証します
// 0件の場合も1ページ目は有効です
func newPageInfo(number, size, count int) (PageInfo, error) {
	numPages := pageCount(count, size)
	if number > numPages {
		return PageInfo{}, fmt.Errorf("%w: page %d of %d", domain.ErrPageOutOfRange, number, numPages)
	}

	return PageInfo{
		Number:   number,
		Size:     size,
		Count:    count,
		NumPages: numPages,
	}, nil
}

// pageCount は全件数からページ数を求めます。0件でも1ページです
func pageCount(count, size int) int {
	if count == 0 {
		return 1
	}
	return (count + size - 1) / size
}

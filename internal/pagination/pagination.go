// Package pagination 计算帖子列表的分页窗口。
// 页码非法或越界时不报错，而是落到最近的合法页。
package pagination

import (
	"strconv"
	"strings"
)

// PerPage 每页帖子数
const PerPage = 10

// Page 一页的元数据
type Page struct {
	Number     int   `json:"page"`
	NumPages   int   `json:"num_pages"`
	PerPage    int   `json:"per_page"`
	TotalCount int64 `json:"total"`
}

// New 根据原始页码参数和总数计算当前页。
// 非数字或为空时取第一页，小于 1 取第一页，超过最后一页取最后一页。
func New(raw string, total int64, perPage int) Page {
	if perPage <= 0 {
		perPage = PerPage
	}
	if total < 0 {
		total = 0
	}

	numPages := int((total + int64(perPage) - 1) / int64(perPage))
	if numPages < 1 {
		numPages = 1
	}

	number, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || number < 1 {
		number = 1
	}
	if number > numPages {
		number = numPages
	}

	return Page{
		Number:     number,
		NumPages:   numPages,
		PerPage:    perPage,
		TotalCount: total,
	}
}

// Offset 本页第一条的偏移量
func (p Page) Offset() int {
	return (p.Number - 1) * p.PerPage
}

// Limit 本页最多条数
func (p Page) Limit() int {
	return p.PerPage
}

func (p Page) HasNext() bool {
	return p.Number < p.NumPages
}

func (p Page) HasPrevious() bool {
	return p.Number > 1
}

func (p Page) HasOtherPages() bool {
	return p.HasNext() || p.HasPrevious()
}

func (p Page) NextPageNumber() int {
	if p.HasNext() {
		return p.Number + 1
	}
	return p.Number
}

func (p Page) PreviousPageNumber() int {
	if p.HasPrevious() {
		return p.Number - 1
	}
	return p.Number
}

// PageRange 1..NumPages，模板渲染页码链接用
func (p Page) PageRange() []int {
	r := make([]int, p.NumPages)
	for i := range r {
		r[i] = i + 1
	}
	return r
}

package site

// Plan 描述一个列表的分页方式，页码从 1 开始。
type Plan struct {
	TotalItems int
	PerPage    int
	TotalPages int
}

// NewPlan 计算分页；capItems > 0 时最多只分页前 capItems 条。
// 没有条目时仍然有一页（空页）。
func NewPlan(totalItems, perPage, capItems int) Plan {
	if perPage <= 0 {
		perPage = 20
	}
	if totalItems < 0 {
		totalItems = 0
	}
	if capItems > 0 && capItems < totalItems {
		totalItems = capItems
	}
	pages := (totalItems + perPage - 1) / perPage
	if pages < 1 {
		pages = 1
	}
	return Plan{
		TotalItems: totalItems,
		PerPage:    perPage,
		TotalPages: pages,
	}
}

// Window 返回第 n 页在有序列表中的 [start, end) 区间。
func (p Plan) Window(n int) (start, end int) {
	if n < 1 || n > p.TotalPages {
		return 0, 0
	}
	start = (n - 1) * p.PerPage
	end = start + p.PerPage
	if start > p.TotalItems {
		start = p.TotalItems
	}
	if end > p.TotalItems {
		end = p.TotalItems
	}
	return start, end
}

// Pages 返回 1..TotalPages。
func (p Plan) Pages() []int {
	out := make([]int, p.TotalPages)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

// Slice 取出第 n 页的条目。
func Slice[T any](items []T, p Plan, n int) []T {
	start, end := p.Window(n)
	if end > len(items) {
		end = len(items)
	}
	if start >= end {
		return nil
	}
	return items[start:end]
}

package service

import "github.com/nexapost/internal/db"

// PageResult 表示一次分页计算的结果。
// Prev 和 Next 是页码，0 表示没有对应方向的页面。
type PageResult struct {
	Posts      []db.Post
	Page       int
	TotalPages int
	Prev       int
	Next       int
}

// Paginate computes the visible window over an already materialized,
// recency-ordered list. A non-positive requested page is treated as 1;
// a page past the last is allowed and simply yields an empty window
// with no next target. An empty list has no navigation targets at all,
// whatever page was requested.
func Paginate(posts []db.Post, pageSize, page int) PageResult {
	if pageSize <= 0 {
		pageSize = 1
	}
	if page < 1 {
		page = 1
	}

	total := len(posts)
	totalPages := (total + pageSize - 1) / pageSize
	if totalPages == 0 {
		totalPages = 1
	}

	result := PageResult{Page: page, TotalPages: totalPages}

	// 空库时没有任何可导航的页面
	if total == 0 {
		return result
	}

	// 先用除法判断越界，页码很大时直接乘会溢出
	start := total
	if page-1 <= (total-1)/pageSize {
		start = (page - 1) * pageSize
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	result.Posts = posts[start:end]

	if page > 1 {
		result.Prev = page - 1
	}
	if page < totalPages {
		result.Next = page + 1
	}

	return result
}

package paging

// TotalPages is ceil(total/pageSize); zero records mean zero pages.
func TotalPages(total, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

// Clamp pins a requested page into [1, totalPages]. An empty result set still
// reports page 1 so navigation has somewhere to stand.
func Clamp(page, totalPages int) int {
	if page < 1 {
		return 1
	}
	if totalPages >= 1 && page > totalPages {
		return totalPages
	}
	return page
}

// Slice returns the half-open index range [start, end) for a page over a set
// of total items.
func Slice(page, pageSize, total int) (int, int) {
	if pageSize <= 0 || total <= 0 {
		return 0, 0
	}
	page = Clamp(page, TotalPages(total, pageSize))
	start := (page - 1) * pageSize
	if start >= total {
		return 0, 0
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	return start, end
}

package watchscout

// Pages returns the 1-based page numbers needed to cover count results
// at pageSize results per page. A count of zero yields no pages.
func Pages(count, pageSize int) ([]int, error) {
	if pageSize <= 0 {
		return nil, Errorf(EINVALID, "page size must be positive, got %d", pageSize)
	}
	if count < 0 {
		return nil, Errorf(EINVALID, "listing count must not be negative, got %d", count)
	}

	n := (count + pageSize - 1) / pageSize
	pages := make([]int, n)
	for i := range pages {
		pages[i] = i + 1
	}
	return pages, nil
}

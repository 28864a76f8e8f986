package invoice

import "strconv"

// ItemsPerPage is the size of one page of the invoices table.
const ItemsPerPage = 6

// Ellipsis marks a gap in the page links returned by Pagination.
const Ellipsis = "..."

// Pagination returns the page links to display for currentPage out of totalPages.
// At most seven entries are returned; gaps are marked with Ellipsis.
func Pagination(currentPage, totalPages int) []string {
	switch {
	case totalPages <= 0:
		return nil
	case totalPages <= 7:
		return pages(1, totalPages)
	case currentPage <= 3:
		return []string{"1", "2", "3", Ellipsis, itoa(totalPages - 1), itoa(totalPages)}
	case currentPage >= totalPages-2:
		return []string{"1", "2", Ellipsis, itoa(totalPages - 2), itoa(totalPages - 1), itoa(totalPages)}
	}

	return []string{
		"1", Ellipsis,
		itoa(currentPage - 1), itoa(currentPage), itoa(currentPage + 1),
		Ellipsis, itoa(totalPages),
	}
}

// TotalPages converts a row count into a number of pages.
func TotalPages(count int) int {
	return (count + ItemsPerPage - 1) / ItemsPerPage
}

func pages(from, to int) []string {
	out := make([]string, 0, to-from+1)
	for i := from; i <= to; i++ {
		out = append(out, itoa(i))
	}

	return out
}

func itoa(i int) string { return strconv.Itoa(i) }

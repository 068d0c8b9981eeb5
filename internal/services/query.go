package services

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/jlbbacs/quick-registration/internal/models"
)

// FilterRegistrants returns the subset of registrants matching the search
// term: case-insensitive substring on name and email, plain substring on
// phone. A blank or whitespace-only term matches everything. The result is
// pure derived state; the input slice is never modified.
func FilterRegistrants(registrants []models.Registrant, term string) []models.Registrant {
	term = strings.TrimSpace(term)
	if term == "" {
		return registrants
	}

	lowered := strings.ToLower(term)
	filtered := make([]models.Registrant, 0, len(registrants))
	for _, r := range registrants {
		if strings.Contains(strings.ToLower(r.FullName), lowered) ||
			strings.Contains(strings.ToLower(r.Email), lowered) ||
			strings.Contains(r.Phone, term) {
			filtered = append(filtered, r)
		}
	}

	return filtered
}

// TotalPages computes ceil(total/perPage), never less than 1.
func TotalPages(total, perPage int) int {
	pages := int(math.Ceil(float64(total) / float64(perPage)))
	if pages < 1 {
		return 1
	}
	return pages
}

// ClampPage confines a page index to [1, totalPages].
func ClampPage(page, totalPages int) int {
	if page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

// PaginateRegistrants slices one page out of the filtered listing and
// returns it together with the pagination envelope. The page index is
// clamped rather than rejected.
func PaginateRegistrants(filtered []models.Registrant, page, perPage int) *models.PaginatedRegistrants {
	total := len(filtered)
	totalPages := TotalPages(total, perPage)
	page = ClampPage(page, totalPages)

	start := (page - 1) * perPage
	end := start + perPage
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	response := &models.PaginatedRegistrants{
		Data: filtered[start:end],
	}
	response.Pagination.Page = page
	response.Pagination.PerPage = perPage
	response.Pagination.Total = total
	response.Pagination.TotalPages = totalPages

	return response
}

// ValidatePaginationParams parses the page and per_page query parameters,
// applying defaults for absent values.
func ValidatePaginationParams(pageParam, perPageParam string, defaultPerPage int) (int, int, error) {
	page := 1
	if pageParam != "" {
		parsed, err := strconv.Atoi(pageParam)
		if err != nil || parsed < 1 {
			return 0, 0, fmt.Errorf("invalid page parameter: %q", pageParam)
		}
		page = parsed
	}

	perPage := defaultPerPage
	if perPageParam != "" {
		parsed, err := strconv.Atoi(perPageParam)
		if err != nil || parsed < 1 || parsed > 100 {
			return 0, 0, fmt.Errorf("invalid per_page parameter: %q", perPageParam)
		}
		perPage = parsed
	}

	return page, perPage, nil
}

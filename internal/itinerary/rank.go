package itinerary

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/Domenick1991/tripsearch/internal/domain"
)

type SortKey string

const (
	SortByPrice       SortKey = "price"
	SortByDepartureAt SortKey = "departure_at"
)

// ParseSortKey defaults an empty key to price.
func ParseSortKey(s string) (SortKey, error) {
	switch k := SortKey(s); k {
	case "":
		return SortByPrice, nil
	case SortByPrice, SortByDepartureAt:
		return k, nil
	default:
		return "", &domain.ValidationError{Field: "sort", Message: fmt.Sprintf("unsupported sort %q", s)}
	}
}

// Rank returns a sorted copy of proposals, ascending by total price or by the
// UTC departure of the first segment. Equal keys keep their input order.
func Rank(proposals []domain.Proposal, key SortKey) []domain.Proposal {
	ranked := slices.Clone(proposals)
	switch key {
	case SortByDepartureAt:
		slices.SortStableFunc(ranked, func(a, b domain.Proposal) int {
			return a.FirstDepartureUTC().Compare(b.FirstDepartureUTC())
		})
	default:
		slices.SortStableFunc(ranked, func(a, b domain.Proposal) int {
			return cmp.Compare(a.TotalPrice, b.TotalPrice)
		})
	}
	return ranked
}

// Paginate slices one page out of ranked. A page past the end is empty.
func Paginate(ranked []domain.Proposal, p domain.PaginationParams) domain.ProposalPage {
	total := len(ranked)
	start := max(min(p.Offset(), total), 0)
	end := start + min(max(p.PerPage, 0), total-start)

	items := make([]domain.Proposal, end-start)
	copy(items, ranked[start:end])

	return domain.ProposalPage{
		Items:   items,
		Page:    p.Page,
		PerPage: p.PerPage,
		Total:   total,
	}
}

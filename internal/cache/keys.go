package cache

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Domenick1991/tripsearch/internal/domain"
)

func airportsKey() string {
	return "catalog:airports"
}

func airlinesKey() string {
	return "catalog:airlines"
}

// flightsKey identifies a flight filter independent of code order and case.
// catalog:flights:from={codes}:to={codes}:airline={code|any}
func flightsKey(filter domain.FlightFilter) string {
	airline := strings.ToUpper(strings.TrimSpace(filter.AirlineCode))
	if airline == "" {
		airline = "any"
	}
	return fmt.Sprintf("catalog:flights:from=%s:to=%s:airline=%s",
		codeList(filter.OriginCodes), codeList(filter.DestinationCodes), airline)
}

func codeList(codes []string) string {
	normalized := make([]string, 0, len(codes))
	for _, c := range codes {
		normalized = append(normalized, strings.ToUpper(strings.TrimSpace(c)))
	}
	slices.Sort(normalized)
	return strings.Join(slices.Compact(normalized), ",")
}

package handlers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/m04kA/HMS-ReservationService/pkg/types"
)

// ParseResourceParam разбирает query-параметр вида
// "staff:2,towel:5" в карту ресурсов. Пустое значение дает пустую карту.
func ParseResourceParam(raw string) (types.ResourceMap, error) {
	out := make(types.ResourceMap)
	if raw == "" {
		return out, nil
	}

	for _, pair := range strings.Split(raw, ",") {
		parts := strings.SplitN(pair, ":", 2)
		if len(parts) != 2 || parts[0] == "" {
			return nil, fmt.Errorf("invalid resource pair %q", pair)
		}
		qty, err := strconv.ParseInt(parts[1], 10, 64)
		if err != nil || qty <= 0 {
			return nil, fmt.Errorf("invalid quantity in resource pair %q", pair)
		}
		out[parts[0]] = qty
	}

	return out, nil
}

package app

import (
	"strings"

	"travel_search/internal/domain"
)

/********** tiny helpers **********/

// lookupAny: safe nested lookup with dot paths on maps.
func lookupAny(m map[string]any, path string) any {
	cur := any(m)
	for _, part := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		v, ok := obj[part]
		if !ok {
			return nil
		}
		cur = v
	}
	return cur
}

// lookupStr returns string at path or "".
func lookupStr(m map[string]any, path string) string {
	if v := lookupAny(m, path); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

/********** airport payload normalization **********/

// TransformAirports projects each raw airport record onto the shape the UI
// consumes and overrides the payload's data list with the projection. All
// other top-level fields pass through untouched. Pure: the input map is not
// mutated and equal inputs give equal outputs.
func TransformAirports(raw map[string]any) map[string]any {
	out := make(map[string]any, len(raw)+1)
	for k, v := range raw {
		out[k] = v
	}

	list, _ := raw["data"].([]any)
	airports := make([]domain.Airport, 0, len(list))
	for _, item := range list {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		airports = append(airports, domain.Airport{
			SkyID:    lookupStr(m, "skyId"),
			EntityID: lookupStr(m, "entityId"),
			Title: firstNonEmpty(
				lookupStr(m, "presentation.title"),
				lookupStr(m, "navigation.localizedName"),
			),
			Subtitle:        lookupStr(m, "presentation.subtitle"),
			SuggestionTitle: lookupStr(m, "presentation.suggestionTitle"),
		})
	}
	out["data"] = airports
	return out
}

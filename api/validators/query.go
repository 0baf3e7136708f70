package validators

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/harvestly/harvestly-backend/pkg/enums"
	pkgerrors "github.com/harvestly/harvestly-backend/pkg/errors"
)

func ParseQueryInt(r *http.Request, key string, defaultVal, min, max int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return defaultVal, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be numeric").WithDetails(map[string]any{"field": key})
	}
	if value < min || value > max {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter out of range").WithDetails(map[string]any{"field": key, "min": min, "max": max})
	}
	return value, nil
}

// ParseSortQuery resolves the sort query parameter; absence selects the smart sort.
func ParseSortQuery(r *http.Request, key string) (enums.SortMode, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	mode, err := enums.ParseSortMode(raw)
	if err != nil {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "unknown sort mode").WithDetails(map[string]any{"field": key, "value": raw})
	}
	return mode, nil
}

// ParseLatLngQuery reads an optional lat/lng pair. Supplying only one half of
// the pair is a validation error; supplying neither yields (nil, nil, nil).
func ParseLatLngQuery(r *http.Request, latKey, lngKey string) (*float64, *float64, error) {
	rawLat := strings.TrimSpace(r.URL.Query().Get(latKey))
	rawLng := strings.TrimSpace(r.URL.Query().Get(lngKey))
	if rawLat == "" && rawLng == "" {
		return nil, nil, nil
	}
	if rawLat == "" || rawLng == "" {
		return nil, nil, pkgerrors.New(pkgerrors.CodeValidation, "lat and lng must be supplied together").WithDetails(map[string]any{
			"fields": []string{latKey, lngKey},
		})
	}

	lat, err := strconv.ParseFloat(rawLat, 64)
	if err != nil || lat < -90 || lat > 90 {
		return nil, nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid latitude").WithDetails(map[string]any{"field": latKey})
	}
	lng, err := strconv.ParseFloat(rawLng, 64)
	if err != nil || lng < -180 || lng > 180 {
		return nil, nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid longitude").WithDetails(map[string]any{"field": lngKey})
	}
	return &lat, &lng, nil
}

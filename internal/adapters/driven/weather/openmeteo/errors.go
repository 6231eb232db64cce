package openmeteo

import "errors"

// ErrMalformedForecast indicates the daily arrays of a forecast differ in length.
var ErrMalformedForecast = errors.New("malformed forecast")

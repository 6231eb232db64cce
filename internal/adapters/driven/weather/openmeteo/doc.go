// Package openmeteo provides the WeatherClient adapter for the Open-Meteo
// geocoding and forecast APIs. Neither API requires authentication.
package openmeteo

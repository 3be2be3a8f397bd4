// Package config handles application configuration loading and validation.
//
// Configuration is loaded from config.yml and validated using struct tags.
// It covers the task inputs (route, scorecard, zones), the interpolation
// policy, and the optional live feed source.
package config

// Package config loads the unitspec configuration file. JSON and YAML
// documents are supported; every loaded document is validated against
// an embedded schema before use so typos surface as configuration
// errors instead of silently defaulted values.
package config

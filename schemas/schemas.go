// Package schemas embeds the JSON Schemas for mergegate's configuration files.
package schemas

import _ "embed"

// ConfigSchemaJSON is the JSON Schema for .mergegate.yaml.
//
//go:embed config.schema.json
var ConfigSchemaJSON string

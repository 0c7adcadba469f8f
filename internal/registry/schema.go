package registry

// checksSchemaJSON is the JSON Schema for checks files. It is compiled once
// at init and applied to the decoded YAML document before any CheckDefinition
// is constructed, so shape errors surface with schema paths instead of
// zero-valued structs.
const checksSchemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "title": "ARV checks file",
  "type": "object",
  "required": ["checks"],
  "additionalProperties": false,
  "properties": {
    "checks": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["id", "description", "category", "command"],
        "additionalProperties": false,
        "properties": {
          "id": {
            "type": "string",
            "pattern": "^[a-z0-9]+(-[a-z0-9]+)*$"
          },
          "description": {
            "type": "string",
            "minLength": 1
          },
          "category": {
            "enum": ["config", "tests", "search", "queue", "storage", "notifications"]
          },
          "required": {
            "type": "boolean"
          },
          "command": {
            "type": "string",
            "minLength": 1
          },
          "required_when": {
            "type": "string",
            "pattern": "^[A-Z][A-Z0-9_]*=true$"
          },
          "environments": {
            "type": "array",
            "items": {
              "enum": ["dev", "staging", "prod"]
            },
            "uniqueItems": true
          }
        }
      }
    }
  }
}`

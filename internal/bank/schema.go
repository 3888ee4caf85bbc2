package bank

// bankSchema is the JSON Schema every bank file must satisfy before the
// structural checks run. Shape errors are caught here; semantic errors
// (dangling references, bad parameters) are caught by validate.
const bankSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["format_version", "name", "domains", "items"],
  "additionalProperties": false,
  "properties": {
    "format_version": {"type": "string", "minLength": 1},
    "name": {"type": "string", "minLength": 1},
    "domains": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["name"],
        "additionalProperties": false,
        "properties": {
          "name": {"type": "string", "minLength": 1},
          "prior_variance": {"type": "number"},
          "min_items": {"type": "integer"},
          "weight": {"type": "number"}
        }
      }
    },
    "items": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["id", "domain", "stem", "a", "thresholds"],
        "additionalProperties": false,
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "domain": {"type": "string", "minLength": 1},
          "stem": {"type": "string", "minLength": 1},
          "a": {"type": "number"},
          "thresholds": {
            "type": "array",
            "minItems": 1,
            "items": {"type": ["number", "null"]}
          },
          "reversed": {"type": "boolean"},
          "choices": {"type": "array", "items": {"type": "string"}}
        }
      }
    },
    "config": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "min_items": {"type": "integer"},
        "max_items": {"type": "integer"},
        "domains_min": {"type": "integer"},
        "global_se_threshold": {"type": "number"},
        "group_se_threshold": {"type": "number"},
        "domain_penalty_lambda": {"type": "number"},
        "domain_weights": {
          "type": "object",
          "additionalProperties": {"type": "number"}
        },
        "min_items_by_domain": {
          "type": "object",
          "additionalProperties": {"type": "integer"}
        },
        "stop_if_bank_exhausted": {"type": "boolean"},
        "promis_domains": {"type": "array", "items": {"type": "string"}},
        "screener_domains": {"type": "array", "items": {"type": "string"}}
      }
    },
    "prior_covariance": {
      "type": "array",
      "items": {"type": "array", "items": {"type": "number"}}
    },
    "exclusions": {
      "type": "array",
      "items": {
        "type": "array",
        "minItems": 2,
        "maxItems": 2,
        "items": {"type": "string"}
      }
    },
    "response_scale": {"type": "array", "items": {"type": "string"}}
  }
}`

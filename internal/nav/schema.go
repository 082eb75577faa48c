package nav

import (
	"bytes"
	"encoding/json"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

const navDataInvalidCode = "NAV_DATA_INVALID"

const linksSchemaSource = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "$defs": {
    "link": {
      "type": "object",
      "properties": {
        "uri": {"type": "string"},
        "showInNav": {"type": "boolean"},
        "nav_links": {"type": "array", "items": {"$ref": "#/$defs/link"}}
      }
    }
  },
  "type": "array",
  "items": {"$ref": "#/$defs/link"}
}`

var linksSchema = jsonschema.MustCompileString("stache://nav_links.json", linksSchemaSource)

// Validate checks decoded nav data against the link schema. YAML-decoded
// values are normalized through JSON first so numeric types line up with
// what the validator expects.
func Validate(raw any) error {
	if raw == nil {
		return nil
	}
	encoded, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("nav: encode links: %w", err)
	}

	decoder := json.NewDecoder(bytes.NewReader(encoded))
	decoder.UseNumber()
	var doc any
	if err := decoder.Decode(&doc); err != nil {
		return fmt.Errorf("nav: decode links: %w", err)
	}

	if err := linksSchema.Validate(doc); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryValidation, "nav links do not match schema").
			WithTextCode(navDataInvalidCode)
	}
	return nil
}

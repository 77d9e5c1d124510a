package gamespec

import (
	_ "embed"
	"encoding/json"
	"regexp"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	apperrors "github.com/evka/playforge/internal/errors"
)

//go:embed schema.json
var schemaJSON []byte

var (
	schemaOnce sync.Once
	schema     *gojsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*gojsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schemaJSON))
	})
	return schema, schemaErr
}

// ```json ... ``` wrappers routinely survive in model output.
var fenceRe = regexp.MustCompile("```(?:json)?\\s*\\n?((?s:.*?))\\n?```")

// StripCodeFences removes a markdown code fence wrapper if present.
func StripCodeFences(raw string) string {
	if m := fenceRe.FindStringSubmatch(raw); m != nil {
		return strings.TrimSpace(m[1])
	}
	return strings.TrimSpace(raw)
}

// Load parses stored or generated game content into a playable, normalized
// spec. Legacy flat payloads are converted using the catalog metadata in info.
// Content that cannot be made playable yields an error with the content-format
// code so callers can distinguish bad content from transport failures.
func Load(raw string, info GameInfo) (*GameSpec, error) {
	cleaned := StripCodeFences(raw)
	if cleaned == "" {
		return nil, apperrors.NewContentFormatError("empty game content", nil)
	}

	data := []byte(cleaned)
	if !json.Valid(data) {
		return nil, apperrors.NewContentFormatError("game content is not valid JSON", nil)
	}

	if IsLegacy(data) {
		spec, err := ConvertLegacy(data, info)
		if err != nil {
			return nil, apperrors.NewContentFormatError("legacy content conversion failed", err)
		}
		return spec, nil
	}

	sch, err := compiledSchema()
	if err != nil {
		return nil, err
	}
	result, err := sch.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, apperrors.NewContentFormatError("schema validation failed", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return nil, apperrors.NewContentFormatError(strings.Join(msgs, "; "), nil)
	}

	var spec GameSpec
	if err := json.Unmarshal(data, &spec); err != nil {
		return nil, apperrors.NewContentFormatError("game content does not match the expected shape", err)
	}

	Normalize(&spec, spec.Config.GameType)
	return &spec, nil
}

package validation

// Error messages
const (
	ErrMsgLoadSchema    = "failed to load schema %s: %w"
	ErrMsgParseData     = "failed to parse JSON data: %w"
	ErrMsgParseSchema   = "failed to parse schema JSON: %w"
	ErrMsgCompileSchema = "failed to compile schema: %w"
	ErrMsgValidation    = "validation error: %w"
	ErrMsgSchemaFailed  = "schema validation failed:\n%s"
)

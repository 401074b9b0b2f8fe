package i18n

// Translator retrieves localized messages for validation message keys.
// data provides optional parameters to embed in the message (for example,
// "min" or "received").
type Translator interface {
	Message(key string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func get(data map[string]string, k string) string {
	if data == nil {
		return ""
	}
	return data[k]
}

func (t dictTranslator) Message(key string, data map[string]string) string {
	switch t.lang {
	case "ja":
		switch key {
		case "required":
			return "必須フィールドが不足しています"
		case "null.forbidden":
			return "null は許可されていません"
		case "string.type":
			return "文字列が必要です"
		case "number.type":
			return "数値が必要です"
		case "bool.type":
			return "真偽値が必要です"
		case "object.type":
			return "オブジェクトが必要です"
		case "object.unexpected":
			return "未知のフィールドです"
		case "list.type":
			return "リストが必要です"
		case "union.no_match":
			return "いずれの型にも一致しません"
		}
	default: // "en"
		switch key {
		case "required":
			return "Field is required"
		case "null.forbidden":
			return "Value must not be null"
		case "string.type":
			return "Expected string, got " + get(data, "received")
		case "string.empty":
			return "String cannot be empty"
		case "string.min":
			return "String must be at least " + get(data, "min") + " characters"
		case "string.max":
			return "String must be at most " + get(data, "max") + " characters"
		case "string.length":
			return "String must be exactly " + get(data, "length") + " characters"
		case "string.pattern":
			return "String does not match pattern: " + get(data, "pattern")
		case "string.email":
			return "Invalid email address"
		case "string.url":
			return "Invalid URL"
		case "string.uuid":
			return "Invalid UUID format"
		case "string.datetime":
			return "Invalid ISO format datetime"
		case "string.date":
			return "Invalid ISO format date"
		case "number.type":
			return "Expected number, got " + get(data, "received")
		case "number.int":
			return "Value must be an integer"
		case "number.min":
			return "Value must be at least " + get(data, "min")
		case "number.max":
			return "Value must be at most " + get(data, "max")
		case "number.gt":
			return "Value must be greater than " + get(data, "limit")
		case "number.lt":
			return "Value must be less than " + get(data, "limit")
		case "number.positive":
			return "Value must be positive (> 0)"
		case "number.negative":
			return "Value must be negative (< 0)"
		case "number.nonnegative":
			return "Value must not be negative"
		case "number.multiple_of":
			return "Value must be a multiple of " + get(data, "multiple")
		case "bool.type":
			return "Expected boolean, got " + get(data, "received")
		case "null.type":
			return "Expected null, got " + get(data, "received")
		case "literal.mismatch":
			return "Expected literal value " + get(data, "expected")
		case "object.type":
			return "Expected object, got " + get(data, "received")
		case "object.unexpected":
			return "Unexpected field: " + get(data, "key")
		case "list.type":
			return "Expected list, got " + get(data, "received")
		case "list.empty":
			return "List cannot be empty"
		case "list.min":
			return "List must have at least " + get(data, "min") + " items"
		case "list.max":
			return "List must have at most " + get(data, "max") + " items"
		case "list.length":
			return "List must have exactly " + get(data, "length") + " items"
		case "list.unique":
			return "List items must be unique"
		case "tuple.type":
			return "Expected tuple, got " + get(data, "received")
		case "tuple.length":
			return "Tuple must have exactly " + get(data, "length") + " items"
		case "tuple.min":
			return "Tuple must have at least " + get(data, "min") + " items"
		case "dict.type":
			return "Expected object, got " + get(data, "received")
		case "dict.min_properties":
			return "Object must have at least " + get(data, "min") + " properties"
		case "dict.max_properties":
			return "Object must have at most " + get(data, "max") + " properties"
		case "union.no_match":
			return "Value does not match any of the expected types"
		case "union.discriminator_missing":
			return "Missing discriminator field: " + get(data, "field")
		case "union.discriminator_unknown":
			return "Unknown discriminator value: " + get(data, "value")
		case "custom":
			return "Validation failed"
		}
	}
	return key
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given key using the current Translator.
func T(key string, data map[string]string) string { return currentTranslator.Message(key, data) }

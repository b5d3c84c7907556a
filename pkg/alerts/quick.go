package alerts

import (
	"strings"
	"unicode"
)

// Quick is the "type plus message" shorthand. The name, kebab-cased, becomes
// the only type of the alert:
//
//	a.Quick("success")                          // type "success", empty message
//	a.Quick("fooBar", "Saved!")                 // type "foo-bar", escaped message
//	a.Quick("warning", "cart.expiring", params) // type "warning", translated message
//	a.Quick("warning", "cart.expiring", params, "es")
//
// Two or three arguments take the translation path. Four or more arguments,
// like any other argument shape, return ErrUnknownOperation.
func (a *Alert) Quick(name string, args ...interface{}) (*Alert, error) {
	if name == "" {
		return nil, unknownOperation(a, name)
	}

	switch len(args) {
	case 0:
		return a.SetTypes(kebab(name)).SetEscapedMessage(""), nil
	case 1:
		message, ok := args[0].(string)
		if !ok {
			return nil, unknownOperation(a, name)
		}
		return a.SetTypes(kebab(name)).SetEscapedMessage(message), nil
	case 2, 3:
		key, ok := args[0].(string)
		if !ok {
			return nil, unknownOperation(a, name)
		}
		replace, ok := replacements(args[1])
		if !ok {
			return nil, unknownOperation(a, name)
		}
		var locale string
		if len(args) == 3 {
			if locale, ok = args[2].(string); !ok {
				return nil, unknownOperation(a, name)
			}
		}
		return a.SetTypes(kebab(name)).Trans(key, replace, locale), nil
	default:
		return nil, unknownOperation(a, name)
	}
}

func replacements(v interface{}) (map[string]string, bool) {
	switch r := v.(type) {
	case nil:
		return nil, true
	case map[string]string:
		return r, true
	case map[string]interface{}:
		out := make(map[string]string, len(r))
		for k, val := range r {
			s, ok := val.(string)
			if !ok {
				return nil, false
			}
			out[k] = s
		}
		return out, true
	default:
		return nil, false
	}
}

// kebab inserts a dash before every upper-case letter that follows another
// character and lower-cases the result. Underscores are preserved.
func kebab(name string) string {
	var sb strings.Builder
	for i, r := range name {
		if unicode.IsUpper(r) {
			if i > 0 {
				sb.WriteByte('-')
			}
			sb.WriteRune(unicode.ToLower(r))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

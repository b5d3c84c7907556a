package i18n

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	exactForm = regexp.MustCompile(`^\{(-?\d+)\}\s?`)
	rangeForm = regexp.MustCompile(`^\[(-?\d+|\*),\s*(-?\d+|\*)\]\s?`)
)

func choose(msg string, number int) string {
	forms := strings.Split(msg, "|")

	var plain []string
	for _, form := range forms {
		form = strings.TrimSpace(form)
		if m := exactForm.FindStringSubmatch(form); m != nil {
			if n, _ := strconv.Atoi(m[1]); n == number {
				return form[len(m[0]):]
			}
			continue
		}
		if m := rangeForm.FindStringSubmatch(form); m != nil {
			if inRange(number, m[1], m[2]) {
				return form[len(m[0]):]
			}
			continue
		}
		plain = append(plain, form)
	}

	switch {
	case len(plain) == 0:
		return strings.TrimSpace(forms[len(forms)-1])
	case number == 1 || len(plain) == 1:
		return plain[0]
	default:
		return plain[len(plain)-1]
	}
}

func inRange(n int, lo, hi string) bool {
	if lo != "*" {
		v, _ := strconv.Atoi(lo)
		if n < v {
			return false
		}
	}
	if hi != "*" {
		v, _ := strconv.Atoi(hi)
		if n > v {
			return false
		}
	}
	return true
}

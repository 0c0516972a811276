package contractparse

import "regexp"

// Strategy is one way of extracting a value. Strategies of a field are tried
// in order and the first non-empty result wins.
type Strategy[T any] struct {
	Name string
	Fn   func(text string) (T, bool)
}

func firstMatch[T any](text string, strategies []Strategy[T]) (T, string, bool) {
	for _, s := range strategies {
		if v, ok := s.Fn(text); ok {
			return v, s.Name, true
		}
	}
	var zero T
	return zero, "", false
}

// pattern turns a capture group of re into a string strategy.
func pattern(name string, re *regexp.Regexp, group int) Strategy[string] {
	return Strategy[string]{
		Name: name,
		Fn: func(text string) (string, bool) {
			m := re.FindStringSubmatch(text)
			if m == nil || group >= len(m) {
				return "", false
			}
			v := cleanValue(m[group])
			return v, v != ""
		},
	}
}

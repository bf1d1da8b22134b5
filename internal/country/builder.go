package country

import (
	"fmt"
	"sort"

	"github.com/samber/lo"
)

// LocalizedCountries returns every country defined for locale, sorted by localized name.
// Names are compared by code point unless WithCollation says otherwise; equal names
// fall back to code order so the result is always deterministic.
func LocalizedCountries(t Translator, locale string, opts ...Option) ([]Entry, error) {
	table, err := readTable(t, locale)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(table))
	for code, name := range table {
		entries = append(entries, Entry{Name: name, Code: CanonicalCode(code)})
	}

	compare := buildOptions(opts).comparer(locale)
	sort.Slice(entries, func(i, j int) bool {
		if c := compare(entries[i].Name, entries[j].Name); c != 0 {
			return c < 0
		}
		return entries[i].Code < entries[j].Code
	})

	return entries, nil
}

// PriorityCountries looks up codes in locale and returns them in the order given.
// Duplicates are kept. A single unknown code fails the whole call.
func PriorityCountries(t Translator, locale string, codes []string) ([]Entry, error) {
	entries := make([]Entry, 0, len(codes))
	for _, raw := range codes {
		code := CanonicalCode(raw)
		name, err := t.Lookup(locale, code)
		if err != nil {
			return nil, fmt.Errorf("priority country %s: %w", code, err)
		}
		entries = append(entries, Entry{Name: name, Code: code})
	}
	return entries, nil
}

// BuildSelectList merges priority countries, a Separator and the remaining
// countries into the final option order.
//
// With no priority codes the result is exactly LocalizedCountries as items.
// Otherwise every priority code appears once (first occurrence wins) ahead of
// the single Separator, and is removed from the sorted remainder.
func BuildSelectList(t Translator, locale string, priority []string, opts ...Option) ([]Item, error) {
	codes := lo.Uniq(lo.Map(priority, func(code string, _ int) string {
		return CanonicalCode(code)
	}))

	var head []Entry
	if len(codes) > 0 {
		var err error
		head, err = PriorityCountries(t, locale, codes)
		if err != nil {
			return nil, err
		}
	}

	all, err := LocalizedCountries(t, locale, opts...)
	if err != nil {
		return nil, err
	}

	if len(head) == 0 {
		return toItems(all), nil
	}

	excluded := lo.Associate(codes, func(code string) (string, struct{}) {
		return code, struct{}{}
	})
	rest := lo.Filter(all, func(e Entry, _ int) bool {
		_, skip := excluded[e.Code]
		return !skip
	})

	items := make([]Item, 0, len(head)+1+len(rest))
	items = append(items, toItems(head)...)
	items = append(items, Separator{})
	items = append(items, toItems(rest)...)
	return items, nil
}

// Entries drops separators from a select list
func Entries(items []Item) []Entry {
	entries := make([]Entry, 0, len(items))
	for _, item := range items {
		if e, ok := item.(Entry); ok {
			entries = append(entries, e)
		}
	}
	return entries
}

func toItems(entries []Entry) []Item {
	return lo.Map(entries, func(e Entry, _ int) Item {
		return e
	})
}

// readTable collects the (code -> name) pairs of a locale, using TableReader when
// the translator supports it.
func readTable(t Translator, locale string) (map[string]string, error) {
	if reader, ok := t.(TableReader); ok {
		table, err := reader.Table(locale)
		if err != nil {
			return nil, fmt.Errorf("read locale %s: %w", locale, err)
		}
		return table, nil
	}

	codes, err := t.AllCodes(locale)
	if err != nil {
		return nil, fmt.Errorf("list codes for locale %s: %w", locale, err)
	}

	table := make(map[string]string, len(codes))
	for _, code := range codes {
		name, err := t.Lookup(locale, code)
		if err != nil {
			return nil, fmt.Errorf("lookup %s/%s: %w", locale, code, err)
		}
		table[code] = name
	}
	return table, nil
}

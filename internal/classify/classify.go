package classify

import (
	"strconv"
	"strings"
)

// Kind identifies which editor a value gets.
type Kind int

const (
	FreeText Kind = iota
	Boolean
	Integer
	Enum
)

// String returns the kind name used in listings and JSON output.
func (k Kind) String() string {
	switch k {
	case Boolean:
		return "bool"
	case Integer:
		return "int"
	case Enum:
		return "enum"
	default:
		return "text"
	}
}

// EnumOption is one selectable choice of an enumerated entry. Label is
// what the user sees, Value is what is written to the file.
type EnumOption struct {
	Label string `yaml:"label"`
	Value int    `yaml:"value"`
}

// Classification describes how a single entry should be edited.
type Classification struct {
	Kind    Kind
	Options []EnumOption // Enum kinds only
	Min     int          // Integer kinds only
	Max     int          // Integer kinds only
}

// OptionIndex returns the index of the option whose numeric value
// matches the entry value, or -1 when none does.
func (c Classification) OptionIndex(value string) int {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return -1
	}
	for i, o := range c.Options {
		if o.Value == n {
			return i
		}
	}
	return -1
}

// Rules configures classification ahead of the value heuristics.
// Entries listed here are matched by name alone, like the original
// editor matched its known fields.
type Rules struct {
	TextSections []string                `yaml:"textSections"` // sections whose entries are always free text
	TextEntries  []string                `yaml:"textEntries"`  // entry names always edited as free text
	Enums        map[string][]EnumOption `yaml:"enums"`        // entry name to its fixed choices
	MaxInt       int                     `yaml:"maxInt"`       // upper bound for integer entries
}

// DefaultRules returns the built-in table for
// CreationKitPlatformExtended.ini.
func DefaultRules() Rules {
	return Rules{
		TextSections: []string{"Hotkeys", "Log"},
		TextEntries:  []string{"uTintMaskResolution"},
		Enums: map[string][]EnumOption{
			"nCharset": {
				{Label: "ANSI_CHARSET", Value: 0},
				{Label: "DEFAULT_CHARSET", Value: 1},
				{Label: "SYMBOL_CHARSET", Value: 2},
				{Label: "SHIFTJIS_CHARSET", Value: 128},
				{Label: "HANGEUL_CHARSET", Value: 129},
				{Label: "GB2312_CHARSET", Value: 134},
				{Label: "CHINESEBIG5_CHARSET", Value: 136},
				{Label: "OEM_CHARSET", Value: 255},
				{Label: "JOHAB_CHARSET", Value: 130},
				{Label: "HEBREW_CHARSET", Value: 177},
				{Label: "ARABIC_CHARSET", Value: 178},
				{Label: "GREEK_CHARSET", Value: 161},
				{Label: "TURKISH_CHARSET", Value: 162},
				{Label: "VIETNAMESE_CHARSET", Value: 163},
				{Label: "THAI_CHARSET", Value: 222},
				{Label: "EASTEUROPE_CHARSET", Value: 238},
				{Label: "RUSSIAN_CHARSET", Value: 204},
				{Label: "MAC_CHARSET", Value: 77},
				{Label: "BALTIC_CHARSET", Value: 186},
			},
			"uUIDarkThemeId": {
				{Label: "Lighter", Value: 0},
				{Label: "Darker", Value: 1},
				{Label: "Custom", Value: 2},
			},
		},
		MaxInt: 999999,
	}
}

// Classify decides how the value of an entry should be edited. Rules
// are checked ahead of the heuristics: section overrides first, then
// entry overrides, then enum tables, then the boolean and integer
// value heuristics, with free text as the fallback.
func Classify(rules Rules, section, name, value string) Classification {
	for _, s := range rules.TextSections {
		if s == section {
			return Classification{Kind: FreeText}
		}
	}
	for _, n := range rules.TextEntries {
		if n == name {
			return Classification{Kind: FreeText}
		}
	}
	if opts, ok := rules.Enums[name]; ok {
		return Classification{Kind: Enum, Options: opts}
	}
	switch strings.ToLower(value) {
	case "true", "false":
		return Classification{Kind: Boolean}
	}
	if isDigits(value) {
		return Classification{Kind: Integer, Min: 0, Max: rules.MaxInt}
	}
	return Classification{Kind: FreeText}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

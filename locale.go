package fastnum

import (
	"golang.org/x/text/language"
)

// Zero digits of the numbering systems SymbolsForTag knows, by their
// Unicode locale extension name.
var numberingZero = map[string]rune{
	"latn":     '0',
	"arab":     '٠',
	"arabext":  '۰',
	"beng":     '০',
	"deva":     '०',
	"fullwide": '０',
	"gujr":     '૦',
	"khmr":     '០',
	"mymr":     '၀',
	"tamldec":  '௦',
	"thai":     '๐',
	"tibt":     '༠',
}

// Languages whose default numbering system is not latn.
var defaultNumbering = map[string]string{
	"ar": "arab",
	"fa": "arabext",
	"ps": "arabext",
	"ur": "latn",
	"bn": "beng",
	"mr": "deva",
	"ne": "deva",
	"my": "mymr",
}

const (
	nbsp       = '\u00a0'
	narrowNbsp = '\u202f'
)

// Languages writing a decimal comma, with their grouping separators.
var commaDecimal = map[string][]rune{
	"de": {'.'},
	"es": {'.'},
	"id": {'.'},
	"it": {'.'},
	"nl": {'.'},
	"pt": {'.'},
	"tr": {'.'},
	"vi": {'.'},
	"da": {'.'},
	"el": {'.'},
	"ro": {'.'},
	"fr": {narrowNbsp, nbsp, ' '},
	"ru": {nbsp, ' '},
	"uk": {nbsp, ' '},
	"pl": {nbsp, ' '},
	"cs": {nbsp, ' '},
	"sk": {nbsp, ' '},
	"sv": {nbsp, ' '},
	"fi": {nbsp, ' '},
	"nb": {nbsp, ' '},
	"hu": {nbsp, ' '},
	"bg": {nbsp, ' '},
}

// Languages written with Arabic separators.
var arabicSeparators = map[string]bool{
	"ar": true,
	"fa": true,
	"ps": true,
}

// SymbolsForTag returns symbols for the language and numbering system of
// tag. The numbering system is taken from the -u-nu- extension when present
// and otherwise from the language. The result also accepts the ASCII minus,
// U+2212 MINUS SIGN and "∞" for infinity.
func SymbolsForTag(tag language.Tag) NumberFormatSymbols {
	sym := DefaultSymbols()
	base, _ := tag.Base()
	lang := base.String()

	nu := tag.TypeForKey("nu")
	if _, ok := numberingZero[nu]; !ok {
		nu = defaultNumbering[lang]
	}
	if zero, ok := numberingZero[nu]; ok {
		sym.Digits = make([]rune, 10)
		for i := range sym.Digits {
			sym.Digits[i] = zero + rune(i)
		}
	}

	switch {
	case arabicSeparators[lang] && nu != "latn" && nu != "":
		sym.DecimalSeparator = []rune{'٫'}
		sym.GroupingSeparator = []rune{'٬'}
	case commaDecimal[lang] != nil:
		sym.DecimalSeparator = []rune{','}
		sym.GroupingSeparator = commaDecimal[lang]
	default:
		sym.GroupingSeparator = []rune{','}
	}

	sym.MinusSign = append(sym.MinusSign, '−')
	sym.Infinity = append(sym.Infinity, "∞")
	return sym
}

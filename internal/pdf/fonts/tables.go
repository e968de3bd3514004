package fonts

// Base single-byte encoding tables. A zero entry means the code is
// unmapped; decoding yields U+FFFD there so phrase matching cannot hit it.

func latin1Base() [256]rune {
	var t [256]rune
	for i := 0x20; i <= 0x7E; i++ {
		t[i] = rune(i)
	}
	for i := 0xA0; i <= 0xFF; i++ {
		t[i] = rune(i)
	}
	return t
}

// winAnsiTable is CP1252: Latin-1 with the 0x80..0x9F block filled in
func winAnsiTable() [256]rune {
	t := latin1Base()
	for code, r := range map[byte]rune{
		0x80: '€', // Euro
		0x82: '‚',
		0x83: 'ƒ',
		0x84: '„',
		0x85: '…',
		0x86: '†',
		0x87: '‡',
		0x88: 'ˆ',
		0x89: '‰',
		0x8A: 'Š',
		0x8B: '‹',
		0x8C: 'Œ',
		0x8E: 'Ž',
		0x91: '‘',
		0x92: '’',
		0x93: '“',
		0x94: '”',
		0x95: '•',
		0x96: '–',
		0x97: '—',
		0x98: '˜',
		0x99: '™',
		0x9A: 'š',
		0x9B: '›',
		0x9C: 'œ',
		0x9E: 'ž',
		0x9F: 'Ÿ',
	} {
		t[code] = r
	}
	return t
}

// macRomanUpper holds codes 0x80..0xFF of MacRomanEncoding in order
const macRomanUpper = "ÄÅÇÉÑÖÜáàâäãåçéè" +
	"êëíìîïñóòôöõúùûü" +
	"†°¢£§•¶ß®©™´¨≠ÆØ" +
	"∞±≤≥¥µ∂∑∏π∫ªºΩæø" +
	"¿¡¬√ƒ≈∆«»… ÀÃÕŒœ" +
	"–—“”‘’÷◊ÿŸ⁄€‹›ﬁﬂ" +
	"‡·‚„‰ÂÊÁËÈÍÎÏÌÓÔ" +
	"ÒÚÛÙıˆ˜¯˘˙˚¸˝˛ˇ"

func macRomanTable() [256]rune {
	var t [256]rune
	for i := 0x20; i <= 0x7E; i++ {
		t[i] = rune(i)
	}
	code := 0x80
	for _, r := range macRomanUpper {
		t[code] = r
		code++
	}
	return t
}

// standardTable is Adobe StandardEncoding
func standardTable() [256]rune {
	var t [256]rune
	for i := 0x20; i <= 0x7E; i++ {
		t[i] = rune(i)
	}
	for code, r := range map[byte]rune{
		0x27: '’', // quoteright
		0x60: '‘', // quoteleft
		0xA1: '¡',
		0xA2: '¢',
		0xA3: '£',
		0xA4: '⁄', // fraction
		0xA5: '¥',
		0xA6: 'ƒ',
		0xA7: '§',
		0xA8: '¤', // currency
		0xA9: '\'',     // quotesingle
		0xAA: '“',
		0xAB: '«',
		0xAC: '‹',
		0xAD: '›',
		0xAE: 'ﬁ', // fi
		0xAF: 'ﬂ', // fl
		0xB1: '–',
		0xB2: '†',
		0xB3: '‡',
		0xB4: '·',
		0xB6: '¶',
		0xB7: '•',
		0xB8: '‚',
		0xB9: '„',
		0xBA: '”',
		0xBB: '»',
		0xBC: '…',
		0xBD: '‰',
		0xBF: '¿',
		0xC1: '`',
		0xC2: '´',
		0xC3: 'ˆ',
		0xC4: '˜',
		0xC5: '¯',
		0xC6: '˘',
		0xC7: '˙',
		0xC8: '¨',
		0xCA: '˚',
		0xCB: '¸',
		0xCD: '˝',
		0xCE: '˛',
		0xCF: 'ˇ',
		0xD0: '—',
		0xE1: 'Æ',
		0xE3: 'ª',
		0xE8: 'Ł',
		0xE9: 'Ø',
		0xEA: 'Œ',
		0xEB: 'º',
		0xF1: 'æ',
		0xF5: 'ı',
		0xF8: 'ł',
		0xF9: 'ø',
		0xFA: 'œ',
		0xFB: 'ß',
	} {
		t[code] = r
	}
	return t
}

// glyphNames maps the common Adobe glyph names seen in Differences arrays
var glyphNames = map[string]rune{
	"space":          ' ',
	"exclam":         '!',
	"quotedbl":       '"',
	"numbersign":     '#',
	"dollar":         '$',
	"percent":        '%',
	"ampersand":      '&',
	"quotesingle":    '\'',
	"parenleft":      '(',
	"parenright":     ')',
	"asterisk":       '*',
	"plus":           '+',
	"comma":          ',',
	"hyphen":         '-',
	"period":         '.',
	"slash":          '/',
	"zero":           '0',
	"one":            '1',
	"two":            '2',
	"three":          '3',
	"four":           '4',
	"five":           '5',
	"six":            '6',
	"seven":          '7',
	"eight":          '8',
	"nine":           '9',
	"colon":          ':',
	"semicolon":      ';',
	"less":           '<',
	"equal":          '=',
	"greater":        '>',
	"question":       '?',
	"at":             '@',
	"bracketleft":    '[',
	"backslash":      '\\',
	"bracketright":   ']',
	"asciicircum":    '^',
	"underscore":     '_',
	"grave":          '`',
	"braceleft":      '{',
	"bar":            '|',
	"braceright":     '}',
	"asciitilde":     '~',
	"exclamdown":     '¡',
	"cent":           '¢',
	"sterling":       '£',
	"currency":       '¤',
	"yen":            '¥',
	"brokenbar":      '¦',
	"section":        '§',
	"dieresis":       '¨',
	"copyright":      '©',
	"ordfeminine":    'ª',
	"guillemotleft":  '«',
	"logicalnot":     '¬',
	"registered":     '®',
	"macron":         '¯',
	"degree":         '°',
	"plusminus":      '±',
	"twosuperior":    '²',
	"threesuperior":  '³',
	"acute":          '´',
	"mu":             'µ',
	"paragraph":      '¶',
	"periodcentered": '·',
	"cedilla":        '¸',
	"onesuperior":    '¹',
	"ordmasculine":   'º',
	"guillemotright": '»',
	"onequarter":     '¼',
	"onehalf":        '½',
	"threequarters":  '¾',
	"questiondown":   '¿',
	"multiply":       '×',
	"divide":         '÷',
	"quoteright":     '’',
	"quoteleft":      '‘',
	"quotedblleft":   '“',
	"quotedblright":  '”',
	"quotesinglbase": '‚',
	"quotedblbase":   '„',
	"endash":         '–',
	"emdash":         '—',
	"dagger":         '†',
	"daggerdbl":      '‡',
	"bullet":         '•',
	"ellipsis":       '…',
	"perthousand":    '‰',
	"guilsinglleft":  '‹',
	"guilsinglright": '›',
	"fraction":       '⁄',
	"Euro":           '€',
	"trademark":      '™',
	"minus":          '−',
	"fi":             'ﬁ',
	"fl":             'ﬂ',
	"florin":         'ƒ',
	"circumflex":     'ˆ',
	"caron":          'ˇ',
	"breve":          '˘',
	"dotaccent":      '˙',
	"ring":           '˚',
	"ogonek":         '˛',
	"tilde":          '˜',
	"hungarumlaut":   '˝',
	"dotlessi":       'ı',
	"Lslash":         'Ł',
	"lslash":         'ł',
	"OE":             'Œ',
	"oe":             'œ',
	"Scaron":         'Š',
	"scaron":         'š',
	"Ydieresis":      'Ÿ',
	"Zcaron":         'Ž',
	"zcaron":         'ž',
	"germandbls":     'ß',
	"AE":             'Æ',
	"ae":             'æ',
	"Oslash":         'Ø',
	"oslash":         'ø',
	"Thorn":          'Þ',
	"thorn":          'þ',
	"Eth":            'Ð',
	"eth":            'ð',
	"Agrave":         'À',
	"Aacute":         'Á',
	"Acircumflex":    'Â',
	"Atilde":         'Ã',
	"Adieresis":      'Ä',
	"Aring":          'Å',
	"Ccedilla":       'Ç',
	"Egrave":         'È',
	"Eacute":         'É',
	"Ecircumflex":    'Ê',
	"Edieresis":      'Ë',
	"Igrave":         'Ì',
	"Iacute":         'Í',
	"Icircumflex":    'Î',
	"Idieresis":      'Ï',
	"Ntilde":         'Ñ',
	"Ograve":         'Ò',
	"Oacute":         'Ó',
	"Ocircumflex":    'Ô',
	"Otilde":         'Õ',
	"Odieresis":      'Ö',
	"Ugrave":         'Ù',
	"Uacute":         'Ú',
	"Ucircumflex":    'Û',
	"Udieresis":      'Ü',
	"Yacute":         'Ý',
	"agrave":         'à',
	"aacute":         'á',
	"acircumflex":    'â',
	"atilde":         'ã',
	"adieresis":      'ä',
	"aring":          'å',
	"ccedilla":       'ç',
	"egrave":         'è',
	"eacute":         'é',
	"ecircumflex":    'ê',
	"edieresis":      'ë',
	"igrave":         'ì',
	"iacute":         'í',
	"icircumflex":    'î',
	"idieresis":      'ï',
	"ntilde":         'ñ',
	"ograve":         'ò',
	"oacute":         'ó',
	"ocircumflex":    'ô',
	"otilde":         'õ',
	"odieresis":      'ö',
	"ugrave":         'ù',
	"uacute":         'ú',
	"ucircumflex":    'û',
	"udieresis":      'ü',
	"yacute":         'ý',
	"ydieresis":      'ÿ',
}

// glyphToRune resolves a Differences glyph name. Besides the name table it
// understands uniXXXX / uXXXX[XX] forms and bare single-character names.
func glyphToRune(name string) (rune, bool) {
	if r, ok := glyphNames[name]; ok {
		return r, true
	}

	if len(name) >= 7 && name[:3] == "uni" {
		if r, ok := hexRune(name[3:7]); ok {
			return r, true
		}
	} else if len(name) == 7 && name[:3] == "uni" {
		if r, ok := hexRune(name[3:]); ok {
			return r, true
		}
	}
	if len(name) == 7 && name[:3] == "uni" {
		if r, ok := hexRune(name[3:]); ok {
			return r, true
		}
	}
	if len(name) >= 5 && len(name) <= 7 && name[0] == 'u' {
		if r, ok := hexRune(name[1:]); ok {
			return r, true
		}
	}

	if len(name) == 1 {
		return rune(name[0]), true
	}

	// ASCII letters and digits name themselves
	if len(name) == 1 {
		return rune(name[0]), true
	}
	return 0, false
}

func hexRune(s string) (rune, bool) {
	var v rune
	for i := 0; i < len(s); i++ {
		ch := s[i]
		var d rune
		switch {
		case ch >= '0' && ch <= '9':
			d = rune(ch - '0')
		case ch >= 'a' && ch <= 'f':
			d = rune(ch-'a') + 10
		case ch >= 'A' && ch <= 'F':
			d = rune(ch-'A') + 10
		default:
			return 0, false
		}
		v = v<<4 | d
	}
	if v > 0x10FFFF {
		return 0, false
	}
	return v, true
}

package charts

import (
	"sort"
	"strings"
	"sync"
)

// Texts is the translation table of one language.
type Texts struct {
	CallsCount            string `yaml:"callsCount"`
	CallTimeTotal         string `yaml:"callTimeTotal"`
	CallTimeAverage       string `yaml:"callTimeAverage"`
	CallsCountErrors      string `yaml:"callsCountErrors"`
	CallTimeTotalErrors   string `yaml:"callTimeTotalErrors"`
	CallTimeAverageErrors string `yaml:"callTimeAverageErrors"`

	Call              string `yaml:"call"`
	Calls             string `yaml:"calls"`
	Second            string `yaml:"second"`
	Seconds           string `yaml:"seconds"`
	Millisecond       string `yaml:"millisecond"`
	Milliseconds      string `yaml:"milliseconds"`
	SecondShort       string `yaml:"secondShort"`
	SecondsShort      string `yaml:"secondsShort"`
	MillisecondShort  string `yaml:"millisecondShort"`
	MillisecondsShort string `yaml:"millisecondsShort"`
}

// Title returns the panel title of b.
func (t Texts) Title(b Bucket) string {
	switch b {
	case CallsCount:
		return t.CallsCount
	case CallTimeTotal:
		return t.CallTimeTotal
	case CallTimeAverage:
		return t.CallTimeAverage
	case CallsCountErrors:
		return t.CallsCountErrors
	case CallTimeTotalErrors:
		return t.CallTimeTotalErrors
	case CallTimeAverageErrors:
		return t.CallTimeAverageErrors
	}
	return b.String()
}

// Units returns the singular and plural value unit of b.
func (t Texts) Units(b Bucket) (singular, plural string) {
	switch b {
	case CallsCount, CallsCountErrors:
		return t.Call, t.Calls
	case CallTimeTotal:
		return t.Second, t.Seconds
	case CallTimeTotalErrors, CallTimeAverage, CallTimeAverageErrors:
		return t.Millisecond, t.Milliseconds
	}
	return "", ""
}

// DefaultLanguage is used when no translation matches.
const DefaultLanguage = "en"

var english = Texts{
	CallsCount:            "Calls count",
	CallTimeTotal:         "Total run time",
	CallTimeAverage:       "Average call run time",
	CallsCountErrors:      "Error calls count",
	CallTimeTotalErrors:   "Errors total run time",
	CallTimeAverageErrors: "Errors average call run time",

	Call:              "call",
	Calls:             "calls",
	Second:            "second",
	Seconds:           "seconds",
	Millisecond:       "millisecond",
	Milliseconds:      "milliseconds",
	SecondShort:       "sec",
	SecondsShort:      "sec",
	MillisecondShort:  "ms",
	MillisecondsShort: "ms",
}

var romanian = Texts{
	CallsCount:            "Număr apeluri",
	CallTimeTotal:         "Timp total de rulare",
	CallTimeAverage:       "Medie per chemare",
	CallsCountErrors:      "Număr erori",
	CallTimeTotalErrors:   "Timp total de rulare erori",
	CallTimeAverageErrors: "Medie per eroare",

	Call:              "apel",
	Calls:             "apeluri",
	Second:            "secundă",
	Seconds:           "secunde",
	Millisecond:       "milisecundă",
	Milliseconds:      "milisecunde",
	SecondShort:       "sec",
	SecondsShort:      "sec",
	MillisecondShort:  "ms",
	MillisecondsShort: "ms",
}

var (
	textsMu sync.RWMutex
	texts   = map[string]Texts{
		"en":    english,
		"en-US": english,
		"en-UK": english,
		"ro":    romanian,
		"ro-RO": romanian,
		"ro-MD": romanian,
	}
)

// RegisterTexts adds or replaces the translation for a language code.
func RegisterTexts(code string, t Texts) {
	textsMu.Lock()
	defer textsMu.Unlock()
	texts[code] = t
}

// Languages lists the registered language codes in ascending order.
func Languages() []string {
	textsMu.RLock()
	defer textsMu.RUnlock()
	out := make([]string, 0, len(texts))
	for code := range texts {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}

// TextsFor resolves a language code: exact match first, then the base
// language ("ro_RO.UTF-8" -> "ro"), then English.
func TextsFor(code string) Texts {
	textsMu.RLock()
	defer textsMu.RUnlock()
	code = strings.TrimSpace(code)
	if t, ok := texts[code]; ok {
		return t
	}
	if i := strings.IndexByte(code, '.'); i >= 0 {
		code = code[:i]
	}
	code = strings.ReplaceAll(code, "_", "-")
	if t, ok := texts[code]; ok {
		return t
	}
	if i := strings.IndexByte(code, '-'); i >= 0 {
		code = code[:i]
	}
	if t, ok := texts[strings.ToLower(code)]; ok {
		return t
	}
	return texts[DefaultLanguage]
}

package service

import (
	"strings"

	"golang.org/x/text/language"
)

// DefaultLanguage is used whenever a requested code is not supported.
const DefaultLanguage = "en_US"

type Direction int

const (
	LTR Direction = iota
	RTL
)

func (d Direction) String() string {
	if d == RTL {
		return "rtl"
	}
	return "ltr"
}

// Language is one entry of the supported language table.
type Language struct {
	Code string
	Name string
}

var languages = []Language{
	{Code: "af_ZA", Name: "Afrikaans"},
	{Code: "ak_GH", Name: "Akan"},
	{Code: "sq_AL", Name: "Albanian"},
	{Code: "am_ET", Name: "Amharic"},
	{Code: "ar-moz", Name: "Arabic (Moz)"},
	{Code: "ar-ooe", Name: "Arabic (Ooe)"},
	{Code: "ar-ooe-2", Name: "Arabic (Ooe-2)"},
	{Code: "an_ES", Name: "Aragonese"},
	{Code: "hy_AM", Name: "Armenian"},
	{Code: "az_AZ-latin", Name: "Azerbaijani (Latin)"},
	{Code: "eu", Name: "Basque"},
	{Code: "be", Name: "Belarusian"},
	{Code: "be_BY", Name: "Belarusian (BY)"},
	{Code: "be_classic", Name: "Belarusian (Classic)"},
	{Code: "bn_BD", Name: "Bengali"},
	{Code: "br_FR", Name: "Breton"},
	{Code: "bg_BG", Name: "Bulgarian"},
	{Code: "my_MW", Name: "Burmese"},
	{Code: "ca_ES", Name: "Catalan"},
	{Code: "ca_ES_valencia", Name: "Catalan (Valencia)"},
	{Code: "cop_EG", Name: "Coptic"},
	{Code: "hr_HR", Name: "Croatian"},
	{Code: "cs", Name: "Czech"},
	{Code: "da_DK", Name: "Danish"},
	{Code: "nl_NL", Name: "Dutch"},
	{Code: "en_AU", Name: "English (Australia)"},
	{Code: "en_AU-moz", Name: "English (Australia, Moz)"},
	{Code: "en_CA", Name: "English (Canada)"},
	{Code: "en_NZ", Name: "English (New Zealand)"},
	{Code: "en_ZA", Name: "English (South Africa)"},
	{Code: "en_GB", Name: "English (UK)"},
	{Code: "en_US", Name: "English (US)"},
	{Code: "eo_EO", Name: "Esperanto"},
	{Code: "et_EE", Name: "Estonian"},
	{Code: "fo_FO", Name: "Faroese"},
	{Code: "fr", Name: "French"},
	{Code: "fy_NL", Name: "Frisian"},
	{Code: "fur_IT", Name: "Friulian"},
	{Code: "gl", Name: "Galician"},
	{Code: "gsc_FR", Name: "Gascon"},
	{Code: "de_AT", Name: "German (Austria)"},
	{Code: "de_AT_frami-ooe", Name: "German (Austria, Frami Ooe)"},
	{Code: "de_AT_frami", Name: "German (Austria, Frami)"},
	{Code: "de_DE", Name: "German (Germany)"},
	{Code: "de_DE-1901-ooe", Name: "German (Germany, 1901 Ooe)"},
	{Code: "de_DE-1901", Name: "German (Germany, 1901)"},
	{Code: "de_DE_frami-ooe", Name: "German (Germany, Frami Ooe)"},
	{Code: "de_DE-moz", Name: "German (Germany, Moz)"},
	{Code: "de_CH", Name: "German (Switzerland)"},
	{Code: "de_CH_frami-ooe", Name: "German (Switzerland, Frami Ooe)"},
	{Code: "de_CH_frami", Name: "German (Switzerland, Frami)"},
	{Code: "de_CH-moz", Name: "German (Switzerland, Moz)"},
	{Code: "el_GR", Name: "Greek"},
	{Code: "el_GR-ooe", Name: "Greek (Ooe)"},
	{Code: "gu_IN", Name: "Gujarati"},
	{Code: "ha_GH", Name: "Hausa"},
	{Code: "he_IL", Name: "Hebrew"},
	{Code: "he_IL-moz", Name: "Hebrew (Moz)"},
	{Code: "he_IL-ooe", Name: "Hebrew (Ooe)"},
	{Code: "hi_IN", Name: "Hindi"},
	{Code: "hu", Name: "Hungarian"},
	{Code: "is", Name: "Icelandic"},
	{Code: "id_ID", Name: "Indonesian"},
	{Code: "ia_ANY", Name: "Interlingua"},
	{Code: "ga_IE", Name: "Irish"},
	{Code: "it_IT", Name: "Italian"},
	{Code: "it_IT-moz", Name: "Italian (Moz)"},
	{Code: "it_IT-ooe", Name: "Italian (Ooe)"},
	{Code: "kn_ID", Name: "Kannada"},
	{Code: "csb_PL", Name: "Kashubian"},
	{Code: "kk", Name: "Kazakh"},
	{Code: "ko", Name: "Korean"},
	{Code: "ku_TR", Name: "Kurdish"},
	{Code: "la-ooe", Name: "Latin (Ooe)"},
	{Code: "lv", Name: "Latvian"},
	{Code: "ln_CD", Name: "Lingala"},
	{Code: "lt", Name: "Lithuanian"},
	{Code: "dsb", Name: "Lower Sorbian"},
	{Code: "mg_MG", Name: "Malagasy"},
	{Code: "ms_MY", Name: "Malay"},
	{Code: "mi_NZ", Name: "Maori"},
	{Code: "mr_IN", Name: "Marathi"},
	{Code: "mr_IN-moz", Name: "Marathi (Moz)"},
	{Code: "ne_NP", Name: "Nepali"},
	{Code: "nb_NO", Name: "Norwegian Bokmål"},
	{Code: "nn_NO", Name: "Norwegian Nynorsk"},
	{Code: "oc_FR", Name: "Occitan"},
	{Code: "or_IN", Name: "Odia"},
	{Code: "pap_AW", Name: "Papiamento"},
	{Code: "pap_CW", Name: "Papiamento"},
	{Code: "pl", Name: "Polish"},
	{Code: "pt_BR", Name: "Portuguese (Brazil)"},
	{Code: "pt_PT", Name: "Portuguese (Portugal)"},
	{Code: "pa_IN", Name: "Punjabi"},
	{Code: "ro_RO", Name: "Romanian"},
	{Code: "ro_RO-classic", Name: "Romanian (Classic)"},
	{Code: "ru", Name: "Russian"},
	{Code: "sample", Name: "Sample Language"},
	{Code: "sa_IN", Name: "Sanskrit"},
	{Code: "gd_GB", Name: "Scottish Gaelic"},
	{Code: "sk", Name: "Slovak"},
	{Code: "sl_SI-ooe", Name: "Slovenian (Ooe)"},
	{Code: "es_AR", Name: "Spanish (Argentina)"},
	{Code: "es_AR-moz", Name: "Spanish (Argentina, Moz)"},
	{Code: "es_BO", Name: "Spanish (Bolivia)"},
	{Code: "es_CL", Name: "Spanish (Chile)"},
	{Code: "es_CO", Name: "Spanish (Colombia)"},
	{Code: "es_CR", Name: "Spanish (Costa Rica)"},
	{Code: "es_CU", Name: "Spanish (Cuba)"},
	{Code: "es_DO", Name: "Spanish (Dominican Republic)"},
	{Code: "es_EC", Name: "Spanish (Ecuador)"},
	{Code: "es_SV", Name: "Spanish (El Salvador)"},
	{Code: "es_GT", Name: "Spanish (Guatemala)"},
	{Code: "es_HN", Name: "Spanish (Honduras)"},
	{Code: "es_MX", Name: "Spanish (Mexico)"},
	{Code: "es_MX-moz", Name: "Spanish (Mexico, Moz)"},
	{Code: "es_NI", Name: "Spanish (Nicaragua)"},
	{Code: "es_PA", Name: "Spanish (Panama)"},
	{Code: "es_PY", Name: "Spanish (Paraguay)"},
	{Code: "es_PE", Name: "Spanish (Peru)"},
	{Code: "es_PR", Name: "Spanish (Puerto Rico)"},
	{Code: "es_ES", Name: "Spanish (Spain)"},
	{Code: "es_ES-moz", Name: "Spanish (Spain, Moz)"},
	{Code: "es_UY", Name: "Spanish (Uruguay)"},
	{Code: "es_VE", Name: "Spanish (Venezuela)"},
	{Code: "es_VE-moz", Name: "Spanish (Venezuela, Moz)"},
	{Code: "sw", Name: "Swahili"},
	{Code: "sv_SE", Name: "Swedish"},
	{Code: "tg", Name: "Tajik"},
	{Code: "ta_TA", Name: "Tamil"},
	{Code: "te_IN", Name: "Telugu"},
	{Code: "uk", Name: "Ukrainian"},
	{Code: "hsb", Name: "Upper Sorbian"},
	{Code: "cy_GB", Name: "Welsh"},
	{Code: "zu_ZA", Name: "Zulu"},
}

var rtlCodes = map[string]struct{}{
	"ar-moz":    {},
	"ar-ooe":    {},
	"ar-ooe-2":  {},
	"he_IL":     {},
	"he_IL-moz": {},
	"he_IL-ooe": {},
}

var byCode = func() map[string]Language {
	m := make(map[string]Language, len(languages))
	for _, l := range languages {
		m[l.Code] = l
	}
	return m
}()

// Languages returns the supported language table in display order.
func Languages() []Language {
	out := make([]Language, len(languages))
	copy(out, languages)
	return out
}

// Supported reports whether code is a known language code.
func Supported(code string) bool {
	_, ok := byCode[code]
	return ok
}

// LanguageName returns the display name for code, or code itself.
func LanguageName(code string) string {
	if l, ok := byCode[code]; ok {
		return l.Name
	}
	return code
}

// ResolveLanguage maps tag onto a supported code. Exact codes pass through;
// BCP 47 style tags such as "en-US" or "pt-br" are parsed and matched by
// language and region, then by base language alone. Anything else resolves
// to DefaultLanguage.
func ResolveLanguage(tag string) string {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return DefaultLanguage
	}
	if Supported(tag) {
		return tag
	}

	t, err := language.Parse(strings.ReplaceAll(tag, "_", "-"))
	if err != nil {
		return DefaultLanguage
	}
	base, _ := t.Base()
	if region, conf := t.Region(); conf != language.No {
		if code := base.String() + "_" + region.String(); Supported(code) {
			return code
		}
	}
	if code := base.String(); Supported(code) {
		return code
	}
	for _, l := range languages {
		if strings.HasPrefix(l.Code, base.String()+"_") || strings.HasPrefix(l.Code, base.String()+"-") {
			return l.Code
		}
	}
	return DefaultLanguage
}

// TextDirection reports the writing direction of a language code.
func TextDirection(code string) Direction {
	if _, ok := rtlCodes[code]; ok {
		return RTL
	}
	return LTR
}

package web

type Country struct {
	Code string
	Name string
	Flag string
}

type Language struct {
	Code string
	Name string
}

var Countries = []Country{
	{"US", "United States", "🇺🇸"},
	{"GB", "United Kingdom", "🇬🇧"},
	{"CA", "Canada", "🇨🇦"},
	{"AU", "Australia", "🇦🇺"},
	{"IN", "India", "🇮🇳"},
	{"DE", "Germany", "🇩🇪"},
	{"FR", "France", "🇫🇷"},
	{"JP", "Japan", "🇯🇵"},
	{"KR", "South Korea", "🇰🇷"},
	{"BR", "Brazil", "🇧🇷"},
	{"MX", "Mexico", "🇲🇽"},
	{"ES", "Spain", "🇪🇸"},
	{"IT", "Italy", "🇮🇹"},
}

var Languages = []Language{
	{"en", "English"},
	{"es", "Español"},
	{"fr", "Français"},
	{"de", "Deutsch"},
	{"ja", "日本語"},
	{"ko", "한국어"},
	{"pt", "Português"},
	{"hi", "हिन्दी"},
	{"it", "Italiano"},
	{"ru", "Русский"},
	{"ar", "العربية"},
	{"zh", "中文"},
}

func knownCountry(code string) bool {
	for _, c := range Countries {
		if c.Code == code {
			return true
		}
	}
	return false
}

func knownLanguage(code string) bool {
	for _, l := range Languages {
		if l.Code == code {
			return true
		}
	}
	return false
}

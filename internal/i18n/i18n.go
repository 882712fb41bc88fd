// Package i18n holds the localized copy the server and CLI emit.
// The active locale is passed explicitly; there is no process-wide
// mutable language state.
package i18n

import (
	"strings"
)

// Locale selects a translation table.
type Locale string

const (
	LocaleEN Locale = "en"
	LocaleZH Locale = "zh"
)

// Translation keys.
const (
	KeyAnonymous     = "anonymous"
	KeyPlantedFlower = "planted_flower"
	KeyThankYou      = "thank_you_planting"
	KeyRateLimited   = "rate_limited"
	KeyQuotaExceeded = "quota_exceeded"
	KeyGenericError  = "generic_error"
	KeyLoading       = "loading"
	KeyError         = "error"
)

var translations = map[Locale]map[string]string{
	LocaleEN: {
		KeyAnonymous:     "Anonymous",
		KeyPlantedFlower: "Planted a beautiful",
		KeyThankYou:      "Thank you for adding beauty to the garden",
		KeyRateLimited:   "Rate limit exceeded, please try again later",
		KeyQuotaExceeded: "Payment required",
		KeyGenericError:  "Unable to process your request. Please try again later.",
		KeyLoading:       "Loading...",
		KeyError:         "Error",
	},
	LocaleZH: {
		KeyAnonymous:     "匿名",
		KeyPlantedFlower: "种下了美丽的",
		KeyThankYou:      "感谢您为花园增添美丽",
		KeyRateLimited:   "请求过于频繁，请稍后再试",
		KeyQuotaExceeded: "需要付费",
		KeyGenericError:  "无法处理您的请求，请稍后再试。",
		KeyLoading:       "加载中...",
		KeyError:         "错误",
	},
}

// Parse maps a language tag to a supported locale, defaulting to
// English. Region subtags are ignored ("zh-CN" selects zh).
func Parse(lang string) Locale {
	tag := strings.ToLower(strings.TrimSpace(lang))
	if i := strings.IndexAny(tag, "-_"); i > 0 {
		tag = tag[:i]
	}
	if _, ok := translations[Locale(tag)]; ok {
		return Locale(tag)
	}
	return LocaleEN
}

// T returns the translation for key in the given locale, falling back
// to English, then to the key itself.
func T(locale Locale, key string) string {
	if table, ok := translations[locale]; ok {
		if s, ok := table[key]; ok {
			return s
		}
	}
	if s, ok := translations[LocaleEN][key]; ok {
		return s
	}
	return key
}

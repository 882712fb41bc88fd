package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	assert.Equal(t, LocaleEN, Parse("en"))
	assert.Equal(t, LocaleZH, Parse("zh"))
	assert.Equal(t, LocaleZH, Parse("zh-CN"))
	assert.Equal(t, LocaleZH, Parse("ZH_TW"))
	assert.Equal(t, LocaleEN, Parse("fr"))
	assert.Equal(t, LocaleEN, Parse(""))
}

func TestT(t *testing.T) {
	assert.Equal(t, "Anonymous", T(LocaleEN, KeyAnonymous))
	assert.Equal(t, "匿名", T(LocaleZH, KeyAnonymous))

	// Unknown locale falls back to English, unknown key to itself.
	assert.Equal(t, "Anonymous", T(Locale("fr"), KeyAnonymous))
	assert.Equal(t, "no_such_key", T(LocaleEN, "no_such_key"))
}

package locale

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/rollerweb/roller/internal/shared/logger"
)

func TestResolve(t *testing.T) {
	fallback := language.MustParse("fr-CA")

	tests := []struct {
		name    string
		raw     string
		want    language.Tag
		wantErr bool
	}{
		{name: "empty uses fallback", raw: "", want: fallback},
		{name: "blank uses fallback", raw: "   ", want: fallback},
		{name: "language only", raw: "de", want: language.German},
		{name: "language and region", raw: "en_US", want: language.AmericanEnglish},
		{name: "case normalised", raw: "PT_br", want: language.BrazilianPortuguese},
		{name: "region composed onto base", raw: "zh_CN", want: language.MustParse("zh-CN")},
		{name: "numeric region", raw: "es_419", want: language.LatinAmericanSpanish},
		{name: "three segments", raw: "en_US_POSIX", want: fallback, wantErr: true},
		{name: "empty language", raw: "_US", want: fallback, wantErr: true},
		{name: "empty region", raw: "en_", want: fallback, wantErr: true},
		{name: "garbage language", raw: "12345", want: fallback, wantErr: true},
		{name: "garbage region", raw: "en_QQQQ", want: fallback, wantErr: true},
		{name: "undetermined", raw: "und", want: fallback, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.raw, fallback)
			assert.Equal(t, tt.want.String(), got.String())
			if tt.wantErr {
				var invalid *InvalidLocaleError
				require.ErrorAs(t, err, &invalid)
				assert.NotEmpty(t, invalid.Reason)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestResolveOrDefault(t *testing.T) {
	log := logger.NewNopLogger()

	assert.Equal(t, "es", ResolveOrDefault("es", language.English, log).String())
	assert.Equal(t, language.English, ResolveOrDefault("es_ES_tradnl", language.English, log))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "en_US", Format(language.AmericanEnglish))
	assert.Equal(t, "de", Format(language.German))
	assert.Equal(t, "zh_CN", Format(language.MustParse("zh-CN")))
	assert.Equal(t, "", Format(language.Und))
}

func TestResolveProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	fallback := language.English

	properties.Property("never yields the undetermined tag", prop.ForAll(
		func(raw string) bool {
			tag, _ := Resolve(raw, fallback)
			return tag != language.Und
		},
		gen.AnyString(),
	))

	properties.Property("an error always comes with the fallback", prop.ForAll(
		func(raw string) bool {
			tag, err := Resolve(raw, fallback)
			return err == nil || tag == fallback
		},
		gen.AnyString(),
	))

	properties.Property("more than two segments always falls back", prop.ForAll(
		func(a, b, c string) bool {
			tag, err := Resolve(a+"_"+b+"_"+c, fallback)
			return err != nil && tag == fallback
		},
		gen.AlphaString(), gen.AlphaString(), gen.AlphaString(),
	))

	known := []language.Tag{
		language.English, language.AmericanEnglish, language.German,
		language.French, language.Spanish, language.SimplifiedChinese,
		language.MustParse("zh-CN"), language.MustParse("pt-BR"),
	}
	properties.Property("format then resolve round trips", prop.ForAll(
		func(i int) bool {
			tag := known[i]
			back, err := Resolve(Format(tag), fallback)
			return err == nil && Format(back) == Format(tag)
		},
		gen.IntRange(0, len(known)-1),
	))

	properties.TestingRun(t)
}

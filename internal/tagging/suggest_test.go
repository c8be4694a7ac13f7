package tagging

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/govhotline/triage-service/internal/domain"
)

func TestSuggest(t *testing.T) {
	engine := NewEngine(nil)

	tests := []struct {
		name string
		text string
		want []domain.Category
	}{
		{
			name: "garbage complaint matches environment",
			text: "我家楼下垃圾堆了三天没清理，味道很大",
			want: []domain.Category{domain.CategoryEnvironment},
		},
		{
			name: "multiple issues match multiple categories",
			text: "垃圾没人清理，而且路灯也不亮了，晚上噪音很大",
			want: []domain.Category{
				domain.CategoryEnvironment,
				domain.CategoryFacilities,
				domain.CategoryNoise,
			},
		},
		{
			name: "parking complaint",
			text: "小区门口违停严重，出行困难",
			want: []domain.Category{domain.CategoryTraffic},
		},
		{
			name: "generic feedback falls to other",
			text: "我想投诉一下办事效率问题",
			want: []domain.Category{domain.CategoryOther},
		},
		{
			name: "empty text yields nothing",
			text: "",
			want: nil,
		},
		{
			name: "whitespace yields nothing",
			text: "   \n\t ",
			want: nil,
		},
		{
			name: "no keyword matches",
			text: "今天天气很好",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, engine.Suggest(tt.text))
		})
	}
}

func TestSuggestDeterministic(t *testing.T) {
	engine := NewEngine(nil)
	text := "垃圾堆积，停车困难，树木需要修剪"

	first := engine.Suggest(text)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, engine.Suggest(text))
	}
	assert.ElementsMatch(t, []domain.Category{
		domain.CategoryEnvironment,
		domain.CategoryTraffic,
		domain.CategoryLandscaping,
	}, first)
}

func TestSuggestCaseInsensitive(t *testing.T) {
	taxonomy := Taxonomy{
		domain.CategoryOther: {"FEEDBACK"},
	}
	engine := NewEngine(taxonomy)

	assert.Equal(t, []domain.Category{domain.CategoryOther}, engine.Suggest("please record my feedback"))
	assert.Equal(t, []domain.Category{domain.CategoryOther}, engine.Suggest("PLEASE RECORD MY FEEDBACK"))
}

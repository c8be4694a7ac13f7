package tagging

import "github.com/govhotline/triage-service/internal/domain"

// Taxonomy maps each complaint category to the keywords that indicate it.
type Taxonomy map[domain.Category][]string

// DefaultTaxonomy returns the built-in category keyword sets used by the
// hotline intake form.
func DefaultTaxonomy() Taxonomy {
	return Taxonomy{
		domain.CategoryEnvironment: {"垃圾", "清理", "异味", "卫生", "保洁", "臭味"},
		domain.CategoryFacilities:  {"路灯", "损坏", "维修", "道路", "井盖", "下水道"},
		domain.CategoryNoise:       {"噪音", "吵闹", "施工", "扰民", "音乐"},
		domain.CategoryTraffic:     {"停车", "交通", "拥堵", "违停", "占道"},
		domain.CategoryLandscaping: {"绿化", "树木", "花草", "修剪", "浇水"},
		domain.CategoryOther:       {"反映", "投诉", "建议", "咨询"},
	}
}

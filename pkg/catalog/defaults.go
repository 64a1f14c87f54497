package catalog

import "github.com/tagduke/tagduke-cli/pkg/models"

// defaultCategories is the built-in catalog seeded on first run
var defaultCategories = []models.Category{
	{
		ID:   "basic",
		Name: "基本",
		Tags: []string{
			"#ジャムデザイン",
			"#デザイン会社",
			"#デザイナー",
			"#制作会社",
			"#岩槻",
			"#さいたま市",
			"#さいたま",
			"#埼玉",
			"#ワンストップ",
		},
	},
	{
		ID:   "photo",
		Name: "撮影",
		Tags: []string{
			"#撮影",
			"#商品撮影",
			"#出張撮影",
			"#カメラマン",
		},
	},
	{
		ID:   "graphic",
		Name: "グラフィックデザイン",
		Tags: []string{
			"#グラフィックデザイン",
			"#イラスト制作",
			"#ポスター制作",
			"#キャラクター制作",
			"#ロゴ制作",
			"#印刷",
			"#冊子制作",
		},
	},
	{
		ID:   "movie",
		Name: "動画",
		Tags: []string{
			"#動画制作",
			"#動画撮影",
			"#動画編集",
			"#ポストプロダクション",
			"#PR動画",
			"#採用動画",
			"#映像制作",
			"#webcm",
		},
	},
	{
		ID:   "web",
		Name: "WEB",
		Tags: []string{
			"#WEB制作",
			"#WEBデザイン",
			"#WEBデザイナー",
			"#LP制作",
			"#WEBコンテンツ制作",
		},
	},
	{
		ID:   "drone",
		Name: "ドローン",
		Tags: []string{
			"#空撮",
			"#ドローン",
			"#FPV",
			"#DJI",
			"#Mavic",
			"#ドローン撮影",
			"#室内ドローン",
		},
	},
}

// DefaultCategories returns a fresh copy of the built-in catalog
func DefaultCategories() []models.Category {
	out := make([]models.Category, 0, len(defaultCategories))
	for _, c := range defaultCategories {
		out = append(out, c.Clone())
	}
	return out
}

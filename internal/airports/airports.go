// Package airports holds the static airport metadata served to the search
// form: Japanese departure airports plus popular destinations.
package airports

import "strings"

type Airport struct {
	Code string `json:"code"`
	Name string `json:"name"`
	City string `json:"city"`
}

var origins = []Airport{
	{"NRT", "成田国際空港", "東京"},
	{"HND", "羽田空港", "東京"},
	{"KIX", "関西国際空港", "大阪"},
	{"NGO", "中部国際空港", "名古屋"},
	{"FUK", "福岡空港", "福岡"},
	{"CTS", "新千歳空港", "札幌"},
	{"OKA", "那覇空港", "沖縄"},
}

var destinations = []Airport{
	// Asia
	{"ICN", "仁川国際空港", "ソウル"},
	{"TPE", "桃園国際空港", "台北"},
	{"HKG", "香港国際空港", "香港"},
	{"BKK", "スワンナプーム国際空港", "バンコク"},
	{"SIN", "チャンギ国際空港", "シンガポール"},
	{"MNL", "ニノイ・アキノ国際空港", "マニラ"},
	{"SGN", "タンソンニャット国際空港", "ホーチミン"},
	{"HAN", "ノイバイ国際空港", "ハノイ"},
	{"KUL", "クアラルンプール国際空港", "クアラルンプール"},
	{"DPS", "ングラ・ライ国際空港", "バリ"},
	{"PVG", "上海浦東国際空港", "上海"},
	{"PEK", "北京首都国際空港", "北京"},
	// Oceania
	{"SYD", "シドニー国際空港", "シドニー"},
	{"AKL", "オークランド国際空港", "オークランド"},
	// Hawaii / Guam
	{"HNL", "ダニエル・K・イノウエ国際空港", "ホノルル"},
	{"GUM", "グアム国際空港", "グアム"},
	// Americas
	{"LAX", "ロサンゼルス国際空港", "ロサンゼルス"},
	{"SFO", "サンフランシスコ国際空港", "サンフランシスコ"},
	{"JFK", "ジョン・F・ケネディ国際空港", "ニューヨーク"},
	// Europe
	{"LHR", "ヒースロー空港", "ロンドン"},
	{"CDG", "シャルル・ド・ゴール空港", "パリ"},
	{"FRA", "フランクフルト空港", "フランクフルト"},
}

var byCode = func() map[string]Airport {
	m := make(map[string]Airport, len(origins)+len(destinations))
	for _, a := range origins {
		m[a.Code] = a
	}
	for _, a := range destinations {
		m[a.Code] = a
	}
	return m
}()

// Origins lists the supported departure airports.
func Origins() []Airport {
	return origins
}

// Destinations lists the supported arrival airports.
func Destinations() []Airport {
	return destinations
}

// All lists every known airport, origins first.
func All() []Airport {
	all := make([]Airport, 0, len(origins)+len(destinations))
	all = append(all, origins...)
	all = append(all, destinations...)
	return all
}

// Lookup finds an airport by IATA code, case-insensitively.
func Lookup(code string) (Airport, bool) {
	a, ok := byCode[strings.ToUpper(code)]
	return a, ok
}

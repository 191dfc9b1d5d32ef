package catalog

import "sort"

// Curated example questions per guideline year, shown to first-time users.
var examplesByYear = map[int][]string{
	2024: {
		"라이다 측량을 다시 해야하는 경우는?",
		"설계 하자책임기간 관리는 어떤 부서?",
		"주민설명회에서 BIM 활용 방법은?",
		"타당성 및 기본설계 기간은?",
		"내리막 좌측 곡선부 곡선반경은?",
		"가도, 가교 설치 기준을 알려줘",
		"지하차도 배수 수방체계 표준안은?",
		"제설염해 위험구간을 알려줘",
		"나들목 중앙분리대 방호등급은?",
	},
	2023: {
		"고속도로 건설 관련 부담금은?",
		"하이패스 나들목 설계 기간은?",
		"안전관리비 간접공사비 적용은?",
		"배수성 포장 적용 대상 구간은?",
		"여굴량 산출기준을 알려줘",
		"터널 폐수처리시설 계상기준은?",
		"설계 안전성 검토 방법은?",
		"설계단계별 주민설명회 시기는?",
		"지적중첩도 작성 의뢰 시기는?",
		"확장구간 내 제한속도는?",
		"점검 승강시설 설치 기준은?",
	},
	2017: {
		"경관설계 대상 시설물을 알려줘",
		"축중차로를 스마트톨링 차로로 전환시 설계기준은?",
		"고속도로 설계시 설계강우강도를 어떻게 적용해야 하는지 알려줘",
		"교량 고정식 점검시설 설치기준을 알려줘",
		"교면 배수구 설치간격 기준을 알려줘",
		"교량하부 가드휀스 설치 기준은?",
		"하이브리드 거더의 정의를 알려줘",
		"콘크리트 포장 줄눈 설치 기준을 알려줘",
		"터널 요철포장 설치 기준을 알려줘",
	},
}

// ExampleGroup is one year's worth of curated questions.
type ExampleGroup struct {
	Year      int      `json:"year"`
	Questions []string `json:"questions"`
}

// Examples returns the curated questions grouped by year, newest first.
// Years without curated questions are omitted.
func Examples() []ExampleGroup {
	years := make([]int, 0, len(examplesByYear))
	for year := range examplesByYear {
		years = append(years, year)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))

	groups := make([]ExampleGroup, 0, len(years))
	for _, year := range years {
		questions := make([]string, len(examplesByYear[year]))
		copy(questions, examplesByYear[year])
		groups = append(groups, ExampleGroup{Year: year, Questions: questions})
	}
	return groups
}

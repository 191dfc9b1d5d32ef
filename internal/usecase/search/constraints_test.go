package search

import (
	"testing"

	"github.com/strustar/Road-Assistant/internal/domain/search/query"
)

func TestExtractConstraints_Year(t *testing.T) {
	filters := ExtractConstraints("2024년 라이다 점밀도 기준", query.Filters{})

	year, ok := filters.Year()
	if !ok {
		t.Fatal("expected year filter to be set")
	}
	if year != 2024 {
		t.Errorf("year = %d, want 2024", year)
	}
}

func TestExtractConstraints_YearOutOfRangeIgnored(t *testing.T) {
	filters := ExtractConstraints("1999년 기준을 알려줘", query.Filters{})

	if _, ok := filters.Year(); ok {
		t.Error("year outside 2000-2039 should not match")
	}
}

func TestExtractConstraints_Dept(t *testing.T) {
	filters := ExtractConstraints("구조물처 콘크리트 표면보호재 기준", query.Filters{})

	dept, ok := filters.Dept()
	if !ok {
		t.Fatal("expected dept filter to be set")
	}
	if dept != "구조물처" {
		t.Errorf("dept = %q, want 구조물처", dept)
	}
}

func TestExtractConstraints_FirstMatchOnly(t *testing.T) {
	filters := ExtractConstraints("2017년과 2024년 설계처 구조물처 비교", query.Filters{})

	if year, _ := filters.Year(); year != 2017 {
		t.Errorf("year = %d, want first match 2017", year)
	}
	if dept, _ := filters.Dept(); dept != "설계처" {
		t.Errorf("dept = %q, want first match 설계처", dept)
	}
}

func TestExtractConstraints_NeverOverwritesCallerFilters(t *testing.T) {
	caller := query.NewFilters(2020, "도로처")

	filters := ExtractConstraints("2024년 설계처 기준", caller)

	if year, _ := filters.Year(); year != 2020 {
		t.Errorf("caller year overwritten: got %d, want 2020", year)
	}
	if dept, _ := filters.Dept(); dept != "도로처" {
		t.Errorf("caller dept overwritten: got %q, want 도로처", dept)
	}
}

func TestExtractConstraints_NoMatchLeavesFiltersEmpty(t *testing.T) {
	filters := ExtractConstraints("배수성 포장 적용 대상 구간", query.Filters{})

	if !filters.IsEmpty() {
		t.Errorf("expected empty filters, got %+v", filters)
	}
}

package service_test

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/mattmelloy/simplecalorie/internal/model"
	"github.com/mattmelloy/simplecalorie/internal/service"
)

func TestTotalCalories(t *testing.T) {
	t.Parallel()

	if got := service.TotalCalories(nil); got != 0 {
		t.Fatalf("empty collection should sum to 0, got %v", got)
	}

	entries := []model.LogEntry{
		{Calories: 300, PortionFactor: 1.5},
		{Calories: 200, PortionFactor: 1},
		{Calories: 100, PortionFactor: 0.5},
	}
	want := 300*1.5 + 200 + 50.0
	if got := service.TotalCalories(entries); math.Abs(got-want) > 1e-9 {
		t.Fatalf("expected total %v, got %v", want, got)
	}
}

func TestProgressPercent(t *testing.T) {
	t.Parallel()

	pct, err := service.ProgressPercent(450, 2000)
	if err != nil {
		t.Fatalf("progress: %v", err)
	}
	if pct != 23 {
		t.Fatalf("expected 23%%, got %d%%", pct)
	}

	pct, err = service.ProgressPercent(5000, 2000)
	if err != nil {
		t.Fatalf("progress over goal: %v", err)
	}
	if pct != 100 {
		t.Fatalf("expected cap at 100%%, got %d%%", pct)
	}

	if _, err := service.ProgressPercent(100, 0); !errors.Is(err, service.ErrInvalidGoal) {
		t.Fatalf("expected ErrInvalidGoal for zero goal, got %v", err)
	}
	if _, err := service.ProgressPercent(100, -10); !errors.Is(err, service.ErrInvalidGoal) {
		t.Fatalf("expected ErrInvalidGoal for negative goal, got %v", err)
	}
}

func TestProgressPercentMonotonic(t *testing.T) {
	t.Parallel()

	prev := -1
	for total := 0.0; total <= 3000; total += 75 {
		pct, err := service.ProgressPercent(total, 2000)
		if err != nil {
			t.Fatalf("progress at %v: %v", total, err)
		}
		if pct < prev {
			t.Fatalf("progress decreased from %d to %d at total %v", prev, pct, total)
		}
		prev = pct
	}
}

func TestGroupByCategoryOmitsEmptyCategories(t *testing.T) {
	t.Parallel()

	entries := []model.LogEntry{
		{ID: "a", Category: model.CategoryLunch},
		{ID: "b", Category: model.CategoryBreakfast},
		{ID: "c", Category: model.CategoryLunch},
	}
	grouped := service.GroupByCategory(entries)
	if len(grouped) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(grouped))
	}
	if _, ok := grouped[model.CategoryDinner]; ok {
		t.Fatalf("dinner group should be absent, not empty")
	}
	lunch := grouped[model.CategoryLunch]
	if len(lunch) != 2 || lunch[0].ID != "a" || lunch[1].ID != "c" {
		t.Fatalf("lunch group out of order: %+v", lunch)
	}
}

func TestSummarizeDayEndToEnd(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)

	est := model.AIEstimate{
		MealName:          "Oatmeal",
		EstimatedCalories: 300,
		Breakdown: []model.AIBreakdownItem{
			{ItemName: "Rolled oats", Quantity: "60g", Calories: 220},
			{ItemName: "Honey", Quantity: "1 tbsp", Calories: 80},
		},
	}
	entry := mustConfirm(t, est, 1.5, model.CategoryBreakfast, "2026-09-01")
	mustInsert(t, sqldb, entry)

	settings := model.UserSettings{DailyGoal: 2000, Unit: model.UnitKcal}

	summary, err := service.SummarizeDay(sqldb, "2026-09-01", settings)
	if err != nil {
		t.Fatalf("summarize day: %v", err)
	}
	if math.Abs(summary.TotalCalories-450) > 1e-9 {
		t.Fatalf("expected total 450, got %v", summary.TotalCalories)
	}
	if summary.ProgressPercent != 23 {
		t.Fatalf("expected progress 23, got %d", summary.ProgressPercent)
	}
	if len(summary.Grouped[model.CategoryBreakfast]) != 1 {
		t.Fatalf("expected one breakfast entry, got %+v", summary.Grouped)
	}

	// The next day starts from zero; yesterday's entry never leaks in.
	next, err := service.SummarizeDay(sqldb, "2026-09-02", settings)
	if err != nil {
		t.Fatalf("summarize next day: %v", err)
	}
	if next.TotalCalories != 0 {
		t.Fatalf("expected total 0 on the next day, got %v", next.TotalCalories)
	}
	if len(next.Grouped) != 0 {
		t.Fatalf("expected no groups on the next day, got %+v", next.Grouped)
	}
}

func TestToday(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 9, 1, 23, 59, 0, 0, time.Local)
	if got := service.Today(now); got != "2026-09-01" {
		t.Fatalf("expected 2026-09-01, got %s", got)
	}
	if got := service.Today(now.Add(2 * time.Minute)); got != "2026-09-02" {
		t.Fatalf("expected day to roll over at midnight, got %s", got)
	}
}

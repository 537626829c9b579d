package tracker

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	foodlogdto "mealtrack/internal/modules/foodlog/dto"
)

type fakePort struct {
	day     foodlogdto.DayOutput
	out     foodlogdto.AddOutput
	addErr  error
	added   []foodlogdto.DraftInput
	priors  []foodlogdto.TotalsOutput
	checked int
}

func (f *fakePort) LoadDay(context.Context) (foodlogdto.DayOutput, error) {
	return f.day, nil
}

func (f *fakePort) CheckDraft(in foodlogdto.DraftInput) foodlogdto.ValidationOutput {
	f.checked++
	if in.FoodName == "" || in.MealType == foodlogdto.MealTypePlaceholder {
		return foodlogdto.ValidationOutput{Message: "Please enter all necessary fields before saving"}
	}
	return foodlogdto.ValidationOutput{Valid: true}
}

func (f *fakePort) Add(_ context.Context, draft foodlogdto.DraftInput, prior foodlogdto.TotalsOutput) (foodlogdto.AddOutput, error) {
	f.added = append(f.added, draft)
	f.priors = append(f.priors, prior)
	return f.out, f.addErr
}

// run executes cmd and any batched commands, returning every message produced.
func run(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, run(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func find[T tea.Msg](t *testing.T, msgs []tea.Msg) T {
	t.Helper()
	for _, m := range msgs {
		if v, ok := m.(T); ok {
			return v
		}
	}
	var zero T
	t.Fatalf("no %T among %d messages", zero, len(msgs))
	return zero
}

func typeText(m Model, text string) Model {
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return m
}

func next(m Model) Model {
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	return m
}

func loaded(t *testing.T, port *fakePort) Model {
	t.Helper()
	port.day = foodlogdto.DayOutput{
		Entries: []foodlogdto.EntryOutput{
			{ID: "h1", FoodName: "Toast", MealType: "Breakfast", Calories: 100, Servings: 2, Route: "/foodItemInfo/h1"},
			{ID: "h2", FoodName: "Apple", MealType: "Snack", Calories: 50, Servings: 1, Route: "/foodItemInfo/h2"},
		},
		Totals: foodlogdto.TotalsOutput{Calories: 250},
	}
	m := New(port)
	m, _ = m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m, _ = m.Update(find[DayLoadedMsg](t, run(m.Reload())))
	return m
}

func fillForm(m Model) Model {
	m.FocusForm()
	for _, v := range []string{"Banana", "100", "1", "27", "0", "1"} {
		m = typeText(m, v)
		m = next(m)
	}
	m.SelectMeal("snack")
	return m
}

func TestLoadShowsEntriesAndTotals(t *testing.T) {
	t.Parallel()
	m := loaded(t, &fakePort{})
	if m.Loading() || len(m.Entries()) != 2 || m.Totals().Calories != 250 {
		t.Fatalf("unexpected loaded state: loading=%v entries=%d totals=%+v", m.Loading(), len(m.Entries()), m.Totals())
	}
}

func TestSubmitIncompleteShowsMessageWithoutNetwork(t *testing.T) {
	t.Parallel()
	port := &fakePort{}
	m := loaded(t, port)
	m.FocusForm()
	m = typeText(m, "Banana")
	if cmd := m.Submit(); cmd != nil {
		t.Fatalf("placeholder meal type must block submission")
	}
	if m.Form().Phase() != PhaseShowingError || m.Form().Error() != "Please enter all necessary fields before saving" {
		t.Fatalf("unexpected form state %s %q", m.Form().Phase(), m.Form().Error())
	}
	if len(port.added) != 0 {
		t.Fatalf("no request should be issued")
	}
	m = typeText(m, "s")
	if m.Form().Phase() != PhaseIdle || m.Form().Draft().FoodName != "Bananas" {
		t.Fatalf("editing should clear the error: %s %+v", m.Form().Phase(), m.Form().Draft())
	}
}

func TestSuccessfulAddAdvancesTotalsAndClearsForm(t *testing.T) {
	t.Parallel()
	port := &fakePort{}
	m := loaded(t, port)
	m = fillForm(m)
	port.out = foodlogdto.AddOutput{
		Entries: append(m.Entries(), foodlogdto.EntryOutput{ID: "h3", FoodName: "Banana", Calories: 100, Servings: 1}),
		Delta:   foodlogdto.TotalsOutput{Calories: 100, Protein: 1, Carbohydrates: 27},
		Totals:  foodlogdto.TotalsOutput{Calories: 350, Protein: 1, Carbohydrates: 27},
	}

	cmd := m.Submit()
	if m.Form().Phase() != PhaseSubmitting {
		t.Fatalf("expected submitting, got %s", m.Form().Phase())
	}
	added := find[AddedMsg](t, run(cmd))
	if len(port.added) != 1 || port.added[0].MealType != "Snack" || port.added[0].Calories != "100" {
		t.Fatalf("unexpected submitted draft: %+v", port.added)
	}
	if port.priors[0].Calories != 250 {
		t.Fatalf("prior totals should be the displayed ones, got %+v", port.priors[0])
	}

	m, _ = m.Update(added)
	if m.Totals().Calories != 350 || len(m.Entries()) != 3 {
		t.Fatalf("unexpected state after add: %+v entries=%d", m.Totals(), len(m.Entries()))
	}
	want := foodlogdto.DraftInput{MealType: foodlogdto.MealTypePlaceholder}
	if m.Form().Draft() != want || m.Form().Phase() != PhaseIdle {
		t.Fatalf("form should be cleared: %+v %s", m.Form().Draft(), m.Form().Phase())
	}
	for i := range m.inputs {
		if m.inputs[i].Value() != "" {
			t.Fatalf("input %d not cleared", i)
		}
	}
	if m.meal.Value() != foodlogdto.MealTypePlaceholder {
		t.Fatalf("meal selector should return to placeholder, got %q", m.meal.Value())
	}
}

func TestDeltaAppliesToCurrentTotalsUnlessReconciled(t *testing.T) {
	t.Parallel()
	m := loaded(t, &fakePort{})
	m, _ = m.Update(AddedMsg{Output: foodlogdto.AddOutput{Delta: foodlogdto.TotalsOutput{Calories: 10}, Totals: foodlogdto.TotalsOutput{Calories: 999}}})
	if m.Totals().Calories != 260 {
		t.Fatalf("incremental totals expected 260, got %v", m.Totals().Calories)
	}
	m, _ = m.Update(AddedMsg{Output: foodlogdto.AddOutput{Reconciled: true, Totals: foodlogdto.TotalsOutput{Calories: 400}}})
	if m.Totals().Calories != 400 {
		t.Fatalf("reconciled totals expected 400, got %v", m.Totals().Calories)
	}
}

func TestFailedAddKeepsValuesAndShowsNothing(t *testing.T) {
	t.Parallel()
	port := &fakePort{addErr: errors.New("connection refused")}
	m := loaded(t, port)
	m = fillForm(m)
	before := m.Form().Draft()

	m, _ = m.Update(find[AddedMsg](t, run(m.Submit())))
	if m.Form().Draft() != before || m.Form().Error() != "" || m.Form().Phase() != PhaseIdle {
		t.Fatalf("failure must leave the form untouched: %+v %q %s", m.Form().Draft(), m.Form().Error(), m.Form().Phase())
	}
	if m.Totals().Calories != 250 {
		t.Fatalf("totals must not move on failure, got %v", m.Totals().Calories)
	}
	if m.inputs[fieldFoodName].Value() != "Banana" {
		t.Fatalf("inputs must keep their text, got %q", m.inputs[fieldFoodName].Value())
	}
}

func TestLongPasteReachesValidationUntruncated(t *testing.T) {
	t.Parallel()
	port := &fakePort{}
	m := loaded(t, port)
	m.FocusForm()
	m = next(m)
	long := "1" + strings.Repeat("0", 99) + "abc"
	m = typeText(m, long)
	if got := m.Form().Draft().Calories; got != long {
		t.Fatalf("calories should keep all %d chars, got %d", len(long), len(got))
	}
	name := strings.Repeat("Overnight oats with berries ", 8)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = typeText(m, name)
	if got := m.Form().Draft().FoodName; got != name {
		t.Fatalf("food name should keep all %d chars, got %d", len(name), len(got))
	}
}

func TestEnterOnListOpensEntry(t *testing.T) {
	t.Parallel()
	m := loaded(t, &fakePort{})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	open := find[OpenEntryMsg](t, run(cmd))
	if open.Entry.ID != "h1" || open.Entry.Route != "/foodItemInfo/h1" {
		t.Fatalf("unexpected entry %+v", open.Entry)
	}
}

func TestEmptyDayShowsMessage(t *testing.T) {
	t.Parallel()
	m := New(&fakePort{})
	m, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m, _ = m.Update(DayLoadedMsg{})
	if got := m.View(); !containsText(got, emptyMessage) {
		t.Fatalf("empty day should render %q", emptyMessage)
	}
}

func containsText(rendered, text string) bool {
	return strings.Contains(rendered, text)
}

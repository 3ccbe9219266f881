package editor

import "testing"

type faqDraft struct {
	Question string
	Answer   string
}

func assertOrder(t *testing.T, l *List[faqDraft], questions ...string) {
	t.Helper()

	entries := l.Entries()
	if len(entries) != len(questions) {
		t.Fatalf("expected %d entries, got %d", len(questions), len(entries))
	}

	for i, e := range entries {
		if e.OrderIndex != i {
			t.Errorf("entry %d has orderIndex %d, want %d", i, e.OrderIndex, i)
		}
		if e.Value.Question != questions[i] {
			t.Errorf("entry %d is %q, want %q", i, e.Value.Question, questions[i])
		}
	}
}

func TestAddAssignsSequentialOrder(t *testing.T) {
	l := NewList[faqDraft]()

	a := l.Add(faqDraft{Question: "A"})
	b := l.Add(faqDraft{Question: "B"})

	if a.OrderIndex != 0 || b.OrderIndex != 1 {
		t.Fatalf("expected orderIndex 0 and 1, got %d and %d", a.OrderIndex, b.OrderIndex)
	}
	if a.ID == "" || a.ID == b.ID {
		t.Fatal("expected distinct non-empty ids")
	}
}

func TestRemoveClosesGap(t *testing.T) {
	l := NewList[faqDraft]()
	l.Add(faqDraft{Question: "A"})
	b := l.Add(faqDraft{Question: "B"})
	l.Add(faqDraft{Question: "C"})

	if !l.Remove(b.ID) {
		t.Fatal("expected removal to succeed")
	}

	assertOrder(t, l, "A", "C")
}

func TestRemoveUnknownID(t *testing.T) {
	l := NewList(faqDraft{Question: "A"})
	if l.Remove("missing") {
		t.Fatal("expected removal of unknown id to fail")
	}
	assertOrder(t, l, "A")
}

func TestUpdateMergesFieldsWithoutReordering(t *testing.T) {
	l := NewList[faqDraft]()
	a := l.Add(faqDraft{Question: "A"})
	l.Add(faqDraft{Question: "B"})

	ok := l.Update(a.ID, func(v *faqDraft) {
		v.Answer = "updated"
	})
	if !ok {
		t.Fatal("expected update to succeed")
	}

	entries := l.Entries()
	if entries[0].Value.Answer != "updated" {
		t.Errorf("expected answer to be merged, got %q", entries[0].Value.Answer)
	}
	assertOrder(t, l, "A", "B")
}

func TestMoveDownSwapsNeighbors(t *testing.T) {
	l := NewList(
		faqDraft{Question: "A"},
		faqDraft{Question: "B"},
		faqDraft{Question: "C"},
	)

	if !l.Move(0, Down) {
		t.Fatal("expected move to succeed")
	}

	assertOrder(t, l, "B", "A", "C")
}

func TestMoveUpAtTopIsNoop(t *testing.T) {
	l := NewList(
		faqDraft{Question: "A"},
		faqDraft{Question: "B"},
		faqDraft{Question: "C"},
	)

	if l.Move(0, Up) {
		t.Fatal("expected move past the boundary to be a no-op")
	}

	assertOrder(t, l, "A", "B", "C")
}

func TestMoveDownAtBottomIsNoop(t *testing.T) {
	l := NewList(faqDraft{Question: "A"}, faqDraft{Question: "B"})

	if l.Move(1, Down) {
		t.Fatal("expected move past the boundary to be a no-op")
	}

	assertOrder(t, l, "A", "B")
}

func TestMoveInvalidIndex(t *testing.T) {
	l := NewList(faqDraft{Question: "A"})

	if l.Move(-1, Down) || l.Move(5, Up) {
		t.Fatal("expected out-of-range moves to fail")
	}
}

func TestReindexHelper(t *testing.T) {
	type row struct{ OrderIndex int }
	rows := []row{{OrderIndex: 7}, {OrderIndex: 3}, {OrderIndex: 9}}

	Reindex(rows, func(r *row, i int) { r.OrderIndex = i })

	for i, r := range rows {
		if r.OrderIndex != i {
			t.Errorf("row %d has orderIndex %d, want %d", i, r.OrderIndex, i)
		}
	}
}

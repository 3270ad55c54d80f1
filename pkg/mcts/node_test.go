package mcts

import "testing"

func TestActionChildDedupes(t *testing.T) {
	_, root := newGrid(3, [2]int{2, 2})
	d := NewRoot[gridState, gridAction](root, 0, 1.0)

	first, isNew := d.actionChild(gridUp, 0)
	if !isNew {
		t.Fatal("first actionChild call should report isNew=true")
	}

	second, isNew := d.actionChild(gridUp, 0)
	if isNew {
		t.Fatal("second actionChild call for the same action should report isNew=false")
	}
	if first != second {
		t.Fatal("actionChild should return the same node for an equal action")
	}
	if len(d.Children) != 1 {
		t.Fatalf("want 1 action child, got %d", len(d.Children))
	}
}

func TestOutcomeChildDedupes(t *testing.T) {
	_, root := newGrid(3, [2]int{2, 2})
	d := NewRoot[gridState, gridAction](root, 0, 1.0)
	action, _ := d.actionChild(gridUp, 0)

	next := root.Move(gridUp)
	first, isNew := action.outcomeChild(next)
	if !isNew {
		t.Fatal("first outcomeChild call should report isNew=true")
	}

	second, isNew := action.outcomeChild(next)
	if isNew {
		t.Fatal("second outcomeChild call for the same outcome should report isNew=false")
	}
	if first != second {
		t.Fatal("outcomeChild should return the same node for an equal outcome")
	}
	if len(action.Children) != 1 {
		t.Fatalf("want 1 outcome child, got %d", len(action.Children))
	}
}

func TestNewDecisionChildInheritsRolloutAndGamma(t *testing.T) {
	_, root := newGrid(3, [2]int{2, 2})
	d := NewRoot[gridState, gridAction](root, 7, 0.42)
	action, _ := d.actionChild(gridUp, 0)

	child, _ := action.outcomeChild(root.Move(gridUp))

	if child.RolloutDepth != 7 {
		t.Errorf("RolloutDepth = %d, want 7", child.RolloutDepth)
	}
	if child.Gamma != 0.42 {
		t.Errorf("Gamma = %v, want 0.42", child.Gamma)
	}
	if child.Parent != action {
		t.Error("child.Parent should point back at the owning action")
	}
}

func TestNodeCountAndMaxDepth(t *testing.T) {
	_, root := newGrid(3, [2]int{2, 2})
	d := NewRoot[gridState, gridAction](root, 0, 1.0)

	if got := d.NodeCount(); got != 1 {
		t.Fatalf("fresh root NodeCount = %d, want 1", got)
	}
	if got := d.MaxDepth(); got != 1 {
		t.Fatalf("fresh root MaxDepth = %d, want 1", got)
	}

	action, _ := d.actionChild(gridUp, 0)
	next, _ := action.outcomeChild(root.Move(gridUp))

	if got := d.NodeCount(); got != 3 {
		t.Fatalf("NodeCount after one expansion = %d, want 3", got)
	}
	if got := d.MaxDepth(); got != 2 {
		t.Fatalf("MaxDepth after one expansion = %d, want 2", got)
	}
	_ = next
}

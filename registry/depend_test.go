package registry

import "testing"

func TestSupportTypeDependsConjunction(t *testing.T) {
	expr := ParseDepends("VK_KHR_A+VK_KHR_B")

	if !SupportTypeDepends(expr, map[string]bool{"VK_KHR_A": true, "VK_KHR_B": true}) {
		t.Fatal("expected conjunction satisfied when both enabled")
	}
	if SupportTypeDepends(expr, map[string]bool{"VK_KHR_A": true}) {
		t.Fatal("expected conjunction unsatisfied when only one enabled")
	}
}

func TestSupportTypeDependsDisjunction(t *testing.T) {
	expr := ParseDepends("VK_KHR_A,VK_KHR_B")

	if !SupportTypeDepends(expr, map[string]bool{"VK_KHR_B": true}) {
		t.Fatal("expected disjunction satisfied when either enabled")
	}
	if SupportTypeDepends(expr, map[string]bool{}) {
		t.Fatal("expected disjunction unsatisfied when neither enabled")
	}
}

func TestSupportTypeDependsPrecedence(t *testing.T) {
	// (A+B),C: satisfied either by A&B together, or by C alone.
	expr := ParseDepends("(VK_KHR_A+VK_KHR_B),VK_KHR_C")

	if !SupportTypeDepends(expr, map[string]bool{"VK_KHR_C": true}) {
		t.Fatal("expected C alone to satisfy the OR branch")
	}
	if SupportTypeDepends(expr, map[string]bool{"VK_KHR_A": true}) {
		t.Fatal("expected A alone to not satisfy the AND branch")
	}
	if !SupportTypeDepends(expr, map[string]bool{"VK_KHR_A": true, "VK_KHR_B": true}) {
		t.Fatal("expected A+B to satisfy the AND branch")
	}
}

func TestFilterDependsDropsCoreVersionAndNonVK(t *testing.T) {
	expr := ParseDepends("VK_VERSION_1_2+VK_KHR_A")
	filtered := FilterDepends(expr)
	if filtered == nil {
		t.Fatal("expected VK_KHR_A to survive filtering")
	}
	if filtered.String() != "VK_KHR_A" {
		t.Fatalf("got %q, want VK_KHR_A", filtered.String())
	}

	allCore := ParseDepends("VK_VERSION_1_2")
	if FilterDepends(allCore) != nil {
		t.Fatal("expected an all-core-version expression to filter to nil")
	}
}

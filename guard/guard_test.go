package guard

import "testing"

func TestBuildGuardCoreVersion(t *testing.T) {
	got := BuildGuard(Claim{CoreVersion: "1.3"})
	if got != "!has_api_version(1_3)" {
		t.Fatalf("got %q", got)
	}
}

func TestBuildGuardCoreBelowBaselineIsUnguarded(t *testing.T) {
	got := BuildGuard(Claim{CoreVersion: "1.1"})
	if got != "" {
		t.Fatalf("expected no guard for core <= 1.2, got %q", got)
	}
}

func TestBuildGuardExtensionsDeterministicOrder(t *testing.T) {
	a := BuildGuard(Claim{Extensions: []string{"VK_EXT_B", "VK_EXT_A"}})
	b := BuildGuard(Claim{Extensions: []string{"VK_EXT_A", "VK_EXT_B"}})
	if a != b {
		t.Fatalf("expected deterministic extension order, got %q vs %q", a, b)
	}
	if a != "!has_extension(VK_EXT_A) && !has_extension(VK_EXT_B)" {
		t.Fatalf("got %q", a)
	}
}

func TestBuildGuardOptionalPair(t *testing.T) {
	got := BuildGuard(Claim{OptionalOf: [][2]string{{"VK_EXT_A", "VK_EXT_B"}}})
	want := "!(has_extension(VK_EXT_A) && has_extension(VK_EXT_B))"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

package validation

import (
	"strings"
	"testing"
)

func TestIsValidEmail(t *testing.T) {
	valid := []string{"a@example.com", "first.last+tag@sub.domain.org", "UPPER@EXAMPLE.COM"}
	for _, v := range valid {
		if !IsValidEmail(v) {
			t.Errorf("IsValidEmail(%q) = false, want true", v)
		}
	}

	invalid := []string{"", "plain", "a@b", "a b@example.com", "a@example.toolongtld"}
	for _, v := range invalid {
		if IsValidEmail(v) {
			t.Errorf("IsValidEmail(%q) = true, want false", v)
		}
	}
}

func TestIsValidCourseID(t *testing.T) {
	valid := []string{"CS101", "course-2024.fall_A", "$special"}
	for _, v := range valid {
		if !IsValidCourseID(v) {
			t.Errorf("IsValidCourseID(%q) = false, want true", v)
		}
	}

	invalid := []string{"", "has space", "semi;colon", strings.Repeat("c", CourseIDMaxLength+1)}
	for _, v := range invalid {
		if IsValidCourseID(v) {
			t.Errorf("IsValidCourseID(%q) = true, want false", v)
		}
	}
}

func TestIsValidGoogleID(t *testing.T) {
	valid := []string{"alice", "alice.g", "alice@gmail.com"}
	for _, v := range valid {
		if !IsValidGoogleID(v) {
			t.Errorf("IsValidGoogleID(%q) = false, want true", v)
		}
	}

	invalid := []string{"", "has space", strings.Repeat("g", GoogleIDMaxLength+1)}
	for _, v := range invalid {
		if IsValidGoogleID(v) {
			t.Errorf("IsValidGoogleID(%q) = true, want false", v)
		}
	}
}

func TestIsValidName(t *testing.T) {
	if !IsValidName("Alice Wonderland") {
		t.Error("plain name rejected")
	}
	if IsValidName("   ") {
		t.Error("whitespace-only name accepted")
	}
	if IsValidName(strings.Repeat("n", NameMaxLength+1)) {
		t.Error("over-long name accepted")
	}
}

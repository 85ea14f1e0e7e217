package media

import (
	"strings"
	"testing"
)

func TestBuildObjectKey(t *testing.T) {
	key, err := BuildObjectKey("voicenotes", "Ada Lovelace", "clip.webm")
	if err != nil {
		t.Fatalf("BuildObjectKey: %v", err)
	}

	if !strings.HasPrefix(key, "voicenotes/ada-lovelace_") {
		t.Fatalf("key = %q, want voicenotes/ada-lovelace_ prefix", key)
	}
	if !strings.HasSuffix(key, ".webm") {
		t.Fatalf("key = %q, want .webm suffix", key)
	}
}

func TestBuildObjectKeyIsUnique(t *testing.T) {
	a, err := BuildObjectKey("photos", "same name", "pic.jpg")
	if err != nil {
		t.Fatalf("BuildObjectKey: %v", err)
	}
	b, err := BuildObjectKey("photos", "same name", "pic.jpg")
	if err != nil {
		t.Fatalf("BuildObjectKey: %v", err)
	}
	if a == b {
		t.Fatalf("two keys for the same inputs collided: %q", a)
	}
}

func TestSanitizeName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Ada Lovelace", "ada-lovelace"},
		{"  O'Brien!  ", "obrien"},
		{"零落", "anonymous"},
		{"", "anonymous"},
	}
	for _, tc := range cases {
		if got := sanitizeName(tc.in); got != tc.want {
			t.Errorf("sanitizeName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestBuildObjectKeyDefaultsExtension(t *testing.T) {
	key, err := BuildObjectKey("voicenotes", "guest", "noext")
	if err != nil {
		t.Fatalf("BuildObjectKey: %v", err)
	}
	if !strings.HasSuffix(key, ".bin") {
		t.Fatalf("key = %q, want .bin suffix for missing extension", key)
	}
}

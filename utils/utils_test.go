package utils

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestMinMaxAbsClamp(t *testing.T) {
	if got := Min(3, 7); got != 3 {
		t.Errorf("Min(3, 7) = %d", got)
	}
	if got := Min(2.5, 1.5); got != 1.5 {
		t.Errorf("Min(2.5, 1.5) = %v", got)
	}
	if got := Max(3, 7); got != 7 {
		t.Errorf("Max(3, 7) = %d", got)
	}
	if got := Abs(-4.5); got != 4.5 {
		t.Errorf("Abs(-4.5) = %v", got)
	}
	if got := Abs(4); got != 4 {
		t.Errorf("Abs(4) = %d", got)
	}
	if got := Clamp(12, 0, 10); got != 10 {
		t.Errorf("Clamp(12, 0, 10) = %d", got)
	}
	if got := Clamp(-3, 0, 10); got != 0 {
		t.Errorf("Clamp(-3, 0, 10) = %d", got)
	}
	if got := Clamp(5, 0, 10); got != 5 {
		t.Errorf("Clamp(5, 0, 10) = %d", got)
	}
}

func TestContains(t *testing.T) {
	formats := []string{"png", "jpeg", "webp"}
	if !Contains(formats, "webp") {
		t.Error("Contains missed an existing value")
	}
	if Contains(formats, "tiff") {
		t.Error("Contains reported a missing value")
	}
	if Contains([]string(nil), "png") {
		t.Error("Contains matched against a nil slice")
	}
}

func TestFormatTime(t *testing.T) {
	testCases := []struct {
		d    time.Duration
		want string
	}{
		{d: 1500 * time.Millisecond, want: "1.50s"},
		{d: 90 * time.Second, want: "1m 30.00s"},
		{d: 2*time.Hour + 5*time.Minute + 3*time.Second, want: "2h 5m 3.00s"},
	}
	for _, tc := range testCases {
		if got := FormatTime(tc.d); got != tc.want {
			t.Errorf("FormatTime(%v) = %q, want %q", tc.d, got, tc.want)
		}
	}
}

func TestFormatBytes(t *testing.T) {
	testCases := []struct {
		n    int
		want string
	}{
		{n: 512, want: "512 B"},
		{n: 2048, want: "2.0 kB"},
		{n: 3 << 20, want: "3.0 MB"},
	}
	for _, tc := range testCases {
		if got := FormatBytes(tc.n); got != tc.want {
			t.Errorf("FormatBytes(%d) = %q, want %q", tc.n, got, tc.want)
		}
	}
}

func TestDecorateText(t *testing.T) {
	s := DecorateText("done", SuccessMessage)
	if !strings.HasPrefix(s, SuccessColor) || !strings.HasSuffix(s, DefaultColor) {
		t.Errorf("DecorateText = %q", s)
	}
	if got := DecorateText("raw", MessageType(42)); got != "raw" {
		t.Errorf("unknown message type decorated: %q", got)
	}
}

func TestDetectContentType(t *testing.T) {
	pngHeader := []byte("\x89PNG\r\n\x1a\n" + strings.Repeat("\x00", 16))
	r := bytes.NewReader(pngHeader)

	ct, err := DetectContentType(r)
	if err != nil {
		t.Fatalf("DetectContentType: %v", err)
	}
	if ct != "image/png" {
		t.Errorf("content type = %q, want image/png", ct)
	}
	// The stream must be rewound for the caller.
	if pos, _ := r.Seek(0, 1); pos != 0 {
		t.Errorf("stream position = %d, want 0", pos)
	}
}

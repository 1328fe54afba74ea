package iconforge

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseViewBox(t *testing.T) {
	testCases := []struct {
		name   string
		markup string
		want   ViewBox
		ok     bool
	}{
		{
			name:   "plain viewBox",
			markup: `<svg viewBox="0 0 24 24"><path d="M0 0h24v24z"/></svg>`,
			want:   ViewBox{W: 24, H: 24},
			ok:     true,
		},
		{
			name:   "offset origin",
			markup: `<svg viewBox="-8 -8 40 40"/>`,
			want:   ViewBox{X: -8, Y: -8, W: 40, H: 40},
			ok:     true,
		},
		{
			name:   "comma separated",
			markup: `<svg viewBox="0, 0, 16, 16"/>`,
			want:   ViewBox{W: 16, H: 16},
			ok:     true,
		},
		{
			name:   "width height fallback",
			markup: `<svg width="32" height="48"><rect/></svg>`,
			want:   ViewBox{W: 32, H: 48},
			ok:     true,
		},
		{
			name:   "nested rect does not leak its dimensions",
			markup: `<svg viewBox="0 0 24 24"><rect width="100" height="100"/></svg>`,
			want:   ViewBox{W: 24, H: 24},
			ok:     true,
		},
		{
			name:   "zero size rejected",
			markup: `<svg viewBox="0 0 0 24"/>`,
			ok:     false,
		},
		{
			name:   "no dimensions",
			markup: `<svg><rect/></svg>`,
			ok:     false,
		},
		{
			name:   "garbage values",
			markup: `<svg viewBox="a b c d"/>`,
			ok:     false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ParseViewBox(tc.markup)
			if ok != tc.ok {
				t.Fatalf("ok = %v, want %v", ok, tc.ok)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("viewBox mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMemoryCatalog_Lookup(t *testing.T) {
	cat := NewMemoryCatalog()
	cat.Add(IconDefinition{ID: "star", Pack: "lucide", Markup: testIconMarkup})

	def, err := cat.GetIconByID("star")
	if err != nil {
		t.Fatalf("GetIconByID: %v", err)
	}
	if def.Pack != "lucide" {
		t.Errorf("pack = %q, want %q", def.Pack, "lucide")
	}

	if _, err := cat.GetIconByID("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}

	cat.Remove("star")
	if _, err := cat.GetIconByID("star"); !errors.Is(err, ErrNotFound) {
		t.Errorf("after Remove, got %v, want ErrNotFound", err)
	}
}

func TestMemoryCatalog_Watch(t *testing.T) {
	cat := NewMemoryCatalog()
	w := cat.Watch()

	cat.Add(IconDefinition{ID: "a"})
	cat.Add(IconDefinition{ID: "b"})
	cat.Remove("a")

	if diff := cmp.Diff([]string{"a", "b", "a"}, w.Pending()); diff != "" {
		t.Errorf("pending mismatch (-want +got):\n%s", diff)
	}
	if p := w.Pending(); p != nil {
		t.Errorf("drained watcher still pending: %v", p)
	}

	cat.Unwatch(w)
	cat.Add(IconDefinition{ID: "c"})
	if p := w.Pending(); p != nil {
		t.Errorf("unwatched watcher notified: %v", p)
	}
}

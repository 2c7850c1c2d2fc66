package stylesheet_test

import (
	"sync"
	"testing"

	"stylist/stylesheet"
)

const accessorDoc = `
style:
  title: hello
  padding: 10
  enabled: true
  flag: "${1 == 1}"
  width: "${iPhoneX.width}"
  body: "!!font(system, 12)"
  tint: "!!color(#FF0000)"
`

func TestResolver_TypedAccess(t *testing.T) {
	loader, res := newResolver(nil)
	sheet, err := loader.Load([]byte(accessorDoc))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if got := res.String(sheet.Rule("style", "title"), "x"); got != "hello" {
		t.Errorf("String(title) = %q, want %q", got, "hello")
	}
	if got := res.Float(sheet.Rule("style", "padding"), 0); got != 10 {
		t.Errorf("Float(padding) = %v, want 10", got)
	}
	if got := res.Int(sheet.Rule("style", "padding"), 0); got != 10 {
		t.Errorf("Int(padding) = %v, want 10", got)
	}
	if got := res.Bool(sheet.Rule("style", "enabled"), false); !got {
		t.Error("Bool(enabled) = false, want true")
	}
	if got := res.Bool(sheet.Rule("style", "flag"), false); !got {
		t.Error("Bool(flag) = false, want true: ${1 == 1} must be truthy")
	}
	if got := res.Float(sheet.Rule("style", "width"), 0); got != 375 {
		t.Errorf("Float(width) = %v, want 375", got)
	}
	if got := res.Font(sheet.Rule("style", "body"), stylesheet.FontDescriptor{}); !got.System || got.Size != 12 {
		t.Errorf("Font(body) = %+v, want system size 12", got)
	}
	want := stylesheet.NewColorDescriptor("#FF0000")
	if got := res.Color(sheet.Rule("style", "tint"), stylesheet.ColorDescriptor{}); got != want {
		t.Errorf("Color(tint) = %+v, want %+v", got, want)
	}
	if diags := res.Diagnostics(); len(diags) != 0 {
		t.Errorf("unexpected diagnostics: %+v", diags)
	}
}

func TestResolver_TypeMismatchFallsBack(t *testing.T) {
	loader, res := newResolver(nil)
	sheet, err := loader.Load([]byte(accessorDoc))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	title := sheet.Rule("style", "title")
	if got := res.Float(title, 3.5); got != 3.5 {
		t.Errorf("Float(string rule) = %v, want default 3.5", got)
	}
	if got := res.Bool(title, true); !got {
		t.Error("Bool(string rule) = false, want default true")
	}
	if got := res.String(sheet.Rule("style", "padding"), "dflt"); got != "dflt" {
		t.Errorf("String(number rule) = %q, want default", got)
	}
	if got := res.Font(title, stylesheet.FontDescriptor{Family: "Courier", Size: 9}); got.Family != "Courier" {
		t.Errorf("Font(string rule) = %+v, want default", got)
	}
	if got := res.Color(title, stylesheet.NewColorDescriptor("112233")); got.Hex != "112233" {
		t.Errorf("Color(string rule) = %+v, want default", got)
	}

	diags := res.Diagnostics()
	if len(diags) != 5 {
		t.Fatalf("len(Diagnostics()) = %d, want 5: %+v", len(diags), diags)
	}
	for _, d := range diags {
		if d.Code != stylesheet.DiagTypeMismatch {
			t.Errorf("diagnostic code = %s, want %s", d.Code, stylesheet.DiagTypeMismatch)
		}
	}
}

func TestResolver_ExpressionFailureYieldsZero(t *testing.T) {
	loader, res := newResolver(nil)
	sheet, err := loader.Load([]byte("style:\n  w: \"${noSuchSymbol + 1}\"\n"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	// Evaluation failure degrades to the engine's zero, not the caller
	// default: the kind matched, only the evaluation hiccuped.
	if got := res.Float(sheet.Rule("style", "w"), 42); got != 0 {
		t.Errorf("Float() = %v, want 0", got)
	}
	diags := res.Diagnostics()
	if len(diags) != 1 || diags[0].Code != stylesheet.DiagEvaluation {
		t.Errorf("diagnostics = %+v, want one %s", diags, stylesheet.DiagEvaluation)
	}
}

func TestResolver_NilRule(t *testing.T) {
	_, res := newResolver(nil)
	if got := res.Float(nil, 1.5); got != 1.5 {
		t.Errorf("Float(nil) = %v, want default", got)
	}
	if got := res.String(nil, "d"); got != "d" {
		t.Errorf("String(nil) = %q, want default", got)
	}
	if diags := res.Diagnostics(); len(diags) != 0 {
		t.Errorf("nil rule must not produce diagnostics, got %+v", diags)
	}
}

func TestResolver_HeterogeneousBranchFallsBackAtAccess(t *testing.T) {
	// Declared kind comes from the first parsed branch (a string); the
	// numeric fallback branch is tolerated at load with a warning.
	doc := "style:\n  v:\n    \"${idiom == phone}\": hello\n    \"${default}\": 1\n"
	loader, res := newResolver(nil)
	sheet, err := loader.Load([]byte(doc))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	rule := sheet.Rule("style", "v")
	if rule.Kind != stylesheet.KindString {
		t.Fatalf("declared kind = %s, want string", rule.Kind)
	}
	// String access matches the declared kind, but the matched branch (the
	// phone one) is a string, so this resolves normally.
	if got := res.String(rule, "d"); got != "hello" {
		t.Errorf("String() = %q, want %q", got, "hello")
	}
	// Float access mismatches the declared kind outright.
	if got := res.Float(rule, 9); got != 9 {
		t.Errorf("Float() = %v, want default 9", got)
	}
	if diags := res.Diagnostics(); len(diags) != 1 || diags[0].Code != stylesheet.DiagTypeMismatch {
		t.Errorf("diagnostics = %+v, want one %s", diags, stylesheet.DiagTypeMismatch)
	}
}

func TestResolver_ConcurrentLookups(t *testing.T) {
	loader, res := newResolver(nil)
	sheet, err := loader.Load([]byte(accessorDoc))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	rule := sheet.Rule("style", "width")

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				if got := res.Float(rule, 0); got != 375 {
					t.Errorf("Float() = %v, want 375", got)
				}
			}
		}()
	}
	wg.Wait()
}

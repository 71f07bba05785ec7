package telegram

import "testing"

func TestParseAlertArgs(t *testing.T) {
	asset, direction, threshold, err := ParseAlertArgs("  btc   above  50000 ")
	if err != nil {
		t.Fatalf("ParseAlertArgs: %v", err)
	}
	if asset != "btc" || direction != "above" || threshold != "50000" {
		t.Errorf("got %q %q %q", asset, direction, threshold)
	}

	for _, bad := range []string{"", "btc", "btc above", "btc above 1 extra"} {
		if _, _, _, err := ParseAlertArgs(bad); err == nil {
			t.Errorf("ParseAlertArgs(%q): expected error", bad)
		}
	}
}

func TestParseAlertID(t *testing.T) {
	id, err := ParseAlertID(" 0b9cbf1a-9e15-4f66-8c2b-1f1f4f9a2f10 ")
	if err != nil {
		t.Fatalf("ParseAlertID: %v", err)
	}
	if id != "0b9cbf1a-9e15-4f66-8c2b-1f1f4f9a2f10" {
		t.Errorf("got %q", id)
	}

	for _, bad := range []string{"", "   ", "two ids"} {
		if _, err := ParseAlertID(bad); err == nil {
			t.Errorf("ParseAlertID(%q): expected error", bad)
		}
	}
}

func TestParseLocaleArg(t *testing.T) {
	locale, err := ParseLocaleArg(" RU ")
	if err != nil {
		t.Fatalf("ParseLocaleArg: %v", err)
	}
	if locale != "ru" {
		t.Errorf("got %q, want ru", locale)
	}
	if _, err := ParseLocaleArg("   "); err == nil {
		t.Error("expected error for empty locale")
	}
}

package finance

import (
	"errors"
	"testing"
	"time"
)

func validInput() RecordInput {
	return RecordInput{
		Date:           "2023-01-01",
		Currency:       "usd",
		GrossIncomeYtd: 1000.0,
		TaxesPaidYtd:   200.0,
		AssetsExCash:   5000.0,
		Cash:           "300",
		Debt:           0.0,
	}
}

func fieldCodes(t *testing.T, err error) map[string]string {
	t.Helper()
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	codes := make(map[string]string, len(verr.Fields))
	for _, f := range verr.Fields {
		codes[f.Field] = f.Code
	}
	return codes
}

func TestValidateRecord_Valid(t *testing.T) {
	out, err := ValidateRecord(validInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	if !out.Date.Equal(want) {
		t.Errorf("date = %v, want %v", out.Date, want)
	}
	if out.Cash != 300 {
		t.Errorf("cash = %v, want 300 (parsed from string)", out.Cash)
	}
	if out.Currency != "usd" {
		t.Errorf("currency = %q, want usd", out.Currency)
	}
}

func TestValidateRecord_GrossIncomeBounds(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		wantErr string
	}{
		{"zero", 0.0, ""},
		{"upper bound", 1_000_000_000.0, ""},
		{"negative", -1.0, CodeRequired},
		{"above bound", 1_000_000_001.0, CodeTooBig},
		{"empty string", "", CodeRequired},
		{"missing", nil, CodeRequired},
		{"numeric string", "42.5", ""},
		{"garbage", "abc", CodeInvalidType},
		{"bool", true, CodeInvalidType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			in.GrossIncomeYtd = tt.value

			_, err := ValidateRecord(in)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			codes := fieldCodes(t, err)
			if codes["grossIncomeYtd"] != tt.wantErr {
				t.Errorf("code = %q, want %q", codes["grossIncomeYtd"], tt.wantErr)
			}
		})
	}
}

func TestValidateRecord_Currency(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		wantErr string
	}{
		{"two chars", "us", ""},
		{"one char", "u", CodeTooSmall},
		{"fifty one chars", "abcdefghijabcdefghijabcdefghijabcdefghijabcdefghijk", CodeTooBig},
		{"free form", "Swiss franc", ""},
		{"missing", nil, CodeRequired},
		{"number", 12.0, CodeInvalidType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			in.Currency = tt.value

			_, err := ValidateRecord(in)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if got := fieldCodes(t, err)["currency"]; got != tt.wantErr {
				t.Errorf("code = %q, want %q", got, tt.wantErr)
			}
		})
	}
}

func TestValidateRecord_Date(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		want    time.Time
		wantErr string
	}{
		{"iso date", "2024-02-29", time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), ""},
		{"rfc3339 with offset", "2024-03-01T10:00:00+02:00", time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC), ""},
		{"time value", time.Date(2030, 5, 1, 0, 0, 0, 0, time.UTC), time.Date(2030, 5, 1, 0, 0, 0, 0, time.UTC), ""},
		{"missing", nil, time.Time{}, CodeRequired},
		{"blank", "  ", time.Time{}, CodeRequired},
		{"unparseable", "yesterday", time.Time{}, CodeInvalidDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			in.Date = tt.value

			out, err := ValidateRecord(in)
			if tt.wantErr != "" {
				if got := fieldCodes(t, err)["date"]; got != tt.wantErr {
					t.Errorf("code = %q, want %q", got, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !out.Date.Equal(tt.want) {
				t.Errorf("date = %v, want %v", out.Date, tt.want)
			}
		})
	}
}

func TestValidateRecord_ReportsEveryField(t *testing.T) {
	_, err := ValidateRecord(RecordInput{})
	codes := fieldCodes(t, err)

	for _, field := range []string{"date", "currency", "grossIncomeYtd", "taxesPaidYtd", "assetsExCash", "cash", "debt"} {
		if codes[field] != CodeRequired {
			t.Errorf("%s: code = %q, want %q", field, codes[field], CodeRequired)
		}
	}
}

func TestValidationError_Message(t *testing.T) {
	in := validInput()
	in.Debt = 2_000_000_000.0

	_, err := ValidateRecord(in)
	if err == nil {
		t.Fatal("expected error")
	}
	want := "validation failed: debt: Debt cannot be more than 1 billion"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestValidateRecord_DateMessages(t *testing.T) {
	tests := []struct {
		name     string
		date     any
		wantCode string
		wantMsg  string
	}{
		{"absent", nil, CodeRequired, "Please pick a date for this record"},
		{"unparseable", "yesterday", CodeInvalidDate, "Please pick a valid date"},
		{"number", 20240101.0, CodeInvalidType, "Please pick a valid date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			in.Date = tt.date

			_, err := ValidateRecord(in)
			var verr *ValidationError
			if !errors.As(err, &verr) || len(verr.Fields) != 1 {
				t.Fatalf("err = %v, want one field issue", err)
			}
			if f := verr.Fields[0]; f.Code != tt.wantCode || f.Message != tt.wantMsg {
				t.Errorf("got %s %q, want %s %q", f.Code, f.Message, tt.wantCode, tt.wantMsg)
			}
		})
	}
}

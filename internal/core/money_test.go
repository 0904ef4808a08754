package core

import "testing"

func TestFormatRand(t *testing.T) {
	tests := []struct {
		name  string
		cents int64
		want  string
	}{
		{"below one thousand", 999_00, "R999"},
		{"exactly one thousand", 1_000_00, "R1K"},
		{"rounds up in K tier", 1_500_00, "R2K"},
		{"rounds down in K tier", 320_400_00, "R320K"},
		{"just under a million", 999_499_00, "R999K"},
		{"millions keep one decimal", 2_300_000_00, "R2.3M"},
		{"exactly one million", 1_000_000_00, "R1.0M"},
		{"weighted pipeline figure", 600_000_00, "R600K"},
		{"zero", 0, "R0"},
		{"negative", -50_000_00, "-R50K"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatRand(Money{Cents: tt.cents}); got != tt.want {
				t.Errorf("FormatRand(%d) = %q, want %q", tt.cents, got, tt.want)
			}
		})
	}
}

func TestMoneyAdd(t *testing.T) {
	sum := Rands(1_200_000).Add(Rands(620_000))
	if sum.Cents != 1_820_000_00 {
		t.Errorf("Add = %d cents, want %d", sum.Cents, int64(1_820_000_00))
	}
}

func TestMoneyValidate(t *testing.T) {
	if err := (Money{Cents: -1}).Validate(); err != ErrNegativeAmount {
		t.Errorf("negative cents: got %v, want ErrNegativeAmount", err)
	}
	if err := (Money{Cents: 0}).Validate(); err != nil {
		t.Errorf("zero is valid, got %v", err)
	}
}

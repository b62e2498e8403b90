package core

import "testing"

func TestValidateWithdrawalAmount(t *testing.T) {
	cases := []struct {
		amount int64
		ok     bool
	}{
		{100, true},
		{2300, true},
		{0, false},
		{-100, false},
		{250, false},
		{99, false},
	}
	for i, tc := range cases {
		err := ValidateWithdrawalAmount(tc.amount)
		if tc.ok && err != nil {
			t.Fatalf("case %d (%d): expected ok, got %v", i, tc.amount, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("case %d (%d): expected error", i, tc.amount)
		}
	}
}

func TestAccountValidate(t *testing.T) {
	good := Account{Number: 1001, PIN: 1234, Balance: Money{Cents: 1500000}, Name: "Zaid"}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []Account{
		{Number: 0, PIN: 1234, Balance: Money{Cents: 1}, Name: "a"},
		{Number: 1001, PIN: 1234, Balance: Money{Cents: -1}, Name: "a"},
		{Number: 1001, PIN: 1234, Balance: Money{Cents: 1}, Name: "  "},
	}
	for i, a := range bads {
		if err := a.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

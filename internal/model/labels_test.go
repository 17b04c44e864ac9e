package model

import "testing"

func TestDefaultLabeler(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{input: "Agent_Name", want: "Agent Name"},
		{input: "Electronic_invoice", want: "Electronic Invoice"},
		{input: "fullName", want: "Full Name"},
		{input: "email", want: "Email"},
		{input: "SMS_or_RCS_or_USSD", want: "S M S Or R C S Or U S S D"},
		{input: "__leading_and__double__", want: "Leading And Double"},
		{input: "Invoice_1st_of_each_month", want: "Invoice 1st Of Each Month"},
		{input: "", want: ""},
	}
	for _, tc := range cases {
		if got := DefaultLabeler(tc.input); got != tc.want {
			t.Errorf("DefaultLabeler(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}
